// Package loader reads recipe definition directories into a registry.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/sourceplane/framerun/internal/model"
	"github.com/sourceplane/framerun/internal/normalize"
	"github.com/sourceplane/framerun/internal/recipe"
	"github.com/sourceplane/framerun/internal/schema"
)

// Registry holds every loaded recipe keyed by name.
type Registry struct {
	Recipes map[string]*recipe.Recipe
}

// Get looks a recipe up by name.
func (r *Registry) Get(name string) (*recipe.Recipe, bool) {
	rcp, ok := r.Recipes[name]
	return rcp, ok
}

// Names returns every recipe name, sorted for stable listings.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Recipes))
	for name := range r.Recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadRecipe loads, schema-validates and normalizes one recipe.yaml.
func LoadRecipe(path string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	// Validate the raw document first so schema errors point at the file
	// content rather than at a half-filled struct.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipe YAML %s: %w", path, err)
	}
	if err := schema.ValidateRecipeDefinition(doc); err != nil {
		return nil, fmt.Errorf("recipe %s failed schema validation: %w", path, err)
	}

	var def model.RecipeDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse recipe YAML %s: %w", path, err)
	}

	normalized, err := normalize.NormalizeDefinition(&def)
	if err != nil {
		return nil, fmt.Errorf("recipe %s is invalid: %w", path, err)
	}

	var paramSchema *jsonschema.Schema
	if len(normalized.Spec.Parameters) > 0 {
		paramSchema, err = compileParamSchema(normalized.Metadata.Name, normalized.Spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("recipe %s declares an invalid parameter schema: %w", path, err)
		}
	}

	return &recipe.Recipe{
		Definition:  normalized,
		ParamSchema: paramSchema,
		Dir:         filepath.Dir(path),
	}, nil
}

// LoadRecipesFromDir walks a recipe directory tree and loads every
// recipe.yaml it finds. Recipe names must be unique across the tree.
func LoadRecipesFromDir(recipeDir string) (*Registry, error) {
	info, err := os.Stat(recipeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access recipe directory %s: %w", recipeDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("recipe path is not a directory: %s", recipeDir)
	}

	var paths []string
	err = filepath.Walk(recipeDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.Name() == "recipe.yaml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk recipe directory %s: %w", recipeDir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no recipe.yaml files found under %s", recipeDir)
	}
	sort.Strings(paths)

	registry := &Registry{Recipes: make(map[string]*recipe.Recipe)}
	for _, path := range paths {
		rcp, err := LoadRecipe(path)
		if err != nil {
			return nil, err
		}
		if existing, ok := registry.Recipes[rcp.Name()]; ok {
			return nil, fmt.Errorf("recipe name %s declared in both %s and %s",
				rcp.Name(), existing.Dir, rcp.Dir)
		}
		registry.Recipes[rcp.Name()] = rcp
	}

	return registry, nil
}

// compileParamSchema compiles a recipe's embedded parameter schema. The
// YAML fragment is converted to JSON and served to the compiler through a
// pinned URL so it cannot pull in external references.
func compileParamSchema(name string, params map[string]interface{}) (*jsonschema.Schema, error) {
	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameter schema: %w", err)
	}

	schemaURI := fmt.Sprintf("framerun://%s/params.schema.json", name)
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == schemaURI {
			return io.NopCloser(strings.NewReader(string(jsonData))), nil
		}
		return nil, fmt.Errorf("external schema reference not supported: %s", url)
	}

	compiledSchema, err := compiler.Compile(schemaURI)
	if err != nil {
		return nil, fmt.Errorf("failed to compile parameter schema: %w", err)
	}
	return compiledSchema, nil
}
