// Package schema validates recipe definition documents against the recipe
// document schema. The schema ships with the binary since the tool
// validates third-party recipe files.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const recipeDefinitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["apiVersion", "kind", "metadata", "spec"],
  "properties": {
    "apiVersion": {"type": "string", "minLength": 1},
    "kind": {"const": "Recipe"},
    "metadata": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "version": {"type": "string"}
      }
    },
    "spec": {
      "type": "object",
      "required": ["tags", "exec"],
      "properties": {
        "tags": {
          "type": "array",
          "items": {"type": "string", "minLength": 1},
          "minItems": 1
        },
        "defaultTag": {"type": "string"},
        "requirements": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["frames"],
            "properties": {
              "name": {"type": "string"},
              "frames": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["tag"],
                  "properties": {
                    "tag": {"type": "string", "minLength": 1},
                    "min": {"type": "integer", "minimum": 0},
                    "max": {"type": "integer", "minimum": 0}
                  }
                }
              }
            }
          }
        },
        "products": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        },
        "exec": {
          "type": "object",
          "required": ["command"],
          "properties": {
            "command": {"type": "string", "minLength": 1},
            "timeout": {"type": "string"}
          }
        },
        "parameters": {"type": "object"}
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func definitionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString(
			"framerun://recipe.schema.json", recipeDefinitionSchema)
	})
	return compiled, compileErr
}

// ValidateRecipeDefinition checks a decoded recipe.yaml document against
// the recipe document schema. The document is roundtripped through JSON so
// YAML scalar types validate the same way JSON documents do.
func ValidateRecipeDefinition(doc interface{}) error {
	s, err := definitionSchema()
	if err != nil {
		return fmt.Errorf("failed to compile recipe document schema: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe document: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("failed to normalize recipe document: %w", err)
	}

	return s.Validate(normalized)
}
