package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseFrameArgs turns repeated tag=path[,path...] flags into keyword frame
// assignments. Repeating a tag accumulates its paths into a list.
func parseFrameArgs(specs []string) (map[string]interface{}, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	keyword := make(map[string]interface{}, len(specs))
	for _, spec := range specs {
		tag, value, ok := strings.Cut(spec, "=")
		if !ok || tag == "" || value == "" {
			return nil, fmt.Errorf("invalid --frame %q, expected tag=path", spec)
		}
		paths := strings.Split(value, ",")
		switch existing := keyword[tag].(type) {
		case nil:
			if len(paths) == 1 {
				keyword[tag] = paths[0]
			} else {
				keyword[tag] = paths
			}
		case string:
			keyword[tag] = append([]string{existing}, paths...)
		case []string:
			keyword[tag] = append(existing, paths...)
		}
	}
	return keyword, nil
}

// parseParamArgs turns repeated key=value flags into recipe parameters.
// Values are decoded as JSON scalars where possible so numbers and booleans
// survive schema validation; anything else stays a string.
func parseParamArgs(specs []string) (map[string]interface{}, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	params := make(map[string]interface{}, len(specs))
	for _, spec := range specs {
		key, value, ok := strings.Cut(spec, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", spec)
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			params[key] = decoded
		} else {
			params[key] = value
		}
	}
	return params, nil
}
