package batch

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TargetSchema describes the structured output the batch should force the
// model to emit: a named tool whose parameters are a JSON Schema object.
type TargetSchema struct {
	Name        string
	Description string
	Schema      map[string]any
}

// TargetSchemaOf derives a TargetSchema from T's exported fields. Field
// names come from `json` tags, descriptions from `description` tags, and a
// field is optional when it is a pointer or tagged omitempty.
func TargetSchemaOf[T any]() (TargetSchema, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return TargetSchema{}, fmt.Errorf("batch: target type %s is not a struct", t)
	}
	name := t.Name()
	if name == "" {
		name = "Response"
	}
	return TargetSchema{
		Name:        name,
		Description: fmt.Sprintf("Correctly extracted `%s` with all the required parameters with correct types", name),
		Schema:      schemaForStruct(t),
	}, nil
}

func schemaForStruct(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	var required []string

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		optional := field.Type.Kind() == reflect.Pointer
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" && len(parts) == 1 {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			if slices.Contains(parts[1:], "omitempty") {
				optional = true
			}
		}

		fieldSchema := schemaForType(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema["description"] = desc
		}
		properties[name] = fieldSchema
		if !optional {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// schemaForType maps a Go type to a JSON Schema draft subset.
func schemaForType(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": schemaForType(t.Elem())}
	case reflect.Struct:
		return schemaForStruct(t)
	case reflect.Map:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

// requestAddons derives, once per batch, the tool list and forced tool-choice
// directive for the chosen provider mode. Both come back as raw maps and run
// through envelope normalization like caller-supplied tools.
func requestAddons(target TargetSchema, anthropic bool) (tools []map[string]any, toolChoice map[string]any) {
	if anthropic {
		tools = []map[string]any{{
			"name":         target.Name,
			"description":  target.Description,
			"input_schema": target.Schema,
		}}
		toolChoice = map[string]any{"type": "tool", "name": target.Name}
		return tools, toolChoice
	}
	tools = []map[string]any{{
		"type": string(openai.ToolTypeFunction),
		"function": map[string]any{
			"name":        target.Name,
			"description": target.Description,
			"parameters":  target.Schema,
		},
	}}
	toolChoice = map[string]any{
		"type":     string(openai.ToolTypeFunction),
		"function": map[string]any{"name": target.Name},
	}
	return tools, toolChoice
}
