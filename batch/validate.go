package batch

import "fmt"

// validateAgainstSchema checks an extracted payload against the target
// schema: required fields must be present and declared primitive types must
// match. Fields the schema does not mention pass through untouched.
func validateAgainstSchema(schema, payload map[string]any) error {
	for _, name := range requiredFields(schema) {
		if _, ok := payload[name]; !ok {
			return fmt.Errorf("batch: missing required field %q", name)
		}
	}

	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}
	for name, value := range payload {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		want, ok := prop["type"].(string)
		if !ok {
			continue
		}
		if err := checkFieldType(name, value, want); err != nil {
			return err
		}
	}
	return nil
}

// requiredFields reads schema["required"], which is []string when the schema
// was built locally and []any when it came back from a JSON decode.
func requiredFields(schema map[string]any) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []any:
		names := make([]string, 0, len(req))
		for _, v := range req {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

func checkFieldType(name string, value any, want string) error {
	if value == nil {
		return nil
	}
	switch want {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("batch: field %q: expected string, got %T", name, value)
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("batch: field %q: expected number, got %T", name, value)
		}
	case "integer":
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("batch: field %q: expected integer, got %T", name, value)
		}
		if f != float64(int64(f)) {
			return fmt.Errorf("batch: field %q: expected integer, got %v", name, f)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("batch: field %q: expected boolean, got %T", name, value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("batch: field %q: expected array, got %T", name, value)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("batch: field %q: expected object, got %T", name, value)
		}
	}
	return nil
}
