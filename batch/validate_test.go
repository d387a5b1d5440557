package batch

import "testing"

func userSchema(t *testing.T) map[string]any {
	t.Helper()
	target, err := TargetSchemaOf[UserDetail]()
	if err != nil {
		t.Fatalf("TargetSchemaOf failed: %v", err)
	}
	return target.Schema
}

func TestValidateAgainstSchema_MissingRequired(t *testing.T) {
	err := validateAgainstSchema(userSchema(t), map[string]any{"name": "Jason"})
	if err == nil {
		t.Fatalf("expected error for missing required field")
	}
}

func TestValidateAgainstSchema_WrongType(t *testing.T) {
	schema := userSchema(t)

	err := validateAgainstSchema(schema, map[string]any{"name": "Jason", "age": "forty"})
	if err == nil {
		t.Fatalf("expected error for string age")
	}

	err = validateAgainstSchema(schema, map[string]any{"name": "Jason", "age": 25.5})
	if err == nil {
		t.Fatalf("expected error for fractional age")
	}

	err = validateAgainstSchema(schema, map[string]any{"name": "Jason", "age": 25.0})
	if err != nil {
		t.Errorf("whole-number age should pass: %v", err)
	}
}

func TestValidateAgainstSchema_ExtraFieldsAllowed(t *testing.T) {
	err := validateAgainstSchema(userSchema(t), map[string]any{
		"name":  "Jason",
		"age":   25.0,
		"notes": "not in the schema",
	})
	if err != nil {
		t.Errorf("extra fields should pass: %v", err)
	}
}

func TestValidateAgainstSchema_RequiredFromJSON(t *testing.T) {
	// Schemas that came back from a JSON decode hold required as []any.
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"city": map[string]any{"type": "string"}},
		"required":   []any{"city"},
	}
	if err := validateAgainstSchema(schema, map[string]any{}); err == nil {
		t.Fatalf("expected error for missing required field")
	}
	if err := validateAgainstSchema(schema, map[string]any{"city": "Lagos"}); err != nil {
		t.Errorf("valid payload should pass: %v", err)
	}
}

func TestValidateAgainstSchema_NullValuesPass(t *testing.T) {
	err := validateAgainstSchema(userSchema(t), map[string]any{"name": nil, "age": 25.0})
	if err != nil {
		t.Errorf("null values are left to the decoder: %v", err)
	}
}
