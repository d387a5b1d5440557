package batch

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// SchemaFromGenAI converts a genai.Schema into the plain JSON Schema map a
// TargetSchema carries, so schemas written for the Gemini SDK can target a
// batch unchanged. Use it with WithTargetSchema:
//
//	schema, err := batch.SchemaFromGenAI(s)
//	batch.WithTargetSchema(batch.TargetSchema{Name: "User", Schema: schema})
func SchemaFromGenAI(s *genai.Schema) (map[string]any, error) {
	if s == nil {
		return nil, errors.New("batch: nil genai schema")
	}
	var m map[string]any
	if err := reencode(s, &m); err != nil {
		return nil, err
	}
	lowerSchemaTypes(m)
	return m, nil
}

// genai spells schema types in upper case ("OBJECT", "STRING"); JSON Schema
// consumers expect lower case.
func lowerSchemaTypes(v any) {
	switch val := v.(type) {
	case map[string]any:
		if t, ok := val["type"].(string); ok {
			val["type"] = strings.ToLower(t)
		}
		for _, child := range val {
			lowerSchemaTypes(child)
		}
	case []any:
		for _, child := range val {
			lowerSchemaTypes(child)
		}
	}
}
