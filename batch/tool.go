package batch

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// AnthropicTool is the Anthropic-native tool shape: the schema sits directly
// under input_schema with no function wrapper.
type AnthropicTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

// ToolUnion holds exactly one of the two provider tool shapes. The OpenAI
// variant reuses go-openai's Tool so it serializes to the canonical
// {"type":"function","function":{...}} wrapper.
type ToolUnion struct {
	OpenAI    *openai.Tool
	Anthropic *AnthropicTool
}

// NormalizeTool classifies a raw tool object by structure: a "function" key
// selects the OpenAI variant, an "input_schema" key selects the Anthropic
// variant, anything else is a *SchemaFormatError.
func NormalizeTool(raw map[string]any) (ToolUnion, error) {
	if _, ok := raw["function"]; ok {
		var tool openai.Tool
		if err := reencode(raw, &tool); err != nil {
			return ToolUnion{}, err
		}
		return ToolUnion{OpenAI: &tool}, nil
	}
	if _, ok := raw["input_schema"]; ok {
		var tool AnthropicTool
		if err := reencode(raw, &tool); err != nil {
			return ToolUnion{}, err
		}
		return ToolUnion{Anthropic: &tool}, nil
	}
	return ToolUnion{}, &SchemaFormatError{Tool: raw}
}

func (t ToolUnion) MarshalJSON() ([]byte, error) {
	switch {
	case t.OpenAI != nil:
		return json.Marshal(t.OpenAI)
	case t.Anthropic != nil:
		return json.Marshal(t.Anthropic)
	}
	return nil, &SchemaFormatError{}
}

// UnmarshalJSON re-runs classification, so decoding a serialized request
// restores the same typed variants.
func (t *ToolUnion) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	union, err := NormalizeTool(raw)
	if err != nil {
		return err
	}
	*t = union
	return nil
}

// reencode converts between representations through JSON.
func reencode(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
