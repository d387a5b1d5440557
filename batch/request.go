package batch

import "errors"

// Defaults applied when RequestParams leaves the sampling knobs unset.
const (
	DefaultMaxTokens   = 1000
	DefaultTemperature = 1.0
)

// RequestBody is one provider-agnostic chat request: the params object of a
// batch input record. Messages are opaque to this layer.
type RequestBody struct {
	Model       string           `json:"model"`
	Messages    []map[string]any `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	Tools       []ToolUnion      `json:"tools,omitempty"`
	ToolChoice  map[string]any   `json:"tool_choice,omitempty"`
}

// RequestParams carries the inputs to NewRequestBody. Nil MaxTokens and
// Temperature take DefaultMaxTokens and DefaultTemperature.
type RequestParams struct {
	Model       string
	Messages    []map[string]any
	MaxTokens   *int
	Temperature *float64
	Tools       []map[string]any
	ToolChoice  map[string]any
}

// NewRequestBody builds a request envelope. Raw tool objects are normalized
// through NormalizeTool before anything else, so untyped tool maps never
// reach serialization; a tool that matches neither shape fails the whole
// construction and no partial envelope is returned.
func NewRequestBody(p RequestParams) (RequestBody, error) {
	var tools []ToolUnion
	for _, raw := range p.Tools {
		union, err := NormalizeTool(raw)
		if err != nil {
			return RequestBody{}, err
		}
		tools = append(tools, union)
	}

	if p.Model == "" {
		return RequestBody{}, errors.New("batch: model must not be empty")
	}

	body := RequestBody{
		Model:       p.Model,
		Messages:    p.Messages,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Tools:       tools,
		ToolChoice:  p.ToolChoice,
	}
	if p.MaxTokens != nil {
		body.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		body.Temperature = *p.Temperature
	}
	return body, nil
}

// BatchRecord pairs a correlation id with one request body. It serializes as
// exactly one line of the batch input file and is never mutated after
// creation.
type BatchRecord struct {
	CustomID string      `json:"custom_id"`
	Params   RequestBody `json:"params"`
}
