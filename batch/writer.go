package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Models containing this marker (case-insensitive) get Anthropic-shaped
// tools; everything else gets the OpenAI function shape.
const anthropicModelMarker = "claude"

type writerConfig struct {
	maxTokens   int
	temperature float64
	newID       func() string
	target      *TargetSchema
	toolChoice  map[string]any
}

// WriterOption adjusts how CreateFromMessages builds a batch.
type WriterOption func(*writerConfig)

// WithMaxTokens overrides the per-request max_tokens (default 1000).
func WithMaxTokens(n int) WriterOption {
	return func(c *writerConfig) { c.maxTokens = n }
}

// WithTemperature overrides the per-request temperature (default 1.0).
func WithTemperature(t float64) WriterOption {
	return func(c *writerConfig) { c.temperature = t }
}

// WithIDGenerator replaces the random custom_id generator. The generator
// must return a distinct id per call; useful for deterministic output.
func WithIDGenerator(fn func() string) WriterOption {
	return func(c *writerConfig) { c.newID = fn }
}

// WithTargetSchema supplies the structured-output schema explicitly instead
// of deriving it from the type parameter, e.g. a schema obtained from
// SchemaFromGenAI.
func WithTargetSchema(target TargetSchema) WriterOption {
	return func(c *writerConfig) { c.target = &target }
}

// WithToolChoice overrides the derived forced tool-choice directive.
func WithToolChoice(choice map[string]any) WriterOption {
	return func(c *writerConfig) { c.toolChoice = choice }
}

// CreateFromMessages builds one batch input record per conversation and
// writes them, in input order, as newline-delimited JSON at path. The tool
// schema and forced tool choice that make the model emit a T are derived
// once for the whole batch; every record shares them and differs only in
// messages and custom_id.
//
// The whole batch is encoded in memory before the file is created, so a
// construction failure (such as an empty model id) leaves no partial file.
func CreateFromMessages[T any](conversations [][]map[string]any, model, path string, opts ...WriterOption) error {
	cfg := writerConfig{
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	target := cfg.target
	if target == nil {
		derived, err := TargetSchemaOf[T]()
		if err != nil {
			return err
		}
		target = &derived
	}

	anthropic := strings.Contains(strings.ToLower(model), anthropicModelMarker)
	tools, toolChoice := requestAddons(*target, anthropic)
	if cfg.toolChoice != nil {
		toolChoice = cfg.toolChoice
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, messages := range conversations {
		body, err := NewRequestBody(RequestParams{
			Model:       model,
			Messages:    messages,
			MaxTokens:   &cfg.maxTokens,
			Temperature: &cfg.temperature,
			Tools:       tools,
			ToolChoice:  toolChoice,
		})
		if err != nil {
			return err
		}
		record := BatchRecord{CustomID: cfg.newID(), Params: body}
		if err := enc.Encode(record); err != nil {
			return err
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
