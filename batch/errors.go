package batch

import "fmt"

// SchemaFormatError reports a tool description that matches neither the
// OpenAI function shape nor the Anthropic input_schema shape. It aborts
// construction of the request that carried the tool.
type SchemaFormatError struct {
	// Tool is the raw tool object that failed classification.
	Tool map[string]any
}

func (e *SchemaFormatError) Error() string {
	return "batch: unknown tool format"
}

// RecordDecodeError reports a batch output line that is not valid JSON.
// Unlike per-record extraction failures, this aborts the whole parse call.
type RecordDecodeError struct {
	// Line is the 1-based line number within the batch output.
	Line int
	Err  error
}

func (e *RecordDecodeError) Error() string {
	return fmt.Sprintf("batch: line %d is not valid JSON: %v", e.Line, e.Err)
}

func (e *RecordDecodeError) Unwrap() error {
	return e.Err
}
