package batch

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
)

// Batch output lines carry whole model responses, so they run far past
// bufio.Scanner's default token size.
const maxRecordBytes = 16 << 20

// ParseFromFile reads a batch output file (one JSON record per line) and
// partitions its records into successfully parsed T values and raw records
// that failed extraction or validation. See ParseFromString for the
// per-record rules.
func ParseFromFile[T any](path string) (parsed []T, failed []map[string]any, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return parseRecords[T](f)
}

// ParseFromString parses newline-delimited batch output records from an
// in-memory blob.
//
// A line that is not valid JSON aborts the whole call with a
// *RecordDecodeError. A decoded record that does not yield a valid T —
// missing payload keys, unparseable embedded JSON, schema mismatch — is
// appended verbatim to failed and processing continues. Both slices preserve
// input order, and every non-fatal line lands in exactly one of them.
func ParseFromString[T any](content string) (parsed []T, failed []map[string]any, err error) {
	return parseRecords[T](strings.NewReader(content))
}

func parseRecords[T any](r io.Reader) ([]T, []map[string]any, error) {
	target, err := TargetSchemaOf[T]()
	if err != nil {
		return nil, nil, err
	}

	var parsed []T
	var failed []map[string]any

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	line := 0
	for sc.Scan() {
		line++
		var record map[string]any
		if err := json.Unmarshal(sc.Bytes(), &record); err != nil {
			return nil, nil, &RecordDecodeError{Line: line, Err: err}
		}
		value, err := extractPayload[T](record, target.Schema)
		if err != nil {
			failed = append(failed, record)
			continue
		}
		parsed = append(parsed, value)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return parsed, failed, nil
}

// extractPayload recovers a T from one decoded batch output record: locate
// the embedded JSON string, decode it, check it against the target schema,
// then bind it to T.
func extractPayload[T any](record, schema map[string]any) (T, error) {
	var value T
	raw, err := structuredText(record)
	if err != nil {
		return value, err
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return value, err
	}
	if err := validateAgainstSchema(schema, payload); err != nil {
		return value, err
	}
	if err := reencode(payload, &value); err != nil {
		return value, err
	}
	return value, nil
}

// structuredText finds the embedded structured-output string. A record whose
// response body message carries tool_calls is OpenAI-shaped; every other
// record is assumed Anthropic-shaped and read at result.message.content,
// so unknown formats fail here rather than being flagged separately.
func structuredText(record map[string]any) (string, error) {
	if v, ok := dig(record, "response", "body", "choices", 0, "message"); ok {
		if message, ok := v.(map[string]any); ok {
			if _, ok := message["tool_calls"]; ok {
				args, ok := dig(message, "tool_calls", 0, "function", "arguments")
				if !ok {
					return "", errors.New("batch: tool call carries no function arguments")
				}
				s, ok := args.(string)
				if !ok {
					return "", errors.New("batch: tool call arguments are not a string")
				}
				return s, nil
			}
		}
	}
	v, ok := dig(record, "result", "message", "content", 0, "text")
	if !ok {
		return "", errors.New("batch: record matches neither recognized output shape")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.New("batch: content text is not a string")
	}
	return s, nil
}

// dig walks nested JSON values: string steps index maps, int steps index
// slices.
func dig(v any, path ...any) (any, bool) {
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			if v, ok = m[key]; !ok {
				return nil, false
			}
		case int:
			s, ok := v.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			v = s[key]
		}
	}
	return v, true
}
