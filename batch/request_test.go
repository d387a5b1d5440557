package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestNewRequestBody_Defaults(t *testing.T) {
	body, err := NewRequestBody(RequestParams{
		Model:    "gpt-4o",
		Messages: []map[string]any{{"role": "user", "content": "hi"}},
	})
	if err != nil {
		t.Fatalf("NewRequestBody failed: %v", err)
	}
	if body.MaxTokens != 1000 {
		t.Errorf("expected default max_tokens 1000, got %d", body.MaxTokens)
	}
	if body.Temperature != 1.0 {
		t.Errorf("expected default temperature 1.0, got %v", body.Temperature)
	}
	if body.Tools != nil {
		t.Errorf("expected no tools, got %v", body.Tools)
	}
}

func TestNewRequestBody_EmptyModel(t *testing.T) {
	_, err := NewRequestBody(RequestParams{
		Messages: []map[string]any{{"role": "user", "content": "hi"}},
	})
	if err == nil {
		t.Fatalf("expected error for empty model")
	}
}

func TestNewRequestBody_NormalizesTools(t *testing.T) {
	body, err := NewRequestBody(RequestParams{
		Model:    "claude-3-opus",
		Messages: []map[string]any{{"role": "user", "content": "hi"}},
		Tools: []map[string]any{
			{"name": "f", "description": "d", "input_schema": map[string]any{"type": "object"}},
		},
	})
	if err != nil {
		t.Fatalf("NewRequestBody failed: %v", err)
	}
	if len(body.Tools) != 1 || body.Tools[0].Anthropic == nil {
		t.Fatalf("tools not normalized to typed variants: %+v", body.Tools)
	}
}

func TestNewRequestBody_BadToolAbortsConstruction(t *testing.T) {
	_, err := NewRequestBody(RequestParams{
		Model:    "gpt-4o",
		Messages: []map[string]any{{"role": "user", "content": "hi"}},
		Tools:    []map[string]any{{"bogus": true}},
	})
	var formatErr *SchemaFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *SchemaFormatError, got %v", err)
	}
}

func TestRequestBody_ToolRoundTrip(t *testing.T) {
	raw := make([]map[string]any, 3)
	for i := range raw {
		raw[i] = map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        fmt.Sprintf("tool_%d", i),
				"description": fmt.Sprintf("tool number %d", i),
				"parameters":  map[string]any{"type": "object"},
			},
		}
	}

	body, err := NewRequestBody(RequestParams{
		Model:    "gpt-4o",
		Messages: []map[string]any{{"role": "user", "content": "hi"}},
		Tools:    raw,
	})
	if err != nil {
		t.Fatalf("NewRequestBody failed: %v", err)
	}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded RequestBody
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(decoded.Tools) != len(raw) {
		t.Fatalf("expected %d tools after round trip, got %d", len(raw), len(decoded.Tools))
	}
	for i, tool := range decoded.Tools {
		if tool.OpenAI == nil {
			t.Fatalf("tool %d lost its variant", i)
		}
		if tool.OpenAI.Function.Name != fmt.Sprintf("tool_%d", i) {
			t.Errorf("tool %d out of order: %q", i, tool.OpenAI.Function.Name)
		}
	}
	if !reflect.DeepEqual(decoded.Messages, body.Messages) {
		t.Errorf("messages changed across round trip")
	}
}
