package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func answerSchema() *Schema {
	return &Schema{
		Name:        "coach-answer",
		Description: "A coaching answer with optional sources",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"response": map[string]any{"type": "string"},
				"sources": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
			"required": []any{"response"},
		},
	}
}

func TestValidateResponseAccepts(t *testing.T) {
	raw := json.RawMessage(`{"response":"Break revision into short daily blocks.","sources":[]}`)
	if err := validateResponse(answerSchema(), raw); err != nil {
		t.Errorf("validateResponse: %v", err)
	}
}

func TestValidateResponseRejectsMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"sources":[]}`)
	err := validateResponse(answerSchema(), raw)
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
	if string(invResp.Content) != string(raw) {
		t.Errorf("error content = %s", invResp.Content)
	}
}

func TestValidateResponseRejectsMalformedJSON(t *testing.T) {
	err := validateResponse(answerSchema(), json.RawMessage(`{"response": "unterminated`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponseWrongType(t *testing.T) {
	err := validateResponse(answerSchema(), json.RawMessage(`{"response": 42}`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}
