package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// quizSchema mirrors the shape quiz generation asks the model for: a
// questions array with four options each and a 0-based answer index.
func quizSchema() *Schema {
	return &Schema{
		Name:        "quiz-payload",
		Description: "Multiple-choice questions generated from a document",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 4,
								"maxItems": 4,
							},
							"correct_answer": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
							"difficulty":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
						},
						"required": []any{"question", "options", "correct_answer"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	goodQuestion := `{
		"question": "What does dropout regularize?",
		"options": ["Weights", "Activations", "Gradients", "Inputs"],
		"correct_answer": 1,
		"difficulty": "medium"
	}`

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid payload", fmt.Sprintf(`{"questions":[%s]}`, goodQuestion), false},
		{"optional difficulty omitted", `{"questions":[{"question":"Q?","options":["a","b","c","d"],"correct_answer":0}]}`, false},
		{"empty questions array", `{"questions":[]}`, true},
		{"missing options", `{"questions":[{"question":"Q?","correct_answer":0}]}`, true},
		{"three options", `{"questions":[{"question":"Q?","options":["a","b","c"],"correct_answer":0}]}`, true},
		{"answer index out of range", `{"questions":[{"question":"Q?","options":["a","b","c","d"],"correct_answer":4}]}`, true},
		{"answer index not an integer", `{"questions":[{"question":"Q?","options":["a","b","c","d"],"correct_answer":"one"}]}`, true},
		{"unknown difficulty", `{"questions":[{"question":"Q?","options":["a","b","c","d"],"correct_answer":0,"difficulty":"brutal"}]}`, true},
		{"not even JSON", `{questions:}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizSchema(), json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation to fail")
				}
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Error("rejected output not preserved for the audit log")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected output to validate, got: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchemaSkipsValidation(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CompilesOnce(t *testing.T) {
	schema := quizSchema()
	raw := json.RawMessage(`{"questions":[{"question":"Q?","options":["a","b","c","d"],"correct_answer":0}]}`)
	for i := 0; i < 3; i++ {
		if err := validateResponse(schema, raw); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if _, ok := compiledSchemas.Load(schema.Name); !ok {
		t.Error("compiled schema not cached")
	}
}
