package assistant

import "github.com/abhisek/coachiz/internal/llm"

// AnswerSchema is the structured-output contract for coach answers. The
// model must return the answer text plus optional source citations and
// metadata, so the conversation can render attributions.
var AnswerSchema = &llm.Schema{
	Name:        "coach-answer",
	Description: "A coaching answer with optional source citations and metadata",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The coach's answer, written for the learner's level",
			},
			"sources": map[string]any{
				"type":        "array",
				"description": "Citations backing the answer, if any",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"url":   map[string]any{"type": "string"},
					},
					"required": []any{"title"},
				},
			},
			"metadata": map[string]any{
				"type":        "object",
				"description": "Free-form annotations such as topic or confidence",
			},
		},
		"required": []any{"response"},
	},
}
