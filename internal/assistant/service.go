// Package assistant implements the answering service backing free-form
// coaching questions with an LLM provider.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/llm"
	"github.com/abhisek/coachiz/internal/program"
)

const (
	answerMaxTokens   = 1024
	answerTemperature = 0.3
)

// Service answers free-form questions through an llm.Provider. It
// implements coaching.AnswerService.
type Service struct {
	provider llm.Provider
	catalog  *program.Catalog
}

// NewService creates an answering service over the given provider. The
// catalog supplies program context for the system prompt; it may be nil.
func NewService(provider llm.Provider, catalog *program.Catalog) *Service {
	return &Service{provider: provider, catalog: catalog}
}

// structuredAnswer mirrors AnswerSchema.
type structuredAnswer struct {
	Response string             `json:"response"`
	Sources  []coaching.Citation `json:"sources"`
	Metadata map[string]any     `json:"metadata"`
}

// Ask sends one question to the model and returns the parsed answer.
// Any provider or parsing error is returned as-is; the dispatcher
// decides what the learner sees.
func (s *Service) Ask(ctx context.Context, req coaching.AskRequest) (*coaching.AssistantAnswer, error) {
	var prog *program.Program
	if s.catalog != nil && req.ProgramID != "" {
		prog, _ = s.catalog.Program(req.ProgramID)
	}

	ctx = llm.WithPurpose(ctx, "coach-answer")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: buildSystemPrompt(prog, req),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: req.Question},
		},
		Schema:      AnswerSchema,
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, err
	}

	var parsed structuredAnswer
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("parse answer: %w", err)
	}
	if parsed.Response == "" {
		return nil, fmt.Errorf("empty answer from model")
	}

	return &coaching.AssistantAnswer{
		Response: parsed.Response,
		Sources:  parsed.Sources,
		Metadata: parsed.Metadata,
	}, nil
}
