package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/llm"
	"github.com/abhisek/coachiz/internal/program"
)

func askReq() coaching.AskRequest {
	return coaching.AskRequest{
		Question:   "How should I plan my week?",
		SkillLevel: coaching.SkillBeginner,
		SessionID:  "11111111-2222-3333-4444-555555555555",
		ProgramID:  "study-skills",
	}
}

func TestAskParsesStructuredAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"response": "Start with a Sunday review of the week ahead.",
			"sources": [{"title": "Weekly planning basics", "url": "https://example.com/planning"}],
			"metadata": {"topic": "planning"}
		}`),
	})
	svc := NewService(mock, program.NewCatalog())

	answer, err := svc.Ask(context.Background(), askReq())
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Response != "Start with a Sunday review of the week ahead." {
		t.Errorf("response = %q", answer.Response)
	}
	if len(answer.Sources) != 1 || answer.Sources[0]["title"] != "Weekly planning basics" {
		t.Errorf("sources = %+v", answer.Sources)
	}
	if answer.Metadata["topic"] != "planning" {
		t.Errorf("metadata = %+v", answer.Metadata)
	}
}

func TestAskBuildsRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"response": "ok"}`),
	})
	svc := NewService(mock, program.NewCatalog())

	if _, err := svc.Ask(context.Background(), askReq()); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d", len(mock.Calls))
	}
	sent := mock.Calls[0]

	if sent.Schema == nil || sent.Schema.Name != "coach-answer" {
		t.Errorf("schema = %+v", sent.Schema)
	}
	if len(sent.Messages) != 1 || sent.Messages[0].Content != "How should I plan my week?" {
		t.Errorf("messages = %+v", sent.Messages)
	}
	if !strings.Contains(sent.System, "beginner") {
		t.Errorf("system prompt missing skill guidance: %q", sent.System)
	}
	if !strings.Contains(sent.System, "11111111-2222-3333-4444-555555555555") {
		t.Errorf("system prompt missing session id: %q", sent.System)
	}
	if !strings.Contains(sent.System, "Study Skills") {
		t.Errorf("system prompt missing program name: %q", sent.System)
	}
}

func TestAskGeneralProgramOmitsProgramContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"response": "ok"}`),
	})
	svc := NewService(mock, program.NewCatalog())

	req := askReq()
	req.ProgramID = program.GeneralID
	if _, err := svc.Ask(context.Background(), req); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if strings.Contains(mock.Calls[0].System, "program") {
		t.Errorf("general coaching should not name a program: %q", mock.Calls[0].System)
	}
}

func TestAskPropagatesProviderError(t *testing.T) {
	wantErr := &llm.ErrProviderUnavailable{Err: errors.New("down")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: wantErr})
	svc := NewService(mock, nil)

	_, err := svc.Ask(context.Background(), askReq())
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestAskRejectsEmptyResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"response": ""}`),
	})
	svc := NewService(mock, nil)

	if _, err := svc.Ask(context.Background(), askReq()); err == nil {
		t.Error("empty response should be an error")
	}
}
