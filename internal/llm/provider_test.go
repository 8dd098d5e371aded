package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/coachiz/internal/store"
)

func TestMockProviderFIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`)},
	)

	ctx := context.Background()
	r1, err := mock.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	r2, err := mock.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(r1.Content) != `"first"` || string(r2.Content) != `"second"` {
		t.Errorf("responses out of order: %s, %s", r1.Content, r2.Content)
	}

	// Empty queue surfaces as unavailable.
	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("call count = %d, want 3", mock.CallCount())
	}
}

func TestMockProviderRecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})

	req := Request{
		System:   "You are a coach.",
		Messages: []Message{{Role: RoleUser, Content: "How do I take notes?"}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("recorded %d calls", len(mock.Calls))
	}
	if mock.Calls[0].Messages[0].Content != "How do I take notes?" {
		t.Errorf("recorded request = %+v", mock.Calls[0])
	}
}

func TestLoggingProviderRecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer s.Close()
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"response":"ok"}`),
			Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), "coach-answer")
	if _, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("second Generate should fail")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	// Newest first: the failure, then the success.
	if events[0].Success {
		t.Error("failure logged as success")
	}
	if events[0].ErrorMessage == "" {
		t.Error("failure event missing error message")
	}
	if !events[1].Success {
		t.Error("success logged as failure")
	}
	if events[1].Purpose != "coach-answer" {
		t.Errorf("purpose = %q", events[1].Purpose)
	}
	if events[1].InputTokens != 10 || events[1].OutputTokens != 5 {
		t.Errorf("tokens = %d/%d", events[1].InputTokens, events[1].OutputTokens)
	}
	if events[1].ResponseBody != `{"response":"ok"}` {
		t.Errorf("response body = %q", events[1].ResponseBody)
	}
}

func TestResolveModel(t *testing.T) {
	models := map[string]string{"claude-haiku": "claude-haiku-4-5-20251001"}

	if got := resolveModel("claude-haiku", models); got != "claude-haiku-4-5-20251001" {
		t.Errorf("friendly name resolved to %q", got)
	}
	// Unknown names pass through as literal model IDs.
	if got := resolveModel("claude-3-opus-custom", models); got != "claude-3-opus-custom" {
		t.Errorf("literal id resolved to %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("anthropic provider without API key should fail validation")
	}

	cfg.Anthropic.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key, got %v", err)
	}

	cfg.Provider = "unknown-backend"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig found nothing")
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.Provider)
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Errorf("fallback provider = %q, want openai", cfg.Provider)
	}
}

func TestEstimateCost(t *testing.T) {
	got := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	want := 0.15 + 0.60
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("cost = %f, want %f", got, want)
	}

	if got := EstimateCost("made-up-model", 1000, 1000); got != 0 {
		t.Errorf("unknown model cost = %f, want 0", got)
	}
}
