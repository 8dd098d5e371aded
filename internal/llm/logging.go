package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/coachiz/internal/store"
)

// LoggingProvider is a decorator that records every Generate call as an
// LLM request event. A logging failure never fails the request itself.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps a Provider so its calls are appended to the event
// log. providerName is the backend label ("anthropic", "openai", ...).
func WithLogging(p Provider, providerName string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		// Truncated and invalid responses still carry content worth keeping.
		var maxTok *ErrMaxTokensExceeded
		var invResp *ErrInvalidResponse
		switch {
		case errors.As(err, &maxTok):
			data.ResponseBody = string(maxTok.Content)
		case errors.As(err, &invResp):
			data.ResponseBody = string(invResp.Content)
		}
	} else {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
		data.Model = resp.Model
	}

	// Log even when the request's context was canceled.
	logCtx := context.WithoutCancel(ctx)
	if logErr := l.events.AppendLLMRequest(logCtx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log llm event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a Request as JSON for the event log.
func serializeRequest(req Request) string {
	type loggedMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type loggedRequest struct {
		System      string          `json:"system,omitempty"`
		Messages    []loggedMessage `json:"messages"`
		Schema      string          `json:"schema,omitempty"`
		MaxTokens   int             `json:"max_tokens"`
		Temperature float64         `json:"temperature,omitempty"`
	}

	lr := loggedRequest{
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		lr.Messages = append(lr.Messages, loggedMessage{Role: string(m.Role), Content: m.Content})
	}
	if req.Schema != nil {
		lr.Schema = req.Schema.Name
	}

	b, err := json.Marshal(lr)
	if err != nil {
		return ""
	}
	return string(b)
}
