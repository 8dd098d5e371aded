package llm

import (
	"context"
	"encoding/json"
)

// Provider is the transport abstraction under the answering service.
// Coachiz talks to whichever LLM backs the coach through this interface;
// everything above it (quota, conversation, upsell) is provider-agnostic.
type Provider interface {
	// Generate sends one request and returns the model's output. When
	// the request carries a Schema, the provider uses its native
	// structured-output mechanism and the Content is validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the coach's role and constraints.
	System string

	// Messages is the message list for this request. Coachiz requests
	// are stateless apart from the session id, so this is normally a
	// single user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform
	// to. When nil, Content is the raw text wrapped as json.RawMessage.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0, default 0.0).
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "coach-answer".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, otherwise the raw text as json.RawMessage.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
