package coaching

import (
	"context"
	"sync"
)

// FailureMessage is the assistant turn appended when the answering
// service fails. The raw error never reaches the learner.
const FailureMessage = "Sorry, I couldn't reach your coach just now. Your credit was not used — please try again in a moment."

// AskRequest is the free-form request sent to the answering service.
type AskRequest struct {
	Question   string
	SkillLevel SkillLevel
	SessionID  string
	ProgramID  string
}

// AssistantAnswer is a successful answering-service response.
type AssistantAnswer struct {
	Response string
	Sources  []Citation
	Metadata map[string]any
}

// AnswerService is the external AI answering service, specified only at
// this interface. A returned error covers both transport failures and
// service-reported failures; callers handle exactly the two branches.
type AnswerService interface {
	Ask(ctx context.Context, req AskRequest) (*AssistantAnswer, error)
}

// Dispatcher orchestrates one free-form question end to end: quota
// check, request construction, the answering-service call, and the
// conversation/quota updates its outcome demands.
//
// Only one ask may be in flight at a time per session. A second call
// while one is pending is rejected synchronously with ErrBusy rather
// than queued — the invariant is enforced here, not by UI disabling.
type Dispatcher struct {
	service   AnswerService
	selection *Selection
	quota     *QuotaTracker
	gate      *UpsellGate
	log       *Conversation

	mu       sync.Mutex
	inFlight bool
}

// NewDispatcher wires the dispatcher to the visit's collaborators.
func NewDispatcher(service AnswerService, sel *Selection, quota *QuotaTracker, gate *UpsellGate, log *Conversation) *Dispatcher {
	return &Dispatcher{
		service:   service,
		selection: sel,
		quota:     quota,
		gate:      gate,
		log:       log,
	}
}

// InFlight reports whether an ask is currently outstanding. The UI uses
// this to disable the send action and mode switching mid-flight.
func (d *Dispatcher) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

// Ask runs a single free-form question. The user turn is appended
// optimistically before the network call so the question shows
// immediately; a credit is consumed only on verified success. On
// failure the learner gets one assistant turn with a generic message
// and keeps the credit.
//
// Returns ErrNoSession, ErrQuotaExhausted, or ErrBusy without touching
// the network; an *AnswerFailure after a failed call.
func (d *Dispatcher) Ask(ctx context.Context, question string) (*AssistantAnswer, error) {
	session := d.selection.Session()
	if session == nil {
		return nil, ErrNoSession
	}
	if d.gate.InterceptAsk() {
		return nil, ErrQuotaExhausted
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return nil, ErrBusy
	}
	d.inFlight = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	d.log.Append(Turn{Sender: SenderUser, Text: question})

	req := AskRequest{
		Question:   question,
		SkillLevel: session.SkillLevel,
		SessionID:  session.ID,
		ProgramID:  session.ProgramID,
	}

	answer, err := d.service.Ask(ctx, req)
	if err != nil {
		d.log.Append(Turn{Sender: SenderAssistant, Text: FailureMessage})
		return nil, &AnswerFailure{Err: err}
	}

	d.log.Append(Turn{
		Sender:   SenderAssistant,
		Text:     answer.Response,
		Sources:  answer.Sources,
		Metadata: answer.Metadata,
	})
	d.quota.Consume()

	return answer, nil
}
