package coaching

import (
	"errors"
	"fmt"
)

// ErrNoSession indicates a dispatch was attempted before a coaching
// session exists. Fatal to that single request only; retrying after the
// session initializes recovers.
var ErrNoSession = errors.New("coaching session not initialized")

// ErrBusy indicates an ask was rejected because another ask is already
// in flight for this session. Callers should not queue; the learner
// retries once the pending answer resolves.
var ErrBusy = errors.New("an answer is already in flight")

// ErrQuotaExhausted indicates the learner has no free-form credits left.
// This is an expected signal, not a failure — callers route it to the
// upsell gate instead of surfacing an error.
var ErrQuotaExhausted = errors.New("free question quota exhausted")

// AnswerFailure wraps a failure from the answering service. The learner
// never sees Err directly; the dispatcher appends a generic assistant
// turn and the credit is not consumed.
type AnswerFailure struct {
	Err error
}

func (e *AnswerFailure) Error() string {
	return fmt.Sprintf("answering service failure: %v", e.Err)
}

func (e *AnswerFailure) Unwrap() error { return e.Err }
