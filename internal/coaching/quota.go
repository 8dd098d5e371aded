package coaching

import "sync"

// DefaultCredits is the free-form question allotment for a new visit.
const DefaultCredits = 3

// QuotaState is a snapshot of the tracker.
type QuotaState struct {
	RemainingCredits int
	Subscribed       bool
}

// QuotaTracker counts the remaining free-form credits for a visit.
// It is advisory gating to avoid pointless network calls — the answering
// service remains free to reject overage on its own. Credits only ever
// decrease, and the counter is never consulted once the learner
// subscribes.
type QuotaTracker struct {
	mu          sync.Mutex
	remaining   int
	subscribed  bool
	onSubscribe []func()
}

// NewQuotaTracker creates a tracker with the given starting credits.
func NewQuotaTracker(credits int) *QuotaTracker {
	if credits < 0 {
		credits = 0
	}
	return &QuotaTracker{remaining: credits}
}

// HasCredits reports whether a free-form dispatch is allowed.
func (q *QuotaTracker) HasCredits() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.subscribed || q.remaining > 0
}

// Consume decrements the credit count, floored at 0. Consuming at 0 is
// a no-op, and subscribers never consume.
func (q *QuotaTracker) Consume() QuotaState {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.subscribed && q.remaining > 0 {
		q.remaining--
	}
	return QuotaState{RemainingCredits: q.remaining, Subscribed: q.subscribed}
}

// Subscribe marks the visit as subscribed and fires any registered
// reset hooks so non-subscriber attempt counters re-open.
func (q *QuotaTracker) Subscribe() {
	q.mu.Lock()
	q.subscribed = true
	hooks := q.onSubscribe
	q.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// OnSubscribe registers a hook invoked when the learner subscribes.
func (q *QuotaTracker) OnSubscribe(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onSubscribe = append(q.onSubscribe, fn)
}

// State returns a snapshot of the tracker.
func (q *QuotaTracker) State() QuotaState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuotaState{RemainingCredits: q.remaining, Subscribed: q.subscribed}
}
