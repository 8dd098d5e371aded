package coaching

import "testing"

func TestGateInterceptsAskWhenExhausted(t *testing.T) {
	quota := NewQuotaTracker(1)
	gate := NewUpsellGate(quota, nil)

	if gate.InterceptAsk() {
		t.Error("gate should not intercept while credits remain")
	}
	quota.Consume()
	if !gate.InterceptAsk() {
		t.Error("gate should intercept at 0 credits")
	}
}

func TestGateNeverInterceptsSubscriberAsk(t *testing.T) {
	quota := NewQuotaTracker(0)
	gate := NewUpsellGate(quota, nil)

	gate.AcceptOffer()

	if gate.InterceptAsk() {
		t.Error("subscriber ask must not be intercepted")
	}
}

func TestGateInterceptsLockedGuidedClick(t *testing.T) {
	quota := NewQuotaTracker(DefaultCredits)
	idx := NewGuidedIndex(testSet()) // 5 questions, freeAttempts=3
	gate := NewUpsellGate(quota, idx)

	if gate.InterceptGuided(2) {
		t.Error("free question intercepted")
	}
	if !gate.InterceptGuided(3) {
		t.Error("locked question not intercepted")
	}

	// After accepting the offer, the same click resolves normally.
	gate.AcceptOffer()
	if gate.InterceptGuided(3) {
		t.Error("subscriber click intercepted")
	}
}

func TestGateNoGuidedIndex(t *testing.T) {
	gate := NewUpsellGate(NewQuotaTracker(0), nil)
	if gate.InterceptGuided(0) {
		t.Error("gate without a guided index must not intercept guided clicks")
	}
}
