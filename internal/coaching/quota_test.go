package coaching

import "testing"

func TestQuotaConsumeDecrements(t *testing.T) {
	q := NewQuotaTracker(3)

	for want := 2; want >= 0; want-- {
		st := q.Consume()
		if st.RemainingCredits != want {
			t.Errorf("remaining = %d, want %d", st.RemainingCredits, want)
		}
	}
}

func TestQuotaConsumeFloorsAtZero(t *testing.T) {
	q := NewQuotaTracker(1)
	q.Consume()

	// Consuming at 0 is a no-op, repeatedly.
	for i := 0; i < 3; i++ {
		st := q.Consume()
		if st.RemainingCredits != 0 {
			t.Fatalf("remaining = %d, want 0", st.RemainingCredits)
		}
	}
}

func TestQuotaHasCredits(t *testing.T) {
	q := NewQuotaTracker(1)
	if !q.HasCredits() {
		t.Error("expected credits at start")
	}
	q.Consume()
	if q.HasCredits() {
		t.Error("expected no credits after consuming the allotment")
	}
}

func TestQuotaSubscriberBypass(t *testing.T) {
	q := NewQuotaTracker(0)
	if q.HasCredits() {
		t.Error("expected no credits before subscribing")
	}

	q.Subscribe()

	if !q.HasCredits() {
		t.Error("subscriber should always have credits")
	}
	st := q.Consume()
	if st.RemainingCredits != 0 {
		t.Errorf("subscriber consume changed credits: %d", st.RemainingCredits)
	}
	if !st.Subscribed {
		t.Error("state should report subscribed")
	}
}

func TestQuotaSubscribeFiresHooks(t *testing.T) {
	q := NewQuotaTracker(DefaultCredits)

	fired := 0
	q.OnSubscribe(func() { fired++ })
	q.OnSubscribe(func() { fired++ })

	q.Subscribe()

	if fired != 2 {
		t.Errorf("hooks fired = %d, want 2", fired)
	}
}

func TestQuotaNegativeAllotmentClamped(t *testing.T) {
	q := NewQuotaTracker(-5)
	if q.State().RemainingCredits != 0 {
		t.Errorf("remaining = %d, want 0", q.State().RemainingCredits)
	}
}
