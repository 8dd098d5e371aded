package coaching

import (
	"testing"

	"github.com/abhisek/coachiz/internal/program"
)

func testSet() program.GuidedQuestionSet {
	return program.GuidedQuestionSet{
		Enabled:      true,
		FreeAttempts: 3,
		Questions: []program.GuidedQuestion{
			{Question: "Q0?", Answer: "A0"},
			{Question: "Q1?", Answer: "A1"},
			{Question: "Q2?", Answer: "A2"},
			{Question: "Q3?", Answer: "A3"},
			{Question: "Q4?", Answer: "A4"},
		},
	}
}

func TestGuidedResolveExactMatch(t *testing.T) {
	idx := NewGuidedIndex(testSet())

	answer, ok := idx.Resolve("Q2?")
	if !ok {
		t.Fatal("expected a match")
	}
	if answer != "A2" {
		t.Errorf("answer = %q, want A2", answer)
	}
}

func TestGuidedResolveNoFuzzyMatch(t *testing.T) {
	idx := NewGuidedIndex(testSet())

	// Near-misses must not resolve: matching is byte-equality only.
	for _, q := range []string{"q2?", "Q2", " Q2?", "Q2? "} {
		if _, ok := idx.Resolve(q); ok {
			t.Errorf("Resolve(%q) matched, want NotFound", q)
		}
	}
}

func TestGuidedResolveNotFound(t *testing.T) {
	idx := NewGuidedIndex(testSet())
	if _, ok := idx.Resolve("never stored"); ok {
		t.Error("expected NotFound")
	}
}

func TestGuidedOrdinalLocking(t *testing.T) {
	idx := NewGuidedIndex(testSet())

	// freeAttempts=3: indexes 0-2 free, 3-4 locked for non-subscribers.
	for i := 0; i < idx.Len(); i++ {
		wantLocked := i >= 3
		if got := idx.Locked(i, false); got != wantLocked {
			t.Errorf("Locked(%d, unsubscribed) = %v, want %v", i, got, wantLocked)
		}
		if idx.Locked(i, true) {
			t.Errorf("Locked(%d, subscribed) = true, want false", i)
		}
	}
}
