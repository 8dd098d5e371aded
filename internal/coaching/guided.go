package coaching

import "github.com/abhisek/coachiz/internal/program"

// GuidedFallback is shown when a clicked question has no stored answer.
// Defensive: the UI only renders questions that exist in the set, so a
// miss means stale content rather than a learner mistake.
const GuidedFallback = "There's no pre-made answer for that one yet. Switch to Ask the Coach and ask it directly."

// GuidedIndex is a read-only lookup over a program's guided Q&A pairs.
// Unlock is purely ordinal: entries at index >= FreeAttempts are locked
// for non-subscribers regardless of content.
type GuidedIndex struct {
	set program.GuidedQuestionSet
}

// NewGuidedIndex wraps the question set fetched for the visit's program.
// The set is immutable for the session's duration.
func NewGuidedIndex(set program.GuidedQuestionSet) *GuidedIndex {
	return &GuidedIndex{set: set}
}

// Enabled reports whether the program offers guided questions at all.
func (g *GuidedIndex) Enabled() bool { return g.set.Enabled }

// Len returns the number of guided questions.
func (g *GuidedIndex) Len() int { return len(g.set.Questions) }

// FreeAttempts returns the unlock threshold.
func (g *GuidedIndex) FreeAttempts() int { return g.set.FreeAttempts }

// Question returns the question text at index i.
func (g *GuidedIndex) Question(i int) string {
	return g.set.Questions[i].Question
}

// Locked reports whether the entry at index i requires a subscription.
func (g *GuidedIndex) Locked(i int, subscribed bool) bool {
	return !subscribed && i >= g.set.FreeAttempts
}

// Resolve looks up the stored answer for questionText by exact string
// match — no fuzzy or partial matching. The second return is false when
// no entry matches; callers show GuidedFallback in that case.
// Access control happens one layer up: the upsell gate intercepts a
// locked click before resolution is ever attempted.
func (g *GuidedIndex) Resolve(questionText string) (string, bool) {
	for _, q := range g.set.Questions {
		if q.Question == questionText {
			return q.Answer, true
		}
	}
	return "", false
}
