package coach

import "github.com/abhisek/coachiz/internal/coaching"

// answerReceivedMsg is sent when a free-form dispatch completes, on
// either branch. The conversation log has already been updated by the
// dispatcher; the screen only needs to leave the waiting state.
type answerReceivedMsg struct {
	Answer *coaching.AssistantAnswer
	Err    error
}

// eventLoggedMsg is sent when a background event append finishes.
type eventLoggedMsg struct {
	Err error
}
