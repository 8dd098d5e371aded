package program

// GeneralID is the program id used when a coaching visit is not attached
// to a specific learning program.
const GeneralID = "general"

// GuidedQuestion is a pre-authored question/answer pair served without
// invoking the answering service.
type GuidedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GuidedQuestionSet is the guided-mode content of a program. Questions at
// index >= FreeAttempts are locked for learners without a subscription.
type GuidedQuestionSet struct {
	Enabled      bool             `json:"enabled"`
	FreeAttempts int              `json:"free_attempts"`
	Questions    []GuidedQuestion `json:"questions"`
}

// Program is a learning program as exposed by the platform's program
// service. The coaching subsystem only reads the fields below.
type Program struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	GuidedQuestions GuidedQuestionSet `json:"guided_questions"`
}
