package coaching

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel is the learner's self-reported level for this visit.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// AllSkillLevels returns the skill levels in display order.
func AllSkillLevels() []SkillLevel {
	return []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}
}

// DisplayName returns a human-readable label for a skill level.
func (l SkillLevel) DisplayName() string {
	switch l {
	case SkillBeginner:
		return "Beginner"
	case SkillIntermediate:
		return "Intermediate"
	case SkillAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// Mode selects between the two answer-resolution strategies.
type Mode string

const (
	ModeGuided   Mode = "guided"
	ModeFreeForm Mode = "free-form"
)

// DisplayName returns a human-readable label for a mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeGuided:
		return "Guided Questions"
	case ModeFreeForm:
		return "Ask the Coach"
	default:
		return string(m)
	}
}

// Session identifies one coaching visit. The ID is minted client-side,
// exactly once per visit, and correlates every free-form request to one
// logical conversation on the answering service. Sessions are never
// reused across visits and are not persisted.
type Session struct {
	ID         string
	ProgramID  string
	SkillLevel SkillLevel
	Mode       Mode
	StartedAt  time.Time
}

// NewSession mints a session with a fresh UUID.
func NewSession(programID string, level SkillLevel, mode Mode) *Session {
	return &Session{
		ID:         uuid.NewString(),
		ProgramID:  programID,
		SkillLevel: level,
		Mode:       mode,
		StartedAt:  time.Now(),
	}
}
