package coaching

// SelectionState is the gate in front of both answer paths: a learner
// must pick a skill level, then a mode, before guided lookup or
// free-form dispatch becomes reachable.
type SelectionState int

const (
	StateNoSkill SelectionState = iota
	StateSkillSelected
	StateModeSelected
)

// Selection is the mode/skill selection state machine for one visit.
// Transitions only move forward from learner input, with two resets:
// choosing a new skill while a mode is active drops back to
// SkillSelected, and ChangeMode drops all the way back to NoSkill.
type Selection struct {
	programID string
	state     SelectionState
	skill     SkillLevel
	mode      Mode
	session   *Session
}

// NewSelection creates the selection machine for a visit to programID.
func NewSelection(programID string) *Selection {
	return &Selection{programID: programID, state: StateNoSkill}
}

func (s *Selection) State() SelectionState { return s.state }
func (s *Selection) Skill() SkillLevel     { return s.skill }
func (s *Selection) Mode() Mode            { return s.mode }
func (s *Selection) ProgramID() string     { return s.programID }

// Session returns the visit's coaching session, or nil before any mode
// has been selected.
func (s *Selection) Session() *Session { return s.session }

// ChooseSkill records the learner's skill level. If a mode is active the
// machine resets to SkillSelected with the mode cleared.
func (s *Selection) ChooseSkill(level SkillLevel) {
	s.skill = level
	s.mode = ""
	s.state = StateSkillSelected
	if s.session != nil {
		s.session.SkillLevel = level
	}
}

// ChooseMode activates a mode. It is a no-op returning false when no
// skill level has been picked yet — the UI must not expose the mode
// control in that state, so this is a defensive guard rather than an
// error path. On first entry into ModeSelected the visit's session is
// minted; later mode changes keep the same session id.
func (s *Selection) ChooseMode(mode Mode) bool {
	if s.state == StateNoSkill {
		return false
	}
	s.mode = mode
	s.state = StateModeSelected
	if s.session == nil {
		s.session = NewSession(s.programID, s.skill, mode)
	} else {
		s.session.Mode = mode
	}
	return true
}

// ChangeMode is the explicit "start over" action: it resets the machine
// to NoSkill. The session survives — the visit hasn't ended, so the
// session id must not change.
func (s *Selection) ChangeMode() {
	s.state = StateNoSkill
	s.skill = ""
	s.mode = ""
}
