package coaching

import "testing"

func TestSelectionStartsWithoutSkill(t *testing.T) {
	sel := NewSelection("study-skills")
	if sel.State() != StateNoSkill {
		t.Errorf("state = %d, want StateNoSkill", sel.State())
	}
	if sel.Session() != nil {
		t.Error("no session should exist before mode selection")
	}
}

func TestSelectionModeRequiresSkill(t *testing.T) {
	sel := NewSelection("study-skills")
	if sel.ChooseMode(ModeFreeForm) {
		t.Error("mode selection without a skill must be refused")
	}
	if sel.Session() != nil {
		t.Error("refused mode selection must not mint a session")
	}
}

func TestSelectionForwardPath(t *testing.T) {
	sel := NewSelection("study-skills")

	sel.ChooseSkill(SkillBeginner)
	if sel.State() != StateSkillSelected {
		t.Fatalf("state = %d, want StateSkillSelected", sel.State())
	}

	if !sel.ChooseMode(ModeGuided) {
		t.Fatal("mode selection should succeed after skill selection")
	}
	if sel.State() != StateModeSelected {
		t.Errorf("state = %d, want StateModeSelected", sel.State())
	}

	session := sel.Session()
	if session == nil {
		t.Fatal("entering ModeSelected must create a session")
	}
	if session.ID == "" {
		t.Error("session id must be minted")
	}
	if session.SkillLevel != SkillBeginner || session.Mode != ModeGuided {
		t.Errorf("session carries %s/%s, want beginner/guided", session.SkillLevel, session.Mode)
	}
	if session.ProgramID != "study-skills" {
		t.Errorf("session program = %q", session.ProgramID)
	}
}

func TestSelectionNewSkillClearsMode(t *testing.T) {
	sel := NewSelection("study-skills")
	sel.ChooseSkill(SkillBeginner)
	sel.ChooseMode(ModeFreeForm)

	id := sel.Session().ID
	sel.ChooseSkill(SkillAdvanced)

	if sel.State() != StateSkillSelected {
		t.Errorf("state = %d, want StateSkillSelected after re-picking skill", sel.State())
	}
	if sel.Mode() != "" {
		t.Error("mode must be cleared")
	}
	// One session per visit: the id survives the reset.
	if sel.Session() == nil || sel.Session().ID != id {
		t.Error("session id must not change within a visit")
	}
	if sel.Session().SkillLevel != SkillAdvanced {
		t.Error("session skill level should follow the new pick")
	}
}

func TestSelectionChangeModeResetsToStart(t *testing.T) {
	sel := NewSelection("study-skills")
	sel.ChooseSkill(SkillIntermediate)
	sel.ChooseMode(ModeGuided)

	id := sel.Session().ID
	sel.ChangeMode()

	if sel.State() != StateNoSkill {
		t.Errorf("state = %d, want StateNoSkill", sel.State())
	}
	if sel.Skill() != "" || sel.Mode() != "" {
		t.Error("skill and mode must be cleared")
	}
	if sel.Session().ID != id {
		t.Error("session id must survive ChangeMode")
	}
}

func TestSelectionSessionIDIsUniquePerVisit(t *testing.T) {
	mint := func() string {
		sel := NewSelection("general")
		sel.ChooseSkill(SkillBeginner)
		sel.ChooseMode(ModeFreeForm)
		return sel.Session().ID
	}
	if mint() == mint() {
		t.Error("two visits minted the same session id")
	}
}
