package coach

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/program"
)

// scriptedService returns canned answers in order, then errors.
type scriptedService struct {
	answers []coaching.AssistantAnswer
	err     error
	calls   int
}

func (s *scriptedService) Ask(_ context.Context, _ coaching.AskRequest) (*coaching.AssistantAnswer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.answers) == 0 {
		return &coaching.AssistantAnswer{Response: "canned answer"}, nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return &a, nil
}

func testProgram(t *testing.T) *program.Program {
	t.Helper()
	p, err := program.NewCatalog().Program("study-skills")
	if err != nil {
		t.Fatalf("seed program: %v", err)
	}
	return p
}

func press(s *CoachScreen, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(key)
	return cmd
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }

// selectFreeForm walks the selection flow: first skill, free-form mode.
func selectFreeForm(t *testing.T, s *CoachScreen) {
	t.Helper()
	press(s, enter()) // beginner
	if s.selection.State() != coaching.StateSkillSelected {
		t.Fatalf("state after skill = %v", s.selection.State())
	}
	press(s, enter()) // free-form is first
	if s.selection.State() != coaching.StateModeSelected {
		t.Fatalf("state after mode = %v", s.selection.State())
	}
}

func TestSelectionFlowMintsSession(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)

	if s.selection.Session() != nil {
		t.Error("session should not exist before mode selection")
	}

	selectFreeForm(t, s)

	session := s.selection.Session()
	if session == nil {
		t.Fatal("session should be minted after mode selection")
	}
	if session.SkillLevel != coaching.SkillBeginner || session.Mode != coaching.ModeFreeForm {
		t.Errorf("session = %+v", session)
	}
}

func TestChangeModeKeepsSessionID(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)
	selectFreeForm(t, s)
	firstID := s.selection.Session().ID

	press(s, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if s.selection.State() != coaching.StateNoSkill {
		t.Fatalf("state after change mode = %v", s.selection.State())
	}

	// Re-select: advanced skill, guided mode this time.
	press(s, down())
	press(s, down())
	press(s, enter())
	press(s, down())
	press(s, enter())

	session := s.selection.Session()
	if session.ID != firstID {
		t.Errorf("session id changed across mode switch: %s != %s", session.ID, firstID)
	}
	if session.Mode != coaching.ModeGuided {
		t.Errorf("mode = %v", session.Mode)
	}
}

func TestAskAppendsTurnsAndConsumes(t *testing.T) {
	s := New(testProgram(t), &scriptedService{
		answers: []coaching.AssistantAnswer{{Response: "Plan short sessions."}},
	}, nil, false)
	selectFreeForm(t, s)

	s.input.Model.SetValue("How long should I study?")
	cmd := press(s, enter())
	if cmd == nil {
		t.Fatal("submit should return a dispatch command")
	}
	if !s.waiting {
		t.Error("screen should be waiting during dispatch")
	}

	msg := cmd()
	answerMsg, ok := msg.(answerReceivedMsg)
	if !ok {
		t.Fatalf("got %T, want answerReceivedMsg", msg)
	}
	s.Update(answerMsg)

	if s.waiting {
		t.Error("waiting should clear after answer")
	}
	turns := s.conv.All()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Text != "How long should I study?" || turns[1].Text != "Plan short sessions." {
		t.Errorf("turns = %+v", turns)
	}
	if got := s.quota.State().RemainingCredits; got != coaching.DefaultCredits-1 {
		t.Errorf("credits = %d", got)
	}
}

func TestEmptyQuestionNotSubmitted(t *testing.T) {
	svc := &scriptedService{}
	s := New(testProgram(t), svc, nil, false)
	selectFreeForm(t, s)

	if cmd := press(s, enter()); cmd != nil {
		t.Error("empty input should not dispatch")
	}
	if svc.calls != 0 {
		t.Errorf("service called %d times", svc.calls)
	}
}

func TestExhaustedQuotaShowsUpsell(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)
	selectFreeForm(t, s)

	for i := 0; i < coaching.DefaultCredits; i++ {
		s.quota.Consume()
	}

	s.input.Model.SetValue("One more?")
	press(s, enter())

	if !s.showingUpsell {
		t.Fatal("upsell should show when quota is exhausted")
	}
	if s.waiting {
		t.Error("no dispatch should start")
	}

	// Declining dismisses and leaves the quota alone.
	press(s, tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.showingUpsell {
		t.Error("upsell should dismiss on N")
	}
	if s.quota.State().Subscribed {
		t.Error("declining must not subscribe")
	}
}

func TestAcceptUpsellUnblocksAsk(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)
	selectFreeForm(t, s)

	for i := 0; i < coaching.DefaultCredits; i++ {
		s.quota.Consume()
	}
	s.input.Model.SetValue("One more?")
	press(s, enter())
	press(s, tea.KeyPressMsg{Code: 'y', Text: "y"})

	if !s.quota.State().Subscribed {
		t.Fatal("accepting should subscribe")
	}

	s.input.Model.SetValue("One more?")
	cmd := press(s, enter())
	if cmd == nil {
		t.Fatal("subscriber ask should dispatch")
	}
}

func TestGuidedLockedQuestionTriggersUpsell(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)

	press(s, enter()) // skill
	press(s, down())
	press(s, enter()) // guided mode

	// study-skills has FreeAttempts 3: move to the fourth question.
	for i := 0; i < 3; i++ {
		press(s, down())
	}
	press(s, enter())

	if !s.showingUpsell {
		t.Fatal("locked guided question should trigger upsell")
	}
	if s.conv.Len() != 0 {
		t.Error("no answer should be revealed before unlock")
	}

	// Accepting reveals the pending question immediately.
	press(s, tea.KeyPressMsg{Code: 'y', Text: "y"})
	turns := s.conv.All()
	if len(turns) != 2 {
		t.Fatalf("got %d turns after unlock, want 2", len(turns))
	}
	if turns[0].Text != "Should I study with music on?" {
		t.Errorf("revealed question = %q", turns[0].Text)
	}
}

func TestGuidedFreeQuestionReveals(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)

	press(s, enter())
	press(s, down())
	press(s, enter())
	press(s, enter()) // first question, unlocked

	turns := s.conv.All()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Sender != coaching.SenderUser || turns[1].Sender != coaching.SenderAssistant {
		t.Errorf("turn senders = %v, %v", turns[0].Sender, turns[1].Sender)
	}
}

func TestRemoveLastQuestionDisplayOnly(t *testing.T) {
	s := New(testProgram(t), &scriptedService{
		answers: []coaching.AssistantAnswer{{Response: "Plan short sessions."}},
	}, nil, false)
	selectFreeForm(t, s)

	s.input.Model.SetValue("How long should I study?")
	cmd := press(s, enter())
	msg := cmd()
	s.Update(msg)

	press(s, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})

	turns := s.conv.All()
	if len(turns) != 1 || turns[0].Sender != coaching.SenderAssistant {
		t.Fatalf("turns after removal = %+v", turns)
	}
	// The credit stays spent.
	if got := s.quota.State().RemainingCredits; got != coaching.DefaultCredits-1 {
		t.Errorf("credits = %d", got)
	}
}

func TestModeSwitchBlockedWhileWaiting(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, false)
	selectFreeForm(t, s)
	s.waiting = true

	press(s, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if s.selection.State() != coaching.StateModeSelected {
		t.Error("mode switch should be ignored while waiting")
	}
}

func TestSubscriberSeesNoLocks(t *testing.T) {
	s := New(testProgram(t), &scriptedService{}, nil, true)

	press(s, enter())
	press(s, down())
	press(s, enter())

	for _, item := range s.guidedMenu.Items {
		if item.Locked {
			t.Errorf("subscriber should see no locked items: %q", item.Label)
		}
	}
}
