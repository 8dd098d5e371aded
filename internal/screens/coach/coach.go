// Package coach implements the coaching session screen: skill and mode
// selection, the guided question list, and the free-form chat.
package coach

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/program"
	"github.com/abhisek/coachiz/internal/screen"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/abhisek/coachiz/internal/ui/components"
	"github.com/abhisek/coachiz/internal/ui/layout"
)

// CoachScreen drives one coaching visit to a program.
type CoachScreen struct {
	prog    *program.Program
	events  store.EventRepo
	service coaching.AnswerService

	selection  *coaching.Selection
	quota      *coaching.QuotaTracker
	conv       *coaching.Conversation
	guided     *coaching.GuidedIndex
	gate       *coaching.UpsellGate
	dispatcher *coaching.Dispatcher

	skillMenu  components.Menu
	modeMenu   components.Menu
	guidedMenu components.Menu
	input      components.TextInput

	waiting        bool
	showingUpsell  bool
	upsellTrigger  string
	pendingGuided  int // index awaiting unlock, -1 when none
	questionsAsked int
	startLogged    bool
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)
var _ screen.Closer = (*CoachScreen)(nil)

// New creates a coach screen for a visit to prog. subscribed seeds the
// quota tracker from the learner's plan; events may be nil in tests.
func New(prog *program.Program, service coaching.AnswerService, events store.EventRepo, subscribed bool) *CoachScreen {
	quota := coaching.NewQuotaTracker(coaching.DefaultCredits)
	if subscribed {
		quota.Subscribe()
	}

	var guided *coaching.GuidedIndex
	if prog.GuidedQuestions.Enabled {
		guided = coaching.NewGuidedIndex(prog.GuidedQuestions)
	}

	selection := coaching.NewSelection(prog.ID)
	conv := coaching.NewConversation()
	gate := coaching.NewUpsellGate(quota, guided)

	s := &CoachScreen{
		prog:          prog,
		events:        events,
		service:       service,
		selection:     selection,
		quota:         quota,
		conv:          conv,
		guided:        guided,
		gate:          gate,
		dispatcher:    coaching.NewDispatcher(service, selection, quota, gate, conv),
		input:         components.NewTextInput("Ask your coach anything...", 500),
		pendingGuided: -1,
	}
	s.skillMenu = s.buildSkillMenu()
	return s
}

func (s *CoachScreen) Init() tea.Cmd {
	return nil
}

func (s *CoachScreen) Title() string {
	return s.prog.Name
}

// Quota exposes the tracker so the app header can show live credits.
func (s *CoachScreen) Quota() *coaching.QuotaTracker {
	return s.quota
}

// OnClose records the session end event when the screen is popped.
func (s *CoachScreen) OnClose() {
	session := s.selection.Session()
	if session == nil || s.events == nil {
		return
	}

	state := s.quota.State()
	creditsUsed := 0
	if !state.Subscribed {
		creditsUsed = coaching.DefaultCredits - state.RemainingCredits
	}

	_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:      session.ID,
		Action:         store.SessionEnded,
		ProgramID:      session.ProgramID,
		SkillLevel:     string(session.SkillLevel),
		Mode:           string(session.Mode),
		QuestionsAsked: s.questionsAsked,
		CreditsUsed:    creditsUsed,
		DurationSecs:   int(time.Since(session.StartedAt).Seconds()),
	})
}

func (s *CoachScreen) KeyHints() []layout.KeyHint {
	if s.showingUpsell {
		return []layout.KeyHint{
			{Key: "Y", Description: "Upgrade"},
			{Key: "N", Description: "Not now"},
		}
	}
	switch s.selection.State() {
	case coaching.StateNoSkill, coaching.StateSkillSelected:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		hints := []layout.KeyHint{}
		if s.selection.Mode() == coaching.ModeFreeForm {
			hints = append(hints,
				layout.KeyHint{Key: "Enter", Description: "Send"},
				layout.KeyHint{Key: "Ctrl+X", Description: "Remove last question"})
		} else {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Navigate"},
				layout.KeyHint{Key: "Enter", Description: "Reveal"})
		}
		if !s.dispatcher.InFlight() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Change mode"})
		}
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "End session"})
		return hints
	}
}

func (s *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerReceivedMsg:
		return s.handleAnswer(msg)

	case eventLoggedMsg:
		// Event logging is best effort; nothing to do either way.
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.chatInputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CoachScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.showingUpsell {
		return s.handleUpsellKey(msg)
	}

	switch s.selection.State() {
	case coaching.StateNoSkill:
		var cmd tea.Cmd
		s.skillMenu, cmd = s.skillMenu.Update(msg)
		return s, cmd

	case coaching.StateSkillSelected:
		var cmd tea.Cmd
		s.modeMenu, cmd = s.modeMenu.Update(msg)
		return s, cmd

	default:
		if msg.String() == "ctrl+t" {
			// Mode switching is unavailable while an answer is pending.
			if !s.dispatcher.InFlight() && !s.waiting {
				s.changeMode()
			}
			return s, nil
		}
		if s.selection.Mode() == coaching.ModeGuided {
			var cmd tea.Cmd
			s.guidedMenu, cmd = s.guidedMenu.Update(msg)
			return s, cmd
		}
		return s.handleChatKey(msg)
	}
}

func (s *CoachScreen) handleChatKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s, s.submitQuestion()
	case "ctrl+x":
		if !s.waiting {
			s.removeLastQuestion()
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// removeLastQuestion drops the learner's most recent question from the
// display log. Display only: the credit it consumed stays spent.
func (s *CoachScreen) removeLastQuestion() {
	turns := s.conv.All()
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Sender == coaching.SenderUser {
			_ = s.conv.RemoveUserTurn(i)
			return
		}
	}
}

func (s *CoachScreen) handleUpsellKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		s.gate.AcceptOffer()
		s.showingUpsell = false
		cmd := s.logUpgrade(true)

		// Unlock flows straight into the action that was intercepted.
		if s.pendingGuided >= 0 {
			idx := s.pendingGuided
			s.pendingGuided = -1
			s.revealGuided(idx)
			s.guidedMenu = s.buildGuidedMenu()
		}
		return s, cmd

	case "n", "N", "esc":
		s.showingUpsell = false
		s.pendingGuided = -1
		return s, s.logUpgrade(false)
	}
	return s, nil
}

func (s *CoachScreen) handleAnswer(msg answerReceivedMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	s.input.SetDisabled(false)

	if msg.Err == nil {
		s.questionsAsked++
		return s, nil
	}

	// The conversation already shows the failure turn for service
	// errors. Quota exhaustion means the gate fired between keypress
	// and dispatch; surface the offer.
	if errors.Is(msg.Err, coaching.ErrQuotaExhausted) {
		return s, s.showUpsell(store.TriggerQuota)
	}
	return s, nil
}

// submitQuestion validates and dispatches the typed question.
func (s *CoachScreen) submitQuestion() tea.Cmd {
	question := s.input.Value()
	if question == "" || s.waiting {
		return nil
	}

	if s.gate.InterceptAsk() {
		return s.showUpsell(store.TriggerQuota)
	}

	s.waiting = true
	s.input.Reset()
	s.input.SetDisabled(true)

	return func() tea.Msg {
		answer, err := s.dispatcher.Ask(context.Background(), question)
		return answerReceivedMsg{Answer: answer, Err: err}
	}
}

// revealGuided appends the chosen guided pair to the conversation.
func (s *CoachScreen) revealGuided(idx int) {
	question := s.guided.Question(idx)
	answer, found := s.guided.Resolve(question)
	if !found {
		answer = coaching.GuidedFallback
	}

	s.conv.Append(coaching.Turn{Sender: coaching.SenderUser, Text: question})
	s.conv.Append(coaching.Turn{Sender: coaching.SenderAssistant, Text: answer})
}

func (s *CoachScreen) changeMode() {
	s.selection.ChangeMode()
	s.skillMenu = s.buildSkillMenu()
}

func (s *CoachScreen) showUpsell(trigger string) tea.Cmd {
	s.showingUpsell = true
	s.upsellTrigger = trigger
	return nil
}

// logUpgrade records the outcome of an upgrade prompt.
func (s *CoachScreen) logUpgrade(accepted bool) tea.Cmd {
	if s.events == nil {
		return nil
	}
	sessionID := ""
	if session := s.selection.Session(); session != nil {
		sessionID = session.ID
	}
	trigger := s.upsellTrigger

	return func() tea.Msg {
		err := s.events.AppendUpgrade(context.Background(), store.UpgradeEventData{
			SessionID: sessionID,
			Trigger:   trigger,
			Accepted:  accepted,
		})
		return eventLoggedMsg{Err: err}
	}
}

// logSessionStart records the session start once, after the first mode
// selection mints the session.
func (s *CoachScreen) logSessionStart() tea.Cmd {
	session := s.selection.Session()
	if s.startLogged || session == nil || s.events == nil {
		return nil
	}
	s.startLogged = true

	data := store.SessionEventData{
		SessionID:  session.ID,
		Action:     store.SessionStarted,
		ProgramID:  session.ProgramID,
		SkillLevel: string(session.SkillLevel),
		Mode:       string(session.Mode),
	}
	return func() tea.Msg {
		return eventLoggedMsg{Err: s.events.AppendSessionEvent(context.Background(), data)}
	}
}

func (s *CoachScreen) chatInputActive() bool {
	return s.selection.State() == coaching.StateModeSelected &&
		s.selection.Mode() == coaching.ModeFreeForm &&
		!s.showingUpsell
}

func (s *CoachScreen) buildSkillMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(coaching.AllSkillLevels()))
	for _, level := range coaching.AllSkillLevels() {
		level := level
		items = append(items, components.MenuItem{
			Label: level.DisplayName(),
			Action: func() tea.Cmd {
				s.selection.ChooseSkill(level)
				s.modeMenu = s.buildModeMenu()
				return nil
			},
		})
	}
	return components.NewMenu(items)
}

func (s *CoachScreen) buildModeMenu() components.Menu {
	chooseMode := func(mode coaching.Mode) tea.Cmd {
		if !s.selection.ChooseMode(mode) {
			return nil
		}
		if mode == coaching.ModeGuided {
			s.guidedMenu = s.buildGuidedMenu()
		}
		return s.logSessionStart()
	}

	items := []components.MenuItem{
		{
			Label:  coaching.ModeFreeForm.DisplayName(),
			Detail: "Type any question and get a personal answer",
			Action: func() tea.Cmd { return chooseMode(coaching.ModeFreeForm) },
		},
	}

	guidedItem := components.MenuItem{
		Label:  coaching.ModeGuided.DisplayName(),
		Detail: "Browse common questions with instant answers",
		Action: func() tea.Cmd { return chooseMode(coaching.ModeGuided) },
	}
	if s.guided == nil {
		guidedItem.Detail = "Not available for this program"
		guidedItem.Disabled = true
	}
	items = append(items, guidedItem)

	return components.NewMenu(items)
}

func (s *CoachScreen) buildGuidedMenu() components.Menu {
	subscribed := s.quota.State().Subscribed

	items := make([]components.MenuItem, 0, s.guided.Len())
	for i := 0; i < s.guided.Len(); i++ {
		i := i
		items = append(items, components.MenuItem{
			Label:  s.guided.Question(i),
			Locked: s.guided.Locked(i, subscribed),
			Action: func() tea.Cmd {
				if s.gate.InterceptGuided(i) {
					s.pendingGuided = i
					return s.showUpsell(store.TriggerGuided)
				}
				s.revealGuided(i)
				return nil
			},
		})
	}
	return components.NewMenu(items)
}
