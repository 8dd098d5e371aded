// Package history shows past coaching sessions from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coachiz/internal/router"
	"github.com/abhisek/coachiz/internal/screen"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/abhisek/coachiz/internal/ui/layout"
	"github.com/abhisek/coachiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Events []store.SessionEventRecord
	Stats  *store.SessionStat
	Err    error
}

// HistoryScreen displays past coaching sessions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.SessionEventRecord
	stats     *store.SessionStat
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.eventRepo.QuerySessionEvents(ctx, store.QueryOpts{Limit: 100})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Only ended sessions carry counters worth showing.
		ended := events[:0:0]
		for _, e := range events {
			if e.Action == store.SessionEnded {
				ended = append(ended, e)
			}
		}

		stats, err := s.eventRepo.SessionStats(ctx)
		if err != nil {
			return historyLoadedMsg{Events: ended}
		}
		return historyLoadedMsg{Events: ended, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No coaching sessions yet. Your coach is waiting!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.stats != nil {
		summary := fmt.Sprintf("%d sessions · %d questions · %d credits used",
			s.stats.Sessions, s.stats.QuestionsAsked, s.stats.CreditsUsed)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Subtitle.Render(summary)))
		b.WriteString("\n\n")
	}

	for i, e := range s.events {
		dateStr := e.Timestamp.Format("Jan 02, 2006 15:04")
		mins := e.DurationSecs / 60
		secs := e.DurationSecs % 60

		noun := "questions"
		if e.QuestionsAsked == 1 {
			noun = "question"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s · %s · %d:%02d · %d %s",
			prefix, dateStr, e.ProgramID, e.SkillLevel, mins, secs, e.QuestionsAsked, noun)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
