// Package app wires the TUI together and runs the Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/program"
	"github.com/abhisek/coachiz/internal/router"
	"github.com/abhisek/coachiz/internal/screen"
	"github.com/abhisek/coachiz/internal/screens/home"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/abhisek/coachiz/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Catalog    *program.Catalog
	Service    coaching.AnswerService
	EventRepo  store.EventRepo
	Subscribed bool
}

// quotaProvider is implemented by screens that track a live credit
// count for the header.
type quotaProvider interface {
	Quota() *coaching.QuotaTracker
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Catalog, opts.Service, opts.EventRepo, opts.Subscribed)
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Screens below the home level may need to log cleanup
				// events before they disappear.
				if closer, ok := m.router.Active().(screen.Closer); ok {
					closer.OnClose()
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerStatus reads the live quota from the active screen when it has
// one, otherwise shows the visit defaults.
func (m AppModel) headerStatus() layout.HeaderStatus {
	if provider, ok := m.router.Active().(quotaProvider); ok {
		state := provider.Quota().State()
		return layout.HeaderStatus{
			Credits:    state.RemainingCredits,
			Subscribed: state.Subscribed,
		}
	}
	return layout.HeaderStatus{
		Credits:    coaching.DefaultCredits,
		Subscribed: m.opts.Subscribed,
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
