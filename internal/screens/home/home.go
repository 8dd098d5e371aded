// Package home is the program picker and entry point of the TUI.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/program"
	"github.com/abhisek/coachiz/internal/router"
	"github.com/abhisek/coachiz/internal/screen"
	"github.com/abhisek/coachiz/internal/screens/coach"
	"github.com/abhisek/coachiz/internal/screens/history"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/abhisek/coachiz/internal/ui/components"
	"github.com/abhisek/coachiz/internal/ui/theme"
)

// HomeScreen lists the available programs and global actions.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen over the program catalog. Picking a program
// pushes a coach screen wired to the shared answering service.
func New(catalog *program.Catalog, service coaching.AnswerService, eventRepo store.EventRepo, subscribed bool) *HomeScreen {
	var items []components.MenuItem

	for _, p := range catalog.All() {
		p := p
		items = append(items, components.MenuItem{
			Label:  p.Name,
			Detail: p.Description,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: coach.New(&p, service, eventRepo, subscribed),
					}
				}
			},
		})
	}

	items = append(items, components.MenuItem{
		Label: "History",
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		},
	})
	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("What do you want to work on?")
	subtitle := theme.Subtitle.Width(width).Render("Pick a program to start a coaching session")

	content := title + "\n" + subtitle + "\n\n" + h.menu.View()

	lines := strings.Count(content, "\n") + 1
	topPad := (height - lines) / 3
	if topPad < 0 {
		topPad = 0
	}

	return strings.Repeat("\n", topPad) +
		lipgloss.NewStyle().Width(width).Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
