package coach

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/abhisek/coachiz/internal/ui/theme"
)

func (s *CoachScreen) View(width, height int) string {
	if s.showingUpsell {
		return s.renderUpsell(width, height)
	}

	switch s.selection.State() {
	case coaching.StateNoSkill:
		return s.renderSkillSelect(width, height)
	case coaching.StateSkillSelected:
		return s.renderModeSelect(width, height)
	default:
		if s.selection.Mode() == coaching.ModeGuided {
			return s.renderGuided(width, height)
		}
		return s.renderChat(width, height)
	}
}

func (s *CoachScreen) renderSkillSelect(width, height int) string {
	title := theme.Title.Width(width).Render("What's your experience level?")
	subtitle := theme.Subtitle.Width(width).Render("Your coach adjusts explanations to match")

	content := title + "\n" + subtitle + "\n\n" + s.skillMenu.View()
	return centerVertically(content, width, height)
}

func (s *CoachScreen) renderModeSelect(width, height int) string {
	title := theme.Title.Width(width).Render("How do you want to work?")
	subtitle := theme.Subtitle.Width(width).
		Render(fmt.Sprintf("Coaching as %s", s.selection.Skill().DisplayName()))

	content := title + "\n" + subtitle + "\n\n" + s.modeMenu.View()
	return centerVertically(content, width, height)
}

func (s *CoachScreen) renderChat(width, height int) string {
	var b strings.Builder

	// Leave room for the status line, input, and padding.
	convHeight := height - 4
	if convHeight < 1 {
		convHeight = 1
	}
	b.WriteString(s.renderConversation(width, convHeight))
	b.WriteString("\n")

	if s.waiting {
		b.WriteString(theme.Hint.Render("  Your coach is thinking...") + "\n")
	} else {
		b.WriteString(s.renderQuotaLine() + "\n")
	}

	b.WriteString("  " + s.input.View())
	return b.String()
}

func (s *CoachScreen) renderGuided(width, height int) string {
	var b strings.Builder

	menu := s.guidedMenu.View()
	menuHeight := lipgloss.Height(menu)

	convHeight := height - menuHeight - 3
	if convHeight > 0 && s.conv.Len() > 0 {
		b.WriteString(s.renderConversation(width, convHeight))
		b.WriteString("\n")
	}

	b.WriteString(theme.Subtitle.Width(width).Render("Pick a question") + "\n\n")
	b.WriteString(menu)
	return b.String()
}

// renderConversation renders the newest turns that fit in the given
// height, oldest first.
func (s *CoachScreen) renderConversation(width, maxHeight int) string {
	turns := s.conv.All()
	if len(turns) == 0 {
		return theme.Hint.Render("  No questions yet. Ask away!")
	}

	lines := make([]string, 0, len(turns)*3)
	for _, turn := range turns {
		lines = append(lines, s.renderTurn(turn, width)...)
		lines = append(lines, "")
	}

	if len(lines) > maxHeight {
		lines = lines[len(lines)-maxHeight:]
	}
	return strings.Join(lines, "\n")
}

func (s *CoachScreen) renderTurn(turn coaching.Turn, width int) []string {
	textWidth := width - 6
	if textWidth < 20 {
		textWidth = 20
	}
	wrap := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	if turn.Sender == coaching.SenderUser {
		lines = append(lines, theme.UserTurn.Render("  You"))
		lines = append(lines, indentBlock(wrap.Render(turn.Text)))
	} else {
		lines = append(lines, theme.Selected.Render("  Coach"))
		lines = append(lines, indentBlock(theme.CoachTurn.Render(wrap.Render(turn.Text))))
		for _, src := range turn.Sources {
			if title, ok := src["title"].(string); ok {
				lines = append(lines, theme.SourceLine.Render("    ↳ "+title))
			}
		}
	}
	return lines
}

func (s *CoachScreen) renderQuotaLine() string {
	state := s.quota.State()
	if state.Subscribed {
		return theme.SourceLine.Render("  Unlimited questions with PLUS")
	}

	noun := "questions"
	if state.RemainingCredits == 1 {
		noun = "question"
	}
	return theme.SourceLine.Render(
		fmt.Sprintf("  %d free %s left", state.RemainingCredits, noun))
}

func (s *CoachScreen) renderUpsell(width, height int) string {
	var headline, body string
	if s.upsellTrigger == store.TriggerGuided {
		headline = "That answer is part of PLUS"
		body = "Upgrade to unlock every guided question in this program,\nplus unlimited questions for your coach."
	} else {
		headline = "You've used your free questions"
		body = "Upgrade to PLUS for unlimited questions\nand full access to guided answers."
	}

	card := theme.Card.Render(
		theme.Title.Render(headline) + "\n\n" +
			theme.Body.Render(body) + "\n\n" +
			theme.Hint.Render("[Y] Upgrade now    [N] Not now"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func centerVertically(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func indentBlock(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
