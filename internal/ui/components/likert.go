package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/ui/theme"
)

// LikertLabels names the five agreement levels, 1 to 5.
var LikertLabels = [5]string{
	"Strongly disagree",
	"Disagree",
	"Neutral",
	"Agree",
	"Strongly agree",
}

// Likert is a 1-5 agreement selector. Digits pick a value directly; arrows
// move the cursor and Enter confirms it.
type Likert struct {
	Prompt   string
	Selected int // 1..5
	Chosen   int // 0 until a value is confirmed
}

// NewLikert creates a selector for prompt. A previous value in 1..5 becomes
// the initial cursor position.
func NewLikert(prompt string, previous int) Likert {
	sel := 3
	if previous >= 1 && previous <= 5 {
		sel = previous
	}
	return Likert{Prompt: prompt, Selected: sel}
}

// Update handles keys and reports the confirmed value through Chosen.
func (l Likert) Update(msg tea.Msg) Likert {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || l.Chosen != 0 {
		return l
	}

	switch key := kmsg.String(); key {
	case "1", "2", "3", "4", "5":
		l.Selected = int(key[0] - '0')
		l.Chosen = l.Selected
	case "up", "k", "right", "l":
		if l.Selected < 5 {
			l.Selected++
		}
	case "down", "j", "left", "h":
		if l.Selected > 1 {
			l.Selected--
		}
	case "enter", "space":
		l.Chosen = l.Selected
	}
	return l
}

// View renders the prompt and the five options.
func (l Likert) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render(l.Prompt))
	b.WriteString("\n\n")

	for v := 5; v >= 1; v-- {
		line := fmt.Sprintf("  %d  %s", v, LikertLabels[v-1])
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if v == l.Selected {
			line = fmt.Sprintf("▸ %d  %s", v, LikertLabels[v-1])
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		if v > 1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
