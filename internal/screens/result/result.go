package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/insight"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/soundbath"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

const pollInterval = 200 * time.Millisecond

type pollMsg time.Time

// Screen shows an assessment result with its reflection.
type Screen struct {
	deps       screen.Deps
	result     assessment.Result
	reflection *insight.Reflection
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a result screen for res.
func New(deps screen.Deps, res assessment.Result) *Screen {
	return &Screen{deps: deps, result: res}
}

func (s *Screen) Init() tea.Cmd {
	if s.deps.Insight == nil {
		r := insight.Fallback(s.result)
		s.reflection = &r
		return nil
	}
	s.deps.Insight.Request(context.Background(), s.result)
	return poll()
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (s *Screen) Title() string {
	return "Your Balance"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "p", Description: "Play primary"},
		{Key: "s", Description: "Play secondary"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		if s.reflection != nil {
			return s, nil
		}
		if r, ok := s.deps.Insight.Consume(); ok {
			s.reflection = r
			return s, nil
		}
		return s, poll()

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "enter":
			return s, router.Push(soundbath.New(s.deps, s.result.Primary.CenterID, true))
		case "s":
			return s, router.Push(soundbath.New(s.deps, s.result.Secondary.CenterID, true))
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	primary := chakra.MustLookup(s.result.Primary.CenterID)
	secondary := chakra.MustLookup(s.result.Secondary.CenterID)

	head := lipgloss.NewStyle().Foreground(theme.CenterColor(primary.ID)).Bold(true).
		Render(fmt.Sprintf("%s · %s  %d%%", primary.Name, primary.Sanskrit, s.result.Primary.Percentage))
	sub := theme.Hint.Render(fmt.Sprintf("Focus: %s   Also: %s (%d%%)",
		assessment.Keyword(primary.ID), secondary.Name, s.result.Secondary.Percentage))

	sections := []string{
		components.Centered(head+"\n"+sub, cw),
		s.renderBars(cw),
		s.renderReflection(cw, primary),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *Screen) renderBars(cw int) string {
	rows := make([]string, 0, len(s.result.AllScores))
	for _, sc := range s.result.AllScores {
		c := chakra.MustLookup(sc.CenterID)
		bar := components.ProgressBar{
			Label:       c.Name,
			LabelWidth:  13,
			Percent:     float64(sc.Percentage) / 100,
			ShowPercent: true,
			Width:       cw,
			Color:       theme.CenterColor(c.ID),
		}
		rows = append(rows, bar.View())
	}
	return strings.Join(rows, "\n")
}

func (s *Screen) renderReflection(cw int, primary chakra.Center) string {
	if s.reflection == nil {
		return components.Card(theme.Hint.Render("Listening inward…"), cw, theme.Border)
	}
	r := s.reflection

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(r.Body))
	b.WriteString("\n")
	for _, p := range r.Practices {
		b.WriteString("\n  • " + p)
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("“" + r.Affirmation + "”"))
	if r.Source == insight.SourceLLM {
		b.WriteString("\n" + theme.Hint.Render("✦ personal reflection"))
	}
	return components.Card(b.String(), cw, theme.CenterColor(primary.ID))
}
