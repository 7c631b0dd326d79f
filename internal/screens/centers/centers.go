package centers

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/soundbath"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

// Screen is a browsable reference of the seven centers.
type Screen struct {
	deps     screen.Deps
	centers  []chakra.Center
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the centers reference screen.
func New(deps screen.Deps) *Screen {
	return &Screen{deps: deps, centers: chakra.Centers()}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Energy Centers" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Listen"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.centers)-1 {
			s.selected++
		}
	case "enter", "p":
		return s, router.Push(soundbath.New(s.deps, s.centers[s.selected].ID, true))
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	for i, c := range s.centers {
		dot := lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Render("●")
		line := fmt.Sprintf("%d  %-13s %-13s %3.0f Hz", c.Number, c.Name, c.Sanskrit, c.Frequency)
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		rows = append(rows, prefix+dot+" "+style.Render(line))
	}

	content := strings.Join(rows, "\n") + "\n\n" + s.renderDetail(cw)
	return components.Frame(content, width, height)
}

func (s *Screen) renderDetail(cw int) string {
	c := s.centers[s.selected]
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	field := func(name, value string) string {
		return label.Render(name) + lipgloss.NewStyle().Foreground(theme.Text).Width(cw-18).Render(value)
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Bold(true).
			Render(fmt.Sprintf("%s · %s", c.Name, assessment.Keyword(c.ID))),
		"",
		field("Element", c.Element),
		field("Location", c.Location),
		field("Body", strings.Join(c.BodyParts, ", ")),
		field("Emotions", strings.Join(c.EmotionalAspects, ", ")),
		field("Benefits", strings.Join(c.Benefits, ", ")),
		"",
		lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("“" + c.Affirmation + "”"),
	}
	return components.Card(strings.Join(lines, "\n"), cw, theme.CenterColor(c.ID))
}
