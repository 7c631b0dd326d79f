package soundbath

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/breath"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/synth"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		s.renderCenters(cw),
		s.renderNowPlaying(cw),
		s.renderBreath(cw),
	}
	if s.note != nil {
		sections = append(sections, components.Card(s.note.View(), cw, theme.Primary))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Failure.Render(s.errMsg))
	}
	if !s.deps.Engine.Available() {
		sections = append(sections, theme.Hint.Render("No audio output found. The breathing guide still works."))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *Screen) renderCenters(cw int) string {
	var rows []string
	for i, c := range chakra.Centers() {
		dot := lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Render("●")
		label := fmt.Sprintf("%-13s %3.0f Hz", c.Name, c.Frequency)

		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		suffix := ""
		if s.playing && c.ID == s.current {
			suffix = theme.Playing.Render("  ♪")
		}
		rows = append(rows, prefix+dot+" "+style.Render(label)+suffix)
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n"))
}

func (s *Screen) renderNowPlaying(cw int) string {
	c := chakra.MustLookup(s.current)
	st := s.deps.Engine.Status()

	header := lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Bold(true).
		Render(fmt.Sprintf("%s · %s", c.Name, c.Sanskrit))

	state := "Resting"
	switch st.Phase {
	case synth.PhasePlaying:
		state = "Playing"
	case synth.PhaseStopping:
		state = "Fading"
	}

	freqs := "-"
	if len(st.Frequencies) > 0 {
		parts := make([]string, len(st.Frequencies))
		for i, f := range st.Frequencies {
			parts[i] = fmt.Sprintf("%.1f", f)
		}
		freqs = strings.Join(parts, " / ") + " Hz"
	}

	vol := components.ProgressBar{
		Label:       "Volume",
		LabelWidth:  7,
		Percent:     s.volume,
		ShowPercent: true,
		Width:       cw - 6,
		Color:       theme.CenterColor(c.ID),
	}

	lines := []string{
		header,
		theme.Hint.Render(c.Affirmation),
		"",
		fmt.Sprintf("%s  ·  mode %s  ·  %s", state, s.mode, freqs),
		vol.View(),
		fmt.Sprintf("Listened %s", formatDuration(s.Listened())),
	}
	return components.Card(strings.Join(lines, "\n"), cw, theme.CenterColor(c.ID))
}

func (s *Screen) renderBreath(cw int) string {
	ph := s.pacer.Phase()
	label := lipgloss.NewStyle().Foreground(breathColor(ph)).Bold(true).Render(ph.String())
	if !s.playing {
		label = theme.Hint.Render("Start a tone to begin the breathing guide")
	}

	bar := components.ProgressBar{
		Percent: s.pacer.Progress(),
		Width:   cw - 6,
		Color:   breathColor(ph),
	}

	remaining := s.pacer.Remaining().Round(time.Second)
	info := theme.Hint.Render(fmt.Sprintf("%s left · %d breaths", remaining, s.pacer.Cycles()))

	return components.Centered(strings.Join([]string{label, bar.View(), info}, "\n"), cw)
}

func breathColor(ph breath.Phase) color.Color {
	switch ph {
	case breath.Inhale:
		return theme.Calm
	case breath.Hold:
		return theme.Primary
	case breath.Exhale:
		return theme.Secondary
	default:
		return theme.TextDim
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
