package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/ui/theme"
)

const titleFull = ` █████╗ ██╗   ██╗██████╗  █████╗
██╔══██╗██║   ██║██╔══██╗██╔══██╗
███████║██║   ██║██████╔╝███████║
██╔══██║██║   ██║██╔══██╗██╔══██║
██║  ██║╚██████╔╝██║  ██║██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const titleCompact = "A · U · R · A"

// LotusVariant selects the lotus art shown on the home screen.
type LotusVariant int

const (
	LotusBud   LotusVariant = iota // nothing recorded yet
	LotusOpen                      // practicing
	LotusBloom                     // streak of three days or more
)

const lotusBud = `  ╱╲
 ╱  ╲
 ╲  ╱
~~╲╱~~`

const lotusOpen = ` ╲ │ ╱
╲ ╲│╱ ╱
 ╲ ╲╱ ╱
~~~╲╱~~~`

const lotusBloom = `  ✦ ✦ ✦
 ╲ ╲│╱ ╱
╲ ╲ │ ╱ ╱
 ╲ ╲╱╲╱ ╱
~~~~╲╱~~~~`

func lotusFor(streak int, practiced bool) LotusVariant {
	switch {
	case streak >= 3:
		return LotusBloom
	case practiced:
		return LotusOpen
	default:
		return LotusBud
	}
}

// renderLotus returns the lotus art tinted by the last primary center.
func renderLotus(v LotusVariant, tint chakra.ID, cw int) string {
	art := lotusBud
	switch v {
	case LotusOpen:
		art = lotusOpen
	case LotusBloom:
		art = lotusBloom
	}
	fg := theme.Primary
	if tint.Valid() {
		fg = theme.CenterColor(tint)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(art)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows practice totals and the last assessment focus.
func renderStatsBar(st stats, cw int, compact bool) string {
	timeStyle := lipgloss.NewStyle().Foreground(theme.Calm).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	focus := dim.Render("no check yet")
	if st.lastPrimary.Valid() {
		c := chakra.MustLookup(st.lastPrimary)
		focus = lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Bold(true).
			Render("● " + c.Name)
	}

	sep := "   "
	if compact {
		sep = "  "
	}
	line := strings.Join([]string{
		timeStyle.Render(fmt.Sprintf("◷ %d min", st.minutes)),
		streakStyle.Render(fmt.Sprintf("☀ %d day", st.streak)),
		focus,
	}, sep)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	if compact {
		var lines []string
		for i, label := range items {
			if i == selected {
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(theme.Primary).
					Bold(true).
					Render(" ▸ "+label+" "))
			} else {
				lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
			}
		}
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	}

	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
