package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

type tab int

const (
	tabAssessments tab = iota
	tabSessions
)

type historyLoadedMsg struct {
	Assessments []store.AssessmentRecord
	Sessions    []store.MeditationRecord
	Total       time.Duration
	Streak      int
	Err         error
}

// HistoryScreen displays past assessments and sound sessions.
type HistoryScreen struct {
	assessments store.AssessmentRepo
	meditations store.MeditationRepo
	now         func() time.Time

	data     historyLoadedMsg
	tab      tab
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Either repo may be nil.
func New(assessments store.AssessmentRepo, meditations store.MeditationRepo) *HistoryScreen {
	return &HistoryScreen{
		assessments: assessments,
		meditations: meditations,
		now:         time.Now,
		expanded:    make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg historyLoadedMsg

		if s.assessments != nil {
			recs, err := s.assessments.List(ctx, store.QueryOpts{Limit: 50})
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			msg.Assessments = recs
		}

		if s.meditations != nil {
			sessions, err := s.meditations.List(ctx, store.QueryOpts{Limit: 50})
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			msg.Sessions = sessions
			// Totals are decoration; a failure here still shows the lists.
			msg.Total, _ = s.meditations.TotalDuration(ctx)
			msg.Streak, _ = s.meditations.Streak(ctx, s.now())
		}

		return msg
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabAssessments {
		return len(s.data.Assessments)
	}
	return len(s.data.Sessions)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.data = msg
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "left", "right":
			s.tab = 1 - s.tab
			s.selected = 0
			s.expanded = make(map[int]bool)
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
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

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(s.renderSummary()))
	b.WriteString("\n\n")
	b.WriteString(center(s.renderTabs()))
	b.WriteString("\n\n")

	if s.rows() == 0 {
		empty := "No assessments yet. Take a balance check!"
		if s.tab == tabSessions {
			empty = "No sound sessions yet. Find a quiet moment."
		}
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(empty)))
		return b.String()
	}

	if s.tab == tabAssessments {
		s.renderAssessments(&b, center)
	} else {
		s.renderSessions(&b, center)
	}
	return b.String()
}

func (s *HistoryScreen) renderSummary() string {
	mins := int(s.data.Total.Minutes())
	return lipgloss.NewStyle().Foreground(theme.Calm).Render(fmt.Sprintf("◷ %d min total", mins)) +
		"     " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("☀ %d day streak", s.data.Streak))
}

func (s *HistoryScreen) renderTabs() string {
	labels := []string{"Assessments", "Sound sessions"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if tab(i) == s.tab {
			parts[i] = theme.Selected.Underline(true).Render(l)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(l)
		}
	}
	return strings.Join(parts, "   ")
}

func (s *HistoryScreen) rowStyle(i int) (string, lipgloss.Style) {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		return "> ", style.Foreground(theme.Primary).Bold(true)
	}
	return "  ", style
}

func (s *HistoryScreen) renderAssessments(b *strings.Builder, center func(string) string) {
	for i, rec := range s.data.Assessments {
		prefix, style := s.rowStyle(i)
		primary := chakra.MustLookup(rec.Primary)
		res := rec.Result()
		line := fmt.Sprintf("%s%s  %-13s %3d%%   then %s",
			prefix, rec.TakenAt.Local().Format("Jan 02, 2006 15:04"), primary.Name,
			res.Primary.Percentage, chakra.MustLookup(rec.Secondary).Name)
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, sc := range rec.Scores {
				c := chakra.MustLookup(sc.CenterID)
				detail := fmt.Sprintf("    %-13s %2d/%d  %3d%%", c.Name, sc.Score, sc.MaxScore, sc.Percentage)
				b.WriteString(center(lipgloss.NewStyle().Foreground(theme.CenterColor(c.ID)).Render(detail)))
				b.WriteString("\n")
			}
		}
	}
}

func (s *HistoryScreen) renderSessions(b *strings.Builder, center func(string) string) {
	for i, rec := range s.data.Sessions {
		prefix, style := s.rowStyle(i)
		d := rec.Duration.Round(time.Second)
		line := fmt.Sprintf("%s%s  %-13s %-9s %d:%02d  %d breaths",
			prefix, rec.StartedAt.Local().Format("Jan 02, 2006 15:04"),
			chakra.MustLookup(rec.Center).Name, rec.Mode,
			int(d.Minutes()), int(d.Seconds())%60, rec.Cycles)
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			note := rec.Note
			if note == "" {
				note = "No note"
			}
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    " + note)))
			b.WriteString("\n")
		}
	}
}
