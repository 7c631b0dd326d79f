package questionnaire

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/result"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

type savedMsg struct {
	result assessment.Result
	err    error
}

// Screen walks through the 28 statements.
type Screen struct {
	deps   screen.Deps
	run    *assessment.Run
	likert components.Likert
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a questionnaire over a freshly shuffled question order.
func New(deps screen.Deps) *Screen {
	return NewWithRun(deps, assessment.NewRun(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))
}

// NewWithRun creates a questionnaire over an existing run.
func NewWithRun(deps screen.Deps, run *assessment.Run) *Screen {
	return &Screen{deps: deps, run: run}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Balance Check"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.run.Phase() == assessment.PhaseIntro {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-5", Description: "Answer"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "b", Description: "Previous"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			s.deps.Log().Warn("save assessment failed", zap.Error(msg.err))
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result.New(s.deps, msg.result)}
		}

	case tea.KeyMsg:
		switch s.run.Phase() {
		case assessment.PhaseIntro:
			if k := msg.String(); k == "enter" || k == "space" {
				s.run.Start()
				s.resetLikert()
			}
			return s, nil
		case assessment.PhaseInProgress:
			return s.handleAnswerKey(msg)
		}
	}
	return s, nil
}

func (s *Screen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "b", "left", "backspace":
		if s.run.Back() {
			s.resetLikert()
		}
		return s, nil
	}

	s.likert = s.likert.Update(msg)
	if s.likert.Chosen == 0 {
		return s, nil
	}

	s.run.Answer(s.likert.Chosen)
	if s.run.Phase() == assessment.PhaseComplete {
		return s, s.complete()
	}
	s.resetLikert()
	return s, nil
}

func (s *Screen) resetLikert() {
	q, ok := s.run.Current()
	if !ok {
		return
	}
	prev, _ := s.run.Previous()
	s.likert = components.NewLikert(q.Text, prev)
}

// complete persists the run (when a store is available) and hands over to
// the result screen.
func (s *Screen) complete() tea.Cmd {
	res, _ := s.run.Result()
	repo := s.deps.Assessments
	if repo == nil {
		return func() tea.Msg { return savedMsg{result: res} }
	}
	rec := &store.AssessmentRecord{
		TakenAt:   s.run.CompletedAt,
		Primary:   res.Primary.CenterID,
		Secondary: res.Secondary.CenterID,
		Scores:    res.AllScores,
		Answers:   s.run.Answers(),
	}
	return func() tea.Msg {
		return savedMsg{result: res, err: repo.Save(context.Background(), rec)}
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.run.Phase() == assessment.PhaseIntro {
		intro := strings.Join([]string{
			theme.Title.Width(cw).Render("How balanced do you feel?"),
			"",
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(fmt.Sprintf(
				"You will see %d short statements. Rate each from 1 (strongly disagree) to 5 (strongly agree). "+
					"There are no right answers; go with your first feeling.", s.run.Total())),
			"",
			theme.Hint.Render("Press Enter to begin"),
		}, "\n")
		return components.Frame(intro, width, height)
	}

	counter := theme.Hint.Render(fmt.Sprintf("Statement %d of %d", s.run.Index()+1, s.run.Total()))
	bar := components.ProgressBar{
		Percent:     s.run.Progress(),
		ShowPercent: true,
		Width:       cw,
		Color:       theme.Primary,
	}

	content := strings.Join([]string{
		components.Centered(counter, cw),
		bar.View(),
		"",
		components.Card(s.likert.View(cw-6), cw, theme.Border),
	}, "\n")
	return components.Frame(content, width, height)
}
