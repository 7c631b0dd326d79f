package questionnaire

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/result"
	"github.com/abhisek/aura/internal/store"
)

type fakeAssessments struct {
	store.AssessmentRepo
	saved []*store.AssessmentRecord
}

func (f *fakeAssessments) Save(_ context.Context, rec *store.AssessmentRecord) error {
	f.saved = append(f.saved, rec)
	return nil
}

func digit(v int) tea.KeyPressMsg {
	r := rune('0' + v)
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func newScreen(repo store.AssessmentRepo) *Screen {
	deps := screen.Deps{}
	if repo != nil {
		deps.Assessments = repo
	}
	return NewWithRun(deps, assessment.NewRunWithQuestions(chakra.Questions()))
}

func TestQuestionnaire_IntroThenQuestions(t *testing.T) {
	s := newScreen(nil)
	s.Update(digit(3))
	if s.run.Phase() != assessment.PhaseIntro {
		t.Fatal("digits must not start the run")
	}
	s.Update(enter())
	if s.run.Phase() != assessment.PhaseInProgress {
		t.Fatal("enter should start the run")
	}
	if s.likert.Prompt == "" {
		t.Fatal("expected first question prompt")
	}
}

func TestQuestionnaire_BackKeepsAnswer(t *testing.T) {
	s := newScreen(nil)
	s.Update(enter())
	s.Update(digit(2))
	s.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})

	if s.run.Index() != 0 {
		t.Fatalf("index = %d, want 0", s.run.Index())
	}
	if s.likert.Selected != 2 {
		t.Fatalf("cursor = %d, want previous answer 2", s.likert.Selected)
	}
	if len(s.run.Answers()) != 1 {
		t.Fatal("back must keep the answer")
	}
}

func TestQuestionnaire_CompleteSavesAndShowsResult(t *testing.T) {
	repo := &fakeAssessments{}
	s := newScreen(repo)
	s.Update(enter())

	var cmd tea.Cmd
	for _, q := range chakra.Questions() {
		v := 5
		if q.CenterID == chakra.Solar {
			v = 1
		}
		_, cmd = s.Update(digit(v))
	}
	if cmd == nil {
		t.Fatal("expected completion command")
	}

	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("got %T, want savedMsg", msg)
	}
	if saved.result.Primary.CenterID != chakra.Solar {
		t.Fatalf("primary = %s, want solar", saved.result.Primary.CenterID)
	}
	if len(repo.saved) != 1 || len(repo.saved[0].Answers) != 28 {
		t.Fatalf("saved = %+v", repo.saved)
	}

	_, cmd = s.Update(saved)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*result.Screen); !ok {
		t.Fatalf("replaced with %T", replace.Screen)
	}
}

func TestQuestionnaire_WithoutStore(t *testing.T) {
	s := newScreen(nil)
	s.Update(enter())
	var cmd tea.Cmd
	for range chakra.Questions() {
		_, cmd = s.Update(digit(4))
	}
	if _, ok := cmd().(savedMsg); !ok {
		t.Fatal("expected savedMsg even without a store")
	}
}

func TestQuestionnaire_View(t *testing.T) {
	s := newScreen(nil)
	if s.View(100, 40) == "" {
		t.Fatal("empty intro view")
	}
	s.Update(enter())
	if s.View(100, 40) == "" {
		t.Fatal("empty question view")
	}
}
