package centers

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/soundbath"
)

func TestCenters_BrowseAndListen(t *testing.T) {
	s := New(screen.Deps{})
	if !strings.Contains(s.View(100, 40), "Muladhara") {
		t.Fatal("expected root in view")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Fatal("selection should stop at the top")
	}
	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 6 {
		t.Fatalf("selected = %d, want 6", s.selected)
	}
	if !strings.Contains(s.View(100, 40), "Thought") {
		t.Error("expected crown detail")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected push")
	}
	if _, ok := push.Screen.(*soundbath.Screen); !ok {
		t.Fatalf("pushed %T", push.Screen)
	}
}
