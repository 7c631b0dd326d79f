package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestLikert_DigitChoosesDirectly(t *testing.T) {
	l := NewLikert("I feel grounded.", 0)
	l = l.Update(key("4"))
	if l.Chosen != 4 {
		t.Fatalf("Chosen = %d, want 4", l.Chosen)
	}
	// Further keys are ignored once chosen.
	l = l.Update(key("1"))
	if l.Chosen != 4 {
		t.Fatalf("Chosen changed to %d", l.Chosen)
	}
}

func TestLikert_ArrowsThenEnter(t *testing.T) {
	l := NewLikert("q", 0)
	if l.Selected != 3 {
		t.Fatalf("default selection = %d, want 3", l.Selected)
	}
	for range 5 {
		l = l.Update(key("up"))
	}
	if l.Selected != 5 {
		t.Fatalf("Selected = %d, want 5 (clamped)", l.Selected)
	}
	l = l.Update(key("down"))
	l = l.Update(key("enter"))
	if l.Chosen != 4 {
		t.Fatalf("Chosen = %d, want 4", l.Chosen)
	}
}

func TestLikert_PreviousValue(t *testing.T) {
	if l := NewLikert("q", 2); l.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", l.Selected)
	}
	if l := NewLikert("q", 9); l.Selected != 3 {
		t.Fatalf("out of range previous should fall back to 3, got %d", l.Selected)
	}
}

func TestLikert_View(t *testing.T) {
	v := NewLikert("I trust my intuition.", 5).View(60)
	for _, label := range LikertLabels {
		if !strings.Contains(v, label) {
			t.Errorf("view missing %q", label)
		}
	}
	if !strings.Contains(v, "▸ 5") {
		t.Error("expected cursor on 5")
	}
}

func TestProgressBar_ClampsOverflow(t *testing.T) {
	bar := NewProgressBar("Root", 1.4, true, 40).View()
	if !strings.Contains(bar, "140%") {
		t.Errorf("expected raw percentage in label, got %q", bar)
	}
}
