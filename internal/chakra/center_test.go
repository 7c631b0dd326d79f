package chakra

import (
	"errors"
	"testing"
)

func TestAll_DeclarationOrder(t *testing.T) {
	want := []ID{"root", "sacral", "solar", "heart", "throat", "third-eye", "crown"}
	got := All()
	if len(got) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrequencies(t *testing.T) {
	want := map[ID]float64{
		Root: 396, Sacral: 417, Solar: 528, Heart: 639,
		Throat: 741, ThirdEye: 852, Crown: 963,
	}
	for id, hz := range want {
		if got := Frequency(id); got != hz {
			t.Errorf("Frequency(%s) = %v, want %v", id, got, hz)
		}
	}
}

func TestFrequency_UnknownFallsBackToHeart(t *testing.T) {
	if got := Frequency("spleen"); got != 639 {
		t.Errorf("Frequency(unknown) = %v, want 639", got)
	}
}

func TestCenters_NumbersMatchOrder(t *testing.T) {
	for i, c := range Centers() {
		if c.Number != i+1 {
			t.Errorf("%s: Number = %d, want %d", c.ID, c.Number, i+1)
		}
		if c.Name == "" || c.Affirmation == "" || c.Color == "" {
			t.Errorf("%s: missing presentation metadata", c.ID)
		}
	}
}

func TestCenters_ReturnsCopy(t *testing.T) {
	cs := Centers()
	cs[0].Frequency = 1
	if Frequency(Root) != 396 {
		t.Error("mutating Centers() result changed the reference table")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"root", Root},
		{"  HEART ", Heart},
		{"third-eye", ThirdEye},
		{"third_eye", ThirdEye},
		{"thirdeye", ThirdEye},
		{"Anahata", Heart},
		{"solar plexus", Solar},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("spleen")
	if !errors.Is(err, ErrUnknownCenter) {
		t.Errorf("Parse(spleen) err = %v, want ErrUnknownCenter", err)
	}
}

func TestNextPrev_Wrap(t *testing.T) {
	if Next(Crown) != Root {
		t.Errorf("Next(crown) = %q, want root", Next(Crown))
	}
	if Prev(Root) != Crown {
		t.Errorf("Prev(root) = %q, want crown", Prev(Root))
	}
	if Next(Heart) != Throat {
		t.Errorf("Next(heart) = %q, want throat", Next(Heart))
	}
}

func TestQuestions_FourPerCenter(t *testing.T) {
	qs := Questions()
	if len(qs) != 28 {
		t.Fatalf("len(Questions()) = %d, want 28", len(qs))
	}
	counts := make(map[ID]int)
	seen := make(map[string]bool)
	for _, q := range qs {
		counts[q.CenterID]++
		if seen[q.ID] {
			t.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	for _, id := range All() {
		if counts[id] != QuestionsPerCenter {
			t.Errorf("%s has %d questions, want %d", id, counts[id], QuestionsPerCenter)
		}
	}
	if _, ok := QuestionByID("heart-1"); !ok {
		t.Error("QuestionByID(heart-1) not found")
	}
}
