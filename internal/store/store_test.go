package store

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked separately with a file-based DB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDBUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "aura.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"assessments", "meditations", "llm_requests", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aura.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.MeditationRepo().Save(ctx, &MeditationRecord{Center: chakra.Root, Mode: "pure", Duration: time.Minute}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.MeditationRepo().List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func sampleAssessment(low chakra.ID) *AssessmentRecord {
	var answers []assessment.Answer
	for _, q := range chakra.Questions() {
		v := 4
		if q.CenterID == low {
			v = 1
		}
		answers = append(answers, assessment.Answer{QuestionID: q.ID, CenterID: q.CenterID, Value: v})
	}
	res := assessment.Score(answers)
	return &AssessmentRecord{
		Primary:   res.Primary.CenterID,
		Secondary: res.Secondary.CenterID,
		Scores:    res.AllScores,
		Answers:   answers,
	}
}

func TestAssessmentSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	// None yet.
	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil assessment when none exist")
	}

	rec := sampleAssessment(chakra.Throat)
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.ID == "" || rec.Sequence == 0 || rec.TakenAt.IsZero() {
		t.Fatalf("save did not fill id/sequence/taken_at: %+v", rec)
	}

	got, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("id = %q, want %q", got.ID, rec.ID)
	}
	if got.Primary != chakra.Throat {
		t.Errorf("primary = %q, want throat", got.Primary)
	}
	if len(got.Scores) != 7 || len(got.Answers) != 28 {
		t.Errorf("scores=%d answers=%d, want 7 and 28", len(got.Scores), len(got.Answers))
	}

	res := got.Result()
	if res.Primary.CenterID != chakra.Throat || res.Primary.Score != 4 {
		t.Errorf("rebuilt primary = %+v", res.Primary)
	}
	if res.Secondary.CenterID != got.Secondary {
		t.Errorf("rebuilt secondary = %q, want %q", res.Secondary.CenterID, got.Secondary)
	}
}

func TestAssessmentListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	lows := []chakra.ID{chakra.Root, chakra.Heart, chakra.Crown}
	for i, low := range lows {
		rec := sampleAssessment(low)
		rec.TakenAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Primary != chakra.Crown || all[2].Primary != chakra.Root {
		t.Errorf("order = %s,%s,%s", all[0].Primary, all[1].Primary, all[2].Primary)
	}
	if !all[0].TakenAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("taken_at = %v", all[0].TakenAt)
	}

	limited, err := repo.List(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}

	since, err := repo.List(ctx, QueryOpts{From: base.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("list from: %v", err)
	}
	if len(since) != 2 {
		t.Errorf("from len = %d, want 2", len(since))
	}
}

func TestMeditationTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.MeditationRepo()
	ctx := context.Background()

	total, err := repo.TotalDuration(ctx)
	if err != nil {
		t.Fatalf("total (empty): %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}

	for _, d := range []time.Duration{5 * time.Minute, 90 * time.Second} {
		rec := &MeditationRecord{Center: chakra.Heart, Mode: "layered", Duration: d, Cycles: 3, Note: "calm"}
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	total, err = repo.TotalDuration(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 6*time.Minute+30*time.Second {
		t.Errorf("total = %v, want 6m30s", total)
	}

	list, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Note != "calm" || list[0].Cycles != 3 || list[0].Center != chakra.Heart {
		t.Errorf("list = %+v", list)
	}
}

func TestMeditationStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, loc)
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 10+offset, 9, 0, 0, 0, loc)
	}

	tests := []struct {
		name string
		days []int
		want int
	}{
		{"none", nil, 0},
		{"today only", []int{0}, 1},
		{"three running", []int{0, -1, -2}, 3},
		{"ends yesterday", []int{-1, -2}, 2},
		{"gap breaks", []int{0, -2, -3}, 1},
		{"stale", []int{-3, -4}, 0},
		{"two today", []int{0, 0, -1}, 2},
		{"future ignored", []int{1, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			repo := s.MeditationRepo()
			ctx := context.Background()
			for _, off := range tt.days {
				rec := &MeditationRecord{Center: chakra.Root, Mode: "pure", StartedAt: day(off), Duration: time.Minute}
				if err := repo.Save(ctx, rec); err != nil {
					t.Fatalf("save: %v", err)
				}
			}
			got, err := repo.Streak(ctx, now)
			if err != nil {
				t.Fatalf("streak: %v", err)
			}
			if got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "reflection", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"title":"x"}`},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "reflection", InputTokens: 120, OutputTokens: 40, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "gemini-flash", Purpose: "check", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Model != "gemini-flash" {
		t.Errorf("newest model = %q, want gemini-flash", got[0].Model)
	}
	if got[1].Success || got[1].ErrorMessage != "rate limited" {
		t.Errorf("failed event = %+v", got[1])
	}

	one, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one.RequestBody != "[user]\nhi" || one.ResponseBody != `{"title":"x"}` || !one.Success {
		t.Errorf("event = %+v", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "reflection" || byPurpose[0].Calls != 2 ||
		byPurpose[0].InputTokens != 220 || byPurpose[0].AvgLatencyMs != 300 {
		t.Errorf("by purpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gemini-flash" || byModel[1].OutputTokens != 5 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	t.Setenv("AURA_DB", "")
	got, err := ResolveDBPath("", "")
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	if want := filepath.Join(dir, "aura", "aura.db"); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}

	cfgPath := filepath.Join(dir, "cfg", "a.db")
	if got, _ := ResolveDBPath("", cfgPath); got != cfgPath {
		t.Errorf("configured = %q, want %q", got, cfgPath)
	}

	envPath := filepath.Join(dir, "env", "b.db")
	t.Setenv("AURA_DB", envPath)
	if got, _ := ResolveDBPath("", cfgPath); got != envPath {
		t.Errorf("env = %q, want %q", got, envPath)
	}

	flagPath := filepath.Join(dir, "flag", "c.db")
	if got, _ := ResolveDBPath(flagPath, cfgPath); got != flagPath {
		t.Errorf("flag = %q, want %q", got, flagPath)
	}
}

func TestQueryOptsFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.MeditationRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var seqs []int64
	for i := 0; i < 5; i++ {
		rec := &MeditationRecord{
			Center:    chakra.All()[i],
			Mode:      "pure",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:  time.Minute,
		}
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
		seqs = append(seqs, rec.Sequence)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []chakra.ID
	}{
		{"all", QueryOpts{}, []chakra.ID{chakra.Throat, chakra.Heart, chakra.Solar, chakra.Sacral, chakra.Root}},
		{"limit", QueryOpts{Limit: 2}, []chakra.ID{chakra.Throat, chakra.Heart}},
		{"after", QueryOpts{After: seqs[2]}, []chakra.ID{chakra.Throat, chakra.Heart}},
		{"before", QueryOpts{Before: seqs[1]}, []chakra.ID{chakra.Root}},
		{"time range", QueryOpts{From: base.Add(time.Hour), To: base.Add(3 * time.Hour)},
			[]chakra.ID{chakra.Heart, chakra.Solar, chakra.Sacral}},
		{"combined", QueryOpts{After: seqs[0], To: base.Add(3 * time.Hour), Limit: 1}, []chakra.ID{chakra.Heart}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			var got []chakra.ID
			for _, m := range list {
				got = append(got, m.Center)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("centers = %v, want %v", got, tt.want)
			}
		})
	}
}
