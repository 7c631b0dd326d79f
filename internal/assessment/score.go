package assessment

import (
	"math"
	"sort"

	"github.com/abhisek/aura/internal/chakra"
)

// MaxScore is the best possible raw score for one center (4 questions x 5).
const MaxScore = chakra.QuestionsPerCenter * 5

// Answer is one Likert response. Value is expected in [1,5] but is not
// validated here.
type Answer struct {
	QuestionID string    `json:"question_id" yaml:"question_id"`
	CenterID   chakra.ID `json:"center_id" yaml:"center_id"`
	Value      int       `json:"value" yaml:"value"`
}

// ScoreResult is the derived score for a single center.
type ScoreResult struct {
	CenterID   chakra.ID `json:"center_id"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"max_score"`
	Percentage int       `json:"percentage"`
}

// Result is the outcome of one assessment. Primary is the center most in
// need of attention (lowest score), Secondary the next lowest. AllScores is
// always in declaration order.
type Result struct {
	Primary   ScoreResult   `json:"primary"`
	Secondary ScoreResult   `json:"secondary"`
	AllScores []ScoreResult `json:"all_scores"`
}

// Score aggregates answers per center and ranks the centers ascending.
// Missing answers contribute 0 and duplicates are summed as given. Equal
// scores keep declaration order (root before sacral before solar, ...).
func Score(answers []Answer) Result {
	sums := make(map[chakra.ID]int, 7)
	for _, a := range answers {
		sums[a.CenterID] += a.Value
	}

	ids := chakra.All()
	all := make([]ScoreResult, len(ids))
	for i, id := range ids {
		raw := sums[id]
		all[i] = ScoreResult{
			CenterID:   id,
			Score:      raw,
			MaxScore:   MaxScore,
			Percentage: percentage(raw),
		}
	}

	ranked := make([]ScoreResult, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	return Result{
		Primary:   ranked[0],
		Secondary: ranked[1],
		AllScores: all,
	}
}

// Ranked returns the scores ordered from most to least in need of attention.
func (r Result) Ranked() []ScoreResult {
	out := make([]ScoreResult, len(r.AllScores))
	copy(out, r.AllScores)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// ScoreFor returns the score for id, or a zero result when absent.
func (r Result) ScoreFor(id chakra.ID) ScoreResult {
	for _, s := range r.AllScores {
		if s.CenterID == id {
			return s
		}
	}
	return ScoreResult{CenterID: id, MaxScore: MaxScore}
}

// percentage is round(raw/20*100). Not clamped: raw above MaxScore yields
// more than 100.
func percentage(raw int) int {
	return int(math.Round(float64(raw) / float64(MaxScore) * 100))
}
