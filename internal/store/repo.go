package store

import (
	"context"
	"time"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AssessmentRecord is a completed assessment.
type AssessmentRecord struct {
	ID        string
	Sequence  int64
	TakenAt   time.Time
	Primary   chakra.ID
	Secondary chakra.ID
	Scores    []assessment.ScoreResult
	Answers   []assessment.Answer
}

// Result rebuilds the scoring result from the stored scores.
func (r *AssessmentRecord) Result() assessment.Result {
	res := assessment.Result{AllScores: r.Scores}
	for _, s := range r.Scores {
		switch s.CenterID {
		case r.Primary:
			res.Primary = s
		case r.Secondary:
			res.Secondary = s
		}
	}
	return res
}

// AssessmentRepo stores assessment results.
type AssessmentRepo interface {
	// Save stores rec, assigning ID, Sequence and TakenAt when unset.
	Save(ctx context.Context, rec *AssessmentRecord) error

	// Latest returns the most recent assessment, or nil if none exist.
	Latest(ctx context.Context) (*AssessmentRecord, error)

	// List returns assessments newest first.
	List(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error)
}

// MeditationRecord is one finished sound session.
type MeditationRecord struct {
	ID        string
	Sequence  int64
	Center    chakra.ID
	Mode      string
	StartedAt time.Time
	Duration  time.Duration
	Cycles    int // completed breathing cycles
	Note      string
}

// MeditationRepo stores sound sessions.
type MeditationRepo interface {
	Save(ctx context.Context, rec *MeditationRecord) error

	// List returns sessions newest first.
	List(ctx context.Context, opts QueryOpts) ([]MeditationRecord, error)

	// TotalDuration sums every recorded session.
	TotalDuration(ctx context.Context) (time.Duration, error)

	// Streak counts consecutive days with at least one session, ending
	// today or yesterday relative to now (in now's location).
	Streak(ctx context.Context, now time.Time) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
