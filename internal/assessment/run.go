package assessment

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/aura/internal/chakra"
)

// Phase is the current phase of an assessment run.
type Phase int

const (
	PhaseIntro      Phase = iota // Not started
	PhaseInProgress              // Presenting questions
	PhaseComplete                // Result computed
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Run tracks one pass through the questionnaire. Answers are keyed by
// question id, so answering a question again replaces the earlier value and
// moving back never discards anything.
type Run struct {
	questions []chakra.Question
	index     int
	answers   map[string]Answer
	phase     Phase
	result    *Result

	StartedAt   time.Time
	CompletedAt time.Time
}

// NewRun creates a run over a freshly shuffled copy of the question set.
func NewRun(rng *rand.Rand) *Run {
	return NewRunWithQuestions(Shuffle(chakra.Questions(), rng))
}

// NewRunWithQuestions creates a run presenting qs in the given order.
func NewRunWithQuestions(qs []chakra.Question) *Run {
	return &Run{
		questions: qs,
		answers:   make(map[string]Answer, len(qs)),
	}
}

// Start leaves the intro phase. Calling Start again is a no-op.
func (r *Run) Start() {
	if r.phase != PhaseIntro {
		return
	}
	r.phase = PhaseInProgress
	r.StartedAt = time.Now()
	if len(r.questions) == 0 {
		r.complete()
	}
}

// Phase returns the current phase.
func (r *Run) Phase() Phase {
	return r.phase
}

// Current returns the question being presented.
func (r *Run) Current() (chakra.Question, bool) {
	if r.phase != PhaseInProgress || r.index >= len(r.questions) {
		return chakra.Question{}, false
	}
	return r.questions[r.index], true
}

// Index returns the zero-based presentation position.
func (r *Run) Index() int {
	return r.index
}

// Total returns the number of questions in this run.
func (r *Run) Total() int {
	return len(r.questions)
}

// Progress returns the fraction of questions answered (0..1).
func (r *Run) Progress() float64 {
	if len(r.questions) == 0 {
		return 1
	}
	return float64(len(r.answers)) / float64(len(r.questions))
}

// Previous returns the value recorded for the current question, if any.
func (r *Run) Previous() (int, bool) {
	q, ok := r.Current()
	if !ok {
		return 0, false
	}
	a, ok := r.answers[q.ID]
	return a.Value, ok
}

// Answer records value for the current question and advances. Answering the
// last question computes the result and completes the run. Returns false
// when no question is active.
func (r *Run) Answer(value int) bool {
	q, ok := r.Current()
	if !ok {
		return false
	}
	r.answers[q.ID] = Answer{QuestionID: q.ID, CenterID: q.CenterID, Value: value}

	if r.index == len(r.questions)-1 {
		r.complete()
		return true
	}
	r.index++
	return true
}

// Back moves to the previous question without discarding any answer.
// Returns false at the first question.
func (r *Run) Back() bool {
	if r.phase != PhaseInProgress || r.index == 0 {
		return false
	}
	r.index--
	return true
}

// Answers returns the recorded answers in presentation order.
func (r *Run) Answers() []Answer {
	out := make([]Answer, 0, len(r.answers))
	for _, q := range r.questions {
		if a, ok := r.answers[q.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Result returns the computed result once the run is complete.
func (r *Run) Result() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

func (r *Run) complete() {
	res := Score(r.Answers())
	r.result = &res
	r.phase = PhaseComplete
	r.CompletedAt = time.Now()
}
