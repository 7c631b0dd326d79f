package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/breath"
	"github.com/abhisek/aura/internal/insight"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/synth"
)

// Deps carries the services screens share. Any repo may be nil when the
// store could not be opened; screens degrade instead of failing.
type Deps struct {
	Engine      *synth.Engine
	Assessments store.AssessmentRepo
	Meditations store.MeditationRepo
	Insight     *insight.Service
	Logger      *zap.Logger

	Mode   synth.Mode
	Volume float64
	Breath breath.Pattern
	Glide  time.Duration
}

// Log returns the logger or a no-op one.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// WithDefaults fills zero fields with the standard settings.
func (d Deps) WithDefaults() Deps {
	if !d.Mode.Valid() {
		d.Mode = synth.ModePure
	}
	if d.Volume <= 0 {
		d.Volume = 0.5
	}
	if d.Breath.Total() <= 0 {
		d.Breath = breath.DefaultPattern()
	}
	if d.Glide <= 0 {
		d.Glide = 3 * time.Second
	}
	if d.Engine == nil {
		d.Engine = synth.NewEngine(nil, synth.WithLogger(d.Logger))
	}
	return d
}
