// Package breath paces a guided breathing cycle alongside a sound session.
package breath

import "time"

// Phase is one step of the breathing cycle.
type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
	Rest
	numPhases
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "Breathe in"
	case Hold:
		return "Hold"
	case Exhale:
		return "Breathe out"
	case Rest:
		return "Rest"
	default:
		return "unknown"
	}
}

// Pattern holds the length of each phase. Zero-length phases are skipped.
type Pattern struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
	Rest   time.Duration
}

// DefaultPattern is a slow 4-4-6-2 cycle.
func DefaultPattern() Pattern {
	return Pattern{
		Inhale: 4 * time.Second,
		Hold:   4 * time.Second,
		Exhale: 6 * time.Second,
		Rest:   2 * time.Second,
	}
}

// Total returns the length of one full cycle.
func (p Pattern) Total() time.Duration {
	return p.Inhale + p.Hold + p.Exhale + p.Rest
}

func (p Pattern) length(ph Phase) time.Duration {
	switch ph {
	case Inhale:
		return p.Inhale
	case Hold:
		return p.Hold
	case Exhale:
		return p.Exhale
	case Rest:
		return p.Rest
	}
	return 0
}

// Pacer tracks progress through a Pattern. The zero value is not usable;
// create one with New.
type Pacer struct {
	pattern Pattern
	phase   Phase
	elapsed time.Duration
	cycles  int
}

// New returns a pacer at the start of its first usable phase.
func New(p Pattern) *Pacer {
	pc := &Pacer{pattern: p}
	pc.Reset()
	return pc
}

// Reset returns to the beginning of the cycle.
func (p *Pacer) Reset() {
	p.phase = Inhale
	p.elapsed = 0
	p.cycles = 0
	if p.pattern.Total() > 0 && p.pattern.length(p.phase) <= 0 {
		p.advance()
		p.cycles = 0
	}
}

// Tick advances the pacer by dt, crossing as many phase boundaries as dt
// spans. A pattern with no positive phase never moves.
func (p *Pacer) Tick(dt time.Duration) {
	if dt <= 0 || p.pattern.Total() <= 0 {
		return
	}
	// Whole cycles need no stepping.
	total := p.pattern.Total()
	p.cycles += int(dt / total)
	dt %= total

	p.elapsed += dt
	for p.elapsed >= p.pattern.length(p.phase) {
		p.elapsed -= p.pattern.length(p.phase)
		p.advance()
	}
}

// advance moves to the next phase with positive length.
func (p *Pacer) advance() {
	for range numPhases {
		p.phase = (p.phase + 1) % numPhases
		if p.phase == Inhale {
			p.cycles++
		}
		if p.pattern.length(p.phase) > 0 {
			return
		}
	}
}

// Phase returns the current phase.
func (p *Pacer) Phase() Phase { return p.phase }

// Progress returns how far through the current phase the pacer is, in [0,1).
func (p *Pacer) Progress() float64 {
	l := p.pattern.length(p.phase)
	if l <= 0 {
		return 0
	}
	return float64(p.elapsed) / float64(l)
}

// Remaining returns the time left in the current phase.
func (p *Pacer) Remaining() time.Duration {
	return p.pattern.length(p.phase) - p.elapsed
}

// Cycles returns the number of completed cycles.
func (p *Pacer) Cycles() int { return p.cycles }

// Pattern returns the pacer's pattern.
func (p *Pacer) Pattern() Pattern { return p.pattern }
