package synth

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the timbre of a session.
type Mode string

const (
	ModePure     Mode = "pure"
	ModeBinaural Mode = "binaural"
	ModeLayered  Mode = "layered"
)

// ErrUnknownMode is returned for a mode outside pure/binaural/layered.
var ErrUnknownMode = errors.New("unknown synthesis mode")

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModePure, ModeBinaural, ModeLayered}
}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModePure, ModeBinaural, ModeLayered:
		return true
	}
	return false
}

// Next cycles pure -> binaural -> layered -> pure.
func (m Mode) Next() Mode {
	switch m {
	case ModePure:
		return ModeBinaural
	case ModeBinaural:
		return ModeLayered
	default:
		return ModePure
	}
}

// Voice is the role of one oscillator within a mode. Its frequency is always
// base*Multiplier + OffsetHz, so a glide to a new center keeps the role.
type Voice struct {
	Multiplier float64
	OffsetHz   float64
	Gain       float64 // relative to the session volume
	Pan        float64
	Panned     bool
}

// Frequency returns the voice frequency for a center base frequency.
func (v Voice) Frequency(base float64) float64 {
	return base*v.Multiplier + v.OffsetHz
}

// Voices returns the oscillator topology for m. beatHz is the right-ear
// offset used by binaural mode.
func Voices(m Mode, beatHz float64) []Voice {
	switch m {
	case ModeBinaural:
		return []Voice{
			{Multiplier: 1, Gain: 1, Pan: -1, Panned: true},
			{Multiplier: 1, OffsetHz: beatHz, Gain: 1, Pan: 1, Panned: true},
		}
	case ModeLayered:
		return []Voice{
			{Multiplier: 1, Gain: 1},
			{Multiplier: 2, Gain: 0.25},
			{Multiplier: 3, Gain: 0.10},
		}
	default:
		return []Voice{{Multiplier: 1, Gain: 1}}
	}
}
