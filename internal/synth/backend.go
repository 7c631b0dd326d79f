package synth

import "time"

// Param is an automatable node parameter (frequency, gain, pan).
// Times are seconds on the backend's audio clock.
type Param interface {
	// Value returns the parameter value at the backend's current time.
	Value() float64

	// SetValueAtTime pins the value at time t, replacing any automation
	// scheduled from t onwards.
	SetValueAtTime(v, t float64)

	// LinearRampToValueAtTime ramps linearly from the previous set point to
	// v, arriving at time t.
	LinearRampToValueAtTime(v, t float64)
}

// Node is a vertex in the audio graph.
type Node interface {
	Connect(dst Node)
	Disconnect()
}

// Oscillator is a sine source.
type Oscillator interface {
	Node
	Frequency() Param
	Start(t float64)
	Stop(t float64)
}

// Gain scales its summed inputs.
type Gain interface {
	Node
	Gain() Param
}

// Panner places its input in the stereo field; -1 is hard left, 1 hard right.
type Panner interface {
	Node
	Pan() Param
}

// Backend is the platform audio graph the engine drives.
type Backend interface {
	CurrentTime() float64
	Suspended() bool
	Resume() error

	NewOscillator() Oscillator
	NewGain() Gain
	NewPanner() Panner
	Destination() Node
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay. The engine uses it to sequence
// teardown after a fade-out has finished.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallScheduler schedules callbacks on the wall clock.
type WallScheduler struct{}

func (WallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// rampTo re-aims p from its present value toward v over d seconds.
func rampTo(p Param, v, now, d float64) {
	p.SetValueAtTime(p.Value(), now)
	if d <= 0 {
		p.SetValueAtTime(v, now)
		return
	}
	p.LinearRampToValueAtTime(v, now+d)
}
