package synth

import (
	"errors"
	"sort"
	"time"
)

// fakeBackend is an in-memory Backend whose clock only moves when the test
// advances it.
type fakeBackend struct {
	now       float64
	suspended bool
	resumeErr error
	resumes   int

	oscs  []*fakeOsc
	gains []*fakeGain
	pans  []*fakePanner
	dest  *fakeNode
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{}
	b.dest = &fakeNode{}
	return b
}

func (b *fakeBackend) CurrentTime() float64 { return b.now }
func (b *fakeBackend) Suspended() bool      { return b.suspended }
func (b *fakeBackend) Resume() error {
	b.resumes++
	if b.resumeErr != nil {
		return b.resumeErr
	}
	b.suspended = false
	return nil
}

func (b *fakeBackend) NewOscillator() Oscillator {
	o := &fakeOsc{freq: &fakeParam{b: b}}
	b.oscs = append(b.oscs, o)
	return o
}

func (b *fakeBackend) NewGain() Gain {
	g := &fakeGain{gain: &fakeParam{b: b, v0: 1, v1: 1}}
	b.gains = append(b.gains, g)
	return g
}

func (b *fakeBackend) NewPanner() Panner {
	p := &fakePanner{pan: &fakeParam{b: b}}
	b.pans = append(b.pans, p)
	return p
}

func (b *fakeBackend) Destination() Node { return b.dest }

// connected returns oscillators still wired into the graph.
func (b *fakeBackend) connected() []*fakeOsc {
	var out []*fakeOsc
	for _, o := range b.oscs {
		if o.out != nil {
			out = append(out, o)
		}
	}
	return out
}

type fakeNode struct {
	out Node
}

func (n *fakeNode) Connect(dst Node) { n.out = dst }
func (n *fakeNode) Disconnect()      { n.out = nil }

type fakeParam struct {
	b      *fakeBackend
	t0, v0 float64
	t1, v1 float64
	ramps  int
}

func (p *fakeParam) Value() float64 {
	now := p.b.now
	switch {
	case now >= p.t1:
		return p.v1
	case now <= p.t0:
		return p.v0
	default:
		return p.v0 + (p.v1-p.v0)*(now-p.t0)/(p.t1-p.t0)
	}
}

func (p *fakeParam) SetValueAtTime(v, t float64) {
	p.t0, p.v0, p.t1, p.v1 = t, v, t, v
}

func (p *fakeParam) LinearRampToValueAtTime(v, t float64) {
	p.t0, p.v0 = p.t1, p.v1
	p.t1, p.v1 = t, v
	p.ramps++
}

// target is where the parameter is heading.
func (p *fakeParam) target() float64 { return p.v1 }

type fakeOsc struct {
	fakeNode
	freq    *fakeParam
	started bool
	stopped bool
}

func (o *fakeOsc) Frequency() Param { return o.freq }
func (o *fakeOsc) Start(float64)    { o.started = true }
func (o *fakeOsc) Stop(float64)     { o.stopped = true }

type fakeGain struct {
	fakeNode
	gain *fakeParam
}

func (g *fakeGain) Gain() Param { return g.gain }

type fakePanner struct {
	fakeNode
	pan *fakeParam
}

func (p *fakePanner) Pan() Param { return p.pan }

// fakeScheduler fires callbacks when the test advances time. It also moves
// the backend clock so ramps and timers stay in step.
type fakeScheduler struct {
	b      *fakeBackend
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{due: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward by d, firing due timers in order.
func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].due < s.timers[j].due })
		var next *fakeTimer
		for _, t := range s.timers {
			if !t.stopped && !t.fired && t.due <= end {
				next = t
				break
			}
		}
		if next == nil {
			break
		}
		s.set(next.due)
		next.fired = true
		next.f()
	}
	s.set(end)
}

func (s *fakeScheduler) set(d time.Duration) {
	s.now = d
	s.b.now = d.Seconds()
}

var errResume = errors.New("resume refused")
