// Package soft is a pure-Go implementation of synth.Backend. It renders the
// audio graph into interleaved stereo float32 frames on demand; the clock
// advances only as frames are rendered.
package soft

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/aura/internal/synth"
)

// DefaultSampleRate is used when NewContext is given a non-positive rate.
const DefaultSampleRate = 48000

var (
	_ synth.Backend   = (*Context)(nil)
	_ synth.Scheduler = (*Context)(nil)
)

// Context owns the graph and the audio clock.
type Context struct {
	mu        sync.Mutex
	rate      float64
	frames    int64
	suspended bool
	dest      *node
	timers    []*timer
}

// NewContext creates a running context at sampleRate frames per second.
func NewContext(sampleRate int) *Context {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	c := &Context{rate: float64(sampleRate)}
	c.dest = &node{ctx: c}
	c.dest.proc = c.dest.mix
	return c
}

// SampleRate returns frames per second.
func (c *Context) SampleRate() int { return int(c.rate) }

// CurrentTime returns the clock in seconds.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 { return float64(c.frames) / c.rate }

// Suspended reports whether rendering is paused.
func (c *Context) Suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspended
}

// Suspend pauses the clock. Render then produces silence.
func (c *Context) Suspend() {
	c.mu.Lock()
	c.suspended = true
	c.mu.Unlock()
}

// Resume restarts the clock.
func (c *Context) Resume() error {
	c.mu.Lock()
	c.suspended = false
	c.mu.Unlock()
	return nil
}

// Destination is the graph sink.
func (c *Context) Destination() synth.Node { return c.dest }

// NewOscillator creates a stopped sine oscillator at 440 Hz.
func (c *Context) NewOscillator() synth.Oscillator {
	o := &oscillator{
		node:   node{ctx: c},
		freq:   newParam(c, 440),
		startT: math.Inf(1),
		stopT:  math.Inf(1),
	}
	o.proc = o.process
	return o
}

// NewGain creates a unity gain node.
func (c *Context) NewGain() synth.Gain {
	g := &gain{node: node{ctx: c}, gain: newParam(c, 1)}
	g.proc = g.process
	return g
}

// NewPanner creates a centred equal-power panner.
func (c *Context) NewPanner() synth.Panner {
	p := &panner{node: node{ctx: c}, pan: newParam(c, 0)}
	p.proc = p.process
	return p
}

// Render fills buf with interleaved stereo frames (L, R, L, R, ...) and
// advances the clock by len(buf)/2 frames. It returns the number of frames
// written. A suspended context writes silence and keeps its time.
func (c *Context) Render(buf []float32) int {
	n := len(buf) / 2
	c.mu.Lock()
	if c.suspended {
		c.mu.Unlock()
		clear(buf[:n*2])
		return n
	}
	for i := 0; i < n; i++ {
		t := float64(c.frames+int64(i)) / c.rate
		l, r := c.dest.proc(t)
		buf[2*i] = float32(clampSample(l))
		buf[2*i+1] = float32(clampSample(r))
	}
	c.frames += int64(n)
	due := c.dueTimers()
	c.mu.Unlock()

	// Callbacks run unlocked; they usually touch the graph.
	for _, t := range due {
		t.f()
	}
	return n
}

type timer struct {
	c   *Context
	due float64
	f   func()
}

func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	for i, x := range t.c.timers {
		if x == t {
			t.c.timers = append(t.c.timers[:i], t.c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// AfterFunc runs f once d of audio time has been rendered. It lets the
// context act as a synth.Scheduler for offline rendering.
func (c *Context) AfterFunc(d time.Duration, f func()) synth.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{c: c, due: c.now() + d.Seconds(), f: f}
	c.timers = append(c.timers, t)
	return t
}

// dueTimers removes and returns expired timers in due order. Caller holds mu.
func (c *Context) dueTimers() []*timer {
	now := c.now()
	var due, keep []*timer
	for _, t := range c.timers {
		if t.due <= now {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	c.timers = keep
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	return due
}

func clampSample(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// graphNode is implemented by every node this package creates.
type graphNode interface {
	base() *node
}

type node struct {
	ctx    *Context
	out    *node
	inputs []*node
	proc   func(t float64) (l, r float64)
}

func (n *node) base() *node { return n }

// Connect routes n's output into dst. A node feeds at most one destination;
// connecting again moves it. Nodes from another backend are ignored.
func (n *node) Connect(dst synth.Node) {
	g, ok := dst.(graphNode)
	if !ok {
		return
	}
	d := g.base()
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	n.detach()
	n.out = d
	d.inputs = append(d.inputs, n)
}

// Disconnect removes n's output connection.
func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	n.detach()
}

func (n *node) detach() {
	if n.out == nil {
		return
	}
	ins := n.out.inputs
	for i, in := range ins {
		if in == n {
			n.out.inputs = append(ins[:i], ins[i+1:]...)
			break
		}
	}
	n.out = nil
}

// mix sums the inputs at time t.
func (n *node) mix(t float64) (l, r float64) {
	for _, in := range n.inputs {
		il, ir := in.proc(t)
		l += il
		r += ir
	}
	return l, r
}

type oscillator struct {
	node
	freq   *param
	phase  float64
	startT float64
	stopT  float64
}

func (o *oscillator) Frequency() synth.Param { return o.freq }

func (o *oscillator) Start(t float64) {
	o.ctx.mu.Lock()
	o.startT = t
	o.ctx.mu.Unlock()
}

func (o *oscillator) Stop(t float64) {
	o.ctx.mu.Lock()
	o.stopT = t
	o.ctx.mu.Unlock()
}

func (o *oscillator) process(t float64) (float64, float64) {
	if t < o.startT || t >= o.stopT {
		return 0, 0
	}
	v := math.Sin(2 * math.Pi * o.phase)
	o.phase += o.freq.at(t) / o.ctx.rate
	o.phase -= math.Floor(o.phase)
	return v, v
}

type gain struct {
	node
	gain *param
}

func (g *gain) Gain() synth.Param { return g.gain }

func (g *gain) process(t float64) (float64, float64) {
	l, r := g.mix(t)
	k := g.gain.at(t)
	return l * k, r * k
}

type panner struct {
	node
	pan *param
}

func (p *panner) Pan() synth.Param { return p.pan }

// process folds the input to mono and spreads it with equal-power gains.
func (p *panner) process(t float64) (float64, float64) {
	l, r := p.mix(t)
	m := (l + r) / 2
	x := (clampPan(p.pan.at(t)) + 1) / 2
	return m * math.Cos(x*math.Pi/2), m * math.Sin(x*math.Pi/2)
}

func clampPan(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
