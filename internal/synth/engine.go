package synth

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/chakra"
)

// Phase is the engine's session state.
type Phase int

const (
	PhaseIdle     Phase = iota // No graph connected
	PhasePlaying               // Graph live (possibly still fading in)
	PhaseStopping              // Master fading out; teardown scheduled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Config holds envelope timing for the engine.
type Config struct {
	Attack     time.Duration // master fade-in on Play
	Release    time.Duration // master fade-out before teardown
	VolumeRamp time.Duration // SetVolume smoothing
	BeatHz     float64       // binaural right-ear offset
}

// DefaultConfig returns the standard envelope: 2s in, 1s out, 100ms volume
// ramps and a 7 Hz binaural beat.
func DefaultConfig() Config {
	return Config{
		Attack:     2 * time.Second,
		Release:    1 * time.Second,
		VolumeRamp: 100 * time.Millisecond,
		BeatHz:     7,
	}
}

// Status is a point-in-time view of the engine.
type Status struct {
	Phase       Phase
	Center      chakra.ID
	Mode        Mode
	Volume      float64
	Voices      int
	Frequencies []float64
	Pending     bool // a Play is queued behind the current fade-out
}

type voice struct {
	role Voice
	osc  Oscillator
	gain Gain
	pan  Panner
}

type session struct {
	center chakra.ID
	mode   Mode
	volume float64
	master Gain
	voices []*voice
}

type playRequest struct {
	center chakra.ID
	mode   Mode
	volume float64
}

// Engine owns at most one live synthesis graph. All methods are safe to
// call in any order; calls with nothing to act on are no-ops.
type Engine struct {
	mu      sync.Mutex
	backend Backend
	sched   Scheduler
	cfg     Config
	log     *zap.Logger

	phase    Phase
	live     *session
	fading   *session
	teardown Timer
	pending  *playRequest
	idle     chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler overrides the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithConfig overrides the envelope timing.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates an engine over backend. A nil backend means the platform
// has no audio output; every operation then logs and does nothing.
func NewEngine(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		sched:   WallScheduler{},
		cfg:     DefaultConfig(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if backend == nil {
		e.log.Warn("audio output unavailable; sound disabled")
	}
	return e
}

// Available reports whether the engine has an audio backend.
func (e *Engine) Available() bool {
	return e.backend != nil
}

// Play starts sound for center in mode at volume (clamped to [0,1]). An
// active session is faded out and torn down first; the new graph is built
// once the teardown has run.
func (e *Engine) Play(center chakra.ID, mode Mode, volume float64) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.backend == nil {
		e.log.Debug("play ignored: no audio output", zap.String("center", center.String()))
		return nil
	}
	if e.backend.Suspended() {
		if err := e.backend.Resume(); err != nil {
			e.log.Warn("resume audio backend", zap.Error(err))
			return nil
		}
	}

	req := &playRequest{center: center, mode: mode, volume: clamp01(volume)}

	switch e.phase {
	case PhaseIdle:
		e.start(req)
	case PhasePlaying:
		e.pending = req
		e.beginRelease()
	case PhaseStopping:
		e.pending = req
	}
	return nil
}

// Transition glides every oscillator toward center's frequencies over d.
// Mode, gains and graph shape are unchanged. No-op unless playing.
func (e *Engine) Transition(center chakra.ID, d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePlaying || e.live == nil {
		return
	}

	now := e.backend.CurrentTime()
	base := chakra.Frequency(center)
	for _, v := range e.live.voices {
		rampTo(v.osc.Frequency(), v.role.Frequency(base), now, d.Seconds())
	}
	e.live.center = center
	e.log.Debug("transition",
		zap.String("center", center.String()),
		zap.Duration("duration", d))
}

// SetVolume re-aims the master gain at volume (clamped to [0,1]) over the
// short volume ramp. No-op unless playing.
func (e *Engine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePlaying || e.live == nil {
		return
	}
	volume = clamp01(volume)
	rampTo(e.live.master.Gain(), volume, e.backend.CurrentTime(), e.cfg.VolumeRamp.Seconds())
	e.live.volume = volume
}

// Stop fades the master gain to silence and tears the graph down once the
// fade completes. A queued Play is cancelled. Calling Stop while idle or
// while a teardown is already in flight does nothing more.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case PhasePlaying:
		e.pending = nil
		e.beginRelease()
	case PhaseStopping:
		e.pending = nil
	}
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{Phase: e.phase, Pending: e.pending != nil}
	s := e.live
	if s == nil {
		s = e.fading
	}
	if s == nil {
		return st
	}
	st.Center = s.center
	st.Mode = s.mode
	st.Volume = s.volume
	st.Voices = len(s.voices)
	for _, v := range s.voices {
		st.Frequencies = append(st.Frequencies, v.osc.Frequency().Value())
	}
	return st
}

// Done returns a channel closed when the engine next becomes idle. The
// returned channel is already closed if the engine is idle now.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.idle == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return e.idle
}

// Close tears everything down immediately, without a fade. Use only on exit
// after Stop has had its chance to fade out.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.teardown != nil {
		e.teardown.Stop()
		e.teardown = nil
	}
	e.pending = nil
	e.disconnect(e.fading)
	e.disconnect(e.live)
	e.fading, e.live = nil, nil
	e.setIdle()
}

// start builds and connects a new graph. Caller holds mu.
func (e *Engine) start(req *playRequest) {
	b := e.backend
	now := b.CurrentTime()
	base := chakra.Frequency(req.center)

	master := b.NewGain()
	master.Gain().SetValueAtTime(0, now)
	master.Gain().LinearRampToValueAtTime(req.volume, now+e.cfg.Attack.Seconds())
	master.Connect(b.Destination())

	s := &session{center: req.center, mode: req.mode, volume: req.volume, master: master}
	for _, role := range Voices(req.mode, e.cfg.BeatHz) {
		v := &voice{role: role, osc: b.NewOscillator(), gain: b.NewGain()}
		v.osc.Frequency().SetValueAtTime(role.Frequency(base), now)
		v.gain.Gain().SetValueAtTime(role.Gain, now)
		v.osc.Connect(v.gain)
		if role.Panned {
			v.pan = b.NewPanner()
			v.pan.Pan().SetValueAtTime(role.Pan, now)
			v.gain.Connect(v.pan)
			v.pan.Connect(master)
		} else {
			v.gain.Connect(master)
		}
		v.osc.Start(now)
		s.voices = append(s.voices, v)
	}

	e.live = s
	e.phase = PhasePlaying
	if e.idle == nil {
		e.idle = make(chan struct{})
	}
	e.log.Info("sound started",
		zap.String("center", req.center.String()),
		zap.String("mode", string(req.mode)),
		zap.Float64("volume", req.volume),
		zap.Int("voices", len(s.voices)))
}

// beginRelease fades the live graph out and schedules its teardown. Caller
// holds mu.
func (e *Engine) beginRelease() {
	s := e.live
	if s == nil {
		return
	}
	release := e.cfg.Release
	rampTo(s.master.Gain(), 0, e.backend.CurrentTime(), release.Seconds())

	e.live = nil
	e.fading = s
	e.phase = PhaseStopping
	e.teardown = e.sched.AfterFunc(release, func() { e.finishRelease(s) })
}

func (e *Engine) finishRelease(s *session) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fading != s {
		return
	}
	e.disconnect(s)
	e.fading = nil
	e.teardown = nil
	e.log.Info("sound stopped", zap.String("center", s.center.String()))

	if req := e.pending; req != nil {
		e.pending = nil
		e.start(req)
		return
	}
	e.phase = PhaseIdle
	e.setIdle()
}

// disconnect stops every oscillator and unhooks every node of s.
func (e *Engine) disconnect(s *session) {
	if s == nil {
		return
	}
	now := e.backend.CurrentTime()
	for _, v := range s.voices {
		v.osc.Stop(now)
		v.osc.Disconnect()
		v.gain.Disconnect()
		if v.pan != nil {
			v.pan.Disconnect()
		}
	}
	s.master.Disconnect()
	s.voices = nil
}

func (e *Engine) setIdle() {
	e.phase = PhaseIdle
	if e.idle != nil {
		close(e.idle)
		e.idle = nil
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
