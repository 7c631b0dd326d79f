package soundbath

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/breath"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/synth"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond
	volumeStep   = 0.05

	// Sessions shorter than this are not worth a journal entry.
	minRecorded = 10 * time.Second
)

type tickMsg time.Time

type savedMsg struct{ err error }

// Screen plays a center's tone with a breathing guide alongside.
type Screen struct {
	deps screen.Deps
	now  func() time.Time

	selected int
	mode     synth.Mode
	volume   float64
	playing  bool
	current  chakra.ID // center the engine is sounding

	pacer     *breath.Pacer
	lastTick  time.Time
	startedAt time.Time     // first Play of this visit
	listened  time.Duration // closed listening spans
	spanStart time.Time     // open span while playing

	note   *components.TextInput
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BackCapturer = (*Screen)(nil)

// New opens the sound bath on center. With autoplay the tone starts as soon
// as the screen is shown.
func New(deps screen.Deps, center chakra.ID, autoplay bool) *Screen {
	deps = deps.WithDefaults()
	s := &Screen{
		deps:    deps,
		now:     time.Now,
		mode:    deps.Mode,
		volume:  deps.Volume,
		pacer:   breath.New(deps.Breath),
		current: center,
	}
	if c, ok := chakra.Lookup(center); ok {
		s.selected = c.Number - 1
	} else {
		s.selected = chakra.MustLookup(chakra.Heart).Number - 1
	}
	if autoplay {
		s.play()
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.lastTick = s.now()
	return tick()
}

func (s *Screen) Title() string {
	return "Sound Healing"
}

// CapturesBack is always true: leaving has to stop the tone and may ask
// for a note first.
func (s *Screen) CapturesBack() bool {
	return true
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.note != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Discard"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Center"},
		{Key: "Enter", Description: "Play"},
		{Key: "←→", Description: "Glide"},
		{Key: "m", Description: "Mode"},
		{Key: "+/-", Description: "Volume"},
		{Key: "s", Description: "Stop"},
		{Key: "q", Description: "Finish"},
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := s.now()
		if s.playing {
			s.pacer.Tick(now.Sub(s.lastTick))
		}
		s.lastTick = now
		return s, tick()

	case savedMsg:
		if msg.err != nil {
			s.deps.Log().Warn("save meditation failed", zap.Error(msg.err))
		}
		return s, router.Pop

	case tea.KeyMsg:
		if s.note != nil {
			return s.updateNote(msg)
		}
		return s.handleKey(msg)
	}

	if s.note != nil {
		var cmd tea.Cmd
		*s.note, cmd = s.note.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ids := chakra.All()

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(ids)-1 {
			s.selected++
		}
	case "enter", "space", "p":
		s.play()
	case "left", "h":
		s.glide(chakra.Prev(ids[s.selected]))
	case "right", "l":
		s.glide(chakra.Next(ids[s.selected]))
	case "m":
		s.mode = s.mode.Next()
		if s.playing {
			s.restart()
		}
	case "+", "=":
		s.setVolume(s.volume + volumeStep)
	case "-", "_":
		s.setVolume(s.volume - volumeStep)
	case "s":
		s.stop()
	case "q", "esc":
		return s, s.finish()
	}
	return s, nil
}

func (s *Screen) updateNote(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		note := s.note.Value()
		s.note = nil
		return s, s.save(note)
	case "esc":
		s.note = nil
		return s, router.Pop
	}
	var cmd tea.Cmd
	*s.note, cmd = s.note.Update(msg)
	return s, cmd
}

// play starts the selected center, replacing whatever is sounding.
func (s *Screen) play() {
	id := chakra.All()[s.selected]
	s.current = id
	s.restart()
}

func (s *Screen) restart() {
	if err := s.deps.Engine.Play(s.current, s.mode, s.volume); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	now := s.now()
	if s.startedAt.IsZero() {
		s.startedAt = now
	}
	if !s.playing {
		s.playing = true
		s.spanStart = now
		s.lastTick = now
	}
}

// glide moves the selection to id. While playing the sounding voices sweep
// to the new center instead of restarting.
func (s *Screen) glide(id chakra.ID) {
	c := chakra.MustLookup(id)
	s.selected = c.Number - 1
	if !s.playing {
		return
	}
	s.current = id
	if s.deps.Engine.Status().Phase != synth.PhasePlaying {
		// A replacement is still queued behind a fade-out; re-aim it.
		s.restart()
		return
	}
	s.deps.Engine.Transition(id, s.deps.Glide)
}

func (s *Screen) setVolume(v float64) {
	s.volume = min(max(v, 0), 1)
	s.deps.Engine.SetVolume(s.volume)
}

func (s *Screen) stop() {
	s.deps.Engine.Stop()
	if s.playing {
		s.listened += s.now().Sub(s.spanStart)
		s.playing = false
	}
}

// Listened returns the total time the tone has been playing on this screen.
func (s *Screen) Listened() time.Duration {
	d := s.listened
	if s.playing {
		d += s.now().Sub(s.spanStart)
	}
	return d
}

// finish stops the sound and either asks for a journal note or leaves.
func (s *Screen) finish() tea.Cmd {
	s.stop()
	if s.deps.Meditations == nil || s.listened < minRecorded {
		return router.Pop
	}
	ti := components.NewTextInput("How do you feel? (Enter to save, Esc to skip)", "a word or two…", 140)
	s.note = &ti
	return ti.Init()
}

func (s *Screen) save(note string) tea.Cmd {
	rec := &store.MeditationRecord{
		Center:    s.current,
		Mode:      string(s.mode),
		StartedAt: s.startedAt,
		Duration:  s.listened,
		Cycles:    s.pacer.Cycles(),
		Note:      note,
	}
	repo := s.deps.Meditations
	return func() tea.Msg {
		return savedMsg{err: repo.Save(context.Background(), rec)}
	}
}
