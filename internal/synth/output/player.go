package output

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBuffer is the render period of a Player.
const DefaultBuffer = 20 * time.Millisecond

// Player pumps a Source into a Device on a fixed period.
type Player struct {
	src    Source
	dev    Device
	period time.Duration
	log    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	err    error
}

// NewPlayer creates a stopped player. A zero period uses DefaultBuffer.
func NewPlayer(src Source, dev Device, period time.Duration, logger *zap.Logger) *Player {
	if period <= 0 {
		period = DefaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{src: src, dev: dev, period: period, log: logger}
}

// Start launches the pump loop. It runs until ctx is cancelled, Close is
// called or the device fails.
func (p *Player) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.loop(ctx)
}

func (p *Player) loop(ctx context.Context) {
	defer p.wg.Done()

	frames := int(p.period.Seconds() * float64(p.src.SampleRate()))
	if frames < 1 {
		frames = 1
	}
	buf := make([]float32, 2*frames)
	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	for {
		p.src.Render(buf)
		if err := p.dev.Write(buf); err != nil {
			p.err = err
			p.log.Warn("audio device write failed; output stopped", zap.Error(err))
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close stops the loop, waits for it and closes the device. It returns the
// first device error seen.
func (p *Player) Close() error {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
		p.wg.Wait()
		if err := p.dev.Close(); err != nil && p.err == nil {
			p.err = err
		}
	})
	return p.err
}

// Drain renders d of audio from src into dst as fast as possible. It is the
// offline counterpart of Player.
func Drain(ctx context.Context, src Source, dst Device, d time.Duration) error {
	total := int(d.Seconds() * float64(src.SampleRate()))
	chunk := int(DefaultBuffer.Seconds() * float64(src.SampleRate()))
	buf := make([]float32, 2*chunk)
	for done := 0; done < total; done += chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(chunk, total-done)
		src.Render(buf[:2*n])
		if err := dst.Write(buf[:2*n]); err != nil {
			return err
		}
	}
	return nil
}
