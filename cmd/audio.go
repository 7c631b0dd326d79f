package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/synth"
	"github.com/abhisek/aura/internal/synth/output"
	"github.com/abhisek/aura/internal/synth/soft"
)

// liveAudio is an engine rendering through the configured player.
type liveAudio struct {
	engine  *synth.Engine
	player  *output.Player
	release time.Duration
	log     *zap.Logger
}

// openAudio starts the player subprocess and the render loop. It returns
// output.ErrNoOutput when no player can be found.
//
// ctx bounds the render loop, and the audio clock only advances while it
// runs. Pass a context that outlives the user's stop request so shutdown
// can still render the fade out.
func openAudio(ctx context.Context) (*liveAudio, error) {
	dev, err := output.NewPipeDevice(output.PipeConfig{
		Command:    cfg.Audio.Player,
		Args:       cfg.Audio.PlayerArgs,
		SampleRate: cfg.Audio.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("audio output", zap.String("player", dev.Command()))

	return startAudio(ctx, soft.NewContext(cfg.Audio.SampleRate), dev, cfg.Buffer(), cfg.Engine(), logger), nil
}

// startAudio pumps sc into dev and builds an engine scheduled on sc.
func startAudio(ctx context.Context, sc *soft.Context, dev output.Device, period time.Duration,
	ecfg synth.Config, logger *zap.Logger) *liveAudio {
	player := output.NewPlayer(sc, dev, period, logger.Named("output"))
	player.Start(ctx)

	engine := synth.NewEngine(sc,
		synth.WithScheduler(sc),
		synth.WithConfig(ecfg),
		synth.WithLogger(logger.Named("synth")))
	return &liveAudio{engine: engine, player: player, release: ecfg.Release, log: logger}
}

// engineOrSilent returns a live engine, or a silent one when audio cannot
// be opened. The returned shutdown func is always safe to call.
func engineOrSilent(ctx context.Context) (*synth.Engine, func()) {
	a, err := openAudio(ctx)
	if err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		e := synth.NewEngine(nil, synth.WithLogger(logger.Named("synth")))
		return e, e.Close
	}
	return a.engine, a.shutdown
}

// shutdown fades out, waits for the release to finish and stops the
// player.
func (a *liveAudio) shutdown() {
	a.engine.Stop()
	select {
	case <-a.engine.Done():
	case <-time.After(a.release + time.Second):
		a.log.Warn("audio release timed out")
	}
	a.engine.Close()
	if err := a.player.Close(); err != nil {
		a.log.Warn("close audio output", zap.Error(err))
	}
}
