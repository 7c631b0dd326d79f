package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/synth"
	"github.com/abhisek/aura/internal/synth/output"
)

// Sessions shorter than this are not recorded.
const minRecordedSession = 10 * time.Second

var playCmd = &cobra.Command{
	Use:   "play <center>",
	Short: "Play a center's healing frequency",
	Long: `Play a center's frequency through the configured audio player until
--duration elapses or Ctrl+C is pressed. The tone fades in and out.

Centers: root, sacral, solar, heart, throat, third-eye, crown (Sanskrit
names work too).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringP("mode", "m", "", "Synthesis mode: pure, binaural or layered (default from config)")
	playCmd.Flags().Float64P("volume", "V", -1, "Volume 0..1 (default from config)")
	playCmd.Flags().DurationP("duration", "d", 0, "Stop after this long (0 plays until interrupted)")
	playCmd.Flags().Bool("no-record", false, "Do not save the session to history")
}

func runPlay(cmd *cobra.Command, args []string) error {
	center, err := chakra.Parse(args[0])
	if err != nil {
		return err
	}
	mode, err := modeFlag(cmd)
	if err != nil {
		return err
	}
	volume, _ := cmd.Flags().GetFloat64("volume")
	if volume < 0 {
		volume = cfg.Audio.Volume
	}
	duration, _ := cmd.Flags().GetDuration("duration")
	noRecord, _ := cmd.Flags().GetBool("no-record")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The render loop runs on the command context. The signal only ends the
	// wait, so shutdown can still play the fade out.
	audio, err := openAudio(cmd.Context())
	if errors.Is(err, output.ErrNoOutput) {
		return fmt.Errorf("%w: install aplay, paplay or ffplay, or set audio.player in the config", err)
	}
	if err != nil {
		return err
	}

	c := chakra.MustLookup(center)
	if err := audio.engine.Play(center, mode, volume); err != nil {
		audio.shutdown()
		return err
	}
	started := time.Now()
	fmt.Fprintf(os.Stderr, "Playing %s (%s) at %.0f Hz, %s mode. Ctrl+C to stop.\n",
		c.Name, c.Sanskrit, c.Frequency, mode)

	listen(ctx, audio, duration)
	listened := time.Since(started)

	if noRecord || listened < minRecordedSession {
		return nil
	}
	s, err := openStore(cmd)
	if err != nil {
		logger.Warn("session not recorded", zap.Error(err))
		return nil
	}
	defer s.Close()
	rec := &store.MeditationRecord{
		Center:    center,
		Mode:      string(mode),
		StartedAt: started,
		Duration:  listened,
	}
	if err := s.MeditationRepo().Save(cmd.Context(), rec); err != nil {
		logger.Warn("session not recorded", zap.Error(err))
		return nil
	}
	fmt.Fprintf(os.Stderr, "Recorded %s of listening.\n", listened.Round(time.Second))
	return nil
}

// listen waits for ctx to end or d to elapse (d <= 0 waits for ctx only),
// then fades out and stops the audio.
func listen(ctx context.Context, a *liveAudio, d time.Duration) {
	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case <-ctx.Done():
	case <-timeout:
	}

	fmt.Fprintln(os.Stderr, "Fading out...")
	a.shutdown()
}

// modeFlag reads --mode, falling back to the configured default.
func modeFlag(cmd *cobra.Command) (synth.Mode, error) {
	v, _ := cmd.Flags().GetString("mode")
	if v == "" {
		return cfg.Mode(), nil
	}
	return synth.ParseMode(v)
}
