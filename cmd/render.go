package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/synth"
	"github.com/abhisek/aura/internal/synth/output"
	"github.com/abhisek/aura/internal/synth/soft"
)

var renderCmd = &cobra.Command{
	Use:   "render [center]",
	Short: "Render healing tones to WAV files",
	Long: `Render one center, or every center with --all, to 16-bit stereo WAV files
named <center>-<mode>.wav in the output directory. Rendering runs offline,
faster than real time, and needs no audio player.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("all", false, "Render all seven centers")
	renderCmd.Flags().StringP("mode", "m", "", "Synthesis mode: pure, binaural or layered (default from config)")
	renderCmd.Flags().Float64P("volume", "V", -1, "Volume 0..1 (default from config)")
	renderCmd.Flags().Float64P("seconds", "s", 30, "Length of each file in seconds, including the fade out")
	renderCmd.Flags().StringP("out", "o", ".", "Output directory")
}

// renderJob describes one offline render.
type renderJob struct {
	Center     chakra.ID
	Mode       synth.Mode
	Volume     float64
	Length     time.Duration
	SampleRate int
	Engine     synth.Config
	Path       string
}

func runRender(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	seconds, _ := cmd.Flags().GetFloat64("seconds")
	outDir, _ := cmd.Flags().GetString("out")
	volume, _ := cmd.Flags().GetFloat64("volume")
	if volume < 0 {
		volume = cfg.Audio.Volume
	}
	mode, err := modeFlag(cmd)
	if err != nil {
		return err
	}
	if seconds <= 0 {
		return fmt.Errorf("--seconds must be positive")
	}

	var centers []chakra.ID
	switch {
	case all && len(args) > 0:
		return fmt.Errorf("use a center or --all, not both")
	case all:
		centers = chakra.All()
	case len(args) == 1:
		id, err := chakra.Parse(args[0])
		if err != nil {
			return err
		}
		centers = []chakra.ID{id}
	default:
		return fmt.Errorf("name a center or pass --all")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	jobs := make([]renderJob, len(centers))
	for i, id := range centers {
		jobs[i] = renderJob{
			Center:     id,
			Mode:       mode,
			Volume:     volume,
			Length:     time.Duration(seconds * float64(time.Second)),
			SampleRate: cfg.Audio.SampleRate,
			Engine:     cfg.Engine(),
			Path:       filepath.Join(outDir, fmt.Sprintf("%s-%s.wav", id, mode)),
		}
	}

	if err := renderAll(cmd.Context(), jobs, logger); err != nil {
		return err
	}
	for _, j := range jobs {
		fmt.Println(j.Path)
	}
	return nil
}

// renderAll runs jobs in parallel, one engine and context per job.
func renderAll(ctx context.Context, jobs []renderJob, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, j := range jobs {
		g.Go(func() error {
			if err := renderOne(ctx, j, logger); err != nil {
				return fmt.Errorf("render %s: %w", j.Center, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// renderOne plays the tone for Length minus the release, then stops and
// renders the fade out.
func renderOne(ctx context.Context, j renderJob, logger *zap.Logger) error {
	sc := soft.NewContext(j.SampleRate)
	engine := synth.NewEngine(sc,
		synth.WithScheduler(sc),
		synth.WithConfig(j.Engine),
		synth.WithLogger(logger.Named("synth")))
	defer engine.Close()

	wav, err := output.CreateWAV(j.Path, sc.SampleRate())
	if err != nil {
		return err
	}
	defer wav.Close()

	if err := engine.Play(j.Center, j.Mode, j.Volume); err != nil {
		return err
	}
	release := min(j.Engine.Release, j.Length)
	if err := output.Drain(ctx, sc, wav, j.Length-release); err != nil {
		return err
	}
	engine.Stop()
	if err := output.Drain(ctx, sc, wav, release); err != nil {
		return err
	}
	logger.Debug("rendered",
		zap.String("center", j.Center.String()),
		zap.String("path", j.Path),
		zap.Int("bytes", wav.DataSize()))
	return wav.Close()
}
