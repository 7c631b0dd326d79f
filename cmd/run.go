package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/app"
	"github.com/abhisek/aura/internal/insight"
	"github.com/abhisek/aura/internal/llm"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/store"
)

// runApp opens the store and audio, builds dependencies, and launches the TUI.
// A missing database or audio player degrades features instead of failing.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	deps := screen.Deps{
		Logger: logger,
		Mode:   cfg.Mode(),
		Volume: cfg.Audio.Volume,
		Breath: cfg.BreathPattern(),
	}

	var eventRepo store.EventRepo
	st, err := openStore(cmd)
	if err != nil {
		logger.Warn("store unavailable; history disabled", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Could not open database:", err)
		fmt.Fprintln(os.Stderr, "History will not be saved.")
	} else {
		defer st.Close()
		deps.Assessments = st.AssessmentRepo()
		deps.Meditations = st.MeditationRepo()
		eventRepo = st.EventRepo()
	}

	if llmCfg, ok := cfg.LLMConfig(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, eventRepo, logger)
		if err != nil {
			logger.Warn("LLM provider not configured", zap.Error(err))
		} else {
			deps.Insight = insight.NewService(provider, insight.DefaultConfig(), logger)
		}
	}

	engine, shutdown := engineOrSilent(ctx)
	defer shutdown()
	deps.Engine = engine

	return app.Run(deps)
}
