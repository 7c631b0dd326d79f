package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/config"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/store"
)

var (
	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Chakra balance check and sound healing in your terminal",
	Long: `Aura walks you through a 28 question balance check, finds the energy
centers most in need of attention and plays their healing frequencies as
pure, binaural or layered tones.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AURA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/aura/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(centersCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config and builds the logger. The TUI writes logs to a
// file unless one is configured; everything else logs to stderr.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	opts := cfg.Logging()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Level = "debug"
	}
	if !cmd.HasParent() && opts.File == "" {
		opts.File = logging.DefaultFile()
	}
	l, _, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger = l
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then AURA_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	return store.ResolveDBPath(p, cfg.Store.Path)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return s, nil
}
