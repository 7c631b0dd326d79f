package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/insight"
	"github.com/abhisek/aura/internal/llm"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Preview the reflection for a set of answers (no database)",
	Long: `Score an answers file and print the personalized reflection the result
screen would show.

This is a stateless developer tool: nothing is saved and LLM calls are not
logged to the database. Without a configured provider, or with --offline,
the built-in reflection is printed.`,
	Args: cobra.NoArgs,
	RunE: runReflect,
}

func init() {
	reflectCmd.Flags().StringP("answers", "a", "", "Answers file (YAML or JSON), or - for stdin (required)")
	reflectCmd.Flags().Bool("offline", false, "Skip the LLM and print the built-in reflection")
	_ = reflectCmd.MarkFlagRequired("answers")
}

func runReflect(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("answers")
	offline, _ := cmd.Flags().GetBool("offline")

	answers, err := readAnswers(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	result := assessment.Score(answers)

	// No EventRepo: logging to the database is skipped.
	var provider llm.Provider
	if llmCfg, ok := cfg.LLMConfig(); ok && !offline {
		provider, err = llm.NewProvider(cmd.Context(), llmCfg, nil, logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Asking %s...\n\n", provider.ModelID())
	}

	svc := insight.NewService(provider, insight.DefaultConfig(), logger)
	r, err := svc.Reflect(cmd.Context(), result)
	if err != nil {
		logger.Warn("reflection failed; using built-in text", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Reflection failed:", err)
	}

	fmt.Printf("── %s ──\n", r.Title)
	fmt.Println(r.Body)
	fmt.Println()
	for _, p := range r.Practices {
		fmt.Printf("  • %s\n", p)
	}
	fmt.Println()
	fmt.Printf("“%s”\n", r.Affirmation)
	fmt.Printf("\n(%s, %s)\n", r.Center, strings.ToUpper(string(r.Source)))
	return nil
}
