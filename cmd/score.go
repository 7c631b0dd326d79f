package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a set of answers without the TUI",
	Long: `Score reads Likert answers (1-5) from a YAML or JSON file, or stdin with
--answers -, and prints every center ranked from most to least in need of
attention.

  root-1: 4
  root-2: 3
  sacral-1: 5
  ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("answers")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")

		answers, err := readAnswers(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		result := assessment.Score(answers)

		if save {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			rec := &store.AssessmentRecord{
				Primary:   result.Primary.CenterID,
				Secondary: result.Secondary.CenterID,
				Scores:    result.AllScores,
				Answers:   answers,
			}
			if err := s.AssessmentRepo().Save(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved assessment %s\n", rec.ID)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printResult(result)
		return nil
	},
}

func printResult(result assessment.Result) {
	fmt.Printf("%-4s  %-10s  %5s  %4s  %s\n", "Rank", "Center", "Score", "%", "")
	fmt.Println(strings.Repeat("─", 60))
	for i, s := range result.Ranked() {
		fmt.Printf("%-4d  %-10s  %2d/%-2d  %3d%%  %s\n",
			i+1, s.CenterID, s.Score, s.MaxScore, s.Percentage, bar(s.Percentage, 30))
	}

	primary := chakra.MustLookup(result.Primary.CenterID)
	secondary := chakra.MustLookup(result.Secondary.CenterID)
	msg := assessment.HealingMessage(primary.ID)

	fmt.Println()
	fmt.Printf("Needs attention: %s (%s), %.0f Hz\n", primary.Name, primary.Sanskrit, primary.Frequency)
	fmt.Printf("Then:            %s (%s), %.0f Hz\n", secondary.Name, secondary.Sanskrit, secondary.Frequency)
	fmt.Println()
	fmt.Println(msg.Title)
	fmt.Println(msg.Body)
}

// bar renders pct (clamped to [0,100]) as a width-wide block bar.
func bar(pct, width int) string {
	pct = max(0, min(100, pct))
	n := pct * width / 100
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func init() {
	scoreCmd.Flags().StringP("answers", "a", "", "Answers file (YAML or JSON), or - for stdin (required)")
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
	scoreCmd.Flags().Bool("save", false, "Save the assessment to the database")
	_ = scoreCmd.MarkFlagRequired("answers")
}
