package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past assessments and sound sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		ctx := cmd.Context()

		assessments, err := s.AssessmentRepo().List(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		meditations, err := s.MeditationRepo().List(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		total, err := s.MeditationRepo().TotalDuration(ctx)
		if err != nil {
			return err
		}
		streak, err := s.MeditationRepo().Streak(ctx, time.Now())
		if err != nil {
			return err
		}

		fmt.Println("Assessments")
		fmt.Println(strings.Repeat("─", 72))
		if len(assessments) == 0 {
			fmt.Println("No assessments yet. Run `aura` to take one.")
		} else {
			fmt.Printf("%-16s  %-10s  %-10s  %s\n", "Taken", "Primary", "Secondary", "Scores (root → crown)")
			for _, a := range assessments {
				pcts := make([]string, len(a.Scores))
				for i, sc := range a.Scores {
					pcts[i] = fmt.Sprintf("%3d", sc.Percentage)
				}
				fmt.Printf("%-16s  %-10s  %-10s  %s\n",
					a.TakenAt.Local().Format("2006-01-02 15:04"), a.Primary, a.Secondary,
					strings.Join(pcts, " "))
			}
		}

		fmt.Println()
		fmt.Println("Sound sessions")
		fmt.Println(strings.Repeat("─", 72))
		if len(meditations) == 0 {
			fmt.Println("No sessions yet.")
		} else {
			fmt.Printf("%-16s  %-10s  %-9s  %8s  %s\n", "Started", "Center", "Mode", "Length", "Note")
			for _, m := range meditations {
				fmt.Printf("%-16s  %-10s  %-9s  %8s  %s\n",
					m.StartedAt.Local().Format("2006-01-02 15:04"), m.Center, m.Mode,
					m.Duration.Round(time.Second), truncate(m.Note, 30))
			}
		}

		fmt.Println()
		fmt.Printf("Total listening: %s · Streak: %d day(s)\n", total.Round(time.Minute), streak)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Rows to show per section")
}
