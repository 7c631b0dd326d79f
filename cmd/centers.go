package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

var centersCmd = &cobra.Command{
	Use:   "centers",
	Short: "List the seven energy centers and their frequencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-2s  %-10s  %-12s  %7s  %-8s  %-8s  %s\n",
			"#", "ID", "Sanskrit", "Hz", "Color", "Element", "Location")
		fmt.Println(strings.Repeat("─", 80))

		for _, c := range chakra.Centers() {
			fmt.Printf("%-2d  %-10s  %-12s  %7.0f  %-8s  %-8s  %s\n",
				c.Number, c.ID, c.Sanskrit, c.Frequency, c.Color, c.Element, c.Location)
		}
		return nil
	},
}

var centersShowCmd = &cobra.Command{
	Use:   "show <center>",
	Short: "Show everything known about one center",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := chakra.Parse(args[0])
		if err != nil {
			return err
		}
		c := chakra.MustLookup(id)
		msg := assessment.HealingMessage(id)

		fmt.Printf("%s (%s) · %s\n", c.Name, c.Sanskrit, assessment.Keyword(id))
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("Frequency:   %.0f Hz\n", c.Frequency)
		fmt.Printf("Element:     %s\n", c.Element)
		fmt.Printf("Location:    %s\n", c.Location)
		fmt.Printf("Color:       %s\n", c.Color)
		fmt.Printf("Body:        %s\n", strings.Join(c.BodyParts, ", "))
		fmt.Printf("Emotional:   %s\n", strings.Join(c.EmotionalAspects, ", "))
		fmt.Printf("Benefits:    %s\n", strings.Join(c.Benefits, ", "))
		fmt.Println()
		fmt.Printf("“%s”\n\n", c.Affirmation)
		fmt.Println(msg.Title)
		fmt.Println(msg.Body)
		return nil
	},
}

func init() {
	centersCmd.AddCommand(centersShowCmd)
}
