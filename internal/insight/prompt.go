package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

const systemPrompt = `You are a calm, grounded meditation guide. You write short, kind reflections for someone who just completed a chakra balance questionnaire. You never diagnose or give medical advice.`

func buildUserMessage(result assessment.Result) string {
	var b strings.Builder

	primary := chakra.MustLookup(result.Primary.CenterID)
	secondary := chakra.MustLookup(result.Secondary.CenterID)

	fmt.Fprintf(&b, "Primary center needing attention: %s (%s), %d%%\n",
		primary.Name, primary.Sanskrit, result.Primary.Percentage)
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(primary.EmotionalAspects, ", "))
	fmt.Fprintf(&b, "Secondary center: %s (%s), %d%%\n",
		secondary.Name, secondary.Sanskrit, result.Secondary.Percentage)

	b.WriteString("\nAll scores:\n")
	for _, s := range result.AllScores {
		c := chakra.MustLookup(s.CenterID)
		fmt.Fprintf(&b, "- %s: %d/%d (%d%%)\n", c.Name, s.Score, s.MaxScore, s.Percentage)
	}

	b.WriteString(`
Instructions:
1. Write a title of 3-7 words.
2. Write a reflection of 3-5 sentences focused on the primary center, mentioning the secondary once.
3. Suggest 2-4 practices that take under fifteen minutes.
4. End with one affirmation in the first person.
5. Plain text only. No markdown, no emoji.`)

	return b.String()
}
