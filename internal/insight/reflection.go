package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

// Source records where a reflection came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Reflection is a short personalized note for an assessment result.
type Reflection struct {
	Center      chakra.ID
	Title       string
	Body        string
	Practices   []string
	Affirmation string
	Source      Source
}

// Fallback builds a reflection from the static healing messages and center
// metadata. It never fails.
func Fallback(result assessment.Result) Reflection {
	primary := chakra.MustLookup(result.Primary.CenterID)
	msg := assessment.HealingMessage(primary.ID)

	practices := []string{
		fmt.Sprintf("Listen to the %.0f Hz %s tone for ten minutes", primary.Frequency, primary.Name),
		fmt.Sprintf("Breathe slowly and rest your attention at the %s", strings.ToLower(primary.Location)),
	}
	if sec, ok := chakra.Lookup(result.Secondary.CenterID); ok && sec.ID != primary.ID {
		practices = append(practices,
			fmt.Sprintf("Spend a few minutes with your %s center as well (%s)",
				strings.ToLower(sec.Name), strings.ToLower(assessment.Keyword(sec.ID))))
	}

	return Reflection{
		Center:      primary.ID,
		Title:       msg.Title,
		Body:        msg.Body,
		Practices:   practices,
		Affirmation: primary.Affirmation,
		Source:      SourceFallback,
	}
}
