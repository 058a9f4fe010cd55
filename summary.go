package tempo

import (
	"fmt"
	"sort"
	"strings"
)

// WelcomeBack renders a returning player's catchup result as the short
// summary shown on login. An empty result yields an empty string.
func WelcomeBack(result TickResult) string {
	if result.TicksProcessed == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome back! %d ticks processed.", result.TicksProcessed)

	categories := make([]string, 0, len(result.Gains))
	for category, amount := range result.Gains {
		if amount > 0 {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, " +%s %s.", FormatAmount(result.Gains[category]), category)
	}

	if result.BuildingsCompleted > 0 {
		fmt.Fprintf(&b, " %d buildings completed.", result.BuildingsCompleted)
	}
	if result.UnitsTrained > 0 {
		fmt.Fprintf(&b, " %d units trained.", result.UnitsTrained)
	}
	if result.PopulationBorn > 0 {
		fmt.Fprintf(&b, " Population grew by %d.", result.PopulationBorn)
	}
	if result.PopulationStarved > 0 {
		fmt.Fprintf(&b, " %d citizens starved.", result.PopulationStarved)
	}
	for _, key := range result.ResearchCompleted {
		fmt.Fprintf(&b, " Research finished: %s.", key)
	}
	if result.AdvancedTier != "" {
		fmt.Fprintf(&b, " You have reached %s!", result.AdvancedTier)
	}
	if result.Plateaued {
		b.WriteString(" Your progress has plateaued.")
	}
	return b.String()
}
