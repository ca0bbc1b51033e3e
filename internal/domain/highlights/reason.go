package highlights

import (
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// reasonRules are applied in fixed order; each appends its label when the
// feature clears its threshold. Cosmetic only, never a ranking input.
var reasonRules = []struct {
	feature   string
	threshold float64
	label     string
}{
	{FeatureHook, 0.5, "Strong hook"},
	{FeatureEmotion, 0.5, "Emotional"},
	{FeatureStructure, 0.5, "Well-structured"},
	{FeatureQuote, 0.6, "Quotable"},
	{FeatureNovelty, 0.6, "Novel"},
}

func buildReason(f types.Features) string {
	var labels []string
	for _, r := range reasonRules {
		if f[r.feature] > r.threshold {
			labels = append(labels, r.label)
		}
	}
	if len(labels) == 0 {
		labels = append(labels, "High engagement")
	}
	return strings.Join(labels, " • ")
}
