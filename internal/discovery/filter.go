package discovery

import (
	"slices"

	"github.com/sells-group/painpoint-cli/internal/model"
)

// Filter keeps prospects scoring at least minRelevance, ordered by
// relevance descending. Ties keep discovery order.
func Filter(prospects []model.Prospect, minRelevance int) []model.Prospect {
	out := make([]model.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if p.RelevanceScore >= minRelevance {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Prospect) int {
		return b.RelevanceScore - a.RelevanceScore
	})
	return out
}
