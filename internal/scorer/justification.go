package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/painpoint-cli/internal/model"
)

// FallbackJustification is used when no justification clause applies.
const FallbackJustification = "Limited information available for comprehensive analysis."

// justify concatenates the applicable clauses in fixed order.
func (s *Scorer) justify(res *model.AnalysisResult, sig signals) string {
	provider := s.catalog.ProviderName
	var parts []string

	if res.IndustryGuess == model.IndustryInsurance {
		parts = append(parts, fmt.Sprintf("Company operates in insurance sector, which aligns with %s's specialization.", provider))
	}

	if res.DigitalMaturity == model.MaturityLow || res.DigitalMaturity == model.MaturityMedium {
		parts = append(parts, fmt.Sprintf("Digital maturity level (%s) indicates potential for technology modernization.", res.DigitalMaturity))
	}

	if n := len(sig.challenge); n > 0 {
		parts = append(parts, fmt.Sprintf("Identified %d operational challenges that %s solutions could address.", n, provider))
	}

	var categories []string
	for _, p := range s.catalog.PainPoints {
		if res.CategoryCounts[p.ID] > 0 {
			categories = append(categories, s.catalog.CategoryName(p.ID))
		}
	}
	if len(categories) > 0 {
		parts = append(parts, fmt.Sprintf("Pain points detected: %s.", strings.Join(categories, ", ")))
	}

	if len(res.RecommendedServiceIDs) > 0 {
		names := make([]string, len(res.RecommendedServiceIDs))
		for i, id := range res.RecommendedServiceIDs {
			names[i] = s.catalog.ServiceName(id)
		}
		parts = append(parts, fmt.Sprintf("Recommended %s services: %s", provider, strings.Join(names, ", ")))
	}

	if len(parts) == 0 {
		return FallbackJustification
	}
	return strings.Join(parts, " ")
}
