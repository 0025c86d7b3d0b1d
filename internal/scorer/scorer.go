package scorer

import (
	"fmt"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/extract"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// Input is everything the scorer reads for one request.
type Input struct {
	Company        model.Company
	Evidence       []model.Evidence
	ResearchPoints []model.ResearchPoint
	Sources        []model.Source
}

// Scorer is a pure function of its Input. It holds only read-only
// configuration and is safe for concurrent use.
type Scorer struct {
	cfg       config.ScoringConfig
	catalog   *catalog.Catalog
	insurance []string
	tech      []string
	challenge []string
}

// New validates cfg and returns a Scorer over cat.
func New(cfg config.ScoringConfig, cat *catalog.Catalog) (*Scorer, error) {
	if cfg.Formula == "" {
		cfg.Formula = FormulaCappedLinear
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Scorer{
		cfg:       cfg,
		catalog:   cat,
		insurance: extract.FoldAll(cat.Signals.Insurance),
		tech:      extract.FoldAll(cat.Signals.Technology),
		challenge: extract.FoldAll(cat.Signals.Challenge),
	}, nil
}

// Config returns the validated scoring configuration.
func (s *Scorer) Config() config.ScoringConfig { return s.cfg }

// signals are the research-point tallies feeding the score.
type signals struct {
	insurance  bool
	techCount  int
	challenges int
	business   []string
	tech       []string
	challenge  []string
}

func (s *Scorer) tally(points []model.ResearchPoint) signals {
	var sig signals
	seenTech := map[string]struct{}{}
	seenChallenge := map[string]struct{}{}
	seenBusiness := map[string]struct{}{}

	for _, p := range points {
		folded := extract.Fold(p.Point)
		if extract.ContainsAny(folded, s.insurance) {
			sig.insurance = true
		}
		if extract.ContainsAny(folded, s.tech) {
			sig.techCount++
			if _, ok := seenTech[p.Point]; !ok {
				seenTech[p.Point] = struct{}{}
				sig.tech = append(sig.tech, p.Point)
			}
		}
		if extract.ContainsAny(folded, s.challenge) {
			sig.challenges++
			if _, ok := seenChallenge[p.Point]; !ok {
				seenChallenge[p.Point] = struct{}{}
				sig.challenge = append(sig.challenge, p.Point)
			}
		}
		if p.Category == "business_model" {
			if _, ok := seenBusiness[p.Point]; !ok {
				seenBusiness[p.Point] = struct{}{}
				sig.business = append(sig.business, p.Point)
			}
		}
	}
	return sig
}

// Score aggregates evidence and research points into an AnalysisResult.
// Identical input always yields an identical result.
func (s *Scorer) Score(in Input) model.AnalysisResult {
	sig := s.tally(in.ResearchPoints)

	counts := make(map[string]int)
	for _, e := range in.Evidence {
		counts[e.CategoryID]++
	}

	res := model.AnalysisResult{
		CompanyName:           in.Company.Name,
		CompanyURL:            in.Company.URL,
		IndustryGuess:         model.IndustryUnknown,
		DigitalMaturity:       maturity(len(in.ResearchPoints), sig.techCount),
		EvidenceList:          append([]model.Evidence{}, in.Evidence...),
		CategoryCounts:        counts,
		CoreBusiness:          nonNil(sig.business),
		TechnologyStack:       nonNil(sig.tech),
		Challenges:            nonNil(sig.challenge),
		ResearchPoints:        append([]model.ResearchPoint{}, in.ResearchPoints...),
		Formula:               s.cfg.Formula,
		Mode:                  "keyword",
		Sources:               append([]model.Source{}, in.Sources...),
		RecommendedServiceIDs: []string{},
	}
	if sig.insurance {
		res.IndustryGuess = model.IndustryInsurance
	}

	res.RecommendedServiceIDs = s.services(counts, len(in.ResearchPoints) > 0, sig)
	res.ConfidenceScore = s.confidence(len(counts), len(in.Evidence), sig)
	res.RecommendationLabel = s.Tier(res.ConfidenceScore, len(counts))
	if len(in.Evidence) == 0 {
		// No pain-point evidence is always the lowest tier, whatever the score.
		res.RecommendationLabel = model.RecommendationInsufficient
	}
	res.RecommendationText = s.RecommendationText(res.RecommendationLabel)
	res.Justification = s.justify(&res, sig)

	if len(in.Evidence) == 0 {
		res.Message = fmt.Sprintf("Insufficient data: no pain-point evidence was found for %s.", displayCompany(in.Company.Name))
	}
	return res
}

func maturity(points, techCount int) string {
	switch {
	case points == 0:
		return model.MaturityUnknown
	case techCount > 5:
		return model.MaturityHigh
	case techCount > 2:
		return model.MaturityMedium
	default:
		return model.MaturityLow
	}
}

// services returns the union of matched categories' services in catalog
// order, or the fallback floor when nothing matched.
func (s *Scorer) services(counts map[string]int, hasResearch bool, sig signals) []string {
	wanted := map[string]struct{}{}
	for _, p := range s.catalog.PainPoints {
		if counts[p.ID] == 0 {
			continue
		}
		for _, id := range p.RecommendedServices {
			wanted[id] = struct{}{}
		}
	}

	out := []string{}
	for _, svc := range s.catalog.Services {
		if _, ok := wanted[svc.ID]; ok {
			out = append(out, svc.ID)
		}
	}
	if s.cfg.MaxServices > 0 && len(out) > s.cfg.MaxServices {
		out = out[:s.cfg.MaxServices]
	}

	if len(out) == 0 && hasResearch && (sig.challenges > 0 || sig.techCount < 3) {
		n := min(s.cfg.FallbackServices, len(s.catalog.Services))
		for _, svc := range s.catalog.Services[:n] {
			out = append(out, svc.ID)
		}
	}
	return out
}

func (s *Scorer) confidence(unique, total int, sig signals) int {
	var score int
	switch s.cfg.Formula {
	case FormulaLinear:
		score = 15*unique + 2*total
	default:
		score = min(50, 15*unique) + min(25, 5*sig.techCount) + min(25, 5*sig.challenges)
	}
	return max(0, min(100, score))
}

// Tier maps a score and unique-category count onto a recommendation.
func (s *Scorer) Tier(score, uniqueCategories int) model.Recommendation {
	switch {
	case score >= s.cfg.StrongThreshold && uniqueCategories >= 2:
		return model.RecommendationStrong
	case score >= s.cfg.ModerateThreshold && uniqueCategories >= 1:
		return model.RecommendationModerate
	case score >= s.cfg.WeakThreshold:
		return model.RecommendationWeak
	default:
		return model.RecommendationInsufficient
	}
}

// RecommendationText returns the human-readable sentence for a tier.
func (s *Scorer) RecommendationText(tier model.Recommendation) string {
	switch tier {
	case model.RecommendationStrong:
		return fmt.Sprintf("STRONG RECOMMENDATION - High potential fit with %s", s.catalog.ProviderName)
	case model.RecommendationModerate:
		return "MODERATE RECOMMENDATION - Worth further investigation"
	case model.RecommendationWeak:
		return "WEAK RECOMMENDATION - Limited evidence of fit"
	default:
		return "INSUFFICIENT DATA - Cannot make reliable recommendation"
	}
}

// FilterServices keeps only IDs present in the catalog, in catalog order,
// without duplicates, applying the configured cap.
func (s *Scorer) FilterServices(ids []string) []string {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := []string{}
	for _, svc := range s.catalog.Services {
		if _, ok := wanted[svc.ID]; ok {
			out = append(out, svc.ID)
		}
	}
	if s.cfg.MaxServices > 0 && len(out) > s.cfg.MaxServices {
		out = out[:s.cfg.MaxServices]
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func displayCompany(name string) string {
	if name == "" {
		return "the requested company"
	}
	return name
}
