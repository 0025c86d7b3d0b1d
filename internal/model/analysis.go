package model

// SearchRecord is one result returned by the search collaborator.
type SearchRecord struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	Query         string `json:"query"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Source is a unique (url, title) pair cited by a run.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Confidence labels attached to evidence and research points.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Evidence is one keyword match for a pain-point category in one record.
type Evidence struct {
	CategoryID      string `json:"category_id"`
	ContextWindow   string `json:"context_window"`
	SourceURL       string `json:"source_url"`
	SourceTitle     string `json:"source_title"`
	MatchedKeyword  string `json:"matched_keyword"`
	ConfidenceLabel string `json:"confidence_label"`
}

// CategoryGeneralAnalysis tags research points synthesized from a search answer.
const CategoryGeneralAnalysis = "general_analysis"

// ResearchPoint is a descriptive finding from a generic content category.
type ResearchPoint struct {
	Point       string `json:"point"`
	Category    string `json:"category"`
	SourceURL   string `json:"source_url"`
	SourceTitle string `json:"source_title,omitempty"`
	Relevance   string `json:"relevance"`
}

// Warning records a non-fatal failure during collection.
type Warning struct {
	Query     string `json:"query,omitempty"`
	Message   string `json:"message"`
	Transient bool   `json:"transient"`
}

// Collection is everything gathered for one request before scoring.
type Collection struct {
	Company        Company         `json:"company"`
	Queries        []string        `json:"queries"`
	Records        []SearchRecord  `json:"records"`
	Evidence       []Evidence      `json:"evidence"`
	ResearchPoints []ResearchPoint `json:"research_points"`
	Sources        []Source        `json:"sources"`
	Warnings       []Warning       `json:"warnings,omitempty"`
	SearchCalls    int             `json:"search_calls"`
}

// Recommendation is the tier assigned to an analysis.
type Recommendation string

const (
	RecommendationStrong       Recommendation = "Strong"
	RecommendationModerate     Recommendation = "Moderate"
	RecommendationWeak         Recommendation = "Weak"
	RecommendationInsufficient Recommendation = "Insufficient/NotViable"
)

// Industry guesses.
const (
	IndustryInsurance = "Insurance"
	IndustryUnknown   = "Unknown"
)

// Digital maturity tiers.
const (
	MaturityHigh    = "high"
	MaturityMedium  = "medium"
	MaturityLow     = "low"
	MaturityUnknown = "unknown"
)

// AnalysisResult is the scored output for one research request.
type AnalysisResult struct {
	RunID                 string          `json:"run_id,omitempty"`
	CompanyName           string          `json:"company_name"`
	CompanyURL            string          `json:"company_url,omitempty"`
	IndustryGuess         string          `json:"industry_guess"`
	DigitalMaturity       string          `json:"digital_maturity"`
	EvidenceList          []Evidence      `json:"evidence_list"`
	CategoryCounts        map[string]int  `json:"category_counts"`
	CoreBusiness          []string        `json:"core_business"`
	TechnologyStack       []string        `json:"technology_stack"`
	Challenges            []string        `json:"challenges"`
	ResearchPoints        []ResearchPoint `json:"research_points,omitempty"`
	RecommendedServiceIDs []string        `json:"recommended_service_ids"`
	ConfidenceScore       int             `json:"confidence_score"`
	Formula               string          `json:"formula"`
	Justification         string          `json:"justification"`
	RecommendationLabel   Recommendation  `json:"recommendation_label"`
	RecommendationText    string          `json:"recommendation_text"`
	Message               string          `json:"message,omitempty"`
	Mode                  string          `json:"mode"`
	Sources               []Source        `json:"sources"`
	Findings              []SearchRecord  `json:"findings"`
	Warnings              []Warning       `json:"warnings,omitempty"`
	EstimatedCostUSD      float64         `json:"estimated_cost_usd"`
}

// UniqueCategories returns the number of distinct categories with evidence.
func (r *AnalysisResult) UniqueCategories() int {
	seen := make(map[string]struct{}, len(r.EvidenceList))
	for _, e := range r.EvidenceList {
		seen[e.CategoryID] = struct{}{}
	}
	return len(seen)
}

// Prospect is a potential client surfaced by discovery.
type Prospect struct {
	CompanyName    string   `json:"company_name"`
	SourceURL      string   `json:"source_url"`
	SourceTitle    string   `json:"source_title"`
	DiscoveryQuery string   `json:"discovery_query"`
	PainPointIDs   []string `json:"pain_point_ids"`
	RelevanceScore int      `json:"relevance_score"`
	ContentSnippet string   `json:"content_snippet"`
}
