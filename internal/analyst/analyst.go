// Package analyst assesses company fit with a language model instead of
// keyword heuristics.
package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/scorer"
	"github.com/sells-group/painpoint-cli/pkg/anthropic"
)

// Mode is the research mode label stored on LLM results.
const Mode = "llm"

// Prompt size limits.
const (
	maxEvidenceInPrompt = 40
	maxPointsInPrompt   = 40
)

// Assessment is the outcome of one LLM assessment.
type Assessment struct {
	Result   model.AnalysisResult
	Warnings []model.Warning
	Usage    anthropic.TokenUsage
}

// Analyst asks the LLM collaborator for a structured fit assessment.
type Analyst struct {
	client  anthropic.Client
	scorer  *scorer.Scorer
	catalog *catalog.Catalog
	cfg     config.AnthropicConfig
}

// New creates an Analyst. The scorer supplies tier thresholds and the
// service filter so LLM results obey the same rules as keyword results.
func New(client anthropic.Client, sc *scorer.Scorer, cat *catalog.Catalog, cfg config.AnthropicConfig) *Analyst {
	return &Analyst{client: client, scorer: sc, catalog: cat, cfg: cfg}
}

// llmResponse is the JSON object the model is asked to return.
type llmResponse struct {
	IndustryGuess         string   `json:"industry_guess"`
	DigitalMaturity       string   `json:"digital_maturity"`
	CoreBusiness          []string `json:"core_business"`
	TechnologyStack       []string `json:"technology_stack"`
	Challenges            []string `json:"challenges"`
	RecommendedServiceIDs []string `json:"recommended_service_ids"`
	ConfidenceScore       float64  `json:"confidence_score"`
	Justification         string   `json:"justification"`
}

// Assess never returns an error. Call or parse failures produce the
// default result plus a warning.
func (a *Analyst) Assess(ctx context.Context, in scorer.Input) Assessment {
	base := a.scorer.Score(in)
	base.Mode = Mode
	base.Formula = Mode

	temp := a.cfg.Temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		System:      a.systemPrompt(),
		Messages:    []anthropic.Message{{Role: "user", Content: a.userPrompt(in)}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("analyst: llm call failed", zap.String("company", in.Company.Name), zap.Error(err))
		return Assessment{
			Result:   a.defaultResult(base),
			Warnings: []model.Warning{{Message: eris.Wrap(err, "analyst: llm call").Error()}},
		}
	}
	resp.Usage.LogUsage(a.cfg.Model)

	parsed, err := parseResponse(resp.Text())
	if err != nil {
		zap.L().Warn("analyst: unparseable llm response", zap.String("company", in.Company.Name), zap.Error(err))
		return Assessment{
			Result:   a.defaultResult(base),
			Warnings: []model.Warning{{Message: err.Error()}},
			Usage:    resp.Usage,
		}
	}

	return Assessment{Result: a.apply(base, parsed), Usage: resp.Usage}
}

func (a *Analyst) apply(res model.AnalysisResult, p *llmResponse) model.AnalysisResult {
	if p.IndustryGuess != "" {
		res.IndustryGuess = p.IndustryGuess
	}
	if m := normalizeMaturity(p.DigitalMaturity); m != "" {
		res.DigitalMaturity = m
	}
	res.CoreBusiness = orEmpty(p.CoreBusiness)
	res.TechnologyStack = orEmpty(p.TechnologyStack)
	res.Challenges = orEmpty(p.Challenges)
	res.RecommendedServiceIDs = a.scorer.FilterServices(p.RecommendedServiceIDs)
	res.ConfidenceScore = clampScore(p.ConfidenceScore)
	res.RecommendationLabel = a.scorer.Tier(res.ConfidenceScore, res.UniqueCategories())
	if len(res.EvidenceList) == 0 {
		res.RecommendationLabel = model.RecommendationInsufficient
	}
	res.RecommendationText = a.scorer.RecommendationText(res.RecommendationLabel)
	if j := strings.TrimSpace(p.Justification); j != "" {
		res.Justification = j
	} else {
		res.Justification = scorer.FallbackJustification
	}
	return res
}

// defaultResult zeroes every assessed field but keeps the collected
// evidence and sources.
func (a *Analyst) defaultResult(res model.AnalysisResult) model.AnalysisResult {
	res.IndustryGuess = model.IndustryUnknown
	res.DigitalMaturity = model.MaturityUnknown
	res.CoreBusiness = []string{}
	res.TechnologyStack = []string{}
	res.Challenges = []string{}
	res.RecommendedServiceIDs = []string{}
	res.ConfidenceScore = 0
	res.RecommendationLabel = model.RecommendationInsufficient
	res.RecommendationText = a.scorer.RecommendationText(model.RecommendationInsufficient)
	res.Justification = scorer.FallbackJustification
	return res
}

// parseResponse locates the JSON object between the first '{' and the
// last '}' of text.
func parseResponse(text string) (*llmResponse, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, eris.New("analyst: no json object in llm response")
	}
	var out llmResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, eris.Wrap(err, "analyst: parse llm json")
	}
	return &out, nil
}

// ExtractJSON returns the substring from the first '{' to the last '}'
// after stripping markdown code fences.
func ExtractJSON(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func clampScore(f float64) int {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 100:
		return 100
	default:
		return int(f + 0.5)
	}
}

func normalizeMaturity(m string) string {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case model.MaturityHigh:
		return model.MaturityHigh
	case model.MaturityMedium:
		return model.MaturityMedium
	case model.MaturityLow:
		return model.MaturityLow
	default:
		return ""
	}
}

func orEmpty(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (a *Analyst) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a business analyst for %s, an insurance technology provider. ", a.catalog.ProviderName)
	b.WriteString("Assess how well the researched company fits the services below using only the evidence provided.\n\n")
	b.WriteString("Services:\n")
	for _, s := range a.catalog.Services {
		fmt.Fprintf(&b, "- %s: %s. %s\n", s.ID, s.DisplayName, s.Description)
	}
	b.WriteString("\nPain point categories:\n")
	for _, p := range a.catalog.PainPoints {
		fmt.Fprintf(&b, "- %s: %s\n", p.ID, p.Description)
	}
	b.WriteString(`
Respond with a single JSON object and nothing else:
{
  "industry_guess": "Insurance or another industry name, or Unknown",
  "digital_maturity": "high | medium | low",
  "core_business": ["..."],
  "technology_stack": ["..."],
  "challenges": ["..."],
  "recommended_service_ids": ["service ids from the list above"],
  "confidence_score": 0-100,
  "justification": "two to four sentences"
}`)
	return b.String()
}

func (a *Analyst) userPrompt(in scorer.Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", in.Company.Name)
	if in.Company.URL != "" {
		fmt.Fprintf(&b, "Website: %s\n", in.Company.URL)
	}

	b.WriteString("\nPain point evidence:\n")
	if len(in.Evidence) == 0 {
		b.WriteString("(none found)\n")
	}
	for i, e := range in.Evidence {
		if i == maxEvidenceInPrompt {
			fmt.Fprintf(&b, "(%d more omitted)\n", len(in.Evidence)-i)
			break
		}
		fmt.Fprintf(&b, "- [%s] %q (%s)\n", e.CategoryID, e.ContextWindow, e.SourceURL)
	}

	b.WriteString("\nResearch notes:\n")
	if len(in.ResearchPoints) == 0 {
		b.WriteString("(none found)\n")
	}
	for i, p := range in.ResearchPoints {
		if i == maxPointsInPrompt {
			fmt.Fprintf(&b, "(%d more omitted)\n", len(in.ResearchPoints)-i)
			break
		}
		fmt.Fprintf(&b, "- [%s] %s\n", p.Category, p.Point)
	}
	return b.String()
}
