// Package cost estimates the USD spend of a research run.
package cost

import (
	"github.com/sells-group/painpoint-cli/internal/config"
)

// Rates holds per-provider pricing configuration.
type Rates struct {
	Anthropic map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
	Tavily    TavilyRate           `yaml:"tavily" mapstructure:"tavily"`
	Jina      JinaRate             `yaml:"jina" mapstructure:"jina"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// TavilyRate holds Tavily pricing. Basic searches cost one credit and
// advanced searches two.
type TavilyRate struct {
	PerCredit float64 `yaml:"per_credit" mapstructure:"per_credit"`
}

// JinaRate holds Jina search pricing.
type JinaRate struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// Usage summarizes the billable activity of one run.
type Usage struct {
	Provider     string
	Depth        string
	SearchCalls  int
	Model        string
	InputTokens  int
	OutputTokens int
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Claude computes the cost for a Claude API call.
func (c *Calculator) Claude(model string, input, output int) float64 {
	rate, ok := c.rates.Anthropic[model]
	if !ok {
		return 0
	}
	return (float64(input)/1e6)*rate.Input + (float64(output)/1e6)*rate.Output
}

// Search computes the cost of calls search requests to provider at depth.
func (c *Calculator) Search(provider, depth string, calls int) float64 {
	switch provider {
	case "tavily", "":
		credits := 1
		if depth == "advanced" {
			credits = 2
		}
		return float64(calls*credits) * c.rates.Tavily.PerCredit
	case "jina":
		return float64(calls) * c.rates.Jina.PerQuery
	default:
		return 0
	}
}

// Estimate returns the total cost of u.
func (c *Calculator) Estimate(u Usage) float64 {
	return c.Search(u.Provider, u.Depth, u.SearchCalls) + c.Claude(u.Model, u.InputTokens, u.OutputTokens)
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
			"claude-opus-4-6":            {Input: 15.00, Output: 75.00},
		},
		Tavily: TavilyRate{PerCredit: 0.008},
		Jina:   JinaRate{PerQuery: 0.001},
	}
}

// FromConfig layers configured pricing over the defaults.
func FromConfig(p config.PricingConfig) Rates {
	r := DefaultRates()
	if p.Tavily.PerCredit > 0 {
		r.Tavily.PerCredit = p.Tavily.PerCredit
	}
	if p.Jina.PerQuery > 0 {
		r.Jina.PerQuery = p.Jina.PerQuery
	}
	for model, mp := range p.Anthropic {
		r.Anthropic[model] = ModelRate{Input: mp.Input, Output: mp.Output}
	}
	return r
}
