package analyst

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/scorer"
	"github.com/sells-group/painpoint-cli/pkg/anthropic"
	"github.com/sells-group/painpoint-cli/pkg/anthropic/mocks"
)

func newAnalyst(t *testing.T, client anthropic.Client) *Analyst {
	t.Helper()
	cat := catalog.Default()
	sc, err := scorer.New(scorer.DefaultScoringConfig(), cat)
	require.NoError(t, err)
	return New(client, sc, cat, config.AnthropicConfig{
		Model:       "claude-sonnet-4-5-20250929",
		MaxTokens:   2048,
		Temperature: 0.2,
	})
}

func reply(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 900, OutputTokens: 150},
	}
}

var acmeInput = scorer.Input{
	Company: model.Company{Name: "Acme Insurance", URL: "https://acme.example"},
	Evidence: []model.Evidence{
		{CategoryID: "legacy_systems", ContextWindow: "Acme still runs its policy book on a mainframe.", SourceURL: "https://news.example/1"},
		{CategoryID: "fraud_detection", ContextWindow: "Fraud losses rose sharply last year.", SourceURL: "https://news.example/2"},
	},
	Sources: []model.Source{{URL: "https://news.example/1", Title: "One"}},
}

func TestAssess(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-sonnet-4-5-20250929" &&
			req.MaxTokens == 2048 &&
			*req.Temperature == 0.2 &&
			len(req.Messages) == 1 &&
			assert.Contains(t, req.System, "policy_administration") &&
			assert.Contains(t, req.Messages[0].Content, "Acme Insurance") &&
			assert.Contains(t, req.Messages[0].Content, "[legacy_systems]")
	})).Return(reply("Here is my assessment:\n```json\n"+`{
		"industry_guess": "Insurance",
		"digital_maturity": "Low",
		"core_business": ["Commercial property"],
		"technology_stack": ["Mainframe"],
		"challenges": ["Fraud losses", " "],
		"recommended_service_ids": ["claims_management", "made_up", "policy_administration"],
		"confidence_score": 140,
		"justification": "Strong modernization need."
	}`+"\n```"), nil)

	a := newAnalyst(t, client).Assess(context.Background(), acmeInput)

	res := a.Result
	assert.Empty(t, a.Warnings)
	assert.Equal(t, int64(900), a.Usage.InputTokens)
	assert.Equal(t, Mode, res.Mode)
	assert.Equal(t, "Insurance", res.IndustryGuess)
	assert.Equal(t, model.MaturityLow, res.DigitalMaturity)
	assert.Equal(t, []string{"Fraud losses"}, res.Challenges)
	assert.Equal(t, []string{"policy_administration", "claims_management"}, res.RecommendedServiceIDs)
	assert.Equal(t, 100, res.ConfidenceScore)
	assert.Equal(t, model.RecommendationStrong, res.RecommendationLabel)
	assert.Equal(t, "Strong modernization need.", res.Justification)
	assert.Len(t, res.EvidenceList, 2)
	assert.Equal(t, acmeInput.Sources, res.Sources)
}

func TestAssessTierRecomputed(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(reply(`{"confidence_score": 95, "recommended_service_ids": []}`), nil)

	a := newAnalyst(t, client).Assess(context.Background(), scorer.Input{
		Company:  model.Company{Name: "Solo"},
		Evidence: []model.Evidence{{CategoryID: "data_silos"}},
	})
	assert.Equal(t, 95, a.Result.ConfidenceScore)
	assert.Equal(t, model.RecommendationModerate, a.Result.RecommendationLabel, "one category cannot be Strong")
	assert.Equal(t, scorer.FallbackJustification, a.Result.Justification)
}

func TestAssessNoEvidenceIsInsufficient(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(reply(`{"confidence_score": 80, "justification": "Looks promising."}`), nil)

	a := newAnalyst(t, client).Assess(context.Background(), scorer.Input{
		Company: model.Company{Name: "Acme Insurance"},
		ResearchPoints: []model.ResearchPoint{
			{Point: "Acme is moving to cloud technology", Category: "technology"},
		},
	})
	assert.Equal(t, 80, a.Result.ConfidenceScore)
	assert.Equal(t, model.RecommendationInsufficient, a.Result.RecommendationLabel)
	assert.Equal(t, "INSUFFICIENT DATA - Cannot make reliable recommendation", a.Result.RecommendationText)
}

func TestAssessFallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp *anthropic.MessageResponse
		err  error
		want string
	}{
		{name: "call error", err: errors.New("503 overloaded"), want: "analyst: llm call"},
		{name: "no json", resp: reply("I cannot help with that."), want: "no json object"},
		{name: "bad json", resp: reply(`{"confidence_score": "high"`+"}"), want: "parse llm json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient(t)
			client.On("CreateMessage", mock.Anything, mock.Anything).Return(tt.resp, tt.err)

			a := newAnalyst(t, client).Assess(context.Background(), acmeInput)

			require.Len(t, a.Warnings, 1)
			assert.Contains(t, a.Warnings[0].Message, tt.want)
			res := a.Result
			assert.Equal(t, 0, res.ConfidenceScore)
			assert.Equal(t, model.IndustryUnknown, res.IndustryGuess)
			assert.Equal(t, model.RecommendationInsufficient, res.RecommendationLabel)
			assert.Empty(t, res.RecommendedServiceIDs)
			assert.NotNil(t, res.RecommendedServiceIDs)
			assert.Equal(t, Mode, res.Mode)
			assert.Len(t, res.EvidenceList, 2, "collected evidence is kept")
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: `{"a":1}`, want: `{"a":1}`, ok: true},
		{in: "prefix {\"a\":{\"b\":2}} suffix", want: `{"a":{"b":2}}`, ok: true},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{in: "no braces", ok: false},
		{in: "} backwards {", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ExtractJSON(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(250))
	assert.Equal(t, 73, clampScore(72.6))
}
