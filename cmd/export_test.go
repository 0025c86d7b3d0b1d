package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

func TestCompletedResult(t *testing.T) {
	run := &model.Run{
		ID:     "run-1",
		Status: model.RunStatusComplete,
		Result: &model.AnalysisResult{CompanyName: "Acme"},
	}
	res, err := completedResult(run)
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)

	_, err = completedResult(&model.Run{ID: "run-2", Status: model.RunStatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestLeadFromResult(t *testing.T) {
	res := &model.AnalysisResult{
		RunID:                 "run-1",
		CompanyName:           "Acme Insurance",
		CompanyURL:            "https://acme.example",
		IndustryGuess:         model.IndustryInsurance,
		ConfidenceScore:       72,
		RecommendationLabel:   model.RecommendationStrong,
		RecommendedServiceIDs: []string{"claims_management", "custom_thing"},
	}

	lead := leadFromResult(res, catalog.Default())
	assert.Equal(t, "Acme Insurance", lead.Name)
	assert.Equal(t, 72, lead.Score)
	assert.Equal(t, "Strong", lead.Recommendation)
	assert.Equal(t, "Insurance", lead.Industry)
	assert.Equal(t, "run-1", lead.RunID)
	require.Len(t, lead.Services, 2)
	assert.Equal(t, "Claims Management", lead.Services[0])
}

func TestWriteCatalog(t *testing.T) {
	cat := catalog.Default()

	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, cat, "yaml"))
	parsed, err := catalog.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, len(cat.Services), len(parsed.Services))

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, cat, "json"))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "services")

	buf.Reset()
	require.Error(t, writeCatalog(&buf, cat, "toml"))
}
