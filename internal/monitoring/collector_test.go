package monitoring

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/store"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{
			Status: model.RunStatusComplete, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour + 10*time.Second),
			Result: &model.AnalysisResult{ConfidenceScore: 80, RecommendationLabel: model.RecommendationStrong, EstimatedCostUSD: 0.5},
		},
		{
			Status: model.RunStatusComplete, CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-2*time.Hour + 20*time.Second),
			Result: &model.AnalysisResult{ConfidenceScore: 40, RecommendationLabel: model.RecommendationWeak, EstimatedCostUSD: 0.25},
		},
		{Status: model.RunStatusFailed, CreatedAt: now.Add(-3 * time.Hour)},
		{Status: model.RunStatusCollecting, CreatedAt: now.Add(-time.Minute)},
		// Outside the window.
		{Status: model.RunStatusFailed, CreatedAt: now.Add(-48 * time.Hour)},
	}

	snap := Summarize(runs, now.Add(-24*time.Hour))

	assert.Equal(t, 4, snap.RunsTotal)
	assert.Equal(t, 2, snap.RunsComplete)
	assert.Equal(t, 1, snap.RunsFailed)
	assert.Equal(t, 1, snap.RunsActive)
	assert.InDelta(t, 1.0/3.0, snap.FailRate, 0.001)
	assert.InDelta(t, 0.75, snap.CostUSD, 0.001)
	assert.InDelta(t, 60.0, snap.AvgScore, 0.001)
	assert.InDelta(t, 15.0, snap.AvgDurSecs, 0.001)
	assert.Equal(t, 1, snap.Recommendations[model.RecommendationStrong])
	assert.Equal(t, 1, snap.Recommendations[model.RecommendationWeak])
}

func TestSummarize_Empty(t *testing.T) {
	snap := Summarize(nil, time.Time{})
	assert.Zero(t, snap.RunsTotal)
	assert.Zero(t, snap.FailRate)
	assert.Zero(t, snap.AvgScore)
	assert.NotNil(t, snap.Recommendations)
}

func TestCollector_Collect(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })

	ok, err := st.CreateRun(ctx, model.Company{Name: "Acme Insurance"}, "keyword")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, ok.ID, &model.AnalysisResult{
		ConfidenceScore:     72,
		RecommendationLabel: model.RecommendationStrong,
		EstimatedCostUSD:    1.2,
	}))

	bad, err := st.CreateRun(ctx, model.Company{Name: "Beta Mutual"}, "llm")
	require.NoError(t, err)
	require.NoError(t, st.FailRun(ctx, bad.ID, "search failed"))

	c := NewCollector(st)
	snap, err := c.Collect(ctx, 24)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.RunsTotal)
	assert.Equal(t, 1, snap.RunsComplete)
	assert.Equal(t, 1, snap.RunsFailed)
	assert.InDelta(t, 0.5, snap.FailRate, 0.001)
	assert.InDelta(t, 1.2, snap.CostUSD, 0.001)
	assert.Equal(t, 24, snap.LookbackHours)
	assert.False(t, snap.CollectedAt.IsZero())

	// Move the clock past the window.
	c.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	snap, err = c.Collect(ctx, 24)
	require.NoError(t, err)
	assert.Zero(t, snap.RunsTotal)

	snap, err = c.Collect(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.RunsTotal)
}
