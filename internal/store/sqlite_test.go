package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	company := model.Company{Name: "Acme Insurance", URL: "https://acme.example"}
	run, err := s.CreateRun(ctx, company, "keyword")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusCollecting))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCollecting, got.Status)
	assert.Equal(t, company, got.Company)
	assert.Nil(t, got.Result)

	result := &model.AnalysisResult{
		CompanyName:           "Acme Insurance",
		ConfidenceScore:       55,
		RecommendationLabel:   model.RecommendationModerate,
		RecommendedServiceIDs: []string{"claims_management"},
		EvidenceList:          []model.Evidence{{CategoryID: "fraud_detection", ContextWindow: "fraud ring"}},
	}
	require.NoError(t, s.CompleteRun(ctx, run.ID, result))

	got, err = s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 55, got.Result.ConfidenceScore)
	assert.Equal(t, []string{"claims_management"}, got.Result.RecommendedServiceIDs)
	assert.Equal(t, "keyword", got.Mode)
}

func TestSQLiteFailRun(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	run, err := s.CreateRun(ctx, model.Company{Name: "Beta Mutual"}, "llm")
	require.NoError(t, err)
	require.NoError(t, s.FailRun(ctx, run.ID, "config: missing api key"))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "config: missing api key", got.Error)
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	_, err := s.GetRun(ctx, "missing")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))

	err = s.UpdateRunStatus(ctx, "missing", model.RunStatusScoring)
	assert.True(t, eris.Is(err, ErrNotFound))

	err = s.CompleteRun(ctx, "missing", &model.AnalysisResult{})
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLiteListRuns(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	a, err := s.CreateRun(ctx, model.Company{Name: "Acme Insurance"}, "keyword")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, model.Company{Name: "Beta Mutual"}, "keyword")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, a.ID, &model.AnalysisResult{CompanyName: "Acme Insurance"}))

	all, err := s.ListRuns(ctx, model.RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := s.ListRuns(ctx, model.RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	byName, err := s.ListRuns(ctx, model.RunFilter{CompanyName: "beta mutual"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Beta Mutual", byName[0].Company.Name)

	limited, err := s.ListRuns(ctx, model.RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.ListRuns(ctx, model.RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.StoreConfig{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = Open(ctx, config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "p.db")})
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()
	_, err = st.ListRuns(ctx, model.RunFilter{})
	assert.NoError(t, err)

	_, err = Open(ctx, config.StoreConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
