package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/analyst"
	"github.com/sells-group/painpoint-cli/internal/cost"
	"github.com/sells-group/painpoint-cli/internal/metrics"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/query"
	"github.com/sells-group/painpoint-cli/internal/scorer"
	"github.com/sells-group/painpoint-cli/internal/store"
)

// Research modes.
const (
	ModeKeyword = "keyword"
	ModeLLM     = analyst.Mode
)

// Assessor produces an LLM assessment for collected evidence.
type Assessor interface {
	Assess(ctx context.Context, in scorer.Input) analyst.Assessment
}

// Service runs complete research requests. It is safe for concurrent use;
// each request builds its own collection.
type Service struct {
	queries  *query.Generator
	runner   *Runner
	scorer   *scorer.Scorer
	analyst  Assessor
	model    string
	store    store.Store
	costCalc *cost.Calculator
	mode     string
}

// Option configures a Service.
type Option func(*Service)

// WithAnalyst enables the llm mode using a and bills tokens against model.
func WithAnalyst(a Assessor, model string) Option {
	return func(s *Service) {
		s.analyst = a
		s.model = model
	}
}

// WithStore archives every run in st.
func WithStore(st store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithCalculator sets the cost calculator.
func WithCalculator(c *cost.Calculator) Option {
	return func(s *Service) { s.costCalc = c }
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(mode string) Option {
	return func(s *Service) { s.mode = mode }
}

// NewService creates a Service.
func NewService(gen *query.Generator, runner *Runner, sc *scorer.Scorer, opts ...Option) *Service {
	s := &Service{
		queries:  gen,
		runner:   runner,
		scorer:   sc,
		costCalc: cost.NewCalculator(cost.DefaultRates()),
		mode:     ModeKeyword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Research runs one request end to end. Per-query failures surface as
// warnings on the result. Errors are returned only for invalid requests,
// an llm request without an analyst, and cancellation.
func (s *Service) Research(ctx context.Context, req model.ResearchRequest) (*model.AnalysisResult, error) {
	mode := req.Mode
	if mode == "" {
		mode = s.mode
	}
	switch mode {
	case ModeKeyword:
	case ModeLLM:
		if s.analyst == nil {
			return nil, eris.New("pipeline: llm mode requires an anthropic key")
		}
	default:
		return nil, eris.Errorf("pipeline: unknown mode %q", mode)
	}

	queries, err := s.queries.Generate(req.Company.Name, req.Window)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: generate queries")
	}

	log := zap.L().With(zap.String("company", req.Company.Name), zap.String("mode", mode))
	log.Info("pipeline: starting research", zap.Int("queries", len(queries)))

	metrics.RunsActive.Inc()
	defer metrics.RunsActive.Dec()
	start := time.Now()

	run := s.createRun(ctx, req.Company, mode, log)
	setStatus := func(status model.RunStatus) {
		if run == nil {
			return
		}
		if err := s.store.UpdateRunStatus(ctx, run.ID, status); err != nil {
			log.Warn("pipeline: failed to update status", zap.String("status", string(status)), zap.Error(err))
		}
	}

	setStatus(model.RunStatusCollecting)
	coll := s.runner.Collect(ctx, req, queries)

	if err := ctx.Err(); err != nil {
		s.failRun(run, err, log)
		return nil, eris.Wrap(err, "pipeline: research canceled")
	}

	setStatus(model.RunStatusScoring)
	in := scorer.Input{
		Company:        req.Company,
		Evidence:       coll.Evidence,
		ResearchPoints: coll.ResearchPoints,
		Sources:        coll.Sources,
	}

	usage := cost.Usage{
		Provider:    s.runner.Provider(),
		Depth:       s.runner.Depth(),
		SearchCalls: coll.SearchCalls,
	}

	var result model.AnalysisResult
	warnings := append([]model.Warning{}, coll.Warnings...)
	if mode == ModeLLM {
		a := s.analyst.Assess(ctx, in)
		result = a.Result
		warnings = append(warnings, a.Warnings...)
		usage.Model = s.model
		usage.InputTokens = int(a.Usage.InputTokens)
		usage.OutputTokens = int(a.Usage.OutputTokens)
	} else {
		result = s.scorer.Score(in)
	}

	result.Mode = mode
	result.Warnings = warnings
	result.Findings = append([]model.SearchRecord{}, coll.Records...)
	result.EstimatedCostUSD = s.costCalc.Estimate(usage)

	elapsed := time.Since(start)
	metrics.ResearchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())

	if run != nil {
		result.RunID = run.ID
		if err := s.store.CompleteRun(ctx, run.ID, &result); err != nil {
			log.Warn("pipeline: failed to archive run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	log.Info("pipeline: research complete",
		zap.Int("score", result.ConfidenceScore),
		zap.String("recommendation", string(result.RecommendationLabel)),
		zap.Int("evidence", len(result.EvidenceList)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Float64("estimated_cost_usd", result.EstimatedCostUSD),
		zap.Duration("elapsed", elapsed),
	)
	return &result, nil
}

func (s *Service) createRun(ctx context.Context, company model.Company, mode string, log *zap.Logger) *model.Run {
	if s.store == nil {
		return nil
	}
	run, err := s.store.CreateRun(ctx, company, mode)
	if err != nil {
		log.Warn("pipeline: failed to create run record", zap.Error(err))
		return nil
	}
	return run
}

func (s *Service) failRun(run *model.Run, cause error, log *zap.Logger) {
	if run == nil {
		return
	}
	// The request context is already done; record the failure regardless.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.FailRun(ctx, run.ID, cause.Error()); err != nil {
		log.Warn("pipeline: failed to mark run failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}
