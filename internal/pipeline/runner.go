// Package pipeline runs research requests: query generation, evidence
// collection, and assessment.
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/extract"
	"github.com/sells-group/painpoint-cli/internal/metrics"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/resilience"
	"github.com/sells-group/painpoint-cli/internal/search"
	"github.com/sells-group/painpoint-cli/pkg/jina"
	"github.com/sells-group/painpoint-cli/pkg/tavily"
)

// HomepageQuery tags the record read from the company's own website.
const HomepageQuery = "homepage"

// Runner collects evidence for one request at a time. It keeps no state
// between calls to Collect.
type Runner struct {
	searcher   search.Searcher
	extractor  *extract.Extractor
	pacer      Pacer
	reader     jina.Client
	depth      string
	maxResults int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPacer sets the limiter shared by every outbound call.
func WithPacer(p Pacer) RunnerOption {
	return func(r *Runner) { r.pacer = p }
}

// WithHomepageReader enables reading the company URL as an extra record.
func WithHomepageReader(c jina.Client) RunnerOption {
	return func(r *Runner) { r.reader = c }
}

// WithDepth sets the search depth. An empty depth keeps the default.
func WithDepth(depth string) RunnerOption {
	return func(r *Runner) {
		if depth != "" {
			r.depth = depth
		}
	}
}

// WithMaxResults sets results per query, capped at search.MaxResultsCap.
func WithMaxResults(n int) RunnerOption {
	return func(r *Runner) { r.maxResults = n }
}

// NewRunner creates a Runner. The default pacer allows one call per second.
func NewRunner(s search.Searcher, x *extract.Extractor, opts ...RunnerOption) *Runner {
	r := &Runner{
		searcher:   s,
		extractor:  x,
		pacer:      NewPacer(1),
		depth:      tavily.DepthAdvanced,
		maxResults: search.MaxResultsCap,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxResults <= 0 || r.maxResults > search.MaxResultsCap {
		r.maxResults = search.MaxResultsCap
	}
	return r
}

// Provider returns the search provider name.
func (r *Runner) Provider() string { return r.searcher.Name() }

// Depth returns the configured search depth.
func (r *Runner) Depth() string { return r.depth }

// Collect issues queries in order and gathers evidence. Per-query failures
// become warnings. Cancellation stops between queries and the partial
// collection is returned.
func (r *Runner) Collect(ctx context.Context, req model.ResearchRequest, queries []string) *model.Collection {
	log := zap.L().With(zap.String("company", req.Company.Name), zap.String("provider", r.searcher.Name()))

	c := &model.Collection{
		Company:        req.Company,
		Queries:        queries,
		Records:        []model.SearchRecord{},
		Evidence:       []model.Evidence{},
		ResearchPoints: []model.ResearchPoint{},
		Sources:        []model.Source{},
	}
	seen := make(map[model.Source]struct{})

	for _, q := range queries {
		if err := r.pacer.Wait(ctx); err != nil {
			c.Warnings = append(c.Warnings, canceledWarning(q, err))
			log.Warn("pipeline: collection canceled", zap.String("query", q), zap.Error(err))
			return c
		}

		c.SearchCalls++
		resp, err := r.searcher.Search(ctx, search.Request{
			Query:         q,
			Depth:         r.depth,
			MaxResults:    r.maxResults,
			IncludeAnswer: true,
			Window:        req.Window,
		})
		if err != nil {
			if ctx.Err() != nil {
				c.Warnings = append(c.Warnings, canceledWarning(q, ctx.Err()))
				log.Warn("pipeline: collection canceled", zap.String("query", q), zap.Error(err))
				return c
			}
			transient := resilience.IsTransient(err)
			c.Warnings = append(c.Warnings, model.Warning{Query: q, Message: err.Error(), Transient: transient})
			log.Warn("pipeline: query failed, skipping",
				zap.String("query", q),
				zap.Bool("transient", transient),
				zap.Error(err),
			)
			continue
		}

		if resp.Answer != "" {
			c.ResearchPoints = append(c.ResearchPoints, model.ResearchPoint{
				Point:     "Search analysis: " + resp.Answer,
				Category:  model.CategoryGeneralAnalysis,
				SourceURL: "Query: " + q,
				Relevance: model.ConfidenceHigh,
			})
		}
		for _, rec := range resp.Records {
			rec.Query = q
			r.add(c, seen, rec)
		}
		log.Debug("pipeline: query complete", zap.String("query", q), zap.Int("records", len(resp.Records)))
	}

	r.readHomepage(ctx, c, seen, log)

	log.Info("pipeline: collection complete",
		zap.Int("queries", len(queries)),
		zap.Int("records", len(c.Records)),
		zap.Int("evidence", len(c.Evidence)),
		zap.Int("research_points", len(c.ResearchPoints)),
		zap.Int("warnings", len(c.Warnings)),
	)
	return c
}

func (r *Runner) add(c *model.Collection, seen map[model.Source]struct{}, rec model.SearchRecord) {
	c.Records = append(c.Records, rec)

	evidence := r.extractor.PainPoints(rec)
	for _, e := range evidence {
		metrics.Evidence.WithLabelValues(e.CategoryID).Inc()
	}
	c.Evidence = append(c.Evidence, evidence...)
	c.ResearchPoints = append(c.ResearchPoints, r.extractor.ResearchPoints(rec)...)

	if rec.URL == "" {
		return
	}
	src := model.Source{URL: rec.URL, Title: rec.Title}
	if _, ok := seen[src]; !ok {
		seen[src] = struct{}{}
		c.Sources = append(c.Sources, src)
	}
}

func (r *Runner) readHomepage(ctx context.Context, c *model.Collection, seen map[model.Source]struct{}, log *zap.Logger) {
	if r.reader == nil || c.Company.URL == "" || ctx.Err() != nil {
		return
	}
	if err := r.pacer.Wait(ctx); err != nil {
		return
	}
	resp, err := r.reader.Read(ctx, c.Company.URL)
	if err != nil {
		c.Warnings = append(c.Warnings, model.Warning{
			Query:     HomepageQuery,
			Message:   err.Error(),
			Transient: resilience.IsTransient(err),
		})
		log.Warn("pipeline: homepage read failed", zap.String("url", c.Company.URL), zap.Error(err))
		return
	}

	title := resp.Data.Title
	if title == "" {
		title = c.Company.Name
	}
	u := resp.Data.URL
	if u == "" {
		u = c.Company.URL
	}
	r.add(c, seen, model.SearchRecord{Title: title, URL: u, Content: resp.Data.Content, Query: HomepageQuery})
}

func canceledWarning(query string, err error) model.Warning {
	msg := "collection canceled"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "collection deadline exceeded"
	}
	return model.Warning{Query: query, Message: msg + "; remaining queries skipped"}
}
