package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/analyst"
	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/cost"
	"github.com/sells-group/painpoint-cli/internal/extract"
	"github.com/sells-group/painpoint-cli/internal/pipeline"
	"github.com/sells-group/painpoint-cli/internal/query"
	"github.com/sells-group/painpoint-cli/internal/scorer"
	"github.com/sells-group/painpoint-cli/internal/search"
	"github.com/sells-group/painpoint-cli/internal/store"
	anthropicpkg "github.com/sells-group/painpoint-cli/pkg/anthropic"
	"github.com/sells-group/painpoint-cli/pkg/jina"
)

// researchEnv holds everything the research, batch and serve commands need.
type researchEnv struct {
	Catalog *catalog.Catalog
	Scorer  *scorer.Scorer
	Service *pipeline.Service
	Store   store.Store // nil when the archive is disabled
}

// Close releases resources held by the environment.
func (e *researchEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// homepageReader builds the Jina reader used for the company homepage. It
// shares the search timeout so a stalled page cannot hang a run.
func homepageReader(c *config.Config) jina.Client {
	return jina.NewClient(c.Jina.Key, jina.WithHTTPClient(search.HTTPClient(c)))
}

// initCatalog resolves the service catalog from config.
func initCatalog(c *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Resolve(c.Research.CatalogPath, c.Research.ProviderName)
	if err != nil {
		return nil, eris.Wrap(err, "load catalog")
	}
	return cat, nil
}

// initStore opens the configured run archive. It returns a nil store when
// the driver is "none".
func initStore(ctx context.Context, c *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, c.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	return st, nil
}

// requireStore opens the archive for commands that read runs back.
func requireStore(ctx context.Context, c *config.Config) (store.Store, error) {
	st, err := initStore(ctx, c)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, eris.New("run archive is disabled (store.driver is none)")
	}
	return st, nil
}

// initResearch builds the research service. The pacer is shared by every
// request the service runs.
func initResearch(ctx context.Context, c *config.Config, pacer pipeline.Pacer) (*researchEnv, error) {
	searcher, err := search.New(c)
	if err != nil {
		return nil, err
	}
	return buildResearch(ctx, c, searcher, pacer)
}

func buildResearch(ctx context.Context, c *config.Config, searcher search.Searcher, pacer pipeline.Pacer) (*researchEnv, error) {
	cat, err := initCatalog(c)
	if err != nil {
		return nil, err
	}

	sc, err := scorer.New(c.Scoring, cat)
	if err != nil {
		return nil, err
	}

	runnerOpts := []pipeline.RunnerOption{
		pipeline.WithPacer(pacer),
		pipeline.WithDepth(c.Search.Depth),
		pipeline.WithMaxResults(c.Search.MaxResults),
	}
	if c.Research.ReadHomepage && c.Jina.Key != "" {
		runnerOpts = append(runnerOpts, pipeline.WithHomepageReader(homepageReader(c)))
	}
	runner := pipeline.NewRunner(searcher, extract.New(cat), runnerOpts...)

	gen := query.NewGenerator(
		query.WithTemplates(c.Research.Templates),
		query.WithRecentTemplates(c.Research.RecentTemplates),
	)

	st, err := initStore(ctx, c)
	if err != nil {
		return nil, err
	}

	svcOpts := []pipeline.Option{
		pipeline.WithStore(st),
		pipeline.WithCalculator(cost.NewCalculator(cost.FromConfig(c.Pricing))),
		pipeline.WithDefaultMode(c.Research.Mode),
	}
	if c.Anthropic.Key != "" {
		a := analyst.New(anthropicpkg.NewClient(c.Anthropic.Key), sc, cat, c.Anthropic)
		svcOpts = append(svcOpts, pipeline.WithAnalyst(a, c.Anthropic.Model))
	} else {
		zap.L().Debug("PAINPOINT_ANTHROPIC_KEY not set, llm mode disabled")
	}

	return &researchEnv{
		Catalog: cat,
		Scorer:  sc,
		Service: pipeline.NewService(gen, runner, sc, svcOpts...),
		Store:   st,
	}, nil
}

// openOutput returns stdout for "" or "-", otherwise creates path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create %s", path)
	}
	return f, nil
}

// writeOutput opens path, hands it to fn and closes it. A failed close is
// returned when fn itself succeeded.
func writeOutput(path string, fn func(io.Writer) error) error {
	w, err := openOutput(path)
	if err != nil {
		return err
	}
	return writeAndClose(w, path, fn)
}

func writeAndClose(w io.WriteCloser, path string, fn func(io.Writer) error) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "close %s", path)
		}
	}()
	return fn(w)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
