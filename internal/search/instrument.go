package search

import (
	"context"

	"github.com/sells-group/painpoint-cli/internal/metrics"
	"github.com/sells-group/painpoint-cli/internal/resilience"
)

type instrumented struct {
	next Searcher
}

// Instrument counts every call to s in painpoint_search_requests_total.
func Instrument(s Searcher) Searcher {
	return &instrumented{next: s}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Search(ctx context.Context, req Request) (*Response, error) {
	resp, err := i.next.Search(ctx, req)
	status := metrics.StatusOK
	if err != nil {
		status = string(resilience.Classify(err))
	}
	metrics.SearchRequests.WithLabelValues(i.next.Name(), status).Inc()
	return resp, err
}
