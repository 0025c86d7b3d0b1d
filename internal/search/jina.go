package search

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/pkg/jina"
)

// Jina adapts the Jina search client. Jina has no synthesized answer and
// no server-side date filter, so results with a parseable date outside
// the window are dropped here.
type Jina struct {
	client jina.Client
}

// NewJina wraps a Jina client as a Searcher.
func NewJina(client jina.Client) *Jina {
	return &Jina{client: client}
}

// Name implements Searcher.
func (j *Jina) Name() string { return "jina" }

// Search implements Searcher.
func (j *Jina) Search(ctx context.Context, req Request) (*Response, error) {
	var opts []jina.SearchOption
	if req.MaxResults > 0 {
		opts = append(opts, jina.WithNumResults(req.MaxResults))
	}

	resp, err := j.client.Search(ctx, req.Query, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "search: jina query %q", req.Query)
	}

	out := &Response{}
	for _, r := range resp.Data {
		if !inWindow(r.Date, req.Window) {
			continue
		}
		out.Records = append(out.Records, model.SearchRecord{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Text(),
			Query:         req.Query,
			PublishedDate: r.Date,
		})
		if req.MaxResults > 0 && len(out.Records) == req.MaxResults {
			break
		}
	}
	return out, nil
}

// inWindow reports whether a result date falls inside w. Undated or
// unparseable results are kept.
func inWindow(date string, w *model.DateWindow) bool {
	if w == nil || date == "" {
		return true
	}
	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{time.RFC3339, model.DateLayout} {
		if t, err = time.Parse(layout, date); err == nil {
			break
		}
	}
	if err != nil {
		return true
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if !w.Start.IsZero() && day.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && day.After(w.End) {
		return false
	}
	return true
}
