package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/pkg/tavily"
)

// Tavily adapts the Tavily client.
type Tavily struct {
	client tavily.Client
}

// NewTavily wraps a Tavily client as a Searcher.
func NewTavily(client tavily.Client) *Tavily {
	return &Tavily{client: client}
}

// Name implements Searcher.
func (t *Tavily) Name() string { return "tavily" }

// Search implements Searcher.
func (t *Tavily) Search(ctx context.Context, req Request) (*Response, error) {
	resp, err := t.client.Search(ctx, tavily.SearchRequest{
		Query:         req.Query,
		SearchDepth:   req.Depth,
		MaxResults:    req.MaxResults,
		IncludeAnswer: req.IncludeAnswer,
		StartDate:     req.Window.StartString(),
		EndDate:       req.Window.EndString(),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "search: tavily query %q", req.Query)
	}

	out := &Response{Answer: resp.Answer}
	for _, r := range resp.Results {
		out.Records = append(out.Records, model.SearchRecord{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Query:         req.Query,
			PublishedDate: r.PublishedDate,
		})
	}
	return out, nil
}
