// Package search adapts web search vendors to a single Searcher interface.
package search

import (
	"context"

	"github.com/sells-group/painpoint-cli/internal/model"
)

// MaxResultsCap is the most results requested per query.
const MaxResultsCap = 5

// Request is one search call.
type Request struct {
	Query         string
	Depth         string
	MaxResults    int
	IncludeAnswer bool
	Window        *model.DateWindow
}

// Response is the normalized result of one search call.
type Response struct {
	Records []model.SearchRecord
	Answer  string
}

// Searcher issues a query to a web search collaborator.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Response, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}
