// Package query builds the ordered search queries for a company.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/model"
)

// Placeholders substituted into templates.
const (
	CompanyPlaceholder = "{company}"
	YearPlaceholder    = "{year}"
)

// DefaultTemplates are used when no date window is supplied.
var DefaultTemplates = []string{
	"{company} digital transformation challenges {year}",
	"{company} legacy system modernization",
	"{company} operational efficiency manual processes",
	"{company} customer experience retention churn",
	"{company} claims processing fraud detection",
	"{company} technology stack IT systems",
	"{company} recent news developments {year}",
	"{company} insurance business model services products",
	"{company} financial performance growth strategy",
	"{company} regulatory compliance challenges",
}

// RecentTemplates are used whenever a date window is supplied.
var RecentTemplates = []string{
	"{company} latest news {year}",
	"{company} challenges problems {year}",
	"{company} legacy systems modernization {year}",
	"{company} operational inefficiencies manual processes",
	"{company} customer complaints churn retention {year}",
	"{company} claims fraud losses {year}",
	"{company} technology investments IT systems {year}",
	"{company} digital transformation initiatives {year}",
}

// Generator expands templates for one company. It is safe for concurrent use.
type Generator struct {
	templates []string
	recent    []string
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplates replaces the default template set. Empty slices are ignored.
func WithTemplates(templates []string) Option {
	return func(g *Generator) {
		if len(templates) > 0 {
			g.templates = templates
		}
	}
}

// WithRecentTemplates replaces the date-window template set. Empty slices are ignored.
func WithRecentTemplates(templates []string) Option {
	return func(g *Generator) {
		if len(templates) > 0 {
			g.recent = templates
		}
	}
}

// WithClock sets the clock used for {year} when no window end is given.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator with the built-in templates.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		templates: DefaultTemplates,
		recent:    RecentTemplates,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the queries for company in template order with
// duplicates removed. A non-nil window selects the recent template set and
// supplies {year} from its end date.
func (g *Generator) Generate(company string, window *model.DateWindow) ([]string, error) {
	company = strings.Join(strings.Fields(company), " ")
	if company == "" {
		return nil, eris.New("query: company name is required")
	}

	templates := g.templates
	year := g.now().Year()
	if window != nil {
		templates = g.recent
		if !window.End.IsZero() {
			year = window.End.Year()
		}
	}

	r := strings.NewReplacer(CompanyPlaceholder, company, YearPlaceholder, strconv.Itoa(year))

	out := make([]string, 0, len(templates))
	seen := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		q := strings.TrimSpace(r.Replace(t))
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out, nil
}
