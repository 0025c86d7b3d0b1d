// Package discovery surfaces potential client companies from industry-wide
// searches.
package discovery

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/extract"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/pipeline"
	"github.com/sells-group/painpoint-cli/internal/resilience"
	"github.com/sells-group/painpoint-cli/internal/search"
	"github.com/sells-group/painpoint-cli/pkg/tavily"
)

// Defaults for Discover arguments.
const (
	DefaultIndustry = "insurance"
	DefaultRegion   = "global"
)

// MaxResults is the number of results requested per discovery query.
const MaxResults = 8

const snippetChars = 300

// QueryTemplates use {industry}, {region} and {year} placeholders.
var QueryTemplates = []string{
	"{industry} companies digital transformation challenges {year}",
	"{industry} industry legacy system modernization",
	"{industry} companies data silos integration issues",
	"{industry} customer experience challenges digital onboarding",
	"top {industry} companies {region} operational efficiency issues",
	"{industry} claims processing automation needs",
	"{industry} field operations mobile technology gaps",
}

// Discoverer runs discovery searches. Searcher calls are not retried; a
// failed query becomes a warning.
type Discoverer struct {
	searcher   search.Searcher
	pacer      pipeline.Pacer
	catalog    *catalog.Catalog
	now        func() time.Time
	indicators []string
	tech       []string
	painPoints []painPointMatcher
}

type painPointMatcher struct {
	id       string
	keywords []string
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithPacer sets the outbound call limiter.
func WithPacer(p pipeline.Pacer) Option {
	return func(d *Discoverer) { d.pacer = p }
}

// WithClock overrides the clock used for the {year} placeholder.
func WithClock(now func() time.Time) Option {
	return func(d *Discoverer) { d.now = now }
}

// New creates a Discoverer over the catalog's pain points and discovery
// signal keywords.
func New(s search.Searcher, cat *catalog.Catalog, opts ...Option) *Discoverer {
	d := &Discoverer{
		searcher:   s,
		pacer:      pipeline.NewPacer(1),
		catalog:    cat,
		now:        time.Now,
		indicators: extract.FoldAll(cat.Signals.DiscoveryIndicators),
		tech:       extract.FoldAll(cat.Signals.DiscoveryTech),
	}
	for _, p := range cat.PainPoints {
		kw := append([]string{strings.ReplaceAll(p.ID, "_", " ")}, p.Keywords...)
		d.painPoints = append(d.painPoints, painPointMatcher{id: p.ID, keywords: extract.FoldAll(kw)})
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Queries expands QueryTemplates for industry and region.
func (d *Discoverer) Queries(industry, region string) []string {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		industry = DefaultIndustry
	}
	region = strings.TrimSpace(region)
	if region == "" {
		region = DefaultRegion
	}
	r := strings.NewReplacer(
		"{industry}", industry,
		"{region}", region,
		"{year}", strconv.Itoa(d.now().Year()),
	)
	out := make([]string, len(QueryTemplates))
	for i, t := range QueryTemplates {
		out[i] = r.Replace(t)
	}
	return out
}

// Discover runs every discovery query and returns unique prospects in
// first-seen order.
func (d *Discoverer) Discover(ctx context.Context, industry, region string) ([]model.Prospect, []model.Warning) {
	log := zap.L().With(zap.String("industry", industry), zap.String("region", region))

	prospects := []model.Prospect{}
	var warnings []model.Warning
	seen := make(map[string]struct{})

	for _, q := range d.Queries(industry, region) {
		if err := d.pacer.Wait(ctx); err != nil {
			warnings = append(warnings, model.Warning{Query: q, Message: "discovery canceled; remaining queries skipped"})
			break
		}

		resp, err := d.searcher.Search(ctx, search.Request{
			Query:         q,
			Depth:         tavily.DepthAdvanced,
			MaxResults:    MaxResults,
			IncludeAnswer: true,
		})
		if err != nil {
			transient := resilience.IsTransient(err)
			warnings = append(warnings, model.Warning{Query: q, Message: err.Error(), Transient: transient})
			log.Warn("discovery: query failed, skipping", zap.String("query", q), zap.Bool("transient", transient), zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		for _, rec := range resp.Records {
			p, ok := d.prospect(rec, q)
			if !ok {
				continue
			}
			key := strings.ToLower(p.CompanyName)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			prospects = append(prospects, p)
		}
	}

	log.Info("discovery: complete", zap.Int("prospects", len(prospects)), zap.Int("warnings", len(warnings)))
	return prospects, warnings
}

func (d *Discoverer) prospect(rec model.SearchRecord, query string) (model.Prospect, bool) {
	name := d.CompanyName(rec.Title, rec.Content)
	if name == "" {
		return model.Prospect{}, false
	}
	ids := d.PainPoints(rec.Content)
	return model.Prospect{
		CompanyName:    name,
		SourceURL:      rec.URL,
		SourceTitle:    rec.Title,
		DiscoveryQuery: query,
		PainPointIDs:   ids,
		RelevanceScore: d.Relevance(rec.Content, len(ids)),
		ContentSnippet: snippet(rec.Content),
	}, true
}

// CompanyName guesses a company name from a result. In the title it takes
// an insurance indicator word plus up to two preceding words; in the
// content it takes a capitalised word immediately before an indicator.
func (d *Discoverer) CompanyName(title, content string) string {
	words := strings.Fields(title)
	for i, w := range words {
		if i > 0 && d.isIndicator(w) {
			return strings.Join(words[max(0, i-2):i+1], " ")
		}
	}

	words = strings.Fields(content)
	for i, w := range words {
		if i == 0 || !d.isIndicator(w) {
			continue
		}
		prev, _ := utf8.DecodeRuneInString(words[i-1])
		if unicode.IsUpper(prev) {
			return words[i-1] + " " + w
		}
	}
	return ""
}

func (d *Discoverer) isIndicator(word string) bool {
	w := extract.Fold(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	for _, ind := range d.indicators {
		if w == ind {
			return true
		}
	}
	return false
}

// PainPoints returns the catalog categories mentioned in content, in
// catalog order. A category matches on any keyword or on its ID as a phrase.
func (d *Discoverer) PainPoints(content string) []string {
	folded := extract.Fold(content)
	ids := []string{}
	for _, p := range d.painPoints {
		if extract.ContainsAny(folded, p.keywords) {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// Relevance scores a result: 20 per pain point, 20 more for two or more,
// 15 for a technology mention, capped at 100.
func (d *Discoverer) Relevance(content string, painPoints int) int {
	score := 20 * painPoints
	if painPoints >= 2 {
		score += 20
	}
	if extract.ContainsAny(extract.Fold(content), d.tech) {
		score += 15
	}
	return min(100, score)
}

func snippet(content string) string {
	if utf8.RuneCountInString(content) <= snippetChars {
		return content
	}
	return string([]rune(content)[:snippetChars]) + "..."
}
