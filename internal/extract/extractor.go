// Package extract finds pain-point evidence and descriptive research points
// in search result text.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// Window sizes, in characters.
const (
	PainPointBefore = 150
	PainPointAfter  = 300
	ResearchBefore  = 100
	ResearchAfter   = 200

	// Pain-point windows this short or shorter are treated as noise.
	MinWindowChars = 50
	// Windows longer than this are labelled high confidence.
	HighConfidenceChars = 100
)

type keywordGroup struct {
	id       string
	keywords []string
}

// Extractor scans search records against a catalog. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	painPoints []keywordGroup
	research   []keywordGroup
}

// New builds an Extractor from a catalog.
func New(c *catalog.Catalog) *Extractor {
	x := &Extractor{
		painPoints: make([]keywordGroup, 0, len(c.PainPoints)),
		research:   make([]keywordGroup, 0, len(c.ResearchCategories)),
	}
	for _, p := range c.PainPoints {
		x.painPoints = append(x.painPoints, keywordGroup{id: p.ID, keywords: FoldAll(p.Keywords)})
	}
	for _, g := range c.ResearchCategories {
		x.research = append(x.research, keywordGroup{id: g.ID, keywords: FoldAll(g.Keywords)})
	}
	return x
}

// FoldAll folds every keyword.
func FoldAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = Fold(k)
	}
	return out
}

// PainPoints returns at most one Evidence per pain-point category for rec.
// Within a category the first keyword yielding a window longer than
// MinWindowChars wins.
func (x *Extractor) PainPoints(rec model.SearchRecord) []model.Evidence {
	if rec.Content == "" {
		return nil
	}
	folded := Fold(rec.Content)

	var out []model.Evidence
	for _, g := range x.painPoints {
		for _, kw := range g.keywords {
			idx := strings.Index(folded, kw)
			if idx < 0 {
				continue
			}
			window := Window(rec.Content, idx, PainPointBefore, PainPointAfter)
			n := utf8.RuneCountInString(window)
			if n <= MinWindowChars {
				continue
			}
			label := model.ConfidenceMedium
			if n > HighConfidenceChars {
				label = model.ConfidenceHigh
			}
			out = append(out, model.Evidence{
				CategoryID:      g.id,
				ContextWindow:   window,
				SourceURL:       rec.URL,
				SourceTitle:     rec.Title,
				MatchedKeyword:  kw,
				ConfidenceLabel: label,
			})
			break
		}
	}
	return out
}

// ResearchPoints returns at most one descriptive point per generic category
// for rec.
func (x *Extractor) ResearchPoints(rec model.SearchRecord) []model.ResearchPoint {
	if rec.Content == "" {
		return nil
	}
	folded := Fold(rec.Content)

	var out []model.ResearchPoint
	for _, g := range x.research {
		for _, kw := range g.keywords {
			idx := strings.Index(folded, kw)
			if idx < 0 {
				continue
			}
			window := Window(rec.Content, idx, ResearchBefore, ResearchAfter)
			if window == "" {
				continue
			}
			out = append(out, model.ResearchPoint{
				Point:       window,
				Category:    g.id,
				SourceURL:   rec.URL,
				SourceTitle: rec.Title,
				Relevance:   model.ConfidenceMedium,
			})
			break
		}
	}
	return out
}
