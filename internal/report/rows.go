// Package report renders analysis results for export.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// Columns is the stable header of every tabular export.
var Columns = []string{"Category", "Aspect", "Finding", "Source URL", "Relevance"}

// Row sections.
const (
	SectionCompany    = "Company Information"
	SectionPainPoints = "Pain Points"
	SectionBusiness   = "Core Business"
	SectionTechnology = "Technology Stack"
	SectionChallenges = "Identified Challenges"
	SectionServices   = "Recommended Services"
	SectionReferences = "Reference Sources"
	SectionFindings   = "Research Findings"
)

const (
	maxFindingChars = 200
	maxPerSection   = 5
)

// Row is one line of the tabular report.
type Row struct {
	Category  string `json:"category"`
	Aspect    string `json:"aspect"`
	Finding   string `json:"finding"`
	SourceURL string `json:"source_url"`
	Relevance string `json:"relevance"`
}

// Strings returns the row in Columns order.
func (r Row) Strings() []string {
	return []string{r.Category, r.Aspect, r.Finding, r.SourceURL, r.Relevance}
}

// Rows flattens a result into report rows.
func Rows(res *model.AnalysisResult, cat *catalog.Catalog) []Row {
	companyURL := res.CompanyURL
	if companyURL == "" {
		companyURL = "N/A"
	}
	rows := []Row{
		{SectionCompany, "Company Name", res.CompanyName, companyURL, "High"},
		{SectionCompany, "Industry", res.IndustryGuess, "Multiple sources", "High"},
		{SectionCompany, "Digital Maturity", catalog.DisplayName(res.DigitalMaturity), "Technology analysis", "High"},
		{SectionCompany, "Confidence Score", fmt.Sprintf("%d%%", res.ConfidenceScore), "Analysis metrics", "High"},
		{SectionCompany, "Recommendation", string(res.RecommendationLabel), "Analysis metrics", "High"},
	}

	for _, p := range cat.PainPoints {
		n := 0
		for _, e := range res.EvidenceList {
			if e.CategoryID != p.ID || n == maxPerSection {
				continue
			}
			n++
			rows = append(rows, Row{
				Category:  SectionPainPoints,
				Aspect:    cat.CategoryName(p.ID),
				Finding:   Truncate(e.ContextWindow),
				SourceURL: e.SourceURL,
				Relevance: catalog.DisplayName(e.ConfidenceLabel),
			})
		}
	}

	rows = appendPoints(rows, res.ResearchPoints, "business_model", SectionBusiness, "Business Area")
	rows = appendPoints(rows, res.ResearchPoints, "technology", SectionTechnology, "Technology")
	rows = appendPoints(rows, res.ResearchPoints, "challenges", SectionChallenges, "Challenge")

	for _, id := range res.RecommendedServiceIDs {
		svc, _ := cat.Service(id)
		rows = append(rows, Row{
			Category:  SectionServices,
			Aspect:    cat.ServiceName(id),
			Finding:   svc.Description,
			SourceURL: cat.ProviderName + " analysis",
			Relevance: "High",
		})
	}

	for _, p := range cat.PainPoints {
		if res.CategoryCounts[p.ID] == 0 {
			continue
		}
		for _, u := range p.ReferenceURLs {
			rows = append(rows, Row{
				Category:  SectionReferences,
				Aspect:    cat.CategoryName(p.ID),
				Finding:   Truncate(p.SolutionDescription),
				SourceURL: u,
				Relevance: "Reference",
			})
		}
	}
	return appendFindings(rows, res.Findings)
}

// appendFindings adds one row per search record. The relevance column
// names the query that surfaced it.
func appendFindings(rows []Row, findings []model.SearchRecord) []Row {
	for _, f := range findings {
		rows = append(rows, Row{
			Category:  SectionFindings,
			Aspect:    findingTitle(f.Title),
			Finding:   Truncate(f.Content),
			SourceURL: f.URL,
			Relevance: "Query: " + f.Query,
		})
	}
	return rows
}

func findingTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "No title"
	}
	return title
}

func appendPoints(rows []Row, points []model.ResearchPoint, category, section, aspect string) []Row {
	n := 0
	for _, p := range points {
		if p.Category != category {
			continue
		}
		n++
		if n > maxPerSection {
			break
		}
		rows = append(rows, Row{
			Category:  section,
			Aspect:    fmt.Sprintf("%s %d", aspect, n),
			Finding:   Truncate(p.Point),
			SourceURL: p.SourceURL,
			Relevance: catalog.DisplayName(p.Relevance),
		})
	}
	return rows
}

// Truncate shortens s to 200 characters followed by "...".
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxFindingChars {
		return s
	}
	r := []rune(s)
	return string(r[:maxFindingChars]) + "..."
}

// Filename returns analysis_<lower_snake_company>.<ext>.
func Filename(company, ext string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(company)) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "company"
	}
	return "analysis_" + name + "." + strings.TrimPrefix(ext, ".")
}
