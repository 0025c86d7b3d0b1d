package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// Markdown renders res as a GitHub-flavored markdown report.
func Markdown(res *model.AnalysisResult, cat *catalog.Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis Report: %s\n\n", escapeCell(res.CompanyName))
	if res.Message != "" {
		fmt.Fprintf(&b, "> %s\n\n", res.Message)
	}

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Industry | Digital Maturity | Confidence Score | Recommended Services |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %d%% | %d |\n\n",
		escapeCell(res.IndustryGuess),
		catalog.DisplayName(res.DigitalMaturity),
		res.ConfidenceScore,
		len(res.RecommendedServiceIDs),
	)

	fmt.Fprintf(&b, "## %s Fit Analysis\n\n", cat.ProviderName)
	b.WriteString("| " + strings.Join(Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(Columns)) + "\n")
	for _, r := range Rows(res, cat) {
		if r.Category == SectionFindings {
			continue
		}
		cells := r.Strings()
		for i := range cells {
			cells[i] = escapeCell(cells[i])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")

	if len(res.Findings) > 0 {
		b.WriteString("## Detailed Research Findings\n\n")
		b.WriteString("| Source Title | URL | Key Content | Search Query |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range res.Findings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escapeCell(findingTitle(f.Title)),
				escapeCell(f.URL),
				escapeCell(Truncate(f.Content)),
				escapeCell(f.Query),
			)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Justification\n\n")
	b.WriteString(res.Justification + "\n\n")
	b.WriteString("## Recommendation\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", res.RecommendationText)

	if len(res.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range res.Warnings {
			if w.Query != "" {
				fmt.Fprintf(&b, "- `%s`: %s\n", w.Query, w.Message)
			} else {
				fmt.Fprintf(&b, "- %s\n", w.Message)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Research Sources\n\n")
	if len(res.Sources) == 0 {
		b.WriteString("No sources available.\n")
	}
	for i, s := range res.Sources {
		title := s.Title
		if title == "" {
			title = "No title"
		}
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, title, s.URL)
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteHTML renders the markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, res *model.AnalysisResult, cat *catalog.Catalog) error {
	var content bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(res, cat)), &content); err != nil {
		return eris.Wrap(err, "report: markdown convert")
	}

	page := "<!doctype html><html><head><meta charset='utf-8'><title>Analysis Report: " +
		html.EscapeString(res.CompanyName) + "</title>" +
		"<style>body{font-family:sans-serif;max-width:1100px;margin:2em auto;}" +
		"table{border-collapse:collapse;}th,td{border:1px solid #ccc;padding:4px 8px;text-align:left;}</style>" +
		"</head><body>" + content.String() + "</body></html>\n"

	_, err := io.WriteString(w, page)
	return eris.Wrap(err, "report: write html")
}
