package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		CompanyName:     "Acme Insurance",
		CompanyURL:      "https://acme.example",
		IndustryGuess:   model.IndustryInsurance,
		DigitalMaturity: model.MaturityLow,
		EvidenceList: []model.Evidence{
			{CategoryID: "legacy_systems", ContextWindow: "runs on a mainframe | from 1987", SourceURL: "https://news.example/1", ConfidenceLabel: model.ConfidenceHigh},
		},
		CategoryCounts: map[string]int{"legacy_systems": 1},
		ResearchPoints: []model.ResearchPoint{
			{Point: "Acme sells commercial property products", Category: "business_model", SourceURL: "https://news.example/2", Relevance: model.ConfidenceMedium},
			{Point: "Acme uses a legacy platform", Category: "technology", SourceURL: "https://news.example/3", Relevance: model.ConfidenceMedium},
			{Point: strings.Repeat("x", 250), Category: "challenges", SourceURL: "https://news.example/4", Relevance: model.ConfidenceMedium},
		},
		RecommendedServiceIDs: []string{"policy_administration", "claims_management"},
		ConfidenceScore:       45,
		RecommendationLabel:   model.RecommendationWeak,
		RecommendationText:    "WEAK RECOMMENDATION - Limited evidence of fit",
		Justification:         "Pain points detected: Legacy Systems.",
		Sources:               []model.Source{{URL: "https://news.example/1", Title: "Acme modernizes"}},
		Warnings:              []model.Warning{{Query: "Acme fraud", Message: "tavily: unexpected status 503"}},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult(), catalog.Default())

	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, Row{SectionCompany, "Company Name", "Acme Insurance", "https://acme.example", "High"}, rows[0])
	assert.Equal(t, "Low", rows[2].Finding)
	assert.Equal(t, "45%", rows[3].Finding)

	bySection := map[string][]Row{}
	for _, r := range rows {
		bySection[r.Category] = append(bySection[r.Category], r)
	}

	require.Len(t, bySection[SectionPainPoints], 1)
	assert.Equal(t, "Legacy Systems", bySection[SectionPainPoints][0].Aspect)
	assert.Equal(t, "High", bySection[SectionPainPoints][0].Relevance)

	require.Len(t, bySection[SectionBusiness], 1)
	assert.Equal(t, "Business Area 1", bySection[SectionBusiness][0].Aspect)
	assert.Equal(t, "Medium", bySection[SectionBusiness][0].Relevance)
	require.Len(t, bySection[SectionTechnology], 1)
	require.Len(t, bySection[SectionChallenges], 1)
	assert.Equal(t, strings.Repeat("x", 200)+"...", bySection[SectionChallenges][0].Finding)

	require.Len(t, bySection[SectionServices], 2)
	assert.Equal(t, "Policy Administration", bySection[SectionServices][0].Aspect)
	assert.Equal(t, "iNube Solutions analysis", bySection[SectionServices][0].SourceURL)

	refs := bySection[SectionReferences]
	require.Len(t, refs, 2)
	assert.Equal(t, "https://www.gartner.com/en/articles/the-cost-of-legacy-systems", refs[0].SourceURL)
}

func TestRowsCapsPerSection(t *testing.T) {
	res := sampleResult()
	res.ResearchPoints = nil
	for i := 0; i < 8; i++ {
		res.ResearchPoints = append(res.ResearchPoints, model.ResearchPoint{Point: "p", Category: "technology", Relevance: "medium"})
	}
	n := 0
	for _, r := range Rows(res, catalog.Default()) {
		if r.Category == SectionTechnology {
			n++
		}
	}
	assert.Equal(t, 5, n)
}

func TestRowsResearchFindings(t *testing.T) {
	res := sampleResult()
	res.Findings = []model.SearchRecord{
		{Title: "Acme modernizes", URL: "https://news.example/1", Content: strings.Repeat("c", 240), Query: "Acme Insurance legacy system modernization"},
		{URL: "https://news.example/5", Content: "Short | piped content", Query: "Acme Insurance claims fraud"},
	}

	var findings []Row
	for _, r := range Rows(res, catalog.Default()) {
		if r.Category == SectionFindings {
			findings = append(findings, r)
		}
	}
	require.Len(t, findings, 2)
	assert.Equal(t, Row{
		Category:  SectionFindings,
		Aspect:    "Acme modernizes",
		Finding:   strings.Repeat("c", 200) + "...",
		SourceURL: "https://news.example/1",
		Relevance: "Query: Acme Insurance legacy system modernization",
	}, findings[0])
	assert.Equal(t, "No title", findings[1].Aspect)

	md := Markdown(res, catalog.Default())
	assert.Contains(t, md, "## Detailed Research Findings")
	assert.Contains(t, md, "| Source Title | URL | Key Content | Search Query |")
	assert.Contains(t, md, "| No title | https://news.example/5 | Short \\| piped content | Acme Insurance claims fraud |")
	assert.NotContains(t, md, "| Research Findings |", "findings get their own table")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))
	var back model.AnalysisResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, res.Findings, back.Findings)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))
	assert.Equal(t, strings.Repeat("a", 200), Truncate(strings.Repeat("a", 200)))
	long := strings.Repeat("é", 201)
	assert.Equal(t, strings.Repeat("é", 200)+"...", Truncate(long))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "analysis_acme_insurance.tsv", Filename("Acme Insurance", "tsv"))
	assert.Equal(t, "analysis_acme_insurance_co.json", Filename("  Acme Insurance Co. ", ".json"))
	assert.Equal(t, "analysis_a_b.csv", Filename("A -- B", "csv"))
	assert.Equal(t, "analysis_company.csv", Filename("!!!", "csv"))
}

func TestWriteCSVAndTSV(t *testing.T) {
	rows := Rows(sampleResult(), catalog.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, Columns, records[0])
	assert.Len(t, records, len(rows)+1)

	buf.Reset()
	require.NoError(t, WriteTSV(&buf, rows))
	r := csv.NewReader(&buf)
	r.Comma = '\t'
	records, err = r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Category\tAspect\tFinding\tSource URL\tRelevance", strings.Join(records[0], "\t"))
	assert.Equal(t, "Acme Insurance", records[1][2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))
	assert.Contains(t, buf.String(), "\n  \"company_name\": \"Acme Insurance\"")

	var back model.AnalysisResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, 45, back.ConfidenceScore)
}

func TestWriteXLSX(t *testing.T) {
	rows := Rows(sampleResult(), catalog.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, len(rows)+1)
	assert.Equal(t, "Category", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Acme Insurance", sheet.Rows[1].Cells[2].String())
}

func TestMarkdownAndHTML(t *testing.T) {
	res := sampleResult()
	md := Markdown(res, catalog.Default())

	assert.True(t, strings.HasPrefix(md, "# Analysis Report: Acme Insurance\n"))
	assert.Contains(t, md, "| Insurance | Low | 45% | 2 |")
	assert.Contains(t, md, `runs on a mainframe \| from 1987`)
	assert.Contains(t, md, "**WEAK RECOMMENDATION - Limited evidence of fit**")
	assert.Contains(t, md, "- `Acme fraud`: tavily: unexpected status 503")
	assert.Contains(t, md, "1. **Acme modernizes** - https://news.example/1")

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, res, catalog.Default()))
	out := buf.String()
	assert.Contains(t, out, "<title>Analysis Report: Acme Insurance</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h2>Justification</h2>")
}

func TestWriteDispatch(t *testing.T) {
	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, sampleResult(), catalog.Default()), f)
		assert.NotZero(t, buf.Len(), f)
		assert.NotEqual(t, "application/octet-stream", ContentType(f))
	}
	assert.Error(t, Write(&bytes.Buffer{}, "pdf", sampleResult(), catalog.Default()))
}

func TestWriteProspectsCSV(t *testing.T) {
	prospects := []model.Prospect{
		{CompanyName: "Acme Insurance", RelevanceScore: 75, SourceURL: "https://news.example/a", DiscoveryQuery: "insurance legacy", PainPointIDs: []string{"legacy_systems", "fraud_detection"}},
		{CompanyName: "No Pain Mutual", RelevanceScore: 15, PainPointIDs: nil},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProspectsCSV(&buf, prospects, catalog.Default()))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, ProspectColumns, records[0])
	assert.Equal(t, []string{
		"Acme Insurance", "75", "https://news.example/a", "legacy_systems",
		"Outdated technology hindering automation and digital transformation",
		"policy_administration, digital_distribution, claims_management",
		"insurance legacy",
	}, records[1])
	assert.Equal(t, "fraud_detection", records[2][3])
}
