package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/painpoint-cli/internal/model"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Companies")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "companies.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompanies(t *testing.T) {
	got, err := Companies([][]string{
		{"Website", " Company Name "},
		{"https://acme.example", "Acme Insurance"},
		{"", "  "},
		{"", "Globex Assurance"},
		{"https://short.example"},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Company{
		{Name: "Acme Insurance", URL: "https://acme.example"},
		{Name: "Globex Assurance"},
	}, got)
}

func TestCompanies_Errors(t *testing.T) {
	_, err := Companies(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	_, err = Companies([][]string{{"url", "industry"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no company column")
}

func TestCompanies_BOMHeader(t *testing.T) {
	got, err := Companies([][]string{{"\ufeffcompany"}, {"Acme"}})
	require.NoError(t, err)
	assert.Equal(t, []model.Company{{Name: "Acme"}}, got)
}

func TestLoadCompanies_CSV(t *testing.T) {
	path := writeTestFile(t, "list.csv", "company,url\nAcme Insurance,https://acme.example\n\"Globex, Inc\",\n")

	got, err := LoadCompanies(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Company{
		{Name: "Acme Insurance", URL: "https://acme.example"},
		{Name: "Globex, Inc"},
	}, got)
}

func TestLoadCompanies_TSV(t *testing.T) {
	path := writeTestFile(t, "list.tsv", "name\twebsite\nAcme Insurance\tacme.example\n")

	got, err := LoadCompanies(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Company{{Name: "Acme Insurance", URL: "acme.example"}}, got)
}

func TestLoadCompanies_XLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Company", "URL"},
		{"Acme Insurance", "https://acme.example"},
		{"Zenith Mutual", ""},
	})

	got, err := LoadCompanies(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Company{
		{Name: "Acme Insurance", URL: "https://acme.example"},
		{Name: "Zenith Mutual"},
	}, got)
}

func TestLoadCompanies_MissingFile(t *testing.T) {
	_, err := LoadCompanies(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nil)
	require.Error(t, err)
}

func TestLoadCompanies_RemoteCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lists/companies.csv", r.URL.Path)
		w.Write([]byte("company\nAcme Insurance\n"))
	}))
	defer srv.Close()

	got, err := LoadCompanies(context.Background(), srv.URL+"/lists/companies.csv", newTestFetcher())
	require.NoError(t, err)
	assert.Equal(t, []model.Company{{Name: "Acme Insurance"}}, got)
}

func TestLoadCompanies_RemoteXLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{{"company"}, {"Acme Insurance"}})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	got, err := LoadCompanies(context.Background(), srv.URL+"/companies.xlsx?dl=1", newTestFetcher())
	require.NoError(t, err)
	assert.Equal(t, []model.Company{{Name: "Acme Insurance"}}, got)
}

func TestLoadCompanies_RemoteWithoutDownloader(t *testing.T) {
	_, err := LoadCompanies(context.Background(), "https://example.com/list.csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no downloader")
}

func TestReadRows_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readRows(ctx, strings.NewReader("a\nb\n"), ',')
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadRows_SkipsBlankRows(t *testing.T) {
	rows, err := readRows(context.Background(), strings.NewReader("name,url\n , \n\nAcme , acme.example,,\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "url"}, {"Acme", "acme.example"}}, rows)
}

func TestReadWorkbook_PrefersCompaniesSheet(t *testing.T) {
	f := xlsx.NewFile()
	notes, err := f.AddSheet("Notes")
	require.NoError(t, err)
	notes.AddRow().AddCell().SetString("ignore me")

	companies, err := f.AddSheet("Companies")
	require.NoError(t, err)
	for _, v := range []string{"company", "", "Acme Insurance"} {
		companies.AddRow().AddCell().SetString(v)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.Save(path))

	rows, err := readWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"company"}, {"Acme Insurance"}}, rows)
}

func TestReadWorkbook_FirstSheetFallback(t *testing.T) {
	f := xlsx.NewFile()
	for _, name := range []string{"Sheet1", "Sheet2"} {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		sheet.AddRow().AddCell().SetString(name)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.Save(path))

	rows, err := readWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Sheet1"}}, rows)

	_, err = readWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}
