package report

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// Export formats.
const (
	FormatCSV      = "csv"
	FormatTSV      = "tsv"
	FormatJSON     = "json"
	FormatXLSX     = "xlsx"
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// Formats lists every supported export format.
var Formats = []string{FormatCSV, FormatTSV, FormatJSON, FormatXLSX, FormatMarkdown, FormatHTML}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatTSV:
		return "text/tab-separated-values"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Write renders res in format to w.
func Write(w io.Writer, format string, res *model.AnalysisResult, cat *catalog.Catalog) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, Rows(res, cat))
	case FormatTSV:
		return WriteTSV(w, Rows(res, cat))
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatXLSX:
		return WriteXLSX(w, Rows(res, cat))
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(res, cat))
		return eris.Wrap(err, "report: write markdown")
	case FormatHTML:
		return WriteHTML(w, res, cat)
	default:
		return eris.Errorf("report: unknown format %q", format)
	}
}

// WriteCSV writes rows as comma-separated values with a header.
func WriteCSV(w io.Writer, rows []Row) error {
	return writeDelimited(w, rows, ',')
}

// WriteTSV writes rows as tab-separated values with a header.
func WriteTSV(w io.Writer, rows []Row) error {
	return writeDelimited(w, rows, '\t')
}

func writeDelimited(w io.Writer, rows []Row, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "report: write header")
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return eris.Wrap(err, "report: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush")
}

// WriteJSON writes the full result as indented JSON.
func WriteJSON(w io.Writer, res *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(res), "report: encode json")
}

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Analysis"

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range Columns {
		header.AddCell().SetString(c)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r.Strings() {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrap(f.Write(w), "report: write xlsx")
}
