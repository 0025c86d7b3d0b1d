package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// preferredSheet is read when a workbook has a sheet by this name
// (case-insensitive); otherwise the first sheet is used.
const preferredSheet = "companies"

// readWorkbook returns the rows of the company sheet in an XLSX file.
func readWorkbook(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open workbook")
	}

	sheet := companySheet(f)
	if sheet == nil {
		return nil, eris.Errorf("fetcher: workbook %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.String()
		}
		if r := trimRow(cells); r != nil {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func companySheet(f *xlsx.File) *xlsx.Sheet {
	for _, s := range f.Sheets {
		if strings.EqualFold(s.Name, preferredSheet) {
			return s
		}
	}
	if len(f.Sheets) == 0 {
		return nil
	}
	return f.Sheets[0]
}
