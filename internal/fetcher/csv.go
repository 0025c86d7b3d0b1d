package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// readRows parses delimited text into trimmed rows. Blank lines and rows
// whose cells are all empty are dropped. Ragged rows are allowed.
func readRows(ctx context.Context, r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "fetcher: read company list")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: parse row %d", line)
		}

		if row := trimRow(record); row != nil {
			rows = append(rows, row)
		}
	}
}

// trimRow trims each cell and drops trailing empty cells. It returns nil
// for a row with no content.
func trimRow(cells []string) []string {
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	if end == 0 {
		return nil
	}
	return cells[:end]
}
