package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads the first worksheet of an XLSX workbook and feeds it
// through the same header/row shape as delimited text. Banks that only offer
// spreadsheet downloads go through here; everything downstream is identical.
func ParseWorkbook(r io.Reader) (*Statement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}

	var filtered [][]string
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		filtered = append(filtered, row)
	}

	if len(filtered) < 2 {
		return nil, ErrTooFewRows
	}

	return &Statement{Headers: filtered[0], Rows: filtered[1:]}, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
