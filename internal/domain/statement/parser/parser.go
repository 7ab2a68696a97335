// Package parser turns statement exports into header and data rows for the
// import pipeline.
package parser

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyFile is returned for files with no content at all.
	ErrEmptyFile = errors.New("statement file is empty")
	// ErrTooFewRows is returned when a file lacks a header plus at least one
	// data row. This is the only file-level structural failure; everything
	// past it is handled per row.
	ErrTooFewRows = errors.New("statement needs a header row and at least one data row")
)

// Statement holds the split header and data rows of one export.
type Statement struct {
	Headers []string
	Rows    [][]string
}

// ParseText splits delimited statement text into rows of cells: rows on
// newlines, cells on commas, with naive quote-stripping. Embedded delimiters
// inside quoted cells are not handled; that is a documented limitation of
// the format this pipeline accepts, not something to paper over with a
// stricter reader.
func ParseText(data string) (*Statement, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrEmptyFile
	}

	var rows [][]string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitCells(line))
	}

	if len(rows) < 2 {
		return nil, ErrTooFewRows
	}

	return &Statement{Headers: rows[0], Rows: rows[1:]}, nil
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		c = strings.TrimSpace(c)
		c = strings.Trim(c, `"`)
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
