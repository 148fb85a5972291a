// Package ingest turns a CSV export into typed transactions: it reads
// header-indexed rows, proposes a column mapping and account type, and maps
// confirmed rows into ledger transactions.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

// ParseResult is a tokenized CSV: trimmed headers, header-indexed rows, and
// row-level warnings. Warnings are informational and never block
// processing.
type ParseResult struct {
	Headers  []string
	Rows     []ledger.RawRow
	Warnings []string
}

// ReadCSV tokenizes a CSV stream into header-indexed rows. Short rows are
// padded with empty cells and long rows truncated, each with a warning;
// blank lines are skipped.
func ReadCSV(r io.Reader) (ParseResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var res ParseResult
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if line == 1 {
			res.Headers = make([]string, len(rec))
			for i, h := range rec {
				res.Headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) != len(res.Headers) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: %d fields, expected %d", line, len(rec), len(res.Headers)))
		}
		row := make(ledger.RawRow, len(res.Headers))
		for i, h := range res.Headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if len(res.Headers) == 0 {
		return res, fmt.Errorf("csv: no header row")
	}
	return res, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
