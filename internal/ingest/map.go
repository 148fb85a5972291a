package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banksift/banksift/internal/ledger"
)

var (
	isoDateRE   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	mdyFullRE   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	mdyShortRE  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2})$`)
	amountJunkRE = regexp.MustCompile(`[$,\s]`)
)

// fallbackLayouts are tried, in order, for dates outside the common
// numeric formats.
var fallbackLayouts = []string{
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2 2006",
	time.RFC3339,
}

// ParseDate normalizes a date string to ISO YYYY-MM-DD. It recognizes ISO
// unchanged, M/D/YYYY and M-D-YYYY, and two-digit-year variants (years
// below 50 map to 20YY, the rest to 19YY), then tries a set of general
// layouts. An unparseable value is returned as-is; permissiveness is the
// contract, not a failure.
func ParseDate(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if isoDateRE.MatchString(trimmed) {
		return trimmed
	}

	if m := mdyFullRE.FindStringSubmatch(trimmed); m != nil {
		return m[3] + "-" + pad2(m[1]) + "-" + pad2(m[2])
	}

	if m := mdyShortRE.FindStringSubmatch(trimmed); m != nil {
		yy, _ := strconv.Atoi(m[3])
		century := "20"
		if yy > 50 {
			century = "19"
		}
		return century + m[3] + "-" + pad2(m[1]) + "-" + pad2(m[2])
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return trimmed
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ParseAmount converts an amount cell to a float. Currency symbols,
// thousands separators, and whitespace are stripped; a value wholly
// wrapped in parentheses counts as negative; anything unparseable yields 0.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	parensNeg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if parensNeg {
		s = s[1 : len(s)-1]
	}
	s = amountJunkRE.ReplaceAllString(s, "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) {
		return 0
	}
	if parensNeg {
		n = -n
	}
	return n
}

// MapRows converts raw rows into transactions in input order, each with a
// fresh id and its zero-based source row index. Merchant and category
// fields are left empty for the later pipeline stages.
//
// In single-amount mode the mapped column's sign is used directly; in
// split debit/credit mode a positive credit is an inflow, otherwise the
// debit's absolute value is negated.
func MapRows(rows []ledger.RawRow, mapping ledger.ColumnMapping, accountType ledger.AccountType) []ledger.Transaction {
	out := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		var amountSigned float64
		if mapping.Amount != "" {
			amountSigned = ParseAmount(row[mapping.Amount])
		} else {
			debit := ParseAmount(row[mapping.Debit])
			credit := ParseAmount(row[mapping.Credit])
			if credit > 0 {
				amountSigned = credit
			} else {
				amountSigned = -math.Abs(debit)
			}
		}

		csvCategory := ""
		if mapping.Category != "" {
			csvCategory = strings.TrimSpace(row[mapping.Category])
		}

		out[i] = ledger.Transaction{
			ID:             uuid.NewString(),
			Date:           ParseDate(row[mapping.Date]),
			AmountSigned:   amountSigned,
			RawDescription: strings.TrimSpace(row[mapping.Description]),
			CSVCategory:    csvCategory,
			Type:           ledger.TypeUnknown,
			AccountType:    accountType,
			Tags:           []string{},
			SourceRow:      i,
		}
	}
	return out
}
