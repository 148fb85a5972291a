package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

var (
	dateHeaders     = []string{"date", "transaction date", "posting date", "trans date", "posted date"}
	descHeaders     = []string{"description", "memo", "transaction description", "details", "narrative", "payee"}
	amountHeaders   = []string{"amount", "transaction amount"}
	debitHeaders    = []string{"debit", "withdrawals", "withdrawal", "debit amount"}
	creditHeaders   = []string{"credit", "deposits", "deposit", "credit amount"}
	categoryHeaders = []string{"category", "transaction category", "merchant category", "category description"}
)

// DetectColumnMapping proposes a column mapping by case-insensitive
// matching against known header names. Returns nil when date or description
// cannot be found, or when none of amount/debit/credit can.
func DetectColumnMapping(headers []string) *ledger.ColumnMapping {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(candidates []string) string {
		for _, c := range candidates {
			for i, h := range lower {
				if h == c {
					return headers[i]
				}
			}
		}
		return ""
	}

	mapping := ledger.ColumnMapping{
		Date:        find(dateHeaders),
		Description: find(descHeaders),
		Amount:      find(amountHeaders),
		Debit:       find(debitHeaders),
		Credit:      find(creditHeaders),
		Category:    find(categoryHeaders),
	}
	if mapping.Date == "" || mapping.Description == "" {
		return nil
	}
	if mapping.Amount == "" && mapping.Debit == "" && mapping.Credit == "" {
		return nil
	}
	return &mapping
}

// FormatSignature derives a stable key from a CSV's headers (lowercased,
// sorted, joined) so a confirmed mapping can be recalled on the next import
// of the same bank format.
func FormatSignature(headers []string) string {
	sig := make([]string, len(headers))
	for i, h := range headers {
		sig[i] = strings.ToLower(strings.TrimSpace(h))
	}
	sort.Strings(sig)
	return strings.Join(sig, "|")
}

// AccountTypeDetection is the result of account-type sniffing, including
// human-readable reasons for the verdict.
type AccountTypeDetection struct {
	Type       ledger.AccountType
	Confidence string // "high" when the winning side leads by >= 2
	Reasons    []string
}

var ccHeaderSignals = []string{
	"credit limit", "available credit", "card number",
	"minimum payment", "minimum payment due", "statement balance",
}

var bankHeaderSignals = []string{
	"check number", "running balance", "available balance",
	"routing", "account balance",
}

type descSignal struct {
	pattern *regexp.Regexp
	label   string
}

var ccDescSignals = []descSignal{
	{regexp.MustCompile(`(?i)PAYMENT\s*-?\s*THANK\s*YOU`), "payment confirmation text"},
	{regexp.MustCompile(`(?i)AUTOPAY`), "autopay reference"},
	{regexp.MustCompile(`(?i)PURCHASE\s*INTEREST|INTEREST\s*CHARGE`), "interest charge"},
	{regexp.MustCompile(`(?i)ANNUAL\s*FEE`), "annual fee"},
	{regexp.MustCompile(`(?i)CASH\s*ADVANCE\s*FEE`), "cash advance fee"},
	{regexp.MustCompile(`(?i)FOREIGN\s*TRANSACTION\s*FEE`), "foreign transaction fee"},
	{regexp.MustCompile(`(?i)MINIMUM\s*PAYMENT\s*DUE`), "minimum payment due"},
	{regexp.MustCompile(`(?i)LATE\s*FEE`), "late fee"},
}

var bankDescSignals = []descSignal{
	{regexp.MustCompile(`(?i)DIRECT\s*DEPOSIT`), "direct deposit"},
	{regexp.MustCompile(`(?i)PAYROLL`), "payroll deposit"},
	{regexp.MustCompile(`(?i)CHECK\s+\d+`), "check number reference"},
	{regexp.MustCompile(`(?i)ACH\s*CREDIT`), "ACH credit"},
	{regexp.MustCompile(`(?i)WIRE\s*(TRANSFER|CREDIT|DEPOSIT)`), "wire transfer"},
	{regexp.MustCompile(`(?i)ATM\s*WITHDRAWAL`), "ATM withdrawal"},
	{regexp.MustCompile(`(?i)OVERDRAFT`), "overdraft"},
}

// sampleLimit bounds how many rows the description scan reads.
const sampleLimit = 100

// DetectAccountType decides whether an export came from a credit card or a
// bank account. Headers are scanned first, then cell values from the first
// hundred rows; each distinct signal scores one point and the side ahead by
// two or more earns high confidence.
func DetectAccountType(headers []string, sampleRows []ledger.RawRow) AccountTypeDetection {
	lowerHeaders := make([]string, len(headers))
	for i, h := range headers {
		lowerHeaders[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var reasons []string
	ccScore, bankScore := 0, 0

	headerHas := func(signal string) bool {
		for _, h := range lowerHeaders {
			if strings.Contains(h, signal) {
				return true
			}
		}
		return false
	}
	for _, signal := range ccHeaderSignals {
		if headerHas(signal) {
			ccScore++
			reasons = append(reasons, fmt.Sprintf("header column %q found", signal))
		}
	}
	for _, signal := range bankHeaderSignals {
		if headerHas(signal) {
			bankScore++
			reasons = append(reasons, fmt.Sprintf("header column %q found", signal))
		}
	}

	if len(sampleRows) > sampleLimit {
		sampleRows = sampleRows[:sampleLimit]
	}
	var values []string
	for _, row := range sampleRows {
		for _, v := range row {
			if len(strings.TrimSpace(v)) > 5 {
				values = append(values, v)
			}
		}
	}
	anyMatches := func(re *regexp.Regexp) bool {
		for _, v := range values {
			if re.MatchString(v) {
				return true
			}
		}
		return false
	}

	var ccMatches, bankMatches []string
	for _, s := range ccDescSignals {
		if anyMatches(s.pattern) {
			ccScore++
			ccMatches = append(ccMatches, s.label)
		}
	}
	for _, s := range bankDescSignals {
		if anyMatches(s.pattern) {
			bankScore++
			bankMatches = append(bankMatches, s.label)
		}
	}
	if len(ccMatches) > 0 {
		reasons = append(reasons, "credit card patterns in transactions: "+strings.Join(ccMatches, ", "))
	}
	if len(bankMatches) > 0 {
		reasons = append(reasons, "bank patterns in transactions: "+strings.Join(bankMatches, ", "))
	}

	margin := ccScore - bankScore
	if margin < 0 {
		margin = -margin
	}
	confidence := "low"
	if margin >= 2 {
		confidence = "high"
	}

	switch {
	case ccScore > bankScore:
		return AccountTypeDetection{Type: ledger.AccountCreditCard, Confidence: confidence, Reasons: reasons}
	case bankScore > ccScore:
		return AccountTypeDetection{Type: ledger.AccountBank, Confidence: confidence, Reasons: reasons}
	}
	return AccountTypeDetection{Type: ledger.AccountUnknown, Confidence: "low", Reasons: reasons}
}
