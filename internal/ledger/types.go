// Package ledger defines the shared data model for the transaction
// pipeline: parsed transactions, merchant dictionary entries, user rules,
// and refund-linking settings. Everything here is a plain value type;
// pipeline stages produce new slices instead of mutating shared state.
package ledger

import "regexp"

// AccountType identifies the kind of account a CSV export came from.
// Type detection treats credit-card exports differently from bank exports.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCreditCard AccountType = "credit_card"
	AccountUnknown    AccountType = "unknown"
)

// TransactionType is the structural classification of a transaction.
type TransactionType string

const (
	TypePurchase TransactionType = "purchase"
	TypeRefund   TransactionType = "refund"
	TypeTransfer TransactionType = "transfer"
	TypeFee      TransactionType = "fee"
	TypeIncome   TransactionType = "income"
	TypeReward   TransactionType = "reward"
	TypePayment  TransactionType = "payment"
	TypeATM      TransactionType = "atm"
	TypeUnknown  TransactionType = "unknown"
)

// Transaction is one parsed ledger entry. Dates are ISO YYYY-MM-DD strings;
// an unparseable source date passes through unchanged, so the field stays a
// string rather than a time.Time. Amounts are signed: negative = outflow.
type Transaction struct {
	ID                 string
	Date               string
	AmountSigned       float64
	RawDescription     string
	MerchantCanonical  string
	MerchantConfidence float64
	Category           string
	CategoryConfidence float64
	CSVCategory        string // raw category cell from the CSV, if mapped
	Type               TransactionType
	AccountType        AccountType
	LinkedTransactionID string
	Tags               []string
	SourceRow          int // zero-based row index in the source CSV
}

// RawRow is one CSV row keyed by trimmed header name.
type RawRow map[string]string

// ColumnMapping names which CSV headers hold each field. Either Amount or
// one of Debit/Credit must be set; Category is optional.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Category    string
}

// CategoryScore is a transient scoring result, never persisted.
type CategoryScore struct {
	Category   string
	Confidence float64
}

// MerchantEntry maps a business identity to matching rules and a default
// category. Patterns are persisted as their source strings and recompiled
// on load; compiled regexps are never serialized.
type MerchantEntry struct {
	CanonicalName   string
	Aliases         []string
	Patterns        []*regexp.Regexp
	PatternStrings  []string
	DefaultCategory string
}

// RuleMatch is the match specification of a user rule. All present
// conditions must hold (AND semantics).
type RuleMatch struct {
	Merchant  string
	Keyword   string
	Regex     string
	AmountMin *float64
	AmountMax *float64
}

// RuleAction is what a matching rule applies.
type RuleAction struct {
	Category string
	Type     TransactionType
}

// Rule is a user-defined categorization override. Lower priority numbers
// are evaluated first.
type Rule struct {
	ID       string
	Enabled  bool
	Priority int
	Name     string
	Match    RuleMatch
	Action   RuleAction
}

// RefundSettings tunes the refund linker.
type RefundSettings struct {
	DaysWindow      int     // max days between purchase and refund
	AmountTolerance float64 // fractional tolerance for amount matching
	MatchThreshold  float64 // minimum merchant-name similarity
}

// DefaultRefundSettings returns the built-in linker thresholds.
func DefaultRefundSettings() RefundSettings {
	return RefundSettings{
		DaysWindow:      90,
		AmountTolerance: 0.05,
		MatchThreshold:  0.4,
	}
}

// FormatSignatureRecord recalls a confirmed column mapping for a bank CSV
// format, keyed by the format signature of its headers.
type FormatSignatureRecord struct {
	ID          string
	Name        string
	Columns     []string
	Mapping     ColumnMapping
	AccountType AccountType
}

// Categories is the fixed internal category vocabulary.
var Categories = []string{
	"Groceries",
	"Dining",
	"Transportation",
	"Gas",
	"Shopping",
	"Entertainment",
	"Utilities",
	"Healthcare",
	"Insurance",
	"Rent/Mortgage",
	"Subscriptions",
	"Travel",
	"Education",
	"Personal Care",
	"Pets",
	"Home Improvement",
	"Gifts/Donations",
	"Fees/Interest",
	"Income",
	"Transfer",
	"Refund",
	"ATM/Cash",
	"CC Payment",
	"Other",
}
