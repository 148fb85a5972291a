package categorize

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

var transferKeywords = []string{
	"ZELLE", "VENMO", "PAYPAL", "CASH APP", "SQUARE CASH",
	"WIRE", "TRANSFER", "XFER", "ACH",
}

var feeKeywords = []string{
	"FEE", "SERVICE CHARGE", "OVERDRAFT", "NSF", "INTEREST CHARGE",
	"ANNUAL FEE", "LATE FEE", "MAINTENANCE FEE",
}

var atmKeywords = []string{"ATM", "CASH WITHDRAWAL", "CASH DEPOSIT"}

var incomeKeywords = []string{
	"PAYROLL", "DIRECT DEP", "SALARY", "WAGE", "EMPLOYER",
	"TAX REFUND", "IRS", "SOC SEC", "SOCIAL SECURITY",
	"PENSION", "RETIREMENT",
}

var rewardKeywords = []string{
	"REWARD", "CASHBACK", "CASH BACK", "POINTS", "REBATE",
	"DIVIDEND", "STATEMENT CREDIT",
}

var (
	refundWordRE  = regexp.MustCompile(`\b(REFUND|RETURN|REVERSAL|REBATE|ADJUSTMENT)\b`)
	paymentWordRE = regexp.MustCompile(`\b(PAYMENT|PYMT|PMT)\b`)
	creditWordRE  = regexp.MustCompile(`\bCREDIT\b`)
)

func containsAny(upper string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

// DetectTransactionType classifies a transaction from its description,
// signed amount, and account type. Credit-card accounts follow different
// rules than bank accounts: a credit on a card is never income, and card
// debits with transfer keywords are still purchases. The two code paths
// must stay separate.
func DetectTransactionType(rawDescription string, amountSigned float64, accountType ledger.AccountType, merchantCategory string) ledger.TransactionType {
	upper := strings.ToUpper(rawDescription)
	isCC := accountType == ledger.AccountCreditCard

	if containsAny(upper, atmKeywords) {
		return ledger.TypeATM
	}
	if containsAny(upper, feeKeywords) {
		return ledger.TypeFee
	}
	if containsAny(upper, rewardKeywords) && amountSigned > 0 {
		return ledger.TypeReward
	}

	if amountSigned > 0 {
		if refundWordRE.MatchString(upper) {
			return ledger.TypeRefund
		}

		if isCC {
			// A positive amount on a card is a payment to the card or a
			// statement credit, never income.
			if paymentWordRE.MatchString(upper) {
				return ledger.TypePayment
			}
			if creditWordRE.MatchString(upper) {
				return ledger.TypeRefund
			}
			return ledger.TypeUnknown
		}

		// Bank: income keywords outrank transfer keywords, so an
		// "ACH DEPOSIT EMPLOYER PAYROLL" lands as income despite the ACH.
		if containsAny(upper, incomeKeywords) {
			return ledger.TypeIncome
		}
		if containsAny(upper, transferKeywords) || merchantCategory == "Transfer" {
			return ledger.TypeTransfer
		}
		if creditWordRE.MatchString(upper) {
			return ledger.TypeRefund
		}
		return ledger.TypeIncome
	}

	if isCC {
		if paymentWordRE.MatchString(upper) {
			return ledger.TypePayment
		}
		return ledger.TypePurchase
	}

	if containsAny(upper, transferKeywords) || merchantCategory == "Transfer" {
		return ledger.TypeTransfer
	}
	if paymentWordRE.MatchString(upper) {
		return ledger.TypePayment
	}
	return ledger.TypePurchase
}

// ApplyRules evaluates user rules against a transaction, lowest priority
// number first, skipping disabled rules. The first fully matching rule's
// action is returned; nil when nothing matches.
func ApplyRules(t ledger.Transaction, rules []ledger.Rule) *ledger.RuleAction {
	sorted := make([]ledger.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	for _, rule := range sorted {
		if matchesRule(t, rule) {
			action := rule.Action
			return &action
		}
	}
	return nil
}

// matchesRule ANDs all present match conditions. An invalid regex makes the
// rule non-matching rather than failing the pass.
func matchesRule(t ledger.Transaction, rule ledger.Rule) bool {
	m := rule.Match

	if m.Merchant != "" {
		if !strings.EqualFold(t.MerchantCanonical, m.Merchant) {
			return false
		}
	}

	if m.Keyword != "" {
		if !strings.Contains(strings.ToUpper(t.RawDescription), strings.ToUpper(m.Keyword)) {
			return false
		}
	}

	if m.Regex != "" {
		re, err := regexp.Compile("(?i)" + m.Regex)
		if err != nil || !re.MatchString(t.RawDescription) {
			return false
		}
	}

	if m.AmountMin != nil && math.Abs(t.AmountSigned) < *m.AmountMin {
		return false
	}
	if m.AmountMax != nil && math.Abs(t.AmountSigned) > *m.AmountMax {
		return false
	}

	return true
}

// structuralCategories maps unambiguous transaction types straight to a
// category, bypassing scoring.
func structuralCategory(t ledger.TransactionType, accountType ledger.AccountType) (string, bool) {
	switch t {
	case ledger.TypeTransfer:
		return "Transfer", true
	case ledger.TypeFee:
		return "Fees/Interest", true
	case ledger.TypeIncome:
		return "Income", true
	case ledger.TypeATM:
		return "ATM/Cash", true
	case ledger.TypeReward:
		return "Income", true
	case ledger.TypePayment:
		if accountType == ledger.AccountCreditCard {
			return "CC Payment", true
		}
		return "Other", true
	}
	return "", false
}

const structuralConfidence = 0.95

// CategorizeAll assigns category, confidence, and type per transaction:
// a category-bearing user rule short-circuits everything at confidence 1.0;
// structural types get their fixed category at 0.95 and ignore the CSV
// category entirely; purchases, refunds, and unknowns go through the
// dual-score resolution.
func CategorizeAll(transactions []ledger.Transaction, rules []ledger.Rule, dictionary []ledger.MerchantEntry, accountType ledger.AccountType) []ledger.Transaction {
	byName := make(map[string]*ledger.MerchantEntry, len(dictionary))
	for i := range dictionary {
		byName[strings.ToUpper(dictionary[i].CanonicalName)] = &dictionary[i]
	}

	out := make([]ledger.Transaction, len(transactions))
	for i, t := range transactions {
		if action := ApplyRules(t, rules); action != nil && action.Category != "" {
			t.Category = action.Category
			t.CategoryConfidence = 1.0
			if action.Type != "" {
				t.Type = action.Type
			}
			out[i] = t
			continue
		}

		merchantCategory := ""
		if entry, ok := byName[strings.ToUpper(t.MerchantCanonical)]; ok {
			merchantCategory = entry.DefaultCategory
		}
		txType := DetectTransactionType(t.RawDescription, t.AmountSigned, accountType, merchantCategory)

		if category, structural := structuralCategory(txType, accountType); structural {
			t.Category = category
			t.CategoryConfidence = structuralConfidence
			t.Type = txType
			out[i] = t
			continue
		}

		derived := ScoreDerivedCategory(t, dictionary)
		csv := ScoreCSVCategory(t.CSVCategory, derived)
		resolved := ResolveCategory(derived, csv)

		t.Category = resolved.Category
		t.CategoryConfidence = resolved.Confidence
		t.Type = txType
		out[i] = t
	}
	return out
}
