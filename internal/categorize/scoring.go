package categorize

import (
	"strings"

	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
)

// csvCategoryMap normalizes bank-export category labels (lowercased) to the
// internal vocabulary.
var csvCategoryMap = map[string]string{
	"dining":                "Dining",
	"restaurants":           "Dining",
	"food & drink":          "Dining",
	"food and drink":        "Dining",
	"gas/automotive":        "Gas",
	"gas":                   "Gas",
	"gasoline":              "Gas",
	"automotive":            "Gas",
	"fuel":                  "Gas",
	"merchandise":           "Shopping",
	"shopping":              "Shopping",
	"retail":                "Shopping",
	"entertainment":         "Entertainment",
	"health care":           "Healthcare",
	"healthcare":            "Healthcare",
	"medical":               "Healthcare",
	"insurance":             "Insurance",
	"lodging":               "Travel",
	"travel":                "Travel",
	"other travel":          "Travel",
	"airlines":              "Travel",
	"hotel":                 "Travel",
	"groceries":             "Groceries",
	"supermarkets":          "Groceries",
	"education":             "Education",
	"utilities":             "Utilities",
	"phone/cable":           "Utilities",
	"personal care":         "Personal Care",
	"home improvement":      "Home Improvement",
	"home":                  "Home Improvement",
	"pets":                  "Pets",
	"gifts":                 "Gifts/Donations",
	"charitable giving":     "Gifts/Donations",
	"fees":                  "Fees/Interest",
	"interest":              "Fees/Interest",
	"fees/interest":         "Fees/Interest",
	"other services":        "Other",
	"other":                 "Other",
	"payment/credit":        "CC Payment",
	"payment":               "CC Payment",
	"professional services": "Other",
	"government services":   "Other",
	"subscriptions":         "Subscriptions",
	"transportation":        "Transportation",
	"transfer":              "Transfer",
}

// csvCategoryBaseConfidence reflects how specific each internal category
// is: a bank saying "Gas" is nearly always right, a bank saying "Shopping"
// says very little.
var csvCategoryBaseConfidence = map[string]float64{
	"Dining":           0.85,
	"Gas":              0.90,
	"Insurance":        0.90,
	"Healthcare":       0.85,
	"Travel":           0.80,
	"Groceries":        0.85,
	"Entertainment":    0.80,
	"Education":        0.85,
	"Utilities":        0.80,
	"Personal Care":    0.75,
	"Pets":             0.85,
	"Home Improvement": 0.75,
	"Subscriptions":    0.80,
	"Gifts/Donations":  0.70,
	"Transportation":   0.75,
	"CC Payment":       0.85,
	"Fees/Interest":    0.70,
	"Transfer":         0.70,
	"Shopping":         0.40,
	"Other":            0.25,
}

const defaultCSVBaseConfidence = 0.50

// multiCategoryMerchants span many spending categories; their derived
// confidence is capped so a more specific CSV category can win.
var multiCategoryMerchants = map[string]struct{}{
	"Amazon": {}, "Walmart": {}, "Target": {}, "Costco": {},
	"PayPal": {}, "Sam's Club": {},
}

const multiCategoryDCCCap = 0.45

// ScoreDerivedCategory computes the Derived Category Confidence: merchant
// dictionary match (exact 0.95, pattern 0.85, fuzzy 0.70, multi-category
// merchants capped at 0.45) reconciled with the keyword categorizer. The
// keyword result replaces the merchant result when there is no merchant
// match or the keyword confidence is higher; agreement earns +0.05 capped
// at 0.95. No signal at all returns an empty score.
func ScoreDerivedCategory(t ledger.Transaction, dictionary []ledger.MerchantEntry) ledger.CategoryScore {
	canonicalized := merchant.Canonicalize(t.RawDescription)
	match := merchant.MatchDictionary(canonicalized, dictionary)

	category := ""
	confidence := 0.0

	if match != nil {
		category = match.Entry.DefaultCategory
		switch match.Kind {
		case merchant.MatchExact:
			confidence = 0.95
		case merchant.MatchPattern:
			confidence = 0.85
		case merchant.MatchFuzzy:
			confidence = 0.70
		}
		if _, multi := multiCategoryMerchants[match.Entry.CanonicalName]; multi && confidence > multiCategoryDCCCap {
			confidence = multiCategoryDCCCap
		}
	}

	if kw := KeywordCategorize(t.RawDescription); kw != nil {
		switch {
		case match == nil || kw.Confidence > confidence:
			category = kw.Category
			confidence = kw.Confidence
		case kw.Category == category:
			confidence += 0.05
			if confidence > 0.95 {
				confidence = 0.95
			}
		}
		// A weaker disagreeing keyword leaves the merchant result alone.
	}

	if category == "" {
		return ledger.CategoryScore{}
	}
	return ledger.CategoryScore{Category: category, Confidence: confidence}
}

// ScoreCSVCategory computes the CSV Category Confidence from the export's
// own category cell, adjusted by agreement or conflict with the derived
// score. Returns nil when the CSV category is absent or unmappable.
func ScoreCSVCategory(csvCategory string, derived ledger.CategoryScore) *ledger.CategoryScore {
	trimmed := strings.TrimSpace(csvCategory)
	if trimmed == "" {
		return nil
	}
	lower := strings.ToLower(trimmed)

	mapped, ok := csvCategoryMap[lower]
	if !ok {
		for _, c := range ledger.Categories {
			if strings.ToLower(c) == lower {
				mapped = c
				break
			}
		}
	}
	if mapped == "" {
		return nil
	}

	base, ok := csvCategoryBaseConfidence[mapped]
	if !ok {
		base = defaultCSVBaseConfidence
	}

	var adjusted float64
	switch {
	case derived.Confidence == 0 || derived.Category == "":
		adjusted = base
	case derived.Category == mapped:
		adjusted = base * 1.1
		if adjusted > 0.95 {
			adjusted = 0.95
		}
	case derived.Confidence > 0.8:
		adjusted = base * 0.4
	default:
		adjusted = base * 0.6
	}

	return &ledger.CategoryScore{Category: mapped, Confidence: adjusted}
}

// minimumSignal is the confidence floor below which a lone score falls back
// to "Other".
const minimumSignal = 0.30

// ResolveCategory picks the final category from the derived and CSV scores.
// With both signals present the higher confidence wins and exact ties go to
// the CSV score, since the bank-supplied category is closer to ground
// truth.
func ResolveCategory(derived ledger.CategoryScore, csv *ledger.CategoryScore) ledger.CategoryScore {
	if csv == nil {
		if derived.Confidence < minimumSignal || derived.Category == "" {
			return ledger.CategoryScore{Category: "Other", Confidence: derived.Confidence}
		}
		return derived
	}

	if derived.Confidence == 0 || derived.Category == "" {
		if csv.Confidence < minimumSignal {
			return ledger.CategoryScore{Category: "Other", Confidence: csv.Confidence}
		}
		return *csv
	}

	if csv.Confidence >= derived.Confidence {
		return *csv
	}
	return derived
}
