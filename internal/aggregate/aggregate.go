// Package aggregate computes the summary views consumed by the UI and the
// plain-text report: per-category totals, per-merchant totals, and monthly
// trends. Transfers and income are excluded from spending summaries.
package aggregate

import (
	"math"
	"sort"

	"github.com/banksift/banksift/internal/ledger"
)

// CategorySummary is the spending total for one category.
type CategorySummary struct {
	Category     string
	Total        float64
	Count        int
	Transactions []ledger.Transaction
}

// MerchantSummary is the spending total for one merchant.
type MerchantSummary struct {
	Merchant string
	Total    float64
	Count    int
	Category string
}

// MonthlyTrend is per-category totals for one YYYY-MM month.
type MonthlyTrend struct {
	Month  string
	Totals map[string]float64
}

// MonthlyCashFlow is income vs spending for one month.
type MonthlyCashFlow struct {
	Month    string
	Income   float64
	Spending float64
	Net      float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ByCategory groups transactions by category with totals, most spent
// first. Refunds are excluded unless includeRefunds is set.
func ByCategory(transactions []ledger.Transaction, includeRefunds bool) []CategorySummary {
	type bucket struct {
		total float64
		txns  []ledger.Transaction
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, t := range transactions {
		if !includeRefunds && t.Type == ledger.TypeRefund {
			continue
		}
		if t.Type == ledger.TypeTransfer || t.Type == ledger.TypeIncome {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = "Other"
		}
		b, ok := buckets[cat]
		if !ok {
			b = &bucket{}
			buckets[cat] = b
			order = append(order, cat)
		}
		b.total += t.AmountSigned
		b.txns = append(b.txns, t)
	}

	out := make([]CategorySummary, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		out = append(out, CategorySummary{
			Category:     cat,
			Total:        round2(b.total),
			Count:        len(b.txns),
			Transactions: b.txns,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total < out[j].Total })
	return out
}

// ByMerchant groups non-transfer, non-income transactions by merchant.
func ByMerchant(transactions []ledger.Transaction) []MerchantSummary {
	type bucket struct {
		total    float64
		count    int
		category string
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, t := range transactions {
		if t.Type == ledger.TypeTransfer || t.Type == ledger.TypeIncome {
			continue
		}
		name := t.MerchantCanonical
		if name == "" {
			name = "Unknown"
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{category: t.Category}
			buckets[name] = b
			order = append(order, name)
		}
		b.total += t.AmountSigned
		b.count++
	}

	out := make([]MerchantSummary, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		out = append(out, MerchantSummary{
			Merchant: name,
			Total:    round2(b.total),
			Count:    b.count,
			Category: b.category,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total < out[j].Total })
	return out
}

// MonthlyTrends returns per-month, per-category spending totals in month
// order.
func MonthlyTrends(transactions []ledger.Transaction) []MonthlyTrend {
	months := map[string]map[string]float64{}
	for _, t := range transactions {
		if t.Type == ledger.TypeTransfer || t.Type == ledger.TypeIncome {
			continue
		}
		if len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7]
		cat := t.Category
		if cat == "" {
			cat = "Other"
		}
		if months[month] == nil {
			months[month] = map[string]float64{}
		}
		months[month][cat] += t.AmountSigned
	}

	out := make([]MonthlyTrend, 0, len(months))
	for month, totals := range months {
		rounded := make(map[string]float64, len(totals))
		for k, v := range totals {
			rounded[k] = round2(v)
		}
		out = append(out, MonthlyTrend{Month: month, Totals: rounded})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CashFlow returns income vs spending per month, transfers excluded.
func CashFlow(transactions []ledger.Transaction) []MonthlyCashFlow {
	type bucket struct{ income, spending float64 }
	months := map[string]*bucket{}
	for _, t := range transactions {
		if t.Type == ledger.TypeTransfer {
			continue
		}
		if len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7]
		b, ok := months[month]
		if !ok {
			b = &bucket{}
			months[month] = b
		}
		if t.AmountSigned > 0 {
			b.income += t.AmountSigned
		} else {
			b.spending += math.Abs(t.AmountSigned)
		}
	}

	out := make([]MonthlyCashFlow, 0, len(months))
	for month, b := range months {
		out = append(out, MonthlyCashFlow{
			Month:    month,
			Income:   round2(b.income),
			Spending: round2(b.spending),
			Net:      round2(b.income - b.spending),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// SampleEntry is one sanitized transaction for export: no amounts.
type SampleEntry struct {
	Description string `json:"description"`
	Merchant    string `json:"merchant"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// SanitizedSample returns up to limit entries safe to share for debugging
// categorization, stripped of amounts and dates.
func SanitizedSample(transactions []ledger.Transaction, limit int) []SampleEntry {
	if limit <= 0 || limit > len(transactions) {
		limit = len(transactions)
	}
	out := make([]SampleEntry, 0, limit)
	for _, t := range transactions[:limit] {
		out = append(out, SampleEntry{
			Description: t.RawDescription,
			Merchant:    t.MerchantCanonical,
			Category:    t.Category,
			Type:        string(t.Type),
		})
	}
	return out
}
