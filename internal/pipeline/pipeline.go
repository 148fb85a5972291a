// Package pipeline composes the full processing run. Every stage is a pure
// function of its inputs, so reprocessing after a rule or setting change
// reruns the whole pipeline from the raw rows and is deterministic: the
// same inputs always yield the same output.
package pipeline

import (
	"github.com/banksift/banksift/internal/categorize"
	"github.com/banksift/banksift/internal/ingest"
	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
	"github.com/banksift/banksift/internal/refund"
)

// Inputs carries everything a run depends on. Dictionaries, rules, and
// settings are read-only; the pipeline never performs storage I/O.
type Inputs struct {
	Rows        []ledger.RawRow
	Mapping     ledger.ColumnMapping
	AccountType ledger.AccountType
	Dictionary  []ledger.MerchantEntry
	Overrides   map[string]string // raw description -> canonical merchant
	Rules       []ledger.Rule
	Settings    ledger.RefundSettings
}

// Run executes map -> merchant resolution -> categorization -> refund
// linking and returns the final transaction list.
func Run(in Inputs) []ledger.Transaction {
	mapped := ingest.MapRows(in.Rows, in.Mapping, in.AccountType)
	resolved := merchant.ResolveAll(mapped, in.Dictionary, in.Overrides)
	categorized := categorize.CategorizeAll(resolved, in.Rules, in.Dictionary, in.AccountType)
	return refund.Link(categorized, in.Settings)
}

// Reprocess reruns categorization and refund linking over already-mapped
// transactions, for edits that do not change the row mapping. Merchant
// resolution is redone as well since overrides or dictionary entries may
// have changed.
func Reprocess(transactions []ledger.Transaction, in Inputs) []ledger.Transaction {
	resolved := merchant.ResolveAll(transactions, in.Dictionary, in.Overrides)
	categorized := categorize.CategorizeAll(resolved, in.Rules, in.Dictionary, in.AccountType)
	return refund.Link(categorized, in.Settings)
}
