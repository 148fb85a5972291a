package merchant

import (
	"regexp"

	"github.com/banksift/banksift/internal/ledger"
)

// NewEntry builds a MerchantEntry, compiling each pattern string
// case-insensitively. Pattern strings are kept alongside the compiled forms
// so persistence can store the source and recompile on load. A pattern that
// fails to compile is skipped rather than aborting dictionary construction.
func NewEntry(canonicalName string, aliases, patternStrings []string, defaultCategory string) ledger.MerchantEntry {
	entry := ledger.MerchantEntry{
		CanonicalName:   canonicalName,
		Aliases:         aliases,
		PatternStrings:  patternStrings,
		DefaultCategory: defaultCategory,
	}
	for _, p := range patternStrings {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			continue
		}
		entry.Patterns = append(entry.Patterns, re)
	}
	return entry
}

// SeedDictionary returns the built-in merchant dictionary. User edits are
// overlaid on top via MergeDictionary at load time.
func SeedDictionary() []ledger.MerchantEntry {
	return []ledger.MerchantEntry{
		NewEntry("Amazon", []string{"AMAZON", "AMZN", "AMAZON.COM", "AMAZON PRIME", "AMAZON MKTPLACE", "AMZN MKTP"}, []string{`AMZN`, `AMAZON`}, "Shopping"),
		NewEntry("Walmart", []string{"WALMART", "WAL-MART", "WM SUPERCENTER"}, []string{`WAL.?MART`, `WM\s+SUPERCENTER`}, "Groceries"),
		NewEntry("Target", []string{"TARGET"}, []string{`TARGET\s`}, "Shopping"),
		NewEntry("Costco", []string{"COSTCO", "COSTCO WHSE", "COSTCO WHOLESALE"}, []string{`COSTCO`}, "Groceries"),
		NewEntry("Kroger", []string{"KROGER"}, []string{`KROGER`}, "Groceries"),
		NewEntry("Whole Foods", []string{"WHOLE FOODS", "WHOLEFDS"}, []string{`WHOLE\s*FOODS`, `WHOLEFDS`}, "Groceries"),
		NewEntry("Trader Joe's", []string{"TRADER JOE", "TRADER JOES"}, []string{`TRADER\s*JOE`}, "Groceries"),
		NewEntry("Aldi", []string{"ALDI"}, []string{`ALDI`}, "Groceries"),
		NewEntry("Starbucks", []string{"STARBUCKS"}, []string{`STARBUCKS`}, "Dining"),
		NewEntry("McDonald's", []string{"MCDONALDS", "MCDONALD'S"}, []string{`MCDONALD`}, "Dining"),
		NewEntry("Chipotle", []string{"CHIPOTLE"}, []string{`CHIPOTLE`}, "Dining"),
		NewEntry("Chick-fil-A", []string{"CHICK-FIL-A", "CHICKFILA"}, []string{`CHICK.?FIL`}, "Dining"),
		NewEntry("Subway", []string{"SUBWAY"}, []string{`SUBWAY`}, "Dining"),
		NewEntry("DoorDash", []string{"DOORDASH"}, []string{`DOORDASH`}, "Dining"),
		NewEntry("Uber Eats", []string{"UBER EATS", "UBEREATS"}, []string{`UBER\s*EATS`}, "Dining"),
		NewEntry("Grubhub", []string{"GRUBHUB"}, []string{`GRUBHUB`}, "Dining"),
		NewEntry("Shell", []string{"SHELL", "SHELL OIL"}, []string{`SHELL\s*(OIL)?`}, "Gas"),
		NewEntry("Chevron", []string{"CHEVRON"}, []string{`CHEVRON`}, "Gas"),
		NewEntry("ExxonMobil", []string{"EXXON", "EXXONMOBIL", "MOBIL"}, []string{`EXXON`, `MOBIL`}, "Gas"),
		NewEntry("BP", []string{"BP"}, []string{`^BP\s`}, "Gas"),
		NewEntry("Netflix", []string{"NETFLIX"}, []string{`NETFLIX`}, "Subscriptions"),
		NewEntry("Spotify", []string{"SPOTIFY"}, []string{`SPOTIFY`}, "Subscriptions"),
		NewEntry("Apple", []string{"APPLE", "APPLE.COM", "APPLE.COM/BILL"}, []string{`APPLE\.COM`, `^APPLE\s`}, "Subscriptions"),
		NewEntry("Google", []string{"GOOGLE", "GOOGLE *"}, []string{`GOOGLE\s*\*?`}, "Subscriptions"),
		NewEntry("Disney+", []string{"DISNEY+", "DISNEY PLUS", "DISNEYPLUS"}, []string{`DISNEY\s*\+?\s*PLUS|DISNEYPLUS`}, "Subscriptions"),
		NewEntry("Hulu", []string{"HULU"}, []string{`HULU`}, "Subscriptions"),
		NewEntry("HBO Max", []string{"HBO", "HBO MAX"}, []string{`HBO`}, "Subscriptions"),
		NewEntry("YouTube Premium", []string{"YOUTUBE", "YOUTUBE PREMIUM"}, []string{`YOUTUBE\s*PREMIUM`}, "Subscriptions"),
		NewEntry("Uber", []string{"UBER", "UBER TRIP"}, []string{`UBER\s*(TRIP)?$`}, "Transportation"),
		NewEntry("Lyft", []string{"LYFT"}, []string{`LYFT`}, "Transportation"),
		NewEntry("CVS", []string{"CVS", "CVS PHARMACY"}, []string{`CVS`}, "Healthcare"),
		NewEntry("Walgreens", []string{"WALGREENS"}, []string{`WALGREENS`}, "Healthcare"),
		NewEntry("Home Depot", []string{"HOME DEPOT", "THE HOME DEPOT"}, []string{`HOME\s*DEPOT`}, "Home Improvement"),
		NewEntry("Lowe's", []string{"LOWES", "LOWE'S"}, []string{`LOWE.?S`}, "Home Improvement"),
		NewEntry("Venmo", []string{"VENMO"}, []string{`VENMO`}, "Transfer"),
		NewEntry("Zelle", []string{"ZELLE"}, []string{`ZELLE`}, "Transfer"),
		NewEntry("PayPal", []string{"PAYPAL"}, []string{`PAYPAL`}, "Transfer"),
		NewEntry("Cash App", []string{"CASH APP", "SQUARE CASH"}, []string{`CASH\s*APP`, `SQUARE\s*CASH`}, "Transfer"),
		NewEntry("AT&T", []string{"AT&T", "ATT"}, []string{`AT.?T`}, "Utilities"),
		NewEntry("Verizon", []string{"VERIZON"}, []string{`VERIZON`}, "Utilities"),
		NewEntry("T-Mobile", []string{"T-MOBILE", "TMOBILE"}, []string{`T.?MOBILE`}, "Utilities"),
		NewEntry("Comcast", []string{"COMCAST", "XFINITY"}, []string{`COMCAST`, `XFINITY`}, "Utilities"),
		NewEntry("PG&E", []string{"PG&E", "PACIFIC GAS"}, []string{`PG.?E`, `PACIFIC\s*GAS`}, "Utilities"),
	}
}
