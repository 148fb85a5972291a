// Package merchant resolves raw transaction descriptions to canonical
// merchant names. Resolution runs a fixed strategy order: user override,
// exact alias, regex pattern, then bigram fuzzy match.
package merchant

import (
	"regexp"
	"strings"
)

// noiseTokens are dropped wherever they appear as whole words in a
// description. Multi-word entries are kept for parity with persisted
// dictionaries even though tokenization makes them inert.
var noiseTokens = map[string]struct{}{
	"pos": {}, "visa": {}, "debit": {}, "credit": {}, "purchase": {},
	"checkcard": {}, "check card": {}, "ach": {}, "recurring": {},
	"autopay": {}, "auto-pay": {}, "pin": {}, "non-pin": {},
	"pre-auth": {}, "preauth": {}, "pending": {}, "xxxx": {}, "sq": {},
	"tst": {}, "pymt": {}, "pmt": {}, "payment": {}, "online": {},
	"web": {}, "mobile": {}, "card": {}, "chk": {}, "dbt": {}, "crd": {},
	"pos debit": {}, "pos purchase": {}, "external": {},
	"withdrawal": {}, "deposit": {},
}

var (
	leadingPrefixRE   = regexp.MustCompile(`(?i)^(POS|VISA|DEBIT|CHECKCARD|CHECK CARD|ACH|RECURRING)\s+`)
	processorPrefixRE = regexp.MustCompile(`(?i)^(SQ\s*\*|TST\s*\*|PP\s*\*|PAYPAL\s*\*)`)
	leadingRefRE      = regexp.MustCompile(`^\d{3,6}\s+`)
	trailingJunkRE    = regexp.MustCompile(`[*#\-]+$`)
)

// trailingREs strip reference numbers, embedded dates, and location
// fragments from the tail of a description. Each pattern removes its first
// occurrence only.
var trailingREs = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4,}$`),          // trailing long numbers
	regexp.MustCompile(`\b\d{2}/\d{2}\b`),    // embedded dates MM/DD
	regexp.MustCompile(`\b[A-Z]{2}\s*\d{5}(-\d{4})?$`), // state+zip
	regexp.MustCompile(`\s+#\d+`),            // store numbers like #1234
	regexp.MustCompile(`\s+\d+\s*$`),         // trailing bare numbers
}

// Canonicalize normalizes a raw description into a noise-stripped,
// merchant-identifying string. The order of operations matters: prefixes,
// processor tags, leading reference digits, noise words, then trailing
// fragments.
func Canonicalize(raw string) string {
	s := strings.TrimSpace(strings.ToUpper(raw))

	for {
		next := leadingPrefixRE.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = processorPrefixRE.ReplaceAllString(s, "")
	s = leadingRefRE.ReplaceAllString(s, "")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, noisy := noiseTokens[strings.ToLower(w)]; !noisy {
			kept = append(kept, w)
		}
	}
	s = strings.Join(kept, " ")

	for _, re := range trailingREs {
		s = removeFirst(re, s)
	}

	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(trailingJunkRE.ReplaceAllString(s, ""))
	return s
}

func removeFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
