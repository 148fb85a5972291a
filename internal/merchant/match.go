package merchant

import (
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

// MatchKind tags which strategy produced a dictionary match.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchPattern MatchKind = "pattern"
	MatchFuzzy   MatchKind = "fuzzy"
)

// fuzzyThreshold is the minimum Dice similarity for a fuzzy hit.
const fuzzyThreshold = 0.5

// Match is a dictionary hit with its confidence and strategy.
type Match struct {
	Entry      *ledger.MerchantEntry
	Confidence float64
	Kind       MatchKind
}

// MatchDictionary matches a canonicalized description against the merchant
// dictionary. Strategies run in fixed priority order and the first
// acceptable result wins: exact alias (1.0), regex pattern (0.9), then the
// single best fuzzy candidate across the whole dictionary (accepted at
// similarity >= 0.5, confidence = similarity). Returns nil on no match.
func MatchDictionary(canonicalized string, dictionary []ledger.MerchantEntry) *Match {
	canon := strings.ToUpper(canonicalized)

	for i := range dictionary {
		for _, alias := range dictionary[i].Aliases {
			if canon == strings.ToUpper(alias) {
				return &Match{Entry: &dictionary[i], Confidence: 1.0, Kind: MatchExact}
			}
		}
	}

	for i := range dictionary {
		for _, pattern := range dictionary[i].Patterns {
			if pattern.MatchString(canon) {
				return &Match{Entry: &dictionary[i], Confidence: 0.9, Kind: MatchPattern}
			}
		}
	}

	var best *Match
	bestScore := 0.0
	for i := range dictionary {
		candidates := append([]string{dictionary[i].CanonicalName}, dictionary[i].Aliases...)
		for _, candidate := range candidates {
			score := Similarity(canon, strings.ToUpper(candidate))
			if score > bestScore {
				bestScore = score
				best = &Match{Entry: &dictionary[i], Confidence: score, Kind: MatchFuzzy}
			}
		}
	}
	if best != nil && bestScore >= fuzzyThreshold {
		return best
	}
	return nil
}

// Resolve computes a transaction's canonical merchant name and confidence.
// A user override for the exact raw description wins unconditionally at
// confidence 1.0. With no dictionary match the canonicalized text itself is
// returned at confidence 0.2: a confident "no identity", not zero.
func Resolve(rawDescription string, dictionary []ledger.MerchantEntry, overrides map[string]string) (string, float64) {
	if canonical, ok := overrides[rawDescription]; ok && canonical != "" {
		return canonical, 1.0
	}

	canonicalized := Canonicalize(rawDescription)
	if m := MatchDictionary(canonicalized, dictionary); m != nil {
		return m.Entry.CanonicalName, m.Confidence
	}

	if canonicalized == "" {
		return rawDescription, 0.2
	}
	return canonicalized, 0.2
}

// ResolveAll runs merchant resolution over every transaction, returning a
// new slice.
func ResolveAll(transactions []ledger.Transaction, dictionary []ledger.MerchantEntry, overrides map[string]string) []ledger.Transaction {
	out := make([]ledger.Transaction, len(transactions))
	for i, t := range transactions {
		canonical, confidence := Resolve(t.RawDescription, dictionary, overrides)
		t.MerchantCanonical = canonical
		t.MerchantConfidence = confidence
		out[i] = t
	}
	return out
}

// MergeDictionary overlays user-edited entries on the seed dictionary.
// User entries come first and shadow seed entries with the same canonical
// name.
func MergeDictionary(seed, user []ledger.MerchantEntry) []ledger.MerchantEntry {
	taken := make(map[string]struct{}, len(user))
	merged := make([]ledger.MerchantEntry, 0, len(seed)+len(user))
	for _, entry := range user {
		taken[entry.CanonicalName] = struct{}{}
		merged = append(merged, entry)
	}
	for _, entry := range seed {
		if _, ok := taken[entry.CanonicalName]; !ok {
			merged = append(merged, entry)
		}
	}
	return merged
}
