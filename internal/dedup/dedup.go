// Package dedup flags probable duplicates when an export overlaps a
// previous import. Duplicates are reported, never silently dropped; the
// decision to skip stays with the caller.
package dedup

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/banksift/banksift/internal/ledger"
)

// fuzzyDayWindow and fuzzyDistanceRatio bound the fuzzy candidate check:
// equal amounts within a week whose descriptions differ by less than 40%.
const (
	fuzzyDayWindow     = 7
	fuzzyDistanceRatio = 0.4
)

// Match pairs an incoming transaction with the existing one it duplicates.
type Match struct {
	Incoming ledger.Transaction
	Existing ledger.Transaction
	Exact    bool // source-hash match rather than fuzzy
}

// SourceHash fingerprints a transaction by date, amount, and description.
// Identical source rows across two exports of the same account hash the
// same regardless of generated ids.
func SourceHash(t ledger.Transaction) string {
	joined := strings.Join([]string{t.Date, fmt.Sprintf("%.2f", t.AmountSigned), t.RawDescription}, "|")
	sum := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%x", sum[:])
}

// Detect compares incoming transactions against previously imported ones
// and returns the probable duplicates: exact source-hash matches first,
// then fuzzy candidates (same amount, dates within a week, description
// edit distance under 40% of the longer string).
func Detect(existing, incoming []ledger.Transaction) []Match {
	byHash := make(map[string]ledger.Transaction, len(existing))
	for _, t := range existing {
		byHash[SourceHash(t)] = t
	}

	var matches []Match
	for _, in := range incoming {
		if prior, ok := byHash[SourceHash(in)]; ok {
			matches = append(matches, Match{Incoming: in, Existing: prior, Exact: true})
			continue
		}
		for _, prior := range existing {
			if fuzzyCandidate(in, prior) {
				matches = append(matches, Match{Incoming: in, Existing: prior})
				break
			}
		}
	}
	return matches
}

func fuzzyCandidate(a, b ledger.Transaction) bool {
	if a.AmountSigned != b.AmountSigned {
		return false
	}
	days, ok := daysApart(a.Date, b.Date)
	if !ok || days > fuzzyDayWindow {
		return false
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a.RawDescription), strings.ToUpper(b.RawDescription))
	longest := len(a.RawDescription)
	if len(b.RawDescription) > longest {
		longest = len(b.RawDescription)
	}
	if longest == 0 {
		return true
	}
	return float64(dist)/float64(longest) < fuzzyDistanceRatio
}

func daysApart(date1, date2 string) (int, bool) {
	d1, err1 := time.Parse("2006-01-02", date1)
	d2, err2 := time.Parse("2006-01-02", date2)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return int(math.Abs(d2.Sub(d1).Hours()) / 24), true
}
