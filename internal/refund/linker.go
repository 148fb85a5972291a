// Package refund identifies refund transactions and links each to its most
// likely originating purchase, supporting partial and multiple refunds
// against one purchase.
package refund

import (
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
)

var refundKeywordRE = regexp.MustCompile(`(?i)\b(REFUND|RETURN|REVERSAL|CREDIT ADJ|MERCHANDISE CREDIT|PRICE ADJ)\b`)

// IsLikelyRefund reports whether a positive-amount transaction carries an
// explicit refund signal: refund keywords in the description, or a refund
// type assigned by the earlier detection pass. Income, transfer, reward,
// and fee transactions are never refund candidates.
func IsLikelyRefund(t ledger.Transaction) bool {
	if t.AmountSigned <= 0 {
		return false
	}
	switch t.Type {
	case ledger.TypeIncome, ledger.TypeTransfer, ledger.TypeReward, ledger.TypeFee:
		return false
	}
	if refundKeywordRE.MatchString(t.RawDescription) {
		return true
	}
	return t.Type == ledger.TypeRefund
}

// CouldBeRefund reports whether a credit plausibly refunds some purchase on
// merchant similarity alone: a negative-amount transaction exists within the
// day window whose merchant similarity meets the threshold and whose amount
// is within tolerance of, or exceeds, the credit amount.
//
// This predicate intentionally differs from the one inside ScoreMatch (it
// excludes atm, and its amount test runs the other direction); the two are
// not equivalent and must not be unified.
func CouldBeRefund(credit ledger.Transaction, purchases []ledger.Transaction, settings ledger.RefundSettings) bool {
	if credit.AmountSigned <= 0 {
		return false
	}
	switch credit.Type {
	case ledger.TypeIncome, ledger.TypeTransfer, ledger.TypeReward, ledger.TypeFee, ledger.TypeATM:
		return false
	}

	for _, p := range purchases {
		if p.AmountSigned >= 0 {
			continue
		}
		daysDiff, ok := dateDiffDays(p.Date, credit.Date)
		if !ok || daysDiff < 0 || daysDiff > settings.DaysWindow {
			continue
		}

		if merchant.Similarity(credit.MerchantCanonical, p.MerchantCanonical) >= settings.MatchThreshold {
			purchaseAmt := math.Abs(p.AmountSigned)
			amtDiff := math.Abs(credit.AmountSigned - purchaseAmt)
			tolerance := purchaseAmt * settings.AmountTolerance
			if amtDiff <= tolerance || credit.AmountSigned <= purchaseAmt {
				return true
			}
		}
	}
	return false
}

// dateDiffDays returns the whole days from date1 to date2 (positive when
// date2 is later). ok is false when either ISO date fails to parse; an
// unparseable date simply disqualifies the pair.
func dateDiffDays(date1, date2 string) (int, bool) {
	d1, err1 := time.Parse("2006-01-02", date1)
	d2, err2 := time.Parse("2006-01-02", date2)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return int(math.Round(d2.Sub(d1).Hours() / 24)), true
}

// ScoreMatch scores how well a refund candidate matches a purchase; 0 means
// ineligible. Eligibility requires the refund on or after the purchase
// within the day window, a refund amount no greater than the purchase
// amount times (1 + tolerance), and merchant similarity at or above the
// threshold. The score weights amount closeness 0.4, recency 0.2, and
// merchant similarity 0.4.
func ScoreMatch(refund, purchase ledger.Transaction, settings ledger.RefundSettings) float64 {
	if refund.AmountSigned <= 0 || purchase.AmountSigned >= 0 {
		return 0
	}

	daysDiff, ok := dateDiffDays(purchase.Date, refund.Date)
	if !ok || daysDiff < 0 || daysDiff > settings.DaysWindow {
		return 0
	}

	purchaseAmt := math.Abs(purchase.AmountSigned)
	refundAmt := refund.AmountSigned
	if refundAmt > purchaseAmt*(1+settings.AmountTolerance) {
		return 0
	}

	merchantSim := merchant.Similarity(refund.MerchantCanonical, purchase.MerchantCanonical)
	if merchantSim < settings.MatchThreshold {
		return 0
	}

	amountScore := 1 - math.Abs(refundAmt-purchaseAmt)/math.Max(purchaseAmt, 1)
	timeScore := 1 - float64(daysDiff)/float64(settings.DaysWindow)

	return amountScore*0.4 + timeScore*0.2 + merchantSim*0.4
}

type purchaseCandidate struct {
	index     int
	remaining float64 // un-refunded portion of the purchase amount
}

// Link returns a new transaction list where plausible refunds are retyped,
// linked to their originating purchase, and given the purchase's category.
//
// Candidates are processed in ascending date order; that ordering decides
// which purchase a shared-merchant multi-refund sequence attaches to first
// and how remaining amounts deplete. A keyword candidate that matches no
// purchase is still retyped refund but left unlinked; a similarity-only
// candidate that matches nothing is left untouched.
func Link(transactions []ledger.Transaction, settings ledger.RefundSettings) []ledger.Transaction {
	result := make([]ledger.Transaction, len(transactions))
	copy(result, transactions)

	var purchases []purchaseCandidate
	var candidates []int

	for i, t := range result {
		if t.AmountSigned < 0 && t.Type == ledger.TypePurchase {
			purchases = append(purchases, purchaseCandidate{index: i, remaining: math.Abs(t.AmountSigned)})
		}
		if t.AmountSigned > 0 && (IsLikelyRefund(t) || CouldBeRefund(t, result, settings)) {
			candidates = append(candidates, i)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return result[candidates[a]].Date < result[candidates[b]].Date
	})

	for _, ci := range candidates {
		bestScore := 0.0
		bestPurchase := -1

		for pi := range purchases {
			if purchases[pi].remaining <= 0 {
				continue // fully refunded already
			}
			score := ScoreMatch(result[ci], result[purchases[pi].index], settings)
			if score > bestScore {
				bestScore = score
				bestPurchase = pi
			}
		}

		if bestPurchase >= 0 && bestScore > 0 {
			pc := &purchases[bestPurchase]
			result[ci].Type = ledger.TypeRefund
			result[ci].LinkedTransactionID = result[pc.index].ID
			result[ci].Category = result[pc.index].Category
			pc.remaining -= result[ci].AmountSigned
		} else if IsLikelyRefund(result[ci]) {
			result[ci].Type = ledger.TypeRefund
		}
	}

	return result
}
