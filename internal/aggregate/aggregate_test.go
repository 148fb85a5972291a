package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banksift/banksift/internal/ledger"
)

func txn(date, merchant, category string, amount float64, typ ledger.TransactionType) ledger.Transaction {
	return ledger.Transaction{
		Date:              date,
		AmountSigned:      amount,
		RawDescription:    merchant,
		MerchantCanonical: merchant,
		Category:          category,
		Type:              typ,
	}
}

func sampleLedger() []ledger.Transaction {
	return []ledger.Transaction{
		txn("2024-03-01", "Starbucks", "Dining", -6.51, ledger.TypePurchase),
		txn("2024-03-02", "Starbucks", "Dining", -12.00, ledger.TypePurchase),
		txn("2024-03-03", "Shell", "Gas", -40.00, ledger.TypePurchase),
		txn("2024-03-05", "Acme Corp", "Income", 2500.00, ledger.TypeIncome),
		txn("2024-03-06", "Savings", "Transfer", -500.00, ledger.TypeTransfer),
		txn("2024-03-08", "Target", "Shopping", 25.00, ledger.TypeRefund),
		txn("2024-04-01", "Shell", "Gas", -45.00, ledger.TypePurchase),
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	out := ByCategory(sampleLedger(), false)
	require.Len(t, out, 2)

	// most spent first, so gas (larger outflow) leads
	require.Equal(t, "Gas", out[0].Category)
	require.Equal(t, -85.0, out[0].Total)
	require.Equal(t, 2, out[0].Count)

	require.Equal(t, "Dining", out[1].Category)
	require.Equal(t, -18.51, out[1].Total)
	require.Len(t, out[1].Transactions, 2)
}

func TestByCategoryIncludeRefunds(t *testing.T) {
	t.Parallel()

	out := ByCategory(sampleLedger(), true)
	require.Len(t, out, 3)
	for _, s := range out {
		if s.Category == "Shopping" {
			require.Equal(t, 25.0, s.Total)
			return
		}
	}
	t.Fatal("refund category missing")
}

func TestByCategoryEmptyCategoryFallsBackToOther(t *testing.T) {
	t.Parallel()

	out := ByCategory([]ledger.Transaction{
		txn("2024-03-01", "Mystery", "", -5.00, ledger.TypePurchase),
	}, false)
	require.Len(t, out, 1)
	require.Equal(t, "Other", out[0].Category)
}

func TestByMerchant(t *testing.T) {
	t.Parallel()

	out := ByMerchant(sampleLedger())
	require.Len(t, out, 3)
	require.Equal(t, "Shell", out[0].Merchant)
	require.Equal(t, -85.0, out[0].Total)
	require.Equal(t, 2, out[0].Count)
	require.Equal(t, "Gas", out[0].Category)

	// refunds stay in merchant totals, so Target nets positive and sorts last
	require.Equal(t, "Target", out[2].Merchant)
	require.Equal(t, 25.0, out[2].Total)
}

func TestMonthlyTrends(t *testing.T) {
	t.Parallel()

	out := MonthlyTrends(sampleLedger())
	require.Len(t, out, 2)
	require.Equal(t, "2024-03", out[0].Month)
	require.Equal(t, "2024-04", out[1].Month)
	require.Equal(t, -18.51, out[0].Totals["Dining"])
	require.Equal(t, -45.0, out[1].Totals["Gas"])
}

func TestCashFlow(t *testing.T) {
	t.Parallel()

	out := CashFlow(sampleLedger())
	require.Len(t, out, 2)

	march := out[0]
	require.Equal(t, "2024-03", march.Month)
	require.Equal(t, 2525.0, march.Income) // deposit plus refund inflow
	require.Equal(t, 58.51, march.Spending)
	require.Equal(t, 2466.49, march.Net)

	april := out[1]
	require.Equal(t, 0.0, april.Income)
	require.Equal(t, 45.0, april.Spending)
}

func TestSanitizedSample(t *testing.T) {
	t.Parallel()

	ts := sampleLedger()
	out := SanitizedSample(ts, 3)
	require.Len(t, out, 3)
	require.Equal(t, "Starbucks", out[0].Merchant)
	require.Equal(t, "purchase", out[0].Type)

	require.Len(t, SanitizedSample(ts, 0), len(ts))
	require.Len(t, SanitizedSample(ts, 100), len(ts))
}