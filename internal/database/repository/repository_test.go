package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banksift/banksift/internal/database"
	"github.com/banksift/banksift/internal/ledger"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestMerchantRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewMerchantRepo(db)

	entry := ledger.MerchantEntry{
		CanonicalName:   "Blue Bottle",
		Aliases:         []string{"BLUE BOTTLE COFFEE"},
		PatternStrings:  []string{`(?i)^BLUE\s*BOTTLE`},
		DefaultCategory: "Dining",
	}
	require.NoError(t, repo.Upsert(ctx, entry))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Blue Bottle", got[0].CanonicalName)
	require.Equal(t, []string{"BLUE BOTTLE COFFEE"}, got[0].Aliases)
	require.Equal(t, "Dining", got[0].DefaultCategory)
	// patterns come back compiled
	require.Len(t, got[0].Patterns, 1)
	require.True(t, got[0].Patterns[0].MatchString("BLUE BOTTLE OAKLAND"))

	entry.DefaultCategory = "Groceries"
	require.NoError(t, repo.Upsert(ctx, entry))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Groceries", got[0].DefaultCategory)

	require.NoError(t, repo.Delete(ctx, "Blue Bottle"))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRuleRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRuleRepo(db)

	min := 100.0
	first := ledger.Rule{
		ID:       "r1",
		Name:     "big purchases",
		Enabled:  true,
		Priority: 2,
		Match:    ledger.RuleMatch{Keyword: "COSTCO", AmountMin: &min},
		Action:   ledger.RuleAction{Category: "Shopping", Type: ledger.TypePurchase},
	}
	second := ledger.Rule{
		ID:       "r2",
		Name:     "rent",
		Enabled:  false,
		Priority: 1,
		Match:    ledger.RuleMatch{Merchant: "Parkside Apartments"},
		Action:   ledger.RuleAction{Category: "Other"},
	}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// ordered by priority
	require.Equal(t, "r2", got[0].ID)
	require.False(t, got[0].Enabled)
	require.Nil(t, got[0].Match.AmountMin)

	require.Equal(t, "r1", got[1].ID)
	require.NotNil(t, got[1].Match.AmountMin)
	require.Equal(t, 100.0, *got[1].Match.AmountMin)
	require.Equal(t, ledger.TypePurchase, got[1].Action.Type)

	require.NoError(t, repo.Delete(ctx, "r1"))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestOverrideRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOverrideRepo(db)

	require.NoError(t, repo.Set(ctx, "SQ *MYSTERY VENDOR", "Corner Bakery"))
	require.NoError(t, repo.Set(ctx, "SQ *MYSTERY VENDOR", "Corner Bakery Cafe")) // replace

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"SQ *MYSTERY VENDOR": "Corner Bakery Cafe"}, all)

	require.NoError(t, repo.Delete(ctx, "SQ *MYSTERY VENDOR"))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFormatRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFormatRepo(db)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	rec := ledger.FormatSignatureRecord{
		ID:      "amount|date|description",
		Name:    "checking export",
		Columns: []string{"Date", "Description", "Amount"},
		Mapping: ledger.ColumnMapping{
			Date:        "Date",
			Description: "Description",
			Amount:      "Amount",
		},
		AccountType: ledger.AccountBank,
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, rec, *got)

	rec.AccountType = ledger.AccountCreditCard
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, ledger.AccountCreditCard, got.AccountType)
}

func TestSettingsRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSettingsRepo(db)

	got, err := repo.Get(ctx, ledger.DefaultRefundSettings())
	require.NoError(t, err)
	require.Equal(t, ledger.DefaultRefundSettings(), got) // fallback before any save

	want := ledger.RefundSettings{DaysWindow: 30, AmountTolerance: 0.02, MatchThreshold: 0.6}
	require.NoError(t, repo.Save(ctx, want))
	got, err = repo.Get(ctx, ledger.DefaultRefundSettings())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestTransactionRepo(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepo(db)

	ts := []ledger.Transaction{
		{
			ID: "t1", Date: "2024-03-01", AmountSigned: -6.50,
			RawDescription: "STARBUCKS #123", MerchantCanonical: "Starbucks",
			MerchantConfidence: 1.0, Category: "Dining", CategoryConfidence: 0.95,
			Type: ledger.TypePurchase, AccountType: ledger.AccountBank,
			Tags: []string{}, SourceRow: 0,
		},
		{
			ID: "t2", Date: "2024-04-02", AmountSigned: 6.50,
			RawDescription: "STARBUCKS REFUND", MerchantCanonical: "Starbucks",
			Category: "Dining", Type: ledger.TypeRefund, AccountType: ledger.AccountBank,
			LinkedTransactionID: "t1", Tags: []string{}, SourceRow: 1,
		},
	}
	hashes := []string{"hash-1", "hash-2"}
	require.NoError(t, database.WithTx(db, func(tx *sql.Tx) error {
		return repo.InsertBatch(ctx, tx, ts, hashes)
	}))

	t.Run("get round trip", func(t *testing.T) {
		got, err := repo.Get(ctx, "t2")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, ts[1], *got)
	})

	t.Run("list newest first", func(t *testing.T) {
		got, err := repo.List(ctx, TransactionFilters{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "t2", got[0].ID)
	})

	t.Run("month filter", func(t *testing.T) {
		got, err := repo.List(ctx, TransactionFilters{Month: "2024-03"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "t1", got[0].ID)
	})

	t.Run("search filter", func(t *testing.T) {
		got, err := repo.List(ctx, TransactionFilters{Search: "refund"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "t2", got[0].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		got, err := repo.List(ctx, TransactionFilters{Type: "purchase"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "t1", got[0].ID)
	})

	t.Run("source hashes", func(t *testing.T) {
		got, err := repo.SourceHashes(ctx)
		require.NoError(t, err)
		require.Equal(t, map[string]bool{"hash-1": true, "hash-2": true}, got)
	})

	t.Run("update category", func(t *testing.T) {
		require.NoError(t, repo.UpdateCategory(ctx, "t1", "Business", 1.0))
		got, err := repo.Get(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, "Business", got.Category)
		require.Equal(t, 1.0, got.CategoryConfidence)
	})

	t.Run("update merchant", func(t *testing.T) {
		require.NoError(t, repo.UpdateMerchant(ctx, "t1", "My Local Coffee", 1.0))
		got, err := repo.Get(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, "My Local Coffee", got.MerchantCanonical)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Insert(ctx, ts[0], "hash-1")
		require.Error(t, err)
	})
}