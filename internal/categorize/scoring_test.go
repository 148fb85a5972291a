package categorize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
)

func TestScoreDerivedCategory(t *testing.T) {
	t.Parallel()
	dict := merchant.SeedDictionary()

	t.Run("exact merchant match", func(t *testing.T) {
		t.Parallel()
		got := ScoreDerivedCategory(ledger.Transaction{RawDescription: "STARBUCKS"}, dict)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.95, got.Confidence, 1e-9)
	})

	t.Run("pattern match with agreeing keyword", func(t *testing.T) {
		t.Parallel()
		// pattern 0.85, weak Dining keyword agrees: +0.05
		got := ScoreDerivedCategory(ledger.Transaction{RawDescription: "CHIPOTLE MEXICAN GRILL"}, dict)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.90, got.Confidence, 1e-9)
	})

	t.Run("multi-category merchant capped", func(t *testing.T) {
		t.Parallel()
		got := ScoreDerivedCategory(ledger.Transaction{RawDescription: "AMAZON.COM"}, dict)
		require.Equal(t, "Shopping", got.Category)
		require.InDelta(t, 0.45, got.Confidence, 1e-9)
	})

	t.Run("keyword only", func(t *testing.T) {
		t.Parallel()
		got := ScoreDerivedCategory(ledger.Transaction{RawDescription: "HECTORS MEXICAN FOOD"}, dict)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.45, got.Confidence, 1e-9)
	})

	t.Run("no signal", func(t *testing.T) {
		t.Parallel()
		got := ScoreDerivedCategory(ledger.Transaction{RawDescription: "XQZV 0042"}, dict)
		require.Empty(t, got.Category)
		require.Zero(t, got.Confidence)
	})
}

func TestScoreCSVCategory(t *testing.T) {
	t.Parallel()

	t.Run("agreement boost capped", func(t *testing.T) {
		t.Parallel()
		got := ScoreCSVCategory("Gasoline", ledger.CategoryScore{Category: "Gas", Confidence: 0.85})
		require.NotNil(t, got)
		require.Equal(t, "Gas", got.Category)
		require.InDelta(t, 0.95, got.Confidence, 1e-9)
	})

	t.Run("strong conflict penalty", func(t *testing.T) {
		t.Parallel()
		got := ScoreCSVCategory("Merchandise", ledger.CategoryScore{Category: "Dining", Confidence: 0.85})
		require.NotNil(t, got)
		require.Equal(t, "Shopping", got.Category)
		require.InDelta(t, 0.40*0.4, got.Confidence, 1e-9)
	})

	t.Run("mild conflict penalty", func(t *testing.T) {
		t.Parallel()
		got := ScoreCSVCategory("Merchandise", ledger.CategoryScore{Category: "Dining", Confidence: 0.70})
		require.NotNil(t, got)
		require.InDelta(t, 0.40*0.6, got.Confidence, 1e-9)
	})

	t.Run("no derived score uses base", func(t *testing.T) {
		t.Parallel()
		got := ScoreCSVCategory("Dining", ledger.CategoryScore{})
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.85, got.Confidence, 1e-9)
	})

	t.Run("vocabulary fallback for unmapped label", func(t *testing.T) {
		t.Parallel()
		got := ScoreCSVCategory("rent/mortgage", ledger.CategoryScore{})
		require.NotNil(t, got)
		require.Equal(t, "Rent/Mortgage", got.Category)
		require.InDelta(t, defaultCSVBaseConfidence, got.Confidence, 1e-9)
	})

	t.Run("unmappable returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, ScoreCSVCategory("bananas", ledger.CategoryScore{}))
		require.Nil(t, ScoreCSVCategory("  ", ledger.CategoryScore{}))
	})
}

func TestResolveCategory(t *testing.T) {
	t.Parallel()

	t.Run("higher confidence wins", func(t *testing.T) {
		t.Parallel()
		derived := ledger.CategoryScore{Category: "Dining", Confidence: 0.9}
		csv := &ledger.CategoryScore{Category: "Shopping", Confidence: 0.16}
		require.Equal(t, "Dining", ResolveCategory(derived, csv).Category)
	})

	t.Run("ties go to the csv category", func(t *testing.T) {
		t.Parallel()
		derived := ledger.CategoryScore{Category: "Dining", Confidence: 0.85}
		csv := &ledger.CategoryScore{Category: "Groceries", Confidence: 0.85}
		require.Equal(t, "Groceries", ResolveCategory(derived, csv).Category)
	})

	t.Run("weak lone derived falls back to Other", func(t *testing.T) {
		t.Parallel()
		got := ResolveCategory(ledger.CategoryScore{Category: "Dining", Confidence: 0.2}, nil)
		require.Equal(t, "Other", got.Category)
		require.InDelta(t, 0.2, got.Confidence, 1e-9)
	})

	t.Run("weak lone csv falls back to Other", func(t *testing.T) {
		t.Parallel()
		csv := &ledger.CategoryScore{Category: "Other", Confidence: 0.25}
		got := ResolveCategory(ledger.CategoryScore{}, csv)
		require.Equal(t, "Other", got.Category)
	})
}
