package categorize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordCategorize(t *testing.T) {
	t.Parallel()

	t.Run("weak keyword", func(t *testing.T) {
		t.Parallel()
		got := KeywordCategorize("HECTORS MEXICAN FOOD")
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.45, got.Confidence, 1e-9)
	})

	t.Run("strong keyword", func(t *testing.T) {
		t.Parallel()
		got := KeywordCategorize("JOE'S COFFEE ROASTERS")
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.65, got.Confidence, 1e-9)
	})

	t.Run("two groups earn the bonus", func(t *testing.T) {
		t.Parallel()
		got := KeywordCategorize("SUSHI BAR DOWNTOWN")
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.75, got.Confidence, 1e-9)
	})

	t.Run("ties go to table order", func(t *testing.T) {
		t.Parallel()
		// Dining (weak FOOD) and Gas (weak MURPHY) both score 0.45;
		// the Dining group comes first.
		got := KeywordCategorize("MURPHY FOOD STOP")
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.45, got.Confidence, 1e-9)
	})

	t.Run("one hit per group", func(t *testing.T) {
		t.Parallel()
		// Three weak Dining keywords in one group still count once.
		got := KeywordCategorize("TACO BURGER PIZZA")
		require.NotNil(t, got)
		require.Equal(t, "Dining", got.Category)
		require.InDelta(t, 0.45, got.Confidence, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, KeywordCategorize("XQZV 0042"))
	})
}
