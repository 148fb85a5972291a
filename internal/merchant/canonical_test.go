package merchant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"pos debit prefix and store number", "POS DEBIT 1234 STARBUCKS #123 SEATTLE WA", "STARBUCKS SEATTLE WA"},
		{"square processor prefix", "SQ *BLUE BOTTLE COFFEE", "BLUE BOTTLE COFFEE"},
		{"toast processor prefix", "TST* JOE'S PIZZA NYC", "JOE'S PIZZA NYC"},
		{"checkcard with ref and trailing number", "CHECKCARD 0423 CHIPOTLE 1234", "CHIPOTLE"},
		{"stacked prefixes strip repeatedly", "pos visa STARBUCKS", "STARBUCKS"},
		{"payment noise word dropped", "RECURRING PAYMENT NETFLIX", "NETFLIX"},
		{"already clean", "TRADER JOES", "TRADER JOES"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Canonicalize(tc.raw))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1.0, Similarity("STARBUCKS", "STARBUCKS"))
	require.Equal(t, 1.0, Similarity("Starbucks", "STARBUCKS"))
	require.Equal(t, 0.0, Similarity("A", "AB"))
	require.Equal(t, 0.0, Similarity("AB", "B"))
	require.InDelta(t, 0.25, Similarity("NIGHT", "NACHT"), 1e-9)
}

func TestExtractTokens(t *testing.T) {
	t.Parallel()

	tokens := ExtractTokens("TARGET #1234 MINNEAPOLIS MN 55401")
	require.Equal(t, "1234", tokens.StoreNumber)
	require.Equal(t, "MN", tokens.State)

	require.Equal(t, "online", ExtractTokens("AMAZON ONLINE ORDER").Channel)
	require.Equal(t, "app", ExtractTokens("STARBUCKS MOBILE ORDER").Channel)
	require.Equal(t, "in-store", ExtractTokens("POS TRADER JOES").Channel)
}
