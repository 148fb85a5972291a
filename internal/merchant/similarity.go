package merchant

import "strings"

// Similarity computes the bigram Dice coefficient of two strings,
// case-insensitively. Identical strings score 1; strings shorter than two
// characters score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	setA := bigrams(ra)
	setB := bigrams(rb)

	intersection := 0
	for bg := range setA {
		if _, ok := setB[bg]; ok {
			intersection++
		}
	}
	return 2 * float64(intersection) / float64(len(setA)+len(setB))
}

func bigrams(runes []rune) map[string]struct{} {
	set := make(map[string]struct{}, len(runes))
	lower := []rune(strings.ToLower(string(runes)))
	for i := 0; i+1 < len(lower); i++ {
		set[string(lower[i:i+2])] = struct{}{}
	}
	return set
}
