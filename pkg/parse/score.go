package parse

import (
	"github.com/hbollon/go-edlib"
)

// Score computes the similarity between a parsed title and a catalog
// candidate title, in [0.0, 1.0]. Jaro-Winkler favors shared prefixes,
// which suits media titles. The score orders candidates when a human
// resolves an ambiguous match; it never auto-picks one.
func Score(parsed, candidate string) float64 {
	a := NormalizeTitle(parsed)
	b := NormalizeTitle(candidate)
	if a == "" || b == "" {
		return 0
	}
	return float64(edlib.JaroWinklerSimilarity(a, b))
}
