package taglang

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const suggestThreshold = 0.6

// similarity is the Levenshtein distance normalized to 0..1, case-insensitive.
func similarity(a, b string) float64 {
	a = strings.ToUpper(a)
	b = strings.ToUpper(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

func suggest(word string, candidates []string) string {
	var best string
	bestScore := 0.0
	for _, candidate := range candidates {
		score := similarity(word, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore > suggestThreshold {
		return best
	}
	return ""
}
