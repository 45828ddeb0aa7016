// Package search implements fuzzy text search over forms. The primary
// backend delegates to Postgres pg_trgm; the in-memory backend reimplements
// pg_trgm's trigram similarity so both rank results the same way.
package search

import (
	"strings"
	"unicode"
)

// SimilarityThreshold mirrors pg_trgm's default similarity cutoff.
const SimilarityThreshold = 0.3

// trigrams extracts the pg_trgm trigram set of s: the string is lowercased
// and split into alphanumeric words, each word is padded with two leading
// spaces and one trailing space, and every 3-gram of the padded word is
// collected.
func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(s) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Similarity returns the trigram similarity of a and b in [0, 1]:
// the size of the trigram intersection divided by the size of the union.
func Similarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// containsFold reports whether s contains substr case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
