package search

import (
	"strings"
	"unicode"
)

// Tokenize splits a free-text filter on runs of whitespace and commas and
// returns the lowercased, non-empty terms.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, strings.ToLower(f))
	}
	return out
}

func containsAny(haystack string, tokens []string) bool {
	if haystack == "" {
		return false
	}
	h := strings.ToLower(haystack)
	for _, t := range tokens {
		if strings.Contains(h, t) {
			return true
		}
	}
	return false
}

func anyContainsAny(haystacks []string, tokens []string) bool {
	for _, h := range haystacks {
		if containsAny(h, tokens) {
			return true
		}
	}
	return false
}
