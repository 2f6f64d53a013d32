package scoring

import (
	"regexp"
	"strings"
	"unicode"
)

var collapseSpacesRegex = regexp.MustCompile(`\s+`)

// Normalize lower-cases a text field and collapses runs of whitespace.
// Every substring comparison in the extractors happens on this view.
func Normalize(s string) string {
	return strings.TrimSpace(collapseSpacesRegex.ReplaceAllString(strings.ToLower(s), " "))
}

// wordTokens splits normalized text on anything that is not a letter or
// digit, producing the token set used for overlap scoring.
func wordTokens(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// dedupTokens builds the token set used by the duplicate predicate:
// punctuation-split, lower-cased, with very short words and stop-words
// dropped so re-upload suffixes and filler don't mask duplication.
func dedupTokens(title string, stop map[string]struct{}) map[string]struct{} {
	set := wordTokens(title)
	for tok := range set {
		if len(tok) <= 2 {
			delete(set, tok)
			continue
		}
		if _, ok := stop[tok]; ok {
			delete(set, tok)
		}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|, zero when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func stopWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[Normalize(w)] = struct{}{}
	}
	return set
}
