package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks so accented and unaccented French
// forms compare equal ("météo" == "meteo", "ça" == "ca").
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases and strips diacritics.
func normalizeText(s string) string {
	lower := strings.ToLower(s)
	out, _, err := transform.String(stripAccents, lower)
	if err != nil {
		return lower
	}
	return out
}

// questionVariants returns the lowercased question and its accent-stripped
// form; token matching checks both so rule tables can stay unaccented.
func questionVariants(question string) (string, string) {
	q := strings.ToLower(strings.TrimSpace(question))
	return q, normalizeText(q)
}

// containsAny reports whether any token occurs in either variant.
func containsAny(q, qNorm string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(q, tok) || strings.Contains(qNorm, tok) {
			return true
		}
	}
	return false
}
