package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a display name into its search-key form: spaces removed,
// diacritics stripped, lowercase. Names typed with or without accents then
// land on the same range-query prefix.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

// NameKeys derives the composite search keys stored on patients and
// appointments: first+last and the reversed last+first variant, so a search
// matches regardless of which name the receptionist types first.
func NameKeys(firstName, lastName string) (key, reversed string) {
	if firstName == "" || lastName == "" {
		return "", ""
	}
	first := Normalize(firstName)
	last := Normalize(lastName)
	return first + last, last + first
}
