package cache

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

const keyPrefix = "location_"

// keyFolder case-folds and strips the combining marks Dutch street names
// carry (Koninginneweg, Bólswert), so spelling variants of one address
// land on one entry.
var keyFolder = cases.Fold()

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// NormalizeKey derives the storage key for an address: decompose and drop
// diacritics, case-fold, strip punctuation, collapse whitespace runs to
// single underscores, and prefix. Two addresses differing only by case or
// incidental punctuation produce the same key.
func NormalizeKey(address string) string {
	s := stripMarks.String(norm.NFD.String(address))
	s = keyFolder.String(s)

	var b strings.Builder
	b.Grow(len(s) + len(keyPrefix))
	b.WriteString(keyPrefix)
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > len(keyPrefix) {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSep = true
		default:
			// Punctuation drops without forcing a separator.
		}
	}
	return b.String()
}
