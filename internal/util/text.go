package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a name cell from the input file.
//   - Trims surrounding whitespace
//   - Collapses inner whitespace runs to a single space
//   - Composes unicode (NFC) so "José" typed two ways maps to one key
//
// Case is preserved: names are shown to users as written.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// NormalizeRegion canonicalizes a region (state) code: trimmed and upper-cased.
func NormalizeRegion(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
