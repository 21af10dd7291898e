package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares user input for the search index: composes
// decomposed Hangul jamo into NFC form and collapses runs of whitespace.
// Korean text typed on some platforms (notably macOS filenames and certain
// IMEs) arrives decomposed and would not match the indexed composed form.
func NormalizeQuery(query string) string {
	normalized := norm.NFC.String(query)
	return strings.Join(strings.Fields(normalized), " ")
}
