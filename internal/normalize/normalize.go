// Package normalize folds arbitrary Unicode text down to the canonical
// trigram alphabet: lowercase ASCII letters and digits.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKD and keeps only code points that fit in a single
// byte and are ASCII letters or digits. Uppercase letters are folded to
// lowercase; everything else (combining marks, punctuation, whitespace,
// non-Latin scripts) is dropped without leaving a separator behind.
//
// Diacritics decompose into a base letter plus a combining mark, so "é"
// becomes "e".
func Normalize(text string) []byte {
	decomposed := norm.NFKD.String(text)

	out := make([]byte, 0, len(decomposed))
	for _, r := range decomposed {
		if r > 0xff {
			continue
		}
		switch b := byte(r); {
		case b >= '0' && b <= '9', b >= 'a' && b <= 'z':
			out = append(out, b)
		case b >= 'A' && b <= 'Z':
			out = append(out, b-'A'+'a')
		}
	}
	return out
}

// Words splits text on whitespace. Indexing, querying and the full-scan
// fallback all use this so a word boundary means the same thing everywhere.
func Words(text string) []string {
	return strings.Fields(text)
}
