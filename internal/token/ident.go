package token

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IdentKey returns the comparison key of an identifier: the raw prefix r# is
// dropped and the rest is NFC-normalised, so `r#T`, `T` and a decomposed
// spelling of a non-ASCII name compare equal.
func IdentKey(s string) string {
	s = strings.TrimPrefix(s, "r#")
	if isASCII(s) {
		return s
	}
	return norm.NFC.String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
