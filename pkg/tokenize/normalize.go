package tokenize

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }

// Normalize decomposes text, strips combining marks and recomposes it, so
// that accented variants of a word map onto the same token.
func Normalize(text string) (string, error) {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFKC)
	clean, _, err := transform.String(t, text)
	if err != nil {
		return "", err
	}
	return clean, nil
}
