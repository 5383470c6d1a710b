package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 120

// Make turns a title into a lowercase, hyphen separated url segment.
// Accents are folded to their base letter and other symbols dropped.
func Make(title string) string {
	folding := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(folding, title)
	if err != nil {
		folded = title
	}

	var builder strings.Builder

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}

			builder.WriteRune(r)

			pendingHyphen = false
		default:
			pendingHyphen = true
		}
	}

	result := builder.String()
	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}

	return result
}

// Valid reports whether s is already in the form Make produces.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
