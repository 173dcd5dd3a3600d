// Package slug derives URL-safe company slugs from display names.
package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = '-'

// letters NFD cannot decompose
var replacer = strings.NewReplacer(
	"&", " and ",
	"@", " at ",
	"ß", "ss",
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"ł", "l", "Ł", "l",
	"đ", "d", "Đ", "d",
)

// Make lowercases s, folds diacritics to ASCII and joins the remaining
// alphanumeric runs with '-'. The result is at most maxLen bytes when maxLen
// is positive and never ends with a separator.
func Make(s string, maxLen int) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		replacer.Replace(s),
	)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			if maxLen > 0 && b.Len()+2 > maxLen {
				break
			}
			b.WriteByte(separator)
			pendingSep = false
		}
		if maxLen > 0 && b.Len()+1 > maxLen {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), string(separator))
}

// WithSuffix appends a random lowercase alphanumeric suffix of n characters,
// shortening base so the result stays within maxLen.
func WithSuffix(base string, n, maxLen int) string {
	suffix := randomSuffix(n)
	if maxLen > 0 && len(base)+1+n > maxLen {
		base = strings.TrimRight(base[:max(maxLen-1-n, 0)], string(separator))
	}
	if base == "" {
		return suffix
	}
	return base + string(separator) + suffix
}

func randomSuffix(n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, n)
	_, _ = rand.Read(b) // never returns an error
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
