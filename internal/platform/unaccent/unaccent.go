// Package unaccent strips combining diacritical marks from text so names can
// be matched and displayed in their unaccented form.
package unaccent

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strip decomposes s and removes combining marks, then recomposes.
// Only marks are removed: base letters without a decomposition, such as
// the Vietnamese letter đ, are kept as-is. On transform failure the
// input is returned unchanged.
func Strip(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
