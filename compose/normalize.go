package compose

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer decomposes to NFD and drops combining marks, so accented
// letters count as their base letter.
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize lowercases the input and strips diacritics. Runes outside
// the Latin alphabet survive normalization but are ignored by Count.
func Normalize(text string) string {
	out, _, err := transform.String(normalizer, text)
	if err != nil {
		// Remove never fails on valid UTF-8; fall back to the input.
		out = text
	}
	return strings.ToLower(out)
}

// Frequencies counts each of the 26 Latin letters.
type Frequencies struct {
	Counts [26]int
	Total  int
}

// Count normalizes text and tallies its letters. Digits, punctuation,
// and non-Latin scripts are not counted.
func Count(text string) Frequencies {
	var f Frequencies
	for _, r := range Normalize(text) {
		if r >= 'a' && r <= 'z' {
			f.Counts[r-'a']++
			f.Total++
		}
	}
	return f
}

// Ratio returns letter i's share of the total, 0 for an empty tally.
func (f Frequencies) Ratio(i int) float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Counts[i]) / float64(f.Total)
}

// Max returns the highest letter count.
func (f Frequencies) Max() int {
	m := 0
	for _, n := range f.Counts {
		if n > m {
			m = n
		}
	}
	return m
}
