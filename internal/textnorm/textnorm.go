// Package textnorm folds text for accent- and case-insensitive search and
// sorting of Brazilian Portuguese values.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// specialFolds covers letters whose base form is not reachable through
// canonical decomposition alone.
var specialFolds = strings.NewReplacer(
	"ç", "c",
	"ñ", "n",
	"ß", "ss",
	"æ", "ae",
	"ø", "o",
)

// Normalize returns the folded form of s: lower case, combining marks
// stripped, cedilla and tilde-n mapped to plain latin letters, trimmed.
// Normalize is pure and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Lower first so marks introduced by case mapping (e.g. U+0130) are stripped below
	s = strings.ToLower(s)

	// transform.Chain is stateful, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.TrimSpace(specialFolds.Replace(folded))
}

// Contains reports whether the folded form of haystack contains the folded form of needle
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// Collator compares folded strings using Brazilian Portuguese collation rules.
// A Collator is not safe for concurrent use; create one per sort.
type Collator struct {
	c *collate.Collator
}

// NewCollator creates a case- and diacritic-insensitive collator
func NewCollator() *Collator {
	return &Collator{
		c: collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics),
	}
}

// Compare returns -1, 0 or 1 comparing the normalized forms of a and b
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(Normalize(a), Normalize(b))
}

// Compare is a convenience wrapper that allocates a collator per call
func Compare(a, b string) int {
	return NewCollator().Compare(a, b)
}
