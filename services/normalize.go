package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// TitleCase uppercases every letter that follows a non-letter and
// lowercases the rest, so "joe's cafe" becomes "Joe'S Cafe". The
// apostrophe rule is part of the documented normalization, which is why
// this is not Unicode title casing.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatPrice rounds to two decimals and renders the shortest decimal
// form with at least one fractional digit, prefixed with the currency
// symbol: 2.5 -> "£2.5", 3 -> "£3.0".
func FormatPrice(price float64) string {
	price = math.Round(price*100) / 100
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return "£" + s
}

// ParsePrice converts a stored price string back to its numeric value
func ParsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimPrefix(s, "£"), 64)
}
