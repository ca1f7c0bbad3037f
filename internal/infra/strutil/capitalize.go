// Package strutil holds small string helpers shared across the module.
package strutil

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyInput is returned when an operation requires a non-empty string.
var ErrEmptyInput = errors.New("strutil: empty input")

// CapitalizeFirst uppercases the first code point of s using full Unicode
// case mapping, which may expand a single code point into several ("ß"
// becomes "SS"). The remainder of the string is returned unchanged.
// A Caser is stateful, so one is built per call rather than shared.
func CapitalizeFirst(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyInput
	}

	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:], nil
}
