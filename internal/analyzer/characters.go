package analyzer

import (
	"unicode"
	"unicode/utf8"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
)

// CharacterCounts counts characters by class. Special is everything that is
// neither a letter nor a digit.
type CharacterCounts struct {
	Lower   int
	Upper   int
	Digits  int
	Special int
}

// Requirements is the composition checklist.
type Requirements struct {
	Length     bool // at least 8 characters
	Min12Chars bool
	Upper      bool
	Lower      bool
	Digit      bool
	// Special is set by any character outside ASCII letters and digits.
	Special bool
}

// Met counts satisfied requirements.
func (r Requirements) Met() int {
	n := 0
	for _, ok := range []bool{r.Length, r.Min12Chars, r.Upper, r.Lower, r.Digit, r.Special} {
		if ok {
			n++
		}
	}
	return n
}

// CountCharacters tallies lowercase, uppercase, digit and special runes.
// Anything that is neither a letter nor a number counts as special.
func CountCharacters(password string) CharacterCounts {
	var c CharacterCounts
	for _, r := range password {
		if unicode.IsLower(r) {
			c.Lower++
		}
		if unicode.IsUpper(r) {
			c.Upper++
		}
		if unicode.IsDigit(r) {
			c.Digits++
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			c.Special++
		}
	}
	return c
}

// CheckRequirements evaluates the composition checklist shown in reports.
func CheckRequirements(password string) Requirements {
	length := utf8.RuneCountInString(password)
	req := Requirements{
		Length:     length >= constants.MinPasswordLength,
		Min12Chars: length >= constants.RecommendedPasswordLength,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			req.Upper = true
		case unicode.IsLower(r):
			req.Lower = true
		case unicode.IsDigit(r):
			req.Digit = true
		}
		if !isASCIIAlnum(r) {
			req.Special = true
		}
	}
	return req
}
