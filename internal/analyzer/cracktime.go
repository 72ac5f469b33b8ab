package analyzer

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"
)

// Attacker models in guesses per second.
const (
	OfflineBruteForceRate = 1e11
	OfflineHybridRate     = 1e7
	OnlineRate            = 10
)

const instantly = "Instantly"

// CrackTimes holds the formatted estimate for each attacker model.
type CrackTimes struct {
	OfflineBruteForce string
	OfflineHybrid     string
	Online            string
}

// EstimateCrackTime formats the time to exhaust guesses under every attacker
// model and returns the one to show: the offline hybrid estimate when
// repetitive characters were detected, the online estimate otherwise. The
// brute-force model uses the smaller of guesses and pool^length.
func EstimateCrackTime(guesses float64, password string, patterns []string) (string, CrackTimes) {
	if guesses <= 1 {
		return instantly, CrackTimes{instantly, instantly, instantly}
	}

	bruteForce := math.Min(guesses, bruteForceGuesses(password))
	times := CrackTimes{
		OfflineBruteForce: FormatDuration(bruteForce / OfflineBruteForceRate),
		OfflineHybrid:     FormatDuration(guesses / OfflineHybridRate),
		Online:            FormatDuration(guesses / OnlineRate),
	}

	if hasPattern(patterns, PatternRepetitive) {
		return times.OfflineHybrid, times
	}
	return times.Online, times
}

// bruteForceGuesses is pool^length where the pool is 26 per letter case
// present, 10 for digits and 32 for anything else.
func bruteForceGuesses(password string) float64 {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
		if !isASCIIAlnum(r) {
			other = true
		}
	}

	pool := 0
	if lower {
		pool += 26
	}
	if upper {
		pool += 26
	}
	if digit {
		pool += 10
	}
	if other {
		pool += 32
	}
	if pool == 0 {
		return 1
	}
	return math.Pow(float64(pool), float64(utf8.RuneCountInString(password)))
}

// FormatDuration renders seconds with two decimals in the largest unit that
// keeps the value at or above one, from seconds up to years.
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 1:
		return instantly
	case seconds < 60:
		return fmt.Sprintf("%.2f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2f minutes", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.2f hours", seconds/3600)
	case seconds < 31536000:
		return fmt.Sprintf("%.2f days", seconds/86400)
	default:
		return fmt.Sprintf("%.2f years", seconds/31536000)
	}
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
