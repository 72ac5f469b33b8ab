package analyzer

import "strings"

// Pattern names reported by DetectPatterns.
const (
	PatternRepetitive        = "repetitive characters"
	PatternSequentialNumbers = "sequential numbers"
	PatternSequentialLetters = "sequential letters"
)

var (
	numberRuns = runsOf("0123456789", true)
	letterRuns = runsOf("abcdefghijklmnopqrstuvwxyz", true)
)

// runsOf lists every three-character window of alphabet, plus the reversed
// windows when descending is set.
func runsOf(alphabet string, descending bool) []string {
	var runs []string
	for i := 0; i+3 <= len(alphabet); i++ {
		runs = append(runs, alphabet[i:i+3])
	}
	if descending {
		for i := len(alphabet); i-3 >= 0; i-- {
			w := alphabet[i-3 : i]
			runs = append(runs, string([]byte{w[2], w[1], w[0]}))
		}
	}
	return runs
}

// DetectPatterns reports, in this order, a character repeated three or more
// times in a row, an ascending or descending run of three digits, and an
// ascending or descending run of three letters (case-insensitive).
func DetectPatterns(password string) []string {
	patterns := []string{}

	if hasRepeat(password, 3) {
		patterns = append(patterns, PatternRepetitive)
	}
	if containsAny(password, numberRuns) {
		patterns = append(patterns, PatternSequentialNumbers)
	}
	if containsAny(strings.ToLower(password), letterRuns) {
		patterns = append(patterns, PatternSequentialLetters)
	}

	return patterns
}

func hasRepeat(s string, n int) bool {
	var prev rune
	count := 0
	for i, r := range s {
		if i > 0 && r == prev && r != '\n' {
			count++
		} else {
			count = 1
		}
		if count >= n {
			return true
		}
		prev = r
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func hasPattern(patterns []string, name string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
	}
	return false
}
