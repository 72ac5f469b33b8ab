package analyzer

import (
	"fmt"
	"strings"
)

// Strength is the five-level rating derived from the zxcvbn score.
type Strength string

const (
	StrengthNone       Strength = "None"
	StrengthVeryWeak   Strength = "Very Weak"
	StrengthWeak       Strength = "Weak"
	StrengthModerate   Strength = "Moderate"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
)

// StrengthFromScore maps a zxcvbn score to a Strength. Out-of-range scores
// are Very Weak.
func StrengthFromScore(score int) Strength {
	switch score {
	case 1:
		return StrengthWeak
	case 2:
		return StrengthModerate
	case 3:
		return StrengthStrong
	case 4:
		return StrengthVeryStrong
	default:
		return StrengthVeryWeak
	}
}

var strengthReviews = map[Strength]string{
	StrengthVeryWeak:   "Very poor security. Use a longer password with mixed characters.",
	StrengthWeak:       "Weak password. Add symbols, numbers, and mixed case for better security.",
	StrengthModerate:   "Moderate strength. Increase length or complexity for better protection.",
	StrengthStrong:     "Strong password. Consider adding a few more characters.",
	StrengthVeryStrong: "Excellent password! Ensure you store it securely.",
}

// Review picks the feedback line. A common password outranks detected
// patterns, which outrank the strength message.
func Review(strength Strength, isCommon bool, patterns []string) string {
	if isCommon {
		return "This password is too common and easily guessable. Choose a unique, random password."
	}
	if len(patterns) > 0 {
		return fmt.Sprintf("Weak password: detected patterns (%s). Use a more random combination.",
			strings.Join(patterns, ", "))
	}
	if review, ok := strengthReviews[strength]; ok {
		return review
	}
	return "Enter a valid password to get feedback."
}
