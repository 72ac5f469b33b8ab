// Package passphrase holds the preconditions a password must meet before it
// is used to derive an encryption key, plus advisory warnings for weak ones.
package passphrase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// ValidationResult contains validation results and user feedback
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	// Score is the zxcvbn score (0-4); only set when Valid.
	Score int
}

// CheckCipherPassword rejects passwords shorter than six characters. Callers
// apply it to every password-derived mode; Caesar needs no password.
func CheckCipherPassword(password string) error {
	if utf8.RuneCountInString(password) < constants.MinCipherPasswordLength {
		return fmt.Errorf("password must be at least %d characters long: %w",
			constants.MinCipherPasswordLength, cerrors.ErrValidation)
	}
	return nil
}

// Validate runs CheckCipherPassword and, for passwords that pass it, adds
// non-fatal warnings about missing character classes and predictability.
func Validate(password string) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	if err := CheckCipherPassword(password); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("password must be at least %d characters long", constants.MinCipherPasswordLength))
		return result
	}

	hasUpper, hasLower, hasDigit, hasSpecial := false, false, false, false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case isSpecialChar(char):
			hasSpecial = true
		}
	}

	var missing []string
	if !hasUpper {
		missing = append(missing, "uppercase letters")
	}
	if !hasLower {
		missing = append(missing, "lowercase letters")
	}
	if !hasDigit {
		missing = append(missing, "digits")
	}
	if !hasSpecial {
		missing = append(missing, "special characters")
	}
	if len(missing) > 0 {
		result.Warnings = append(result.Warnings,
			"password has no "+strings.Join(missing, ", "))
	}

	// Only run the expensive zxcvbn check once the hard requirement is met.
	strength := zxcvbn.PasswordStrength(password, nil)
	result.Score = strength.Score
	if strength.Score <= 1 {
		result.Warnings = append(result.Warnings,
			"this password is predictable or commonly used; anyone guessing it can decrypt your data")
	}

	return result
}

// GetErrorMessage returns a user-friendly message combining errors and warnings
func GetErrorMessage(result ValidationResult) string {
	messages := append([]string{}, result.Errors...)
	messages = append(messages, result.Warnings...)

	switch len(messages) {
	case 0:
		return ""
	case 1:
		return messages[0]
	default:
		return fmt.Sprintf("Password feedback:\n• %s", strings.Join(messages, "\n• "))
	}
}

// isSpecialChar reports whether char is ASCII punctuation.
func isSpecialChar(char rune) bool {
	return strings.ContainsRune(constants.ASCIIPunctuation, char)
}
