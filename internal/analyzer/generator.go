package analyzer

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
)

// Generate returns a random password of length characters containing at
// least one lowercase letter, uppercase letter and digit, plus one special
// character from the analyzer's pool when includeSpecial is set.
func (a *Analyzer) Generate(length int, includeSpecial bool) (string, error) {
	return generate(length, includeSpecial, a.SpecialChars())
}

func generate(length int, includeSpecial bool, special string) (string, error) {
	if length < constants.MinGeneratedLength {
		return "", fmt.Errorf("password length must be at least %d characters: %w",
			constants.MinGeneratedLength, cerrors.ErrValidation)
	}

	classes := []string{lowerChars, upperChars, digitChars}
	if includeSpecial {
		classes = append(classes, special)
	}

	out := make([]byte, 0, length)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	all := strings.Join(classes, "")
	for len(out) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates
	for i := len(out) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func pick(chars string) (byte, error) {
	i, err := randInt(len(chars))
	if err != nil {
		return 0, err
	}
	return chars[i], nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}

// ValidateSpecialChars checks that chars is a non-empty run of ASCII
// punctuation.
func ValidateSpecialChars(chars string) error {
	if chars == "" {
		return fmt.Errorf("special character pool is empty: %w", cerrors.ErrValidation)
	}
	for _, r := range chars {
		if !strings.ContainsRune(constants.ASCIIPunctuation, r) {
			return fmt.Errorf("special characters must be punctuation, got %q: %w", r, cerrors.ErrValidation)
		}
	}
	return nil
}
