package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// fallbackCommonPasswords is used when no list file is available.
var fallbackCommonPasswords = []string{
	"password", "123456", "123456789", "qwerty", "abc123",
	"password1", "admin", "welcome", "monkey", "sunshine",
	"letmein", "football", "iloveyou", "123abc", "admin123",
}

// CommonPasswords is a case-insensitive set of well-known passwords.
type CommonPasswords map[string]struct{}

// NewCommonPasswords builds a set from words, lowercasing each and skipping
// blanks.
func NewCommonPasswords(words []string) CommonPasswords {
	set := make(CommonPasswords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// FallbackCommonPasswords returns the built-in fifteen-entry list.
func FallbackCommonPasswords() CommonPasswords {
	return NewCommonPasswords(fallbackCommonPasswords)
}

// ReadCommonPasswords reads one password per line.
func ReadCommonPasswords(r io.Reader) (CommonPasswords, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read common passwords: %w", err)
	}
	return NewCommonPasswords(words), nil
}

// LoadCommonPasswords reads the list at path. The boolean result is false
// when the file does not exist and the fallback list was returned instead.
func LoadCommonPasswords(path string) (CommonPasswords, bool, error) {
	if path == "" {
		return FallbackCommonPasswords(), false, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FallbackCommonPasswords(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open common passwords file: %w", err)
	}
	defer f.Close()

	set, err := ReadCommonPasswords(f)
	if err != nil {
		return nil, false, err
	}
	return set, true, nil
}

// Contains reports whether password, lowercased, is in the set.
func (c CommonPasswords) Contains(password string) bool {
	_, ok := c[strings.ToLower(password)]
	return ok
}
