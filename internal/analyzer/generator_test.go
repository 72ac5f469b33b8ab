package analyzer

import (
	"errors"
	"strings"
	"testing"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

func TestGenerate(t *testing.T) {
	a := newAnalyzer(t)

	for _, length := range []int{4, 5, 12, 64} {
		for _, special := range []bool{true, false} {
			pw, err := a.Generate(length, special)
			if err != nil {
				t.Fatalf("Generate(%d, %v) error = %v", length, special, err)
			}
			if len(pw) != length {
				t.Errorf("Generate(%d) returned %d characters", length, len(pw))
			}
			if !strings.ContainsAny(pw, lowerChars) || !strings.ContainsAny(pw, upperChars) || !strings.ContainsAny(pw, digitChars) {
				t.Errorf("Generate(%d) = %q is missing a character class", length, pw)
			}
			if got := strings.ContainsAny(pw, a.SpecialChars()); got != special {
				t.Errorf("Generate(%d, %v) = %q, special present = %v", length, special, pw, got)
			}
		}
	}
}

func TestGenerateTooShort(t *testing.T) {
	a := newAnalyzer(t)
	for _, length := range []int{-1, 0, 3} {
		if _, err := a.Generate(length, true); !errors.Is(err, cerrors.ErrValidation) {
			t.Errorf("Generate(%d) expected ErrValidation, got %v", length, err)
		}
	}
}

func TestGenerateIsRandom(t *testing.T) {
	a := newAnalyzer(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pw, err := a.Generate(16, true)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[pw] {
			t.Fatalf("duplicate password %q", pw)
		}
		seen[pw] = true
	}
}

func TestSetSpecialChars(t *testing.T) {
	a := newAnalyzer(t)

	for _, bad := range []string{"", "abc", "@#a", "§"} {
		if err := a.SetSpecialChars(bad); !errors.Is(err, cerrors.ErrValidation) {
			t.Errorf("SetSpecialChars(%q) expected ErrValidation, got %v", bad, err)
		}
	}
	if a.SpecialChars() != "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" {
		t.Errorf("pool changed after rejected updates: %q", a.SpecialChars())
	}

	if err := a.SetSpecialChars("@#"); err != nil {
		t.Fatalf("SetSpecialChars() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		pw, _ := a.Generate(12, true)
		for _, r := range pw {
			if strings.ContainsRune(lowerChars+upperChars+digitChars, r) {
				continue
			}
			if r != '@' && r != '#' {
				t.Fatalf("Generate() used %q outside the custom pool in %q", r, pw)
			}
		}
	}
}
