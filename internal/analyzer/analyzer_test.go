package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/substantialcattle5/cipherdesk/internal/breach"
	"github.com/substantialcattle5/cipherdesk/testutil"
)

func newAnalyzer(t *testing.T, options ...Option) *Analyzer {
	t.Helper()
	a, err := New(options...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestAnalyzeEmptyPassword(t *testing.T) {
	report := newAnalyzer(t).Analyze(context.Background(), "")

	if report.Strength != StrengthNone {
		t.Errorf("Strength = %q, want None", report.Strength)
	}
	if report.TimeToCrack != "Instantly" {
		t.Errorf("TimeToCrack = %q", report.TimeToCrack)
	}
	if report.Review != "No password provided" {
		t.Errorf("Review = %q", report.Review)
	}
	if report.PwnedMessage != "No password provided to check breaches" {
		t.Errorf("PwnedMessage = %q", report.PwnedMessage)
	}
	if report.Pwned || report.IsCommon || report.TotalCharacters != 0 || report.Entropy != 0 || report.ZxcvbnScore != 0 {
		t.Errorf("unexpected non-zero fields: %+v", report)
	}
	if len(report.Patterns) != 0 {
		t.Errorf("Patterns = %v", report.Patterns)
	}
}

func TestAnalyzeCommonPassword(t *testing.T) {
	report := newAnalyzer(t).Analyze(context.Background(), "password")

	if !report.IsCommon {
		t.Error("expected password to be common")
	}
	if report.Strength != StrengthVeryWeak {
		t.Errorf("Strength = %q, want Very Weak", report.Strength)
	}
	if report.Review != "This password is too common and easily guessable. Choose a unique, random password." {
		t.Errorf("Review = %q", report.Review)
	}
	if report.BreachState != breach.StateSkipped {
		t.Errorf("BreachState = %q, want skipped", report.BreachState)
	}
}

func TestAnalyzeChecklist(t *testing.T) {
	report := newAnalyzer(t).Analyze(context.Background(), "Tr0ub4dor&3")

	wantCounts := CharacterCounts{Lower: 6, Upper: 1, Digits: 3, Special: 1}
	if report.CharacterCounts != wantCounts {
		t.Errorf("CharacterCounts = %+v, want %+v", report.CharacterCounts, wantCounts)
	}
	if report.TotalCharacters != 11 {
		t.Errorf("TotalCharacters = %d", report.TotalCharacters)
	}

	want := Requirements{Length: true, Min12Chars: false, Upper: true, Lower: true, Digit: true, Special: true}
	if report.Requirements != want {
		t.Errorf("Requirements = %+v, want %+v", report.Requirements, want)
	}
	if report.Requirements.Met() != 5 {
		t.Errorf("Met() = %d, want 5", report.Requirements.Met())
	}
}

func TestAnalyzeRepetitiveUsesHybridTime(t *testing.T) {
	report := newAnalyzer(t).Analyze(context.Background(), "aaaaaa")

	if !reflect.DeepEqual(report.Patterns, []string{PatternRepetitive}) {
		t.Errorf("Patterns = %v", report.Patterns)
	}
	if report.TimeToCrack != report.CrackTimes.OfflineHybrid {
		t.Errorf("TimeToCrack = %q, want hybrid estimate %q", report.TimeToCrack, report.CrackTimes.OfflineHybrid)
	}
	if !strings.HasPrefix(report.Review, "Weak password: detected patterns (repetitive characters)") {
		t.Errorf("Review = %q", report.Review)
	}
}

func TestAnalyzeStrongPassword(t *testing.T) {
	report := newAnalyzer(t).Analyze(context.Background(), "Xk9#mQ2$vL7!pR4&wZ8@")

	if report.Strength != StrengthVeryStrong {
		t.Errorf("Strength = %q, want Very Strong", report.Strength)
	}
	if len(report.Patterns) != 0 {
		t.Errorf("Patterns = %v", report.Patterns)
	}
	if report.Review != "Excellent password! Ensure you store it securely." {
		t.Errorf("Review = %q", report.Review)
	}
	if report.TimeToCrack != report.CrackTimes.Online {
		t.Errorf("TimeToCrack = %q, want online estimate", report.TimeToCrack)
	}
	if report.Entropy <= 0 {
		t.Errorf("Entropy = %v", report.Entropy)
	}
}

func TestAnalyzeWithBreachClient(t *testing.T) {
	prefix, suffix := breach.HashParts("password")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/range/"+prefix {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "%s:42\r\n", suffix)
	}))
	defer srv.Close()

	client := breach.New(breach.WithEndpoint(srv.URL), breach.WithThrottle(breach.NewThrottle(0)))
	report := newAnalyzer(t, WithBreachClient(client)).Analyze(context.Background(), "password")

	if !report.Pwned || report.BreachState != breach.StateFound {
		t.Errorf("Pwned = %v, BreachState = %q", report.Pwned, report.BreachState)
	}
	if report.PwnedMessage != "This password has appeared in 42 known data breaches!" {
		t.Errorf("PwnedMessage = %q", report.PwnedMessage)
	}
}

func TestNewCommonPasswordsFile(t *testing.T) {
	dir := testutil.TempDir(t, "common-passwords")
	path := testutil.CreateTestFile(t, dir, "common.txt", "  Hunter2  \n\nDragon\n")

	t.Run("loaded file", func(t *testing.T) {
		a := newAnalyzer(t, WithCommonPasswordsFile(path))
		if !a.IsCommon("HUNTER2") || !a.IsCommon("dragon") {
			t.Error("expected entries from file to be common")
		}
		if a.IsCommon("password") {
			t.Error("fallback list should not be used when the file loads")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		a := newAnalyzer(t, WithCommonPasswordsFile(filepath.Join(dir, "missing.txt")))
		if len(a.common) != 15 {
			t.Errorf("fallback list has %d entries, want 15", len(a.common))
		}
		if !a.IsCommon("LetMeIn") {
			t.Error("expected fallback entry to match ignoring case")
		}
	})

	t.Run("unreadable file", func(t *testing.T) {
		if _, err := New(WithCommonPasswordsFile(dir)); err == nil {
			t.Error("expected error when the list path is a directory")
		}
	})
}
