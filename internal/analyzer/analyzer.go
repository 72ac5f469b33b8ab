// Package analyzer rates password strength and generates random passwords.
//
// A report combines the zxcvbn score and guess estimate with local pattern
// checks, crack-time estimates under three attacker models, a composition
// checklist, a common-password lookup and an optional breach lookup.
package analyzer

import (
	"context"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/sirupsen/logrus"

	"github.com/substantialcattle5/cipherdesk/internal/breach"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
	"github.com/substantialcattle5/cipherdesk/internal/logger"
)

// Report is the result of Analyze.
type Report struct {
	Strength        Strength
	TimeToCrack     string
	CrackTimes      CrackTimes
	CharacterCounts CharacterCounts
	TotalCharacters int
	Requirements    Requirements
	IsCommon        bool
	Entropy         float64
	ZxcvbnScore     int
	Patterns        []string
	Review          string

	Pwned        bool
	PwnedMessage string
	BreachState  breach.State
}

// Analyzer holds the common-password list, the special-character pool used
// by Generate and the breach client. It is safe for concurrent use.
type Analyzer struct {
	common       CommonPasswords
	commonFile   string
	breach       *breach.Client
	log          *logrus.Logger
	mu           sync.RWMutex
	specialChars string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCommonPasswordsFile loads the common-password list from path. A
// missing file falls back to the built-in list.
func WithCommonPasswordsFile(path string) Option {
	return func(a *Analyzer) {
		a.commonFile = path
	}
}

// WithCommonPasswords sets the common-password list directly.
func WithCommonPasswords(set CommonPasswords) Option {
	return func(a *Analyzer) {
		a.common = set
	}
}

// WithBreachClient enables breach lookups through c. Without it Analyze
// reports the lookup as skipped.
func WithBreachClient(c *breach.Client) Option {
	return func(a *Analyzer) {
		a.breach = c
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *logrus.Logger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

// New builds an Analyzer. It fails only when a configured common-password
// file exists but cannot be read.
func New(options ...Option) (*Analyzer, error) {
	a := &Analyzer{specialChars: constants.ASCIIPunctuation}
	for _, option := range options {
		option(a)
	}
	a.log = logger.OrDiscard(a.log)

	if a.common == nil {
		set, loaded, err := LoadCommonPasswords(a.commonFile)
		if err != nil {
			return nil, err
		}
		if loaded {
			a.log.WithFields(logrus.Fields{"file": a.commonFile, "count": len(set)}).Info("loaded common passwords")
		} else if a.commonFile != "" {
			a.log.WithFields(logrus.Fields{"file": a.commonFile}).Warn("common passwords file not found, using fallback list")
		}
		a.common = set
	}

	return a, nil
}

// SpecialChars returns the pool Generate draws special characters from.
func (a *Analyzer) SpecialChars() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.specialChars
}

// SetSpecialChars replaces the special-character pool. chars must be a
// non-empty run of ASCII punctuation.
func (a *Analyzer) SetSpecialChars(chars string) error {
	if err := ValidateSpecialChars(chars); err != nil {
		return err
	}
	a.mu.Lock()
	a.specialChars = chars
	a.mu.Unlock()
	a.log.WithFields(logrus.Fields{"pool": chars}).Info("special character pool updated")
	return nil
}

// IsCommon reports whether password is on the common list, ignoring case.
func (a *Analyzer) IsCommon(password string) bool {
	return a.common.Contains(password)
}

// Analyze builds a full report. An empty password yields the fixed "no
// password" report and performs no lookups.
func (a *Analyzer) Analyze(ctx context.Context, password string) Report {
	if password == "" {
		return emptyReport()
	}

	result := zxcvbn.PasswordStrength(password, nil)
	guesses := math.Pow(2, result.Entropy)
	strength := StrengthFromScore(result.Score)
	patterns := DetectPatterns(password)
	selected, times := EstimateCrackTime(guesses, password, patterns)
	isCommon := a.IsCommon(password)

	a.log.WithFields(logrus.Fields{
		"score":         result.Score,
		"entropy":       result.Entropy,
		"brute_force":   times.OfflineBruteForce,
		"hybrid":        times.OfflineHybrid,
		"online":        times.Online,
		"pattern_count": len(patterns),
	}).Debug("password analysed")

	report := Report{
		Strength:        strength,
		TimeToCrack:     selected,
		CrackTimes:      times,
		CharacterCounts: CountCharacters(password),
		TotalCharacters: utf8.RuneCountInString(password),
		Requirements:    CheckRequirements(password),
		IsCommon:        isCommon,
		Entropy:         result.Entropy,
		ZxcvbnScore:     result.Score,
		Patterns:        patterns,
		Review:          Review(strength, isCommon, patterns),
	}

	if a.breach == nil {
		report.BreachState = breach.StateSkipped
		report.PwnedMessage = "Breach check skipped."
		return report
	}

	status := a.breach.Check(ctx, password)
	report.Pwned = status.Pwned
	report.PwnedMessage = status.Message
	report.BreachState = status.State
	return report
}

func emptyReport() Report {
	return Report{
		Strength:     StrengthNone,
		TimeToCrack:  instantly,
		CrackTimes:   CrackTimes{instantly, instantly, instantly},
		Patterns:     []string{},
		Review:       "No password provided",
		PwnedMessage: "No password provided to check breaches",
		BreachState:  breach.StateSkipped,
	}
}
