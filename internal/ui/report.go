package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/substantialcattle5/cipherdesk/internal/analyzer"
	"github.com/substantialcattle5/cipherdesk/internal/breach"
)

func checkMark() string { return color.GreenString("✓") }
func crossMark() string { return color.RedString("✗") }

func strengthColor(s analyzer.Strength) *color.Color {
	switch s {
	case analyzer.StrengthVeryStrong, analyzer.StrengthStrong:
		return color.New(color.FgGreen, color.Bold)
	case analyzer.StrengthModerate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func mark(ok bool) string {
	if ok {
		return checkMark()
	}
	return crossMark()
}

// RenderReport writes a human-readable password report to w.
func RenderReport(w io.Writer, r analyzer.Report) {
	fmt.Fprintf(w, "Strength:       %s\n", strengthColor(r.Strength).Sprint(r.Strength))
	fmt.Fprintf(w, "Time to crack:  %s\n", r.TimeToCrack)
	fmt.Fprintf(w, "Entropy:        %.2f bits (score %d/4)\n", r.Entropy, r.ZxcvbnScore)
	fmt.Fprintf(w, "Characters:     %d total, %d lower, %d upper, %d digits, %d special\n",
		r.TotalCharacters, r.CharacterCounts.Lower, r.CharacterCounts.Upper,
		r.CharacterCounts.Digits, r.CharacterCounts.Special)

	fmt.Fprintln(w, "\nCrack time estimates:")
	fmt.Fprintf(w, "  Offline brute force:  %s\n", r.CrackTimes.OfflineBruteForce)
	fmt.Fprintf(w, "  Offline hybrid:       %s\n", r.CrackTimes.OfflineHybrid)
	fmt.Fprintf(w, "  Online (throttled):   %s\n", r.CrackTimes.Online)

	req := r.Requirements
	fmt.Fprintln(w, "\nRequirements:")
	fmt.Fprintf(w, "  %s At least 8 characters\n", mark(req.Length))
	fmt.Fprintf(w, "  %s At least 12 characters\n", mark(req.Min12Chars))
	fmt.Fprintf(w, "  %s Uppercase letter\n", mark(req.Upper))
	fmt.Fprintf(w, "  %s Lowercase letter\n", mark(req.Lower))
	fmt.Fprintf(w, "  %s Digit\n", mark(req.Digit))
	fmt.Fprintf(w, "  %s Special character\n", mark(req.Special))

	if r.IsCommon {
		fmt.Fprintf(w, "\n%s\n", color.RedString("This password appears in the common-password list."))
	}
	if len(r.Patterns) > 0 {
		fmt.Fprintf(w, "\nPatterns found: %s\n", color.YellowString(strings.Join(r.Patterns, ", ")))
	}

	fmt.Fprintf(w, "\nReview: %s\n", r.Review)
	RenderBreach(w, r.BreachState, r.PwnedMessage)
}

// RenderBreach writes the breach line, colored by state.
func RenderBreach(w io.Writer, state breach.State, message string) {
	if message == "" {
		return
	}
	switch state {
	case breach.StateFound:
		fmt.Fprintf(w, "Breach check: %s\n", color.RedString(message))
	case breach.StateNotFound:
		fmt.Fprintf(w, "Breach check: %s\n", color.GreenString(message))
	default:
		fmt.Fprintf(w, "Breach check: %s\n", color.YellowString(message))
	}
}

// Success prints a green check line.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", checkMark(), fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func Warning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.YellowString("Warning:"), fmt.Sprintf(format, args...))
}
