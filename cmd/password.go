/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
)

func newPasswordCmd(a *app) *cobra.Command {
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Analyze, generate and breach-check passwords",
	}
	passwordCmd.AddCommand(
		newPasswordAnalyzeCmd(a),
		newPasswordGenerateCmd(a),
		newPasswordPwnedCmd(a),
	)
	return passwordCmd
}

func newPasswordAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [password]",
		Short: "Rate a password and explain the rating",
		Long: `Rate a password and explain the rating.

The report covers the zxcvbn score, crack-time estimates for offline and
online attackers, a composition checklist, detected patterns, a
common-password lookup and, unless --no-breach is given, a k-anonymous
breach lookup that sends only the first 5 characters of the SHA-1 hash.

Examples:
  cipherdesk password analyze
  cipherdesk password analyze --no-breach --json 'Tr0ub4dor&3'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}

			an, err := a.newAnalyzer(!flagBool(cmd, "no-breach"))
			if err != nil {
				return err
			}
			report := an.Analyze(cmd.Context(), password)

			if flagBool(cmd, "json") {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			ui.RenderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("no-breach", false, "Skip the online breach lookup")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	ui.AddPasswordFlags(cmd)
	return cmd
}

func newPasswordGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Long: `Generate a random password from crypto/rand.

Every generated password has at least one lowercase letter, one uppercase
letter and one digit, plus one special character unless --no-special is set.
The special-character pool comes from analyzer.special_chars in the config
or --special-chars.

Examples:
  cipherdesk password generate --length 20
  cipherdesk password generate --no-special --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			count, _ := cmd.Flags().GetInt("count")
			special, _ := cmd.Flags().GetString("special-chars")

			an, err := a.newAnalyzer(false)
			if err != nil {
				return err
			}
			if special != "" {
				if err := an.SetSpecialChars(special); err != nil {
					return err
				}
			}

			for i := 0; i < count; i++ {
				pw, err := an.Generate(length, !flagBool(cmd, "no-special"))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pw)
			}
			return nil
		},
	}
	cmd.Flags().IntP("length", "l", constants.DefaultGeneratedLength, "Password length (minimum 4)")
	cmd.Flags().IntP("count", "n", 1, "Number of passwords to generate")
	cmd.Flags().Bool("no-special", false, "Use letters and digits only")
	cmd.Flags().String("special-chars", "", "Override the special-character pool (ASCII punctuation)")
	return cmd
}

func newPasswordPwnedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwned [password]",
		Short: "Check whether a password appears in known breaches",
		Long: `Check whether a password appears in known breaches.

Only the first 5 characters of the SHA-1 hash are sent. Passwords shorter
than 6 characters are not looked up. The command fails when breach.enabled
is false in the config.

Examples:
  cipherdesk password pwned --password-stdin < pw.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Breach.Enabled {
				return fmt.Errorf("breach lookups are disabled (breach.enabled: false): %w", cerrors.ErrValidation)
			}

			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}

			result := a.breachClient().Check(cmd.Context(), password)
			ui.RenderBreach(cmd.OutOrStdout(), result.State, result.Message)
			return result.Err
		},
	}
	ui.AddPasswordFlags(cmd)
	return cmd
}
