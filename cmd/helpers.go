package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/analyzer"
	"github.com/substantialcattle5/cipherdesk/internal/breach"
	"github.com/substantialcattle5/cipherdesk/internal/encryption"
	"github.com/substantialcattle5/cipherdesk/internal/passphrase"
	"github.com/substantialcattle5/cipherdesk/internal/progress"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
	"github.com/substantialcattle5/cipherdesk/util"
)

// confirmOverwrite asks before replacing path. With --force, or when the
// file does not exist, it returns true. Without a terminal it refuses.
func confirmOverwrite(cmd *cobra.Command, path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}
	if flagBool(cmd, "force") {
		return true, nil
	}
	if !ui.Interactive(cmd) {
		return false, nil
	}
	return util.ConfirmOverwrite(fmt.Sprintf("%s already exists. Overwrite?", path), cmd.InOrStdin(), cmd.OutOrStdout())
}

func requireOverwrite(cmd *cobra.Command, path string) error {
	ok, err := confirmOverwrite(cmd, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refusing to overwrite %s (use --force)", path)
	}
	return nil
}

func algorithmFlag(cmd *cobra.Command, fallback string) (encryption.Algorithm, error) {
	name, _ := cmd.Flags().GetString("algorithm")
	if name == "" {
		name = fallback
	}
	return encryption.ParseAlgorithm(name)
}

// cipherPassword resolves the password for a text operation and prints the
// advisory warnings from passphrase.Validate when encrypting.
func cipherPassword(cmd *cobra.Command, confirm bool) (string, error) {
	password, err := ui.GetPassword(cmd, ui.PasswordRequest{
		Label:    "Password",
		Confirm:  confirm,
		Validate: passphrase.CheckCipherPassword,
	})
	if err != nil {
		return "", err
	}

	if confirm {
		for _, w := range passphrase.Validate(password).Warnings {
			ui.Warning(cmd.ErrOrStderr(), "%s", w)
		}
	}
	return password, nil
}

func (a *app) progressManager(cmd *cobra.Command) *progress.Manager {
	return progress.NewManager(progress.Options{
		Quiet:   flagBool(cmd, "quiet"),
		Verbose: flagBool(cmd, "verbose"),
		Output:  cmd.ErrOrStderr(),
	})
}

func (a *app) breachClient() *breach.Client {
	return breach.New(
		breach.WithEndpoint(a.cfg.Breach.Endpoint),
		breach.WithUserAgent(a.cfg.Breach.UserAgent),
		breach.WithTimeout(a.cfg.Breach.Timeout),
		breach.WithThrottle(breach.NewThrottle(a.cfg.Breach.MinInterval)),
		breach.WithLogger(a.log),
	)
}

func (a *app) newAnalyzer(withBreach bool) (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{
		analyzer.WithLogger(a.log),
		analyzer.WithCommonPasswordsFile(a.cfg.Analyzer.CommonPasswordsFile),
	}
	if withBreach && a.cfg.Breach.Enabled {
		opts = append(opts, analyzer.WithBreachClient(a.breachClient()))
	}

	an, err := analyzer.New(opts...)
	if err != nil {
		return nil, err
	}
	if a.cfg.Analyzer.SpecialChars != "" {
		if err := an.SetSpecialChars(a.cfg.Analyzer.SpecialChars); err != nil {
			return nil, fmt.Errorf("analyzer.special_chars: %w", err)
		}
	}
	return an, nil
}

// passwordArg takes the password from args[0] or resolves it like any other
// password input.
func passwordArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return ui.GetPassword(cmd, ui.PasswordRequest{Label: "Password to check"})
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}
