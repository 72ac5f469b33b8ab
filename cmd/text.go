/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/atomic"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
	"github.com/substantialcattle5/cipherdesk/internal/encryption"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
)

func newTextCmd(a *app) *cobra.Command {
	textCmd := &cobra.Command{
		Use:   "text",
		Short: "Encrypt and decrypt short messages with a password",
	}
	textCmd.AddCommand(newTextEncryptCmd(a), newTextDecryptCmd(a))
	return textCmd
}

func addTextFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("algorithm", "a", "", "aes, chacha20, fernet or caesar (default from config)")
	cmd.Flags().StringP("out", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file without asking")
	ui.AddPasswordFlags(cmd)
}

func newTextEncryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a message into a printable token",
		Long: `Encrypt a message into a printable token.

The key is derived from the password with PBKDF2-SHA256. Passwords shorter
than 6 characters are rejected. caesar is a toy shift with no security and
needs no password.

Examples:
  cipherdesk text encrypt --algorithm fernet --message "meet at noon"
  echo "meet at noon" | cipherdesk text encrypt -a aes --password-file pw.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithmFlag(cmd, a.cfg.Defaults.TextAlgorithm)
			if err != nil {
				return err
			}

			message, _ := cmd.Flags().GetString("message")
			if message == "" && flagBool(cmd, "password-stdin") {
				return fmt.Errorf("--password-stdin needs --message")
			}

			var password string
			if alg.RequiresPassword() {
				if password, err = cipherPassword(cmd, true); err != nil {
					return err
				}
			} else {
				ui.Warning(cmd.ErrOrStderr(), "%s is not encryption; anyone can reverse it", alg)
			}

			if message == "" {
				if message, err = ui.ReadSecretLine(cmd, "Message", false); err != nil {
					return err
				}
			}

			token, err := encryption.EncryptText(alg, password, message)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"algorithm": alg.String(), "length": len(token)}).Info("text encrypted")
			return writeTextResult(cmd, token)
		},
	}
	addTextFlags(cmd)
	cmd.Flags().StringP("message", "m", "", "Message to encrypt (read from stdin when omitted)")
	return cmd
}

func newTextDecryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a token produced by text encrypt",
		Long: `Decrypt a token produced by text encrypt.

The token is taken from --token, from the file named by --in, or from the
first line of stdin.

Examples:
  cipherdesk text decrypt -a fernet --token gAAAAAB...
  cipherdesk text decrypt -a aes --in secret.txt --password-stdin < pw.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithmFlag(cmd, a.cfg.Defaults.TextAlgorithm)
			if err != nil {
				return err
			}

			token, err := readToken(cmd)
			if err != nil {
				return err
			}

			var password string
			if alg.RequiresPassword() {
				if password, err = cipherPassword(cmd, false); err != nil {
					return err
				}
			}

			message, err := encryption.DecryptText(alg, password, token)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"algorithm": alg.String()}).Info("text decrypted")
			return writeTextResult(cmd, message)
		},
	}
	addTextFlags(cmd)
	cmd.Flags().StringP("token", "t", "", "Token to decrypt")
	cmd.Flags().String("in", "", "Read the token from a file")
	return cmd
}

func readToken(cmd *cobra.Command) (string, error) {
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		return token, nil
	}
	if path, _ := cmd.Flags().GetString("in"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if flagBool(cmd, "password-stdin") {
		return "", fmt.Errorf("--password-stdin needs --token or --in")
	}
	line, err := ui.ReadSecretLine(cmd, "Token", false)
	if err != nil {
		return "", err
	}
	return trimLine(line), nil
}

func writeTextResult(cmd *cobra.Command, result string) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	}

	if err := requireOverwrite(cmd, out); err != nil {
		return err
	}
	if err := atomic.WriteFile(out, []byte(result+"\n"), constants.SecureFilePerms); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	ui.Success(cmd.ErrOrStderr(), "Wrote %s", out)
	return nil
}
