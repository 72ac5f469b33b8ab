/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
)

// PasswordRequest describes the password a command needs.
type PasswordRequest struct {
	Label string
	// Confirm asks twice when prompting interactively.
	Confirm bool
	// Validate runs on every source; a prompt re-asks on failure.
	Validate func(string) error
}

// AddPasswordFlags registers --password, --password-stdin and --password-file.
func AddPasswordFlags(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "Password (visible in shell history; prefer the other sources)")
	cmd.Flags().Bool("password-stdin", false, "Read the password from the first line of stdin")
	cmd.Flags().String("password-file", "", "Read the password from a file (0600 recommended)")
}

// readPasswordFromReader reads the first line of r
func readPasswordFromReader(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	password, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return strings.TrimRight(password, "\r\n"), nil
}

// readPasswordFromFile reads a password from a file
// The file should contain only the password with proper permissions (0600 recommended)
func readPasswordFromFile(filePath string, warn io.Writer) (string, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to access password file: %w", err)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("password file %s is a directory", filePath)
	}

	// Warn if file permissions are too open (not strictly enforced, just a warning)
	if fileInfo.Mode().Perm()&0o077 != 0 {
		fmt.Fprintf(warn, "Warning: password file has overly permissive permissions (%v). Recommended: 0600\n", fileInfo.Mode().Perm())
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}

	password := strings.TrimSpace(string(content))
	if password == "" {
		return "", fmt.Errorf("password file is empty")
	}
	return password, nil
}

// GetPassword resolves a password from, in order: --password, --password-stdin,
// --password-file, the CIPHERDESK_PASSWORD environment variable, and finally
// a masked interactive prompt when stdin is a terminal.
func GetPassword(cmd *cobra.Command, req PasswordRequest) (string, error) {
	password, source, err := passwordFromFlags(cmd)
	if err != nil {
		return "", err
	}

	if password == "" {
		if env := os.Getenv(constants.PasswordEnvVariable); env != "" {
			password, source = env, "environment variable"
		}
	}

	if password != "" {
		if req.Validate != nil {
			if err := req.Validate(password); err != nil {
				return "", fmt.Errorf("password from %s: %w", source, err)
			}
		}
		return password, nil
	}

	if !Interactive(cmd) {
		return "", errors.New("no password given: use --password, --password-stdin, --password-file or " +
			constants.PasswordEnvVariable)
	}
	return promptPassword(req)
}

// Interactive reports whether cmd reads from a terminal and can prompt.
func Interactive(cmd *cobra.Command) bool {
	if cmd.InOrStdin() != os.Stdin {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func passwordFromFlags(cmd *cobra.Command) (string, string, error) {
	if f := cmd.Flags().Lookup("password"); f != nil && f.Value.String() != "" {
		return f.Value.String(), "--password", nil
	}

	if useStdin, err := cmd.Flags().GetBool("password-stdin"); err == nil && useStdin {
		password, err := readPasswordFromReader(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return password, "stdin", nil
	}

	if path, err := cmd.Flags().GetString("password-file"); err == nil && path != "" {
		password, err := readPasswordFromFile(path, cmd.ErrOrStderr())
		if err != nil {
			return "", "", err
		}
		return password, "file", nil
	}

	return "", "", nil
}

func promptPassword(req PasswordRequest) (string, error) {
	label := req.Label
	if label == "" {
		label = "Password"
	}

	passwordPrompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: req.Validate,
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return "", fmt.Errorf("failed to get password: %w", err)
	}

	if req.Confirm {
		confirmPrompt := promptui.Prompt{
			Label: "Confirm " + strings.ToLower(label),
			Mask:  '*',
			Validate: func(input string) error {
				if input != password {
					return errors.New("passwords do not match")
				}
				return nil
			},
		}
		if _, err := confirmPrompt.Run(); err != nil {
			return "", fmt.Errorf("password confirmation failed: %w", err)
		}
	}

	return password, nil
}

// ReadSecretLine prompts for a single masked line, or reads one line from
// stdin when it is not a terminal. Used for messages and tokens.
func ReadSecretLine(cmd *cobra.Command, label string, mask bool) (string, error) {
	if !Interactive(cmd) {
		return readPasswordFromReader(cmd.InOrStdin())
	}

	p := promptui.Prompt{Label: label}
	if mask {
		p.Mask = '*'
	}
	line, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return line, nil
}
