/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/encryption"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
)

func newImageCmd(a *app) *cobra.Command {
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Encrypt and decrypt images with a password",
	}
	imageCmd.AddCommand(newImageEncryptCmd(a), newImageDecryptCmd(a))
	return imageCmd
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("algorithm", "a", "", "aes, chacha20 or fernet (default from config)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file without asking")
	ui.AddPasswordFlags(cmd)
}

func newImageEncryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <in> <out>",
		Short: "Encrypt an image",
		Long: `Encrypt an image.

The image is re-encoded as PNG and encrypted under SHA-256(password). A
<out>.hash file holding the password hash is written next to the output and
is required for decryption.

Examples:
  cipherdesk image encrypt photo.jpg photo.enc -a chacha20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithmFlag(cmd, a.cfg.Defaults.ImageAlgorithm)
			if err != nil {
				return err
			}
			if alg == encryption.Caesar {
				return fmt.Errorf("caesar cannot encrypt images: %w", cerrors.ErrUnsupportedAlgorithm)
			}

			for _, p := range []string{args[1], encryption.SidecarPath(args[1])} {
				if err := requireOverwrite(cmd, p); err != nil {
					return err
				}
			}

			password, err := ui.GetPassword(cmd, ui.PasswordRequest{Label: "Password", Confirm: true})
			if err != nil {
				return err
			}

			if err := encryption.EncryptImage(alg, args[0], args[1], password); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"algorithm": alg.String(), "in": args[0], "out": args[1]}).Info("image encrypted")

			w := cmd.OutOrStdout()
			ui.Success(w, "Encrypted image: %s", args[1])
			ui.Success(w, "Password hash:   %s", encryption.SidecarPath(args[1]))
			return nil
		},
	}
	addImageFlags(cmd)
	return cmd
}

func newImageDecryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <in> <out>",
		Short: "Decrypt an image produced by image encrypt",
		Long: `Decrypt an image produced by image encrypt.

The password is checked against <in>.hash before anything is decrypted. The
output format follows the extension of <out> (.jpg/.jpeg for JPEG, PNG
otherwise).

Examples:
  cipherdesk image decrypt photo.enc photo.png -a chacha20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithmFlag(cmd, a.cfg.Defaults.ImageAlgorithm)
			if err != nil {
				return err
			}
			if err := requireOverwrite(cmd, args[1]); err != nil {
				return err
			}

			password, err := ui.GetPassword(cmd, ui.PasswordRequest{Label: "Password"})
			if err != nil {
				return err
			}

			if err := encryption.DecryptImage(alg, args[0], args[1], password); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"algorithm": alg.String(), "in": args[0], "out": args[1]}).Info("image decrypted")
			ui.Success(cmd.OutOrStdout(), "Decrypted image: %s", args[1])
			return nil
		},
	}
	addImageFlags(cmd)
	return cmd
}
