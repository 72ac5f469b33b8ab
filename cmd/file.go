/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/encryption/keys"
	"github.com/substantialcattle5/cipherdesk/internal/envelope"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
	"github.com/substantialcattle5/cipherdesk/util"
)

func newFileCmd(a *app) *cobra.Command {
	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "Encrypt and decrypt files with an RSA key pair",
	}
	fileCmd.AddCommand(newFileEncryptCmd(a), newFileDecryptCmd(a))
	return fileCmd
}

func newFileEncryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <path>",
		Short: "Seal a file for an RSA public key",
		Long: `Seal a file for an RSA public key.

A fresh AES-256 session key encrypts the file in CFB mode and is wrapped with
RSA-OAEP (SHA-256). The result is written to <path>.rsa.enc. The envelope is
not authenticated: keep it somewhere it cannot be modified.

Examples:
  cipherdesk file encrypt report.pdf --public-key alice_public.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, _ := cmd.Flags().GetString("public-key")
			pub, err := keys.LoadPublicKey(keyPath)
			if err != nil {
				return err
			}

			return a.runFileOp(cmd, args[0], envelope.EncryptedPath(args[0]), func(pm envelope.FileOption) (string, error) {
				return envelope.EncryptFile(args[0], pub, pm)
			})
		},
	}
	cmd.Flags().String("public-key", "", "Recipient public key (PEM)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file without asking")
	_ = cmd.MarkFlagRequired("public-key")
	return cmd
}

func newFileDecryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <path.rsa.enc>",
		Short: "Open a file sealed with file encrypt",
		Long: `Open a file sealed with file encrypt.

The output replaces the .rsa.enc suffix with .dec (or appends .dec) and is
written with mode 0600.

Examples:
  cipherdesk file decrypt report.pdf.rsa.enc --private-key alice_private.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, _ := cmd.Flags().GetString("private-key")
			priv, err := keys.LoadPrivateKey(keyPath)
			if err != nil {
				return err
			}

			return a.runFileOp(cmd, args[0], envelope.DecryptedPath(args[0]), func(pm envelope.FileOption) (string, error) {
				return envelope.DecryptFile(args[0], priv, pm)
			})
		},
	}
	cmd.Flags().String("private-key", "", "Private key (PEM)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file without asking")
	_ = cmd.MarkFlagRequired("private-key")
	return cmd
}

func (a *app) runFileOp(cmd *cobra.Command, inPath, outPath string, op func(envelope.FileOption) (string, error)) error {
	if err := requireOverwrite(cmd, outPath); err != nil {
		return err
	}

	pm := a.progressManager(cmd)
	ctx := pm.SetupCancellation(cmd.Context())
	defer pm.Cleanup()

	var size int64
	if info, err := os.Stat(inPath); err == nil {
		size = info.Size()
	}
	a.log.WithFields(logrus.Fields{"in": inPath, "out": outPath, "size": size}).Info("processing file")

	written, err := op(envelope.WithProgress(pm))
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	ui.Success(cmd.OutOrStdout(), "Wrote %s (%s)", written, util.HumanReadableSize(size))
	return nil
}
