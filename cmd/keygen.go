/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cipherdesk/internal/encryption/keys"
	"github.com/substantialcattle5/cipherdesk/internal/ui"
)

func newKeygenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair for file encryption",
		Long: `Generate an RSA key pair and write it as PEM files.

The private key is written as unencrypted PKCS#8 with mode 0600, the public
key as SubjectPublicKeyInfo with mode 0644. When --out does not end in .pem,
_private.pem and _public.pem are appended.

Examples:
  cipherdesk keygen --out ~/.keys/alice
  cipherdesk keygen --out alice --bits 3072`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			bits, _ := cmd.Flags().GetInt("bits")
			if bits == 0 {
				bits = a.cfg.RSA.KeyBits
			}

			privPath, pubPath := keys.PrivateKeyPath(out), keys.PublicKeyPath(out)
			for _, p := range []string{privPath, pubPath} {
				if err := requireOverwrite(cmd, p); err != nil {
					return err
				}
			}

			a.log.WithFields(logrus.Fields{"bits": bits}).Info("generating RSA key pair")
			kp, err := keys.GenerateKeyPair(bits)
			if err != nil {
				return err
			}

			privPath, pubPath, err = keys.SaveKeyPair(kp, out, out)
			if err != nil {
				return err
			}
			fingerprint, err := keys.Fingerprint(kp.Public)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			ui.Success(w, "Private key: %s", privPath)
			ui.Success(w, "Public key:  %s", pubPath)
			fmt.Fprintf(w, "Fingerprint: SHA256:%s\n", fingerprint)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "cipherdesk", "Base path for the key files")
	cmd.Flags().Int("bits", 0, "RSA modulus size in bits (default from config, 4096)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files without asking")
	return cmd
}
