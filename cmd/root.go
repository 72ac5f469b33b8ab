/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/substantialcattle5/cipherdesk/internal/config"
	"github.com/substantialcattle5/cipherdesk/internal/logger"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: logger.Discard()}

	rootCmd := &cobra.Command{
		Use:   "cipherdesk",
		Short: "cipherdesk - encrypt files, text and images, and audit passwords",
		Long: `cipherdesk is a toolbox for everyday encryption tasks.

It seals files for an RSA public key, encrypts short messages and images
under a password with AES, ChaCha20 or Fernet, and analyzes password
strength including an anonymous breach lookup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Disable progress bars and reduce output")
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.cipherdesk.yaml)")

	rootCmd.AddCommand(
		newKeygenCmd(a),
		newFileCmd(a),
		newTextCmd(a),
		newImageCmd(a),
		newPasswordCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")

	a.log = logger.New(logger.Options{
		Verbose: verbose,
		Debug:   debug,
		Quiet:   quiet,
		Output:  cmd.ErrOrStderr(),
	})

	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.WithFields(logrus.Fields{"config": path}).Debug("configuration loaded")

	changed := logrus.Fields{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if strings.HasPrefix(f.Name, "password") || f.Name == "message" || f.Name == "token" {
			changed[f.Name] = "<redacted>"
			return
		}
		changed[f.Name] = f.Value.String()
	})
	a.log.WithFields(changed).Debug("flags set")
	return nil
}

func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
