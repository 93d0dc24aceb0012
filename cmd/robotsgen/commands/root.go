// SPDX-License-Identifier: AGPL-3.0-or-later

/*
robotsgen - generates and validates robots.txt, humans.txt and security.txt
for static sites, as a CLI and as a GitHub Action step.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
	"github.com/bartekus/robotsgen/internal/action"
	"github.com/bartekus/robotsgen/internal/artifact"
	"github.com/bartekus/robotsgen/internal/config"
)

// Options replaces the process environment in tests.
type Options struct {
	Env action.Env
	// Uploader defaults to artifact.FromEnv.
	Uploader artifact.Uploader
	// Logger defaults to a zap production logger honouring --debug.
	Logger *zap.Logger
	Now    func() time.Time
}

type app struct {
	opts     Options
	log      *zap.Logger
	uploader artifact.Uploader
}

// NewRootCmd constructs the robotsgen root Cobra command for the current process.
func NewRootCmd() *cobra.Command {
	return New(Options{Env: action.FromEnv()})
}

// New constructs the root command with explicit dependencies.
func New(opts Options) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &app{opts: opts, log: zap.NewNop(), uploader: opts.Uploader}
	if a.uploader == nil {
		a.uploader = artifact.FromEnv(opts.Env.InActions)
	}

	version := os.Getenv("ROBOTSGEN_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "robotsgen",
		Short: "robotsgen - robots.txt, humans.txt and security.txt for static sites",
		Long: `robotsgen builds robots.txt (and the humans.txt / security.txt companions) from
flags, INPUT_* environment variables or a YAML file, validates the result and
writes it into the built site. Inside GitHub Actions it also sets step outputs,
appends a job summary and stages the file as an artifact.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	// Global flags
	cmd.PersistentFlags().String(config.KeyConfigFile, "", "YAML config file")
	cmd.PersistentFlags().Bool(config.KeyDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(config.KeyStateDir, config.DefaultStateDir, "directory to store run state")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of robotsgen",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "robotsgen version %s\n", version)
		},
	})

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newHumansCmd(a))
	cmd.AddCommand(newSecurityCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newReportCmd(a))

	return cmd
}

func (a *app) initLogger(cmd *cobra.Command) error {
	if a.opts.Logger != nil {
		a.log = a.opts.Logger
		return nil
	}

	v, err := a.viper(cmd)
	if err != nil {
		return err
	}
	// RUNNER_DEBUG is set when a workflow is re-run with debug logging.
	debug := v.GetBool(config.KeyDebug) || os.Getenv("RUNNER_DEBUG") == "1"

	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// viper returns the configuration sources bound to cmd's flags.
func (a *app) viper(cmd *cobra.Command) (*viper.Viper, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return nil, clierr.WithCode(clierr.ExitConfig, err)
	}
	return v, nil
}

// configError maps configuration failures to the configuration exit code.
func configError(err error) error {
	if errors.Is(err, config.ErrInvalid) {
		return clierr.WithCode(clierr.ExitConfig, err)
	}
	return err
}
