// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/robotsgen/internal/checks"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/humans"
)

func newHumansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "humans",
		Short: "Generate humans.txt from the humans block of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOptional(v)
			if err != nil {
				return configError(err)
			}
			if cfg.ConfigFile == "" {
				return configError(fmt.Errorf("%w: humans needs --%s pointing at a file with a humans block", config.ErrInvalid, config.KeyConfigFile))
			}
			if err := cfg.RequirePublicDir(); err != nil {
				return configError(err)
			}

			doc, err := humans.LoadDocument(cfg.ConfigFile)
			if err != nil {
				return configError(fmt.Errorf("%w: %v", config.ErrInvalid, err))
			}

			return a.publish(cmd, cfg, target{
				kind:   checks.KindHumans,
				title:  humans.Filename,
				path:   filepath.Join(cfg.OutputDir, humans.Filename),
				output: "humans-path",
				text:   humans.Build(doc, a.opts.Now()),
			})
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}
