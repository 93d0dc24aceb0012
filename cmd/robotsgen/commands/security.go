// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/robotsgen/internal/checks"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/securitytxt"
)

func newSecurityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Generate .well-known/security.txt (RFC 9116) from the security block of the config file",
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
				return configError(fmt.Errorf("%w: security needs --%s pointing at a file with a security block", config.ErrInvalid, config.KeyConfigFile))
			}
			if err := cfg.RequirePublicDir(); err != nil {
				return configError(err)
			}

			doc, err := securitytxt.LoadDocument(cfg.ConfigFile)
			if err != nil {
				return configError(fmt.Errorf("%w: %v", config.ErrInvalid, err))
			}

			return a.publish(cmd, cfg, target{
				kind:   checks.KindSecurity,
				title:  "security.txt",
				path:   filepath.Join(cfg.OutputDir, filepath.FromSlash(securitytxt.WellKnownPath)),
				output: "security-path",
				text:   securitytxt.Build(doc, cfg.SiteURL, a.opts.Now(), cfg.Comments),
			})
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}
