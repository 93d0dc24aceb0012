// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/robotsgen/internal/checks"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/robots"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate, validate and write robots.txt",
		Long: `Builds robots.txt from the configured rules, validates it and writes it to
<output-dir>/<filename>. Under --strict any validation error aborts the write
with exit code 3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return configError(err)
			}
			if err := cfg.RequirePublicDir(); err != nil {
				return configError(err)
			}

			doc := robots.Build(cfg)
			a.log.Debug("robots.txt built",
				zap.String("site", cfg.SiteURL),
				zap.Int("disallow", len(cfg.Disallow)),
				zap.Int("allow", len(cfg.Allow)),
				zap.Int("sitemaps", len(cfg.Sitemaps)))

			return a.publish(cmd, cfg, target{
				kind:   checks.KindRobots,
				title:  "robots.txt",
				path:   cfg.OutputPath(),
				output: "robots-path",
				text:   doc.Text,
			})
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}
