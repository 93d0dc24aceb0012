// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/robots"
)

func newCheckCmd(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Show whether URL paths are disallowed by the configured rules",
		Long: `Evaluates each path against the Disallow rules (with Allow rules as
exceptions), taken from --disallow/--allow or from an existing robots.txt via
--from. The result is advisory; the exit code is always 0 unless the input is
invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOptional(v)
			if err != nil {
				return configError(err)
			}

			disallow, allow := cfg.Disallow, cfg.Allow
			if from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return clierr.Wrapf(clierr.ExitConfig, err, "reading %s", from)
				}
				lines := robots.ParseLines(string(data))
				disallow = robots.Values(lines, "disallow")
				allow = robots.Values(lines, "allow")
			}

			out := cmd.OutOrStdout()
			for _, p := range args {
				p = config.NormalizePath(p)
				verdict := "allowed"
				if robots.IsPathDisallowed(p, disallow) && !robots.IsPathDisallowed(p, allow) {
					verdict = "disallowed"
				}
				_, _ = fmt.Fprintf(out, "%-10s %s\n", verdict, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read rules from an existing robots.txt")
	cmd.Flags().String(config.KeyDisallow, "", "comma or newline separated Disallow paths")
	cmd.Flags().String(config.KeyAllow, "", "comma or newline separated Allow paths")
	return cmd
}
