// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
	"github.com/bartekus/robotsgen/internal/checks"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/report"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		kind       string
		only       []string
		listChecks bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an existing robots.txt, humans.txt or security.txt",
		Long: `Runs the checks for one document kind against an existing file. The kind is
taken from --kind or guessed from the file name. --check limits the run to the
given check IDs; --list-checks prints them. Nothing is written; under --strict
any error exits with code 3.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if listChecks {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			if kind == "" {
				guessed, ok := checks.KindOf(path)
				if !ok {
					return clierr.Newf(clierr.ExitConfig, "cannot tell the kind of %q; pass --kind robots|humans|security", path)
				}
				kind = guessed
			}

			if listChecks {
				r, err := a.runnerFor(kind)
				if err != nil {
					return err
				}
				for _, id := range r.Checks() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			v, err := a.viper(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOptional(v)
			if err != nil {
				return configError(err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return clierr.Wrapf(clierr.ExitConfig, err, "reading %s", path)
			}

			rep, err := a.validate(cmd.Context(), cfg, kind, string(data), only)
			if err != nil {
				return err
			}
			a.show(cmd.OutOrStdout(), path, rep)
			a.record(cfg, kind, path, len(data), false, rep)

			if cfg.Strict && rep.HasErrors() {
				return clierr.Newf(clierr.ExitValidation, "%s failed strict validation: %s", path, report.Counts(rep))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", fmt.Sprintf("document kind: %s, %s or %s", checks.KindRobots, checks.KindHumans, checks.KindSecurity))
	cmd.Flags().StringSliceVar(&only, "check", nil, "run only these check IDs (repeatable or comma separated)")
	cmd.Flags().BoolVar(&listChecks, "list-checks", false, "print the check IDs for the kind and exit")
	cmd.Flags().String(config.KeySiteURL, "", "site URL, enables the sitemap and canonical cross-checks")
	cmd.Flags().String(config.KeyPublicDir, config.DefaultPublicDir, "directory holding the built site")
	config.RegisterValidationFlags(cmd.Flags())
	return cmd
}
