// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/report"
	"github.com/bartekus/robotsgen/internal/runner"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		reset  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the result of the last generate or validate run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.viper(cmd)
			if err != nil {
				return err
			}
			store := runner.NewStateStore(v.GetString(config.KeyStateDir))
			out := cmd.OutOrStdout()

			if reset {
				return store.Reset()
			}

			last, err := store.ReadLastRun()
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(last)
			}

			if last == nil {
				_, _ = fmt.Fprintln(out, "No run state found.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "Run:    %s\n", last.ID)
			_, _ = fmt.Fprintf(out, "Kind:   %s\n", last.Kind)
			_, _ = fmt.Fprintf(out, "File:   %s (%d bytes, written: %t)\n", last.File, last.Size, last.Written)
			_, _ = fmt.Fprintf(out, "Status: %s\n", last.Status)
			report.Console(out, last.File, runner.Report{Findings: last.Findings})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results in JSON")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear run state")
	return cmd
}
