package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/claude-usage/internal/report"
)

func newCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fetch latest costs from the proxy and update state",
		Long: `Fetch the last seven days of costs from the usage proxy, recompute the
week's metrics and alerts, and save the new state. The state is printed as
JSON for piping. Meant to be run from cron or a heartbeat.

On failure the previous figures are kept, the error is recorded in the
state file, and the command exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := e.mgr.Monitor().Check(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ Check failed: %v\n", err)
				return errReported
			}

			out, err := report.JSON(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
