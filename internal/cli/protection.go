package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/claude-usage/internal/report"
)

func newProtectionCmd(e *env) *cobra.Command {
	var enable, disable bool

	cmd := &cobra.Command{
		Use:   "protection",
		Short: "Show or toggle protection mode",
		Long: `Show why protection mode is on or off, or switch it by hand.

A check can only turn protection mode on. --disable is the only way to
clear it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mon := e.mgr.Monitor()
			out := cmd.OutOrStdout()

			switch {
			case enable:
				if err := mon.EnableProtection(); err != nil {
					return err
				}
				fmt.Fprintln(out, "🛡️  Protection mode ENABLED")
			case disable:
				if err := mon.DisableProtection(); err != nil {
					return err
				}
				fmt.Fprintln(out, "✅ Protection mode DISABLED")
			default:
				fmt.Fprintln(out, report.ProtectionStatus(mon.Status(), e.mgr.ReportConfig(cmd.Context())))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "manually enable protection mode")
	cmd.Flags().BoolVar(&disable, "disable", false, "manually disable protection mode")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	return cmd
}
