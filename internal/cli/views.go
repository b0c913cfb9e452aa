package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/claude-usage/internal/report"
)

const (
	defaultDays         = 7
	defaultHistoryLimit = 10
)

func newWeekCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show current week stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Store().Load()
			fmt.Fprintln(cmd.OutOrStdout(), report.WeekSummary(st, e.mgr.ReportConfig(cmd.Context())))
			return nil
		},
	}
}

func newDailyCmd(e *env) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show daily breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Store().Load()
			fmt.Fprintln(cmd.OutOrStdout(), report.DailyBreakdown(st, e.mgr.ReportConfig(cmd.Context())))
			return nil
		},
	}

	// The state only ever holds the last seven days.
	cmd.Flags().IntVarP(&days, "days", "d", defaultDays, "number of days to show")
	return cmd
}

func newReportCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate formatted usage report",
		Long: `Render the full usage report from the state file.

Formats:
  text  styled terminal report (default)
  json  the raw state record
  html  an HTML fragment suitable for email

Unknown formats fall back to text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Store().Load()
			out, err := report.Render(st, e.mgr.ReportConfig(cmd.Context()), report.ParseFormat(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format: text, json, html")
	return cmd
}

func newDetailCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "detail",
		Short: "Show 7-day detail with tokens and cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Store().Load()
			fmt.Fprintln(cmd.OutOrStdout(), report.SevenDaysDetail(st, e.mgr.ReportConfig(cmd.Context())))
			return nil
		},
	}
}

func newHistoryCmd(e *env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			runs, err := e.mgr.Database().GetRecentCheckRuns(limit)
			if err != nil {
				return fmt.Errorf("failed to read check history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.History(runs, e.mgr.ReportConfig(cmd.Context())))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of runs to show")
	return cmd
}
