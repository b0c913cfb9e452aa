package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/claude-usage/internal/app"
	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/state"
)

func newWatchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open the live usage dashboard",
		Long: `Open a full-screen dashboard over the state file. It reloads whenever
the file changes, so a cron-driven check shows up immediately.

Keys:
  1-4, Tab     switch between Report, Daily, Detail and History
  r            run a check now
  p            toggle protection mode
  ?            toggle help
  q, Ctrl+C    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := state.Watch(e.mgr.Store())
			if err != nil {
				return fmt.Errorf("failed to watch state file: %w", err)
			}
			defer func() {
				if closeErr := w.Close(); closeErr != nil {
					logger.Warn("failed to close state watcher", "error", closeErr)
				}
			}()

			model := app.NewModel(app.Options{
				Store:   e.mgr.Store(),
				Events:  w.Events(),
				Checker: e.mgr.Monitor(),
				History: e.mgr.Database(),
				Report:  e.mgr.ReportConfig(cmd.Context()),
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			p := tea.NewProgram(model, tea.WithAltScreen())

			go func() {
				if _, ok := <-sigChan; ok {
					p.Send(tea.Quit())
				}
			}()

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
