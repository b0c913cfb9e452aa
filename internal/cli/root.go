// Package cli implements the claude-usage command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/j-veylop/claude-usage/internal/config"
	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/services"
	"github.com/j-veylop/claude-usage/internal/version"
)

// errReported marks an error whose message was already printed.
var errReported = errors.New("reported")

// env carries what every command needs once the configuration is loaded.
type env struct {
	cfg         *config.Config
	mgr         *services.Manager
	managerOpts []services.Option
}

func (e *env) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	e.cfg = cfg

	if err := logger.Init(cfg.LogFile, logger.ParseLevel(cfg.LogLevel)); err != nil {
		return err
	}

	e.mgr, err = services.NewManager(cfg, e.managerOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return nil
}

func (e *env) close() {
	if e.mgr != nil {
		if err := e.mgr.Close(); err != nil {
			logger.Warn("error closing services", "error", err)
		}
		e.mgr = nil
	}
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error closing log file: %v\n", err)
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "claude-usage",
		Short: "Claude API usage monitoring and cost tracking",
		Long: `claude-usage tracks weekly Claude API spend against a budget.

A check fetches the last seven days of cost and token usage from the
usage proxy, computes the week-to-date total and a linear projection,
raises alerts, and persists the result to a JSON state file. Every other
command renders that state file, so they work offline.

Protection mode turns on once weekly spend crosses the alert threshold
and stays on until it is disabled by hand.`,
		Version:           version.GetVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
	}

	root.AddCommand(
		newCheckCmd(e),
		newWeekCmd(e),
		newDailyCmd(e),
		newProtectionCmd(e),
		newReportCmd(e),
		newDetailCmd(e),
		newHistoryCmd(e),
		newWatchCmd(e),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	e := &env{}
	err := newRootCmd(e).Execute()
	e.close()

	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}
