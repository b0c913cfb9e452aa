// Package main is the entry point for claude-usage, a weekly Claude API
// spend tracker.
//
// Usage:
//
//	# Fetch the latest costs and update the state file (cron)
//	claude-usage check
//
//	# Render the stored state
//	claude-usage report -f html
//
//	# Live dashboard
//	claude-usage watch
package main

import (
	"os"

	"github.com/j-veylop/claude-usage/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
