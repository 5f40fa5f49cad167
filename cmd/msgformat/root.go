package main

import (
	"os"

	"github.com/spf13/cobra"
)

var startDir string
var baseDir string
var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "msgformat",
	Short: "msgformat checks message-format templates against their arguments.",
	Long: `msgformat is a CLI for validating {}-style and {0}-style message templates,
both on their own and at the call sites in Go source that pass them arguments.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
