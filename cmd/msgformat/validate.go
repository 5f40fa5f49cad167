package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YakDriver/msgformat"
)

var argCount int
var noArgs bool
var showDetail bool

func init() {
	validateCmd.Flags().IntVar(&argCount, "args", -1, "Number of arguments supplied with the template (default: no count check)")
	validateCmd.Flags().BoolVar(&noArgs, "no-args", false, "Treat the template as called with no argument list at all")
	validateCmd.Flags().BoolVar(&showDetail, "detail", false, "Print the detail text instead of the summary")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Validate a single message-format template",
	Long: `Validate a template's braces and, with --args or --no-args, check the
number of arguments it references against what a caller would supply.

Example:
  msgformat validate "Hello {}, you are {1}" --args 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if noArgs && argCount >= 0 {
			return fmt.Errorf("--args and --no-args cannot be used together")
		}

		template := args[0]
		var res msgformat.Result
		switch {
		case noArgs:
			res = msgformat.ValidateArgs(template, nil)
		case argCount >= 0:
			res = msgformat.ValidateCount(template, argCount)
		default:
			res = msgformat.Validate(template)
		}

		out := cmd.OutOrStdout()
		if res.Valid {
			fmt.Fprintf(out, "valid: references %d argument(s)\n", res.ArgumentCount)
			return nil
		}

		text := res.Summary
		if showDetail {
			text = res.Detail
		}
		fmt.Fprintf(out, "invalid (%s): %s\n", res.Kind, text)
		return fmt.Errorf("template is invalid")
	},
}
