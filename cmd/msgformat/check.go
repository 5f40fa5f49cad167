package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/YakDriver/msgformat/filesystem"
	"github.com/YakDriver/msgformat/internal"
	"github.com/YakDriver/msgformat/internal/lint"
)

var outputFormat string
var colorMode string
var jobs int

func init() {
	checkCmd.Flags().StringVar(&baseDir, "base-dir", "", "Root of the tree to check; config files are layered from here down (default: current directory)")
	checkCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text|json)")
	checkCmd.Flags().StringVar(&colorMode, "color", "auto", "Colorize text output (auto|always|never)")
	checkCmd.Flags().IntVar(&jobs, "jobs", 0, "Max parallel file workers (0=auto)")
	checkCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable msgformat debug output")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [dirs...]",
	Short: "Check the templates used in Go source and message catalogs",
	Long: `Check walks the given directories (default: the base directory), finds calls
to the configured template functions and validates each constant template
against the arguments passed with it. Message blocks in msgformat.hcl files
are checked too.

The command exits non-zero when any finding has error severity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "text" && outputFormat != "json" {
			return fmt.Errorf("unknown --format %q (want text or json)", outputFormat)
		}
		if err := configureColor(colorMode); err != nil {
			return err
		}
		if debugFlag {
			internal.EnableDebugForce()
		}

		root, err := resolveBaseDir(baseDir)
		if err != nil {
			return err
		}
		dirs, err := relativeDirs(root, args)
		if err != nil {
			return err
		}

		fsys := filesystem.NewWrappedFS(root)
		rootCfg, err := internal.LoadConfig(fsys, ".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := rootCfg.LogLevel()
		if debugFlag {
			level = "debug"
		}
		internal.SetGlobalLogger(internal.SetupLogger(&internal.LoggingConfig{LogLevel: level, Output: cmd.ErrOrStderr()}))

		report, err := lint.Run(cmd.Context(), lint.Options{
			FS:   fsys,
			Dirs: dirs,
			Jobs: jobs,
		})
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if outputFormat == "json" {
			if err := writeJSON(out, report); err != nil {
				return err
			}
		} else {
			writeText(out, report)
		}

		if report.HasErrors() {
			return fmt.Errorf("template errors found")
		}
		return nil
	},
}

func resolveBaseDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute base dir: %w", err)
	}
	return abs, nil
}

// relativeDirs converts directory arguments into slash paths relative to
// root, as the lint runner expects.
func relativeDirs(root string, args []string) ([]string, error) {
	var dirs []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", arg, err)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", arg, err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is outside the base dir %s", arg, root)
		}
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	return dirs, nil
}

func writeJSON(w io.Writer, report *lint.Report) error {
	if report.Findings == nil {
		report.Findings = []lint.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	dimColor   = color.New(color.Faint)
)

func configureColor(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	default:
		return fmt.Errorf("unknown --color %q (want auto, always or never)", mode)
	}
	return nil
}

func writeText(w io.Writer, report *lint.Report) {
	for _, f := range report.Findings {
		sev := warnColor.Sprint(f.Severity)
		if f.Severity == internal.SeverityError {
			sev = errorColor.Sprint(f.Severity)
		}
		fmt.Fprintf(w, "%s: %s: %s %s\n", f.Location(), sev, f.Text, dimColor.Sprintf("[%s]", f.Kind))
	}
	fmt.Fprintf(w, "%d file(s), %d call site(s), %d finding(s)", report.Files, report.Sites, len(report.Findings))
	if report.Skipped > 0 {
		fmt.Fprintf(w, ", %d spread call(s) checked for braces only", report.Skipped)
	}
	fmt.Fprintln(w)
}
