package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/YakDriver/msgformat/filesystem"
	"github.com/YakDriver/msgformat/internal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate the effective msgformat configuration for a directory",
	Long: `This command prints the merged msgformat configuration that would apply
at the specified directory path and reports problems in it. It helps debug
layered config resolution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			internal.EnableDebugForce()
		}
		root, err := resolveBaseDir(baseDir)
		if err != nil {
			return err
		}

		absStartDir := startDir
		if absStartDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			absStartDir = cwd
		}
		absStartDir, err = filepath.Abs(absStartDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute startDir: %w", err)
		}

		relStartDir, err := filepath.Rel(root, absStartDir)
		if err != nil {
			return fmt.Errorf("failed to relativize startDir: %w", err)
		}
		if relStartDir == ".." || strings.HasPrefix(relStartDir, ".."+string(filepath.Separator)) {
			return fmt.Errorf("startDir must be inside baseDir")
		}

		out := cmd.OutOrStdout()
		internal.Debugf("loading configuration: start dir %s, base dir %s", absStartDir, root)

		cfg, err := internal.LoadConfig(filesystem.NewWrappedFS(root), filepath.ToSlash(relStartDir))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Fprintln(out, "Merged config:")
		fmt.Fprintln(out, string(convertConfigToHCL(cfg)))

		errs, warnings := internal.ValidateConfig(cfg)
		if len(warnings) > 0 {
			fmt.Fprintln(out, "Warnings:")
			for _, w := range warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
		}
		if len(errs) > 0 {
			fmt.Fprintln(out, "Errors:")
			for _, e := range errs {
				fmt.Fprintf(out, "  - %s\n", e)
			}
			return fmt.Errorf("config validation failed (%d error(s))", len(errs))
		}

		fmt.Fprintln(out, "Config loaded and validated successfully.")
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&startDir, "start-dir", "", "Directory whose effective configuration is shown (default is current directory)")
	configCmd.Flags().StringVar(&baseDir, "base-dir", "", "Base directory where config layering starts (default is current directory)")
	configCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable msgformat debug output")
	rootCmd.AddCommand(configCmd)
}

func convertConfigToHCL(cfg *internal.Config) []byte {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	if s := cfg.Settings; s != nil {
		b := body.AppendNewBlock("settings", nil).Body()
		if s.Debug {
			b.SetAttributeValue("debug", cty.True)
		}
		setString(b, "mismatch_severity", s.MismatchSeverity)
		setString(b, "structural_severity", s.StructuralSeverity)
		setString(b, "text", s.Text)
		setString(b, "log_level", s.LogLevel)
	}

	for _, c := range cfg.Calls {
		b := body.AppendNewBlock("call", []string{c.Name}).Body()
		if c.FormatArg != 0 {
			b.SetAttributeValue("format_arg", cty.NumberIntVal(int64(c.FormatArg)))
		}
		setString(b, "severity", c.Severity)
	}

	for _, m := range cfg.Messages {
		b := body.AppendNewBlock("message", []string{m.ID}).Body()
		b.SetAttributeValue("format", cty.StringVal(m.Format))
		if m.Args != nil {
			b.SetAttributeValue("args", cty.NumberIntVal(int64(*m.Args)))
		}
		setString(b, "severity", m.Severity)
	}

	return file.Bytes()
}

func setString(b *hclwrite.Body, name string, v *string) {
	if v != nil {
		b.SetAttributeValue(name, cty.StringVal(*v))
	}
}
