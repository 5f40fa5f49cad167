package lint

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/YakDriver/msgformat/filesystem"
	"github.com/YakDriver/msgformat/internal"
)

func testFS(files map[string]string) filesystem.FileSystem {
	m := fstest.MapFS{}
	for name, data := range files {
		m[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return &filesystem.WrappedFS{FS: m}
}

const mainSrc = `package main

func main() {
	log.Infov("Hello {}", "world")
	log.Infov("Hello {}")
	log.Warnv("Value: {0}, Again: {0}", 1)
	log.Errorv("Unterminated {value", 1)
	log.Debugv("spread {} {}", args...)
	log.Infof("printf %s is not checked {}", 1)
}
`

func TestRun_DefaultRules(t *testing.T) {
	fsys := testFS(map[string]string{"main.go": mainSrc})

	report, err := Run(context.Background(), Options{FS: fsys})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []Finding{
		{
			File:     "main.go",
			Line:     5,
			Callee:   "log.Infov",
			Severity: "error",
			Kind:     "argument_count",
			Template: "Hello {}",
			Summary:  "Invalid parameter count. Required: 1 provided 0 for format 'Hello {}'.",
			Detail:   "Required 1 parameters, but 0 were provided for format Hello {}.",
			Text:     "Invalid parameter count. Required: 1 provided 0 for format 'Hello {}'.",
		},
		{
			File:     "main.go",
			Line:     7,
			Callee:   "log.Errorv",
			Severity: "error",
			Kind:     "structural",
			Template: "Unterminated {value",
			Summary:  "Format Unterminated {value appears to be missing an ending bracket.",
			Detail:   "Format Unterminated {value appears to be missing an ending bracket.",
			Text:     "Format Unterminated {value appears to be missing an ending bracket.",
		},
	}
	if diff := cmp.Diff(want, report.Findings, cmpopts.IgnoreFields(Finding{}, "Column")); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
	if report.Files != 1 || report.Sites != 5 || report.Skipped != 1 {
		t.Errorf("report stats = files %d, sites %d, skipped %d", report.Files, report.Sites, report.Skipped)
	}
	if !report.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestRun_ConfiguredCallsAndSeverity(t *testing.T) {
	fsys := testFS(map[string]string{
		"msgformat.hcl": `
settings {
  mismatch_severity = "warn"
  text              = "detail"
}
call "i18n.T" {
  format_arg = 1
}
call "Fatal" {
  severity = "error"
}
`,
		"svc/svc.go": `package svc

func f() {
	i18n.T(ctx, "{0} of {1}", 1)
	Fatal("{}")
	log.Infov("{}")
}
`,
		"svc/vendor/dep/dep.go": "package dep\nfunc g() { Fatal(\"{}\") }\n",
		"svc/testdata/bad.go":   "this is not go",
		"svc/.hidden/hidden.go": "this is not go either",
	})

	report, err := Run(context.Background(), Options{FS: fsys, Dirs: []string{"svc"}, Jobs: 2})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", report.Findings)
	}
	if f := report.Findings[0]; f.Callee != "i18n.T" || f.Severity != internal.SeverityWarn || f.Text != f.Detail {
		t.Errorf("i18n.T finding = %+v", f)
	}
	if f := report.Findings[1]; f.Callee != "Fatal" || f.Severity != internal.SeverityError {
		t.Errorf("Fatal finding = %+v", f)
	}
	if report.Files != 1 {
		t.Errorf("expected vendor, testdata and hidden dirs to be skipped, files = %d", report.Files)
	}
}

func TestRun_Catalog(t *testing.T) {
	fsys := testFS(map[string]string{
		"msgformat.hcl": `
message "greeting" {
  format = "Hello {}"
  args   = 1
}
message "farewell" {
  format = "Bye {0} {1}"
  args   = 1
}
message "broken" {
  format   = "Oops {"
  severity = "warn"
}
`,
		"a/a.go": "package a\n",
		"b/b.go": "package b\n",
	})

	report, err := Run(context.Background(), Options{FS: fsys, Dirs: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Findings) != 2 {
		t.Fatalf("expected catalog findings once each, got %+v", report.Findings)
	}
	if f := report.Findings[0]; f.Message != "broken" || f.Kind != "structural" || f.Severity != "warn" {
		t.Errorf("first finding = %+v", f)
	}
	if f := report.Findings[1]; f.Message != "farewell" || f.Kind != "argument_count" {
		t.Errorf("second finding = %+v", f)
	}
	if got := report.Findings[1].Location(); got != "message farewell" {
		t.Errorf("Location = %q", got)
	}
}

func TestRun_ParseError(t *testing.T) {
	fsys := testFS(map[string]string{"bad.go": "package bad\nfunc {"})
	report, err := Run(context.Background(), Options{FS: fsys})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Findings) != 1 || report.Findings[0].Kind != KindParse {
		t.Fatalf("expected one parse finding, got %+v", report.Findings)
	}
}

func TestRun_BadConfig(t *testing.T) {
	fsys := testFS(map[string]string{
		"msgformat.hcl": `call "x" {`,
		"a.go":          "package a\n",
	})
	if _, err := Run(context.Background(), Options{FS: fsys}); err == nil {
		t.Fatal("expected config error")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "negative format arg",
			config:  "call \"Infov\" {\n  format_arg = -1\n}\n",
			wantErr: "negative format_arg -1",
		},
		{
			name:    "unknown call severity",
			config:  "call \"Infov\" {\n  severity = \"fatal\"\n}\n",
			wantErr: "severity must be 'error' or 'warn'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testFS(map[string]string{
				"msgformat.hcl": tt.config,
				"main.go":       "package main\n\nfunc main() {\n\tlog.Infov(\"Hello {}\", 1)\n}\n",
			})
			_, err := Run(context.Background(), Options{FS: fsys})
			if err == nil {
				t.Fatal("expected a config error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRun_DuplicateCallLastWins(t *testing.T) {
	fsys := testFS(map[string]string{
		"msgformat.hcl": `
call "Infov" {
  severity = "error"
}

call "Infov" {
  severity = "warn"
}
`,
		"main.go": "package main\n\nfunc main() {\n\tlog.Infov(\"Hello {}\")\n}\n",
	})

	report, err := Run(context.Background(), Options{FS: fsys})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", report.Findings)
	}
	if got := report.Findings[0].Severity; got != internal.SeverityWarn {
		t.Errorf("severity = %q, want the later declaration's %q", got, internal.SeverityWarn)
	}
	if report.HasErrors() {
		t.Error("a warn finding should not count as an error")
	}
}

func TestRun_Logger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := internal.SetupLogger(&internal.LoggingConfig{LogLevel: "debug", Output: buf})
	fsys := testFS(map[string]string{"main.go": mainSrc})
	if _, err := Run(context.Background(), Options{FS: fsys, Logger: logger}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[INFO] checking 1 Go files") {
		t.Errorf("missing progress log in %q", out)
	}
	if !strings.Contains(out, "[DEBUG] main.go:5:") {
		t.Errorf("missing finding log in %q", out)
	}
}
