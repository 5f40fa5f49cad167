package scan

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const src = `package sample

import "log"

type logger struct{}

func (logger) Infof(format string, args ...any) {}

type service struct{ logger logger }

func run(s service, args []any, name string) {
	log.Printf("Hello {}", 1)
	s.logger.Infof("Value: {0}, Again: {0}", 1, 2)
	Warnf(nil, "Need {}")
	s.logger.Infof("spread {}", args...)
	s.logger.Infof(name, 1)
	s.logger.Infof("concat " + "{0} {1}", 1, 2)
	other.Printf("ignored {}", 1)
}

func Warnf(ctx any, format string, args ...any) {}
`

func TestScanner_File(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "sample.go", src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	s := New([]Rule{
		{Name: "log.Printf"},
		{Name: "Infof"},
		{Name: "Warnf", FormatArg: 1},
	}, nil)

	got := s.File(f)
	want := []Site{
		{Rule: Rule{Name: "log.Printf"}, Callee: "log.Printf", Template: "Hello {}", ArgCount: 1},
		{Rule: Rule{Name: "Infof"}, Callee: "logger.Infof", Template: "Value: {0}, Again: {0}", ArgCount: 2},
		{Rule: Rule{Name: "Warnf", FormatArg: 1}, Callee: "Warnf", Template: "Need {}", ArgCount: 0},
		{Rule: Rule{Name: "Infof"}, Callee: "logger.Infof", Template: "spread {}", ArgCount: 1, Spread: true},
		{Rule: Rule{Name: "Infof"}, Callee: "logger.Infof", Template: "concat {0} {1}", ArgCount: 2},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Site{}, "Pos")); diff != "" {
		t.Errorf("File mismatch (-want +got):\n%s", diff)
	}
	for _, site := range got {
		if !site.Pos.IsValid() {
			t.Errorf("site %q has no position", site.Template)
		}
	}
}

func TestScanner_QualifiedBeatsBare(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "q.go", `package q
func f() { log.Infof("x", 1, "{}") ; zap.Infof("{}", 1) }`, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := New([]Rule{{Name: "Infof"}, {Name: "log.Infof", FormatArg: 2}}, nil)
	got := s.File(f)
	if len(got) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(got))
	}
	if got[0].Rule.Name != "log.Infof" || got[0].Template != "{}" || got[0].ArgCount != 0 {
		t.Errorf("log.Infof site = %+v", got[0])
	}
	if got[1].Rule.Name != "Infof" || got[1].ArgCount != 1 {
		t.Errorf("zap.Infof site = %+v", got[1])
	}
}

func TestScanner_FormatArgOutOfRange(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "r.go", `package r
func f() { log.Infov("Hello {}", 1); log.Warnv("{}") }`, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := New([]Rule{{Name: "Infov", FormatArg: -1}, {Name: "Warnv", FormatArg: 1}}, nil)
	if got := s.File(f); len(got) != 0 {
		t.Errorf("expected no sites for out-of-range format args, got %+v", got)
	}
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		expr string
		want string
		ok   bool
	}{
		{expr: `"plain"`, want: "plain", ok: true},
		{expr: "`raw {}`", want: "raw {}", ok: true},
		{expr: `("a" + "b") + "c"`, want: "abc", ok: true},
		{expr: `"a" + name`, ok: false},
		{expr: `42`, ok: false},
		{expr: `"a" - "b"`, ok: false},
	}
	for _, tt := range tests {
		e, err := parser.ParseExpr(tt.expr)
		if err != nil {
			t.Fatalf("ParseExpr(%s): %v", tt.expr, err)
		}
		got, ok := LiteralValue(e)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LiteralValue(%s) = %q, %v; want %q, %v", tt.expr, got, ok, tt.want, tt.ok)
		}
	}
}
