// Package analyzer exposes msgformat as a go/analysis pass, so template
// checks run inside vet-style drivers and editors.
package analyzer

import (
	"fmt"
	"go/ast"
	"go/constant"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/YakDriver/msgformat/internal/format"
	"github.com/YakDriver/msgformat/internal/lint"
	"github.com/YakDriver/msgformat/internal/scan"
)

const doc = `check message-format templates against their call arguments

The msgformat analyzer finds calls to configured logging or i18n functions
whose template argument is a string constant, such as

	log.Infov("Hello {}", name)

and reports templates with unpaired braces or with a placeholder count that
differs from the number of arguments passed.`

// Analyzer reports invalid message-format templates.
var Analyzer = &analysis.Analyzer{
	Name: "msgformat",
	Doc:  doc,
	Run:  run,
}

var funcs string

func init() {
	Analyzer.Flags.StringVar(&funcs, "funcs", defaultFuncs(),
		"comma-separated list of name[:formatArg] entries, e.g. Infov,i18n.T:1")
}

func defaultFuncs() string {
	names := make([]string, 0, len(lint.DefaultRules))
	for _, r := range lint.DefaultRules {
		names = append(names, r.Name)
	}
	return strings.Join(names, ",")
}

// ParseFuncs parses the -funcs flag value into scan rules.
func ParseFuncs(value string) ([]scan.Rule, error) {
	var rules []scan.Rule
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, argStr, hasArg := strings.Cut(entry, ":")
		rule := scan.Rule{Name: name}
		if hasArg {
			n, err := strconv.Atoi(argStr)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid format argument index in %q", entry)
			}
			rule.FormatArg = n
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func run(pass *analysis.Pass) (any, error) {
	rules, err := ParseFuncs(funcs)
	if err != nil {
		return nil, err
	}

	s := scan.New(rules, func(e ast.Expr) (string, bool) {
		tv, ok := pass.TypesInfo.Types[e]
		if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
			return "", false
		}
		return constant.StringVal(tv.Value), true
	})

	for _, f := range pass.Files {
		for _, site := range s.File(f) {
			var res format.Result
			if site.Spread {
				res = format.Validate(site.Template)
			} else {
				res = format.ValidateCount(site.Template, site.ArgCount)
			}
			if !res.Valid {
				pass.Reportf(site.Pos, "%s", res.Summary)
			}
		}
	}
	return nil, nil
}
