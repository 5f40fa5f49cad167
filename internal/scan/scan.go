// Package scan finds calls in Go source whose arguments carry a
// message-format template.
package scan

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// Rule describes one function or method taking a template.
type Rule struct {
	Name      string // "Infof" matches any receiver, "log.Infof" only the log qualifier
	FormatArg int    // index of the template argument
}

// Site is a call matched by a rule with a constant template.
type Site struct {
	Pos      token.Pos
	Rule     Rule
	Callee   string // qualified name as written, e.g. "log.Infof"
	Template string
	ArgCount int  // arguments after the template
	Spread   bool // call ends in args..., count is unknown
}

// ConstFunc resolves an expression to a constant string. It returns false
// when the expression is not a string constant.
type ConstFunc func(ast.Expr) (string, bool)

// Scanner matches calls against a rule set.
type Scanner struct {
	rules map[string][]Rule
	value ConstFunc
}

// New builds a scanner. A nil value func falls back to folding string
// literals and their concatenations.
func New(rules []Rule, value ConstFunc) *Scanner {
	s := &Scanner{
		rules: make(map[string][]Rule),
		value: value,
	}
	if s.value == nil {
		s.value = LiteralValue
	}
	for _, r := range rules {
		name := r.Name
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		s.rules[name] = append(s.rules[name], r)
	}
	return s
}

// File returns the template call sites in f, in source order.
func (s *Scanner) File(f *ast.File) []Site {
	var sites []Site
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if site, ok := s.match(call); ok {
			sites = append(sites, site)
		}
		return true
	})
	return sites
}

func (s *Scanner) match(call *ast.CallExpr) (Site, bool) {
	qualifier, name := callee(call.Fun)
	if name == "" {
		return Site{}, false
	}
	rule, ok := s.lookup(qualifier, name)
	if !ok || rule.FormatArg < 0 || rule.FormatArg >= len(call.Args) {
		return Site{}, false
	}

	tmpl, ok := s.value(call.Args[rule.FormatArg])
	if !ok {
		return Site{}, false
	}

	qualified := name
	if qualifier != "" {
		qualified = qualifier + "." + name
	}
	site := Site{
		Pos:      call.Args[rule.FormatArg].Pos(),
		Rule:     rule,
		Callee:   qualified,
		Template: tmpl,
		ArgCount: len(call.Args) - rule.FormatArg - 1,
		Spread:   call.Ellipsis.IsValid(),
	}
	return site, true
}

// lookup prefers a qualified rule over a bare one.
func (s *Scanner) lookup(qualifier, name string) (Rule, bool) {
	var bare *Rule
	for i, r := range s.rules[name] {
		if r.Name == name {
			bare = &s.rules[name][i]
			continue
		}
		if qualifier != "" && r.Name == qualifier+"."+name {
			return r, true
		}
	}
	if bare != nil {
		return *bare, true
	}
	return Rule{}, false
}

// callee splits a call target into its last qualifier and name:
// log.Infof -> ("log", "Infof"), s.logger.Infof -> ("logger", "Infof").
func callee(fun ast.Expr) (qualifier, name string) {
	switch fn := fun.(type) {
	case *ast.Ident:
		return "", fn.Name
	case *ast.SelectorExpr:
		switch x := fn.X.(type) {
		case *ast.Ident:
			return x.Name, fn.Sel.Name
		case *ast.SelectorExpr:
			return x.Sel.Name, fn.Sel.Name
		case *ast.CallExpr:
			// chained calls like log.With(...).Infof
			_, inner := callee(x.Fun)
			return inner, fn.Sel.Name
		default:
			return "", fn.Sel.Name
		}
	case *ast.IndexExpr:
		return callee(fn.X)
	}
	return "", ""
}

// LiteralValue folds string literals, parentheses and + concatenation.
func LiteralValue(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(e.Value)
		if err != nil {
			return "", false
		}
		return s, true
	case *ast.ParenExpr:
		return LiteralValue(e.X)
	case *ast.BinaryExpr:
		if e.Op != token.ADD {
			return "", false
		}
		l, ok := LiteralValue(e.X)
		if !ok {
			return "", false
		}
		r, ok := LiteralValue(e.Y)
		if !ok {
			return "", false
		}
		return l + r, true
	}
	return "", false
}
