// Package lint walks Go sources and message catalogs and validates every
// template it finds.
package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/YakDriver/msgformat/filesystem"
	"github.com/YakDriver/msgformat/internal"
	"github.com/YakDriver/msgformat/internal/format"
	"github.com/YakDriver/msgformat/internal/scan"
)

// KindParse marks a Go file that could not be parsed.
const KindParse = "parse_error"

// DefaultRules are used for directories whose config declares no calls.
// The "v" suffix follows the convention of loggers that take {}-style
// templates, leaving the "f" suffix to printf verbs.
var DefaultRules = []scan.Rule{
	{Name: "Tracev"},
	{Name: "Debugv"},
	{Name: "Infov"},
	{Name: "Warnv"},
	{Name: "Errorv"},
	{Name: "Fatalv"},
}

// Finding is one failed template.
type Finding struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Callee   string `json:"callee,omitempty"`
	Message  string `json:"message,omitempty"` // catalog id, for catalog findings
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Template string `json:"template,omitempty"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail,omitempty"`
	Text     string `json:"text"` // summary or detail, as configured
}

// Location renders the finding position as file:line:col.
func (f Finding) Location() string {
	switch {
	case f.File == "":
		return "message " + f.Message
	case f.Line == 0:
		return f.File
	default:
		return fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column)
	}
}

// Report aggregates a run.
type Report struct {
	Findings []Finding `json:"findings"`
	Files    int       `json:"files"`
	Sites    int       `json:"sites"`
	Skipped  int       `json:"skipped"` // spread calls whose count is unknown
}

// HasErrors reports whether any finding has error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == internal.SeverityError {
			return true
		}
	}
	return false
}

// Options configures Run.
type Options struct {
	FS     filesystem.FileSystem
	Dirs   []string        // relative to the FS root; empty means "."
	Jobs   int             // parallel file workers; 0 means GOMAXPROCS
	Logger internal.Logger // nil means the global logger
}

type fileResult struct {
	findings []Finding
	sites    int
	skipped  int
}

// Run checks every Go file under opts.Dirs and the message catalogs of the
// configs that apply to them.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.FS == nil {
		return nil, fmt.Errorf("lint: no filesystem")
	}
	if len(opts.Dirs) == 0 {
		opts.Dirs = []string{"."}
	}
	if opts.Logger == nil {
		opts.Logger = internal.GetGlobalLogger()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files, err := listGoFiles(opts.FS, opts.Dirs)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("checking %d Go files", len(files))

	l := &linter{fsys: opts.FS, fset: token.NewFileSet(), configs: map[string]*configEntry{}}
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := l.checkFile(file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: len(files)}
	for _, res := range results {
		report.Findings = append(report.Findings, res.findings...)
		report.Sites += res.sites
		report.Skipped += res.skipped
	}

	catalog, err := l.checkCatalogs(opts.Dirs)
	if err != nil {
		return nil, err
	}
	report.Findings = append(report.Findings, catalog...)

	sortFindings(report.Findings)
	for _, f := range report.Findings {
		opts.Logger.Debug("%s: %s", f.Location(), f.Summary)
	}
	opts.Logger.Info("%d findings in %d call sites (%d skipped)", len(report.Findings), report.Sites, report.Skipped)
	return report, nil
}

type configEntry struct {
	once  sync.Once
	cfg   *internal.Config
	rules []scan.Rule
	err   error
}

type linter struct {
	fsys filesystem.FileSystem
	fset *token.FileSet

	mu      sync.Mutex
	configs map[string]*configEntry
}

// config loads the merged config for dir once, even under concurrent use.
func (l *linter) config(dir string) (*configEntry, error) {
	l.mu.Lock()
	e, ok := l.configs[dir]
	if !ok {
		e = &configEntry{}
		l.configs[dir] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		e.cfg, e.err = internal.LoadConfig(l.fsys, dir)
		if e.err != nil {
			e.err = fmt.Errorf("loading config for %s: %w", dir, e.err)
			return
		}
		if errs, _ := internal.ValidateConfig(e.cfg); len(errs) > 0 {
			e.err = fmt.Errorf("invalid config for %s: %w", dir, errors.Join(errs...))
			return
		}
		e.rules = rulesFor(e.cfg)
	})
	return e, e.err
}

func rulesFor(cfg *internal.Config) []scan.Rule {
	if len(cfg.Calls) == 0 {
		return DefaultRules
	}
	rules := make([]scan.Rule, 0, len(cfg.Calls))
	for _, c := range cfg.Calls {
		rules = append(rules, scan.Rule{Name: c.Name, FormatArg: c.FormatArg})
	}
	return rules
}

func callFor(cfg *internal.Config, name string) *internal.Call {
	for i := range cfg.Calls {
		if cfg.Calls[i].Name == name {
			return &cfg.Calls[i]
		}
	}
	return nil
}

func (l *linter) checkFile(file string) (fileResult, error) {
	entry, err := l.config(path.Dir(file))
	if err != nil {
		return fileResult{}, err
	}
	src, err := l.fsys.ReadFile(file)
	if err != nil {
		return fileResult{}, fmt.Errorf("reading %s: %w", file, err)
	}

	f, err := parser.ParseFile(l.fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		internal.Debugf("parse %s: %v", file, err)
		return fileResult{findings: []Finding{{
			File:     file,
			Severity: internal.SeverityError,
			Kind:     KindParse,
			Summary:  err.Error(),
			Text:     err.Error(),
		}}}, nil
	}

	var res fileResult
	for _, site := range scan.New(entry.rules, nil).File(f) {
		res.sites++
		if site.Spread {
			res.skipped++
			if r := format.Validate(site.Template); !r.Valid {
				res.findings = append(res.findings, l.finding(entry.cfg, file, site, r))
			}
			continue
		}
		if r := format.ValidateCount(site.Template, site.ArgCount); !r.Valid {
			res.findings = append(res.findings, l.finding(entry.cfg, file, site, r))
		}
	}
	return res, nil
}

func (l *linter) finding(cfg *internal.Config, file string, site scan.Site, r format.Result) Finding {
	var override *string
	if c := callFor(cfg, site.Rule.Name); c != nil {
		override = c.Severity
	}
	pos := l.fset.Position(site.Pos)
	return Finding{
		File:     file,
		Line:     pos.Line,
		Column:   pos.Column,
		Callee:   site.Callee,
		Severity: cfg.SeverityFor(r.Kind, override),
		Kind:     r.Kind.String(),
		Template: site.Template,
		Summary:  r.Summary,
		Detail:   r.Detail,
		Text:     chooseText(cfg, r),
	}
}

// checkCatalogs validates the message blocks of each root directory's
// config. A message inherited by several roots is reported once.
func (l *linter) checkCatalogs(dirs []string) ([]Finding, error) {
	var findings []Finding
	seen := make(map[string]struct{})
	for _, dir := range dirs {
		entry, err := l.config(path.Clean(dir))
		if err != nil {
			return nil, err
		}
		for _, m := range entry.cfg.Messages {
			key := m.ID + "\x00" + m.Format
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			var r format.Result
			if m.Args != nil {
				r = format.ValidateCount(m.Format, *m.Args)
			} else {
				r = format.Validate(m.Format)
			}
			if r.Valid {
				continue
			}
			findings = append(findings, Finding{
				Message:  m.ID,
				Severity: entry.cfg.SeverityFor(r.Kind, m.Severity),
				Kind:     r.Kind.String(),
				Template: m.Format,
				Summary:  r.Summary,
				Detail:   r.Detail,
				Text:     chooseText(entry.cfg, r),
			})
		}
	}
	return findings, nil
}

func chooseText(cfg *internal.Config, r format.Result) string {
	if cfg.UseDetail() {
		return r.Detail
	}
	return r.Summary
}

// listGoFiles returns the sorted, de-duplicated .go files under dirs,
// skipping vendor, testdata and hidden directories.
func listGoFiles(fsys filesystem.FileSystem, dirs []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, dir := range dirs {
		root := path.Clean(dir)
		err := fsys.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && skipDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(p, ".go") {
				set[p] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	slices.Sort(files)
	return files, nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func sortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
