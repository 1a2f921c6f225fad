package compiler

import (
	"io"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/checker"
	"github.com/dwislpy/dwislpy/internal/diagnostic"
	"github.com/dwislpy/dwislpy/internal/formatter"
	"github.com/dwislpy/dwislpy/internal/interp"
	"github.com/dwislpy/dwislpy/internal/linter"
	"github.com/dwislpy/dwislpy/internal/parser"
)

// Result holds the output of a compilation
type Result struct {
	Program     *ast.Program
	Diagnostics *diagnostic.Diagnostics
}

// OK reports whether the program parsed and checked cleanly
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Options configures Run. Zero values fall back to interp's defaults.
type Options struct {
	MaxDepth int
	In       io.Reader
	Out      io.Writer
}

// Parse runs the parser only. The program is returned even when there are
// syntax errors.
func Parse(source string) (*ast.Program, *diagnostic.Diagnostics) {
	p := parser.New(source)
	prog := p.Parse()
	return prog, p.Diagnostics()
}

// Compile runs the front end: parse -> check.
// Checking is skipped when parsing fails.
func Compile(source string) *Result {
	prog, diags := Parse(source)
	res := &Result{Program: prog, Diagnostics: diags}
	if diags.HasErrors() {
		return res
	}

	res.Diagnostics.Merge(checker.CheckDiagnostics(prog))
	return res
}

// Check runs parse + check only.
func Check(source string) *diagnostic.Diagnostics {
	return Compile(source).Diagnostics
}

// Run compiles source and, if it is well formed, executes it. Parse and
// check failures are reported in the diagnostics; a failure while running
// is returned as an *interp.RuntimeError.
func Run(source string, opts Options) (*diagnostic.Diagnostics, error) {
	res := Compile(source)
	if !res.OK() {
		return res.Diagnostics, nil
	}

	err := interp.Run(res.Program, interp.Config{
		MaxDepth: opts.MaxDepth,
		In:       opts.In,
		Out:      opts.Out,
	})
	return res.Diagnostics, err
}

// Dump parses source and renders its syntax tree.
func Dump(source string) (string, *diagnostic.Diagnostics) {
	prog, diags := Parse(source)
	if diags.HasErrors() {
		return "", diags
	}
	return ast.Print(prog), diags
}

// Format parses source and returns it in canonical form.
func Format(source string) (string, *diagnostic.Diagnostics) {
	prog, diags := Parse(source)
	if diags.HasErrors() {
		return "", diags
	}
	return formatter.Format(prog), diags
}

// Lint parses source and returns style warnings. Syntax errors are
// returned instead when parsing fails.
func Lint(source string) *diagnostic.Diagnostics {
	prog, diags := Parse(source)
	if diags.HasErrors() {
		return diags
	}
	diags.Merge(linter.Lint(prog))
	return diags
}
