package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single parse, check, or runtime error, or a lint warning.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
	Hint     string // optional suggestion
}

// format renders the diagnostic as severity[file:line:col]: message
func (d Diagnostic) format(filename string) string {
	s := fmt.Sprintf("%s[%s:%d:%d]: %s", d.Severity, filename, d.Line, d.Column, d.Message)
	if d.Hint != "" {
		s += "\n  hint: " + d.Hint
	}
	return s
}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add appends an already-built diagnostic
func (d *Diagnostics) Add(item Diagnostic) {
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// ErrorWithHint adds an error diagnostic with an optional hint
func (d *Diagnostics) ErrorWithHint(line, col int, msg, hint string) {
	d.Add(Diagnostic{Severity: Error, Message: msg, Line: line, Column: col, Hint: hint})
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(line, col int, msg, hint string) {
	d.Add(Diagnostic{Severity: Warning, Message: msg, Line: line, Column: col, Hint: hint})
}

// Merge appends every diagnostic of other to d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(Error)
}

// Warnings returns only the warning-level diagnostics
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(Warning)
}

func (d *Diagnostics) filter(sev Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == sev {
			out = append(out, item)
		}
	}
	return out
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return len(d.filter(Error))
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return len(d.filter(Warning))
}

// Sort orders the diagnostics by position. Diagnostics on the same
// position keep their insertion order.
func (d *Diagnostics) Sort() {
	sort.SliceStable(d.items, func(i, j int) bool {
		a, b := d.items[i], d.items[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Format returns human-readable messages, one per line:
//
//	error[prog.dpy:3:10]: undeclared variable 'x'
//	  hint: introduce it with 'x: int = ...'
//	warning[prog.dpy:5:1]: variable 'z' is never used
func (d *Diagnostics) Format(filename string) string {
	lines := make([]string, 0, len(d.items))
	for _, item := range d.items {
		lines = append(lines, item.format(filename))
	}
	return strings.Join(lines, "\n")
}
