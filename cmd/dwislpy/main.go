package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dwislpy/dwislpy/internal/compiler"
	"github.com/dwislpy/dwislpy/internal/diagnostic"
)

const usage = `dwislpy - The DwiSlpy interpreter

Usage:
  dwislpy run [--max-depth=N] <file.dwi>    Check and run a program
  dwislpy check <file.dwi>                  Parse and type-check only
  dwislpy dump <file.dwi>                   Print the syntax tree
  dwislpy fmt [-w] <file.dwi>               Print the program in canonical form
  dwislpy lint <file.dwi>                   Run lint checks for style issues

Options:
  --max-depth=N  Maximum call depth while running (default 1000)
  -w             Write formatted source back to the file

Exit status is 1 when the program has errors and 2 on bad usage.
`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// cli carries the process streams so commands can run in tests
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	command := args[0]

	switch command {
	case "run":
		return c.handleRun(args[1:])
	case "check":
		return c.handleCheck(args[1:])
	case "dump":
		return c.handleDump(args[1:])
	case "fmt":
		return c.handleFmt(args[1:])
	case "lint":
		return c.handleLint(args[1:])
	case "help", "--help", "-h":
		fmt.Fprint(c.stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}
}

// fileArg returns the single non-flag argument, or an exit code if there
// is not exactly one.
func (c *cli) fileArg(args []string) (string, int) {
	var files []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			fmt.Fprintf(c.stderr, "Unknown option: %s\n", arg)
			return "", exitUsage
		}
		files = append(files, arg)
	}
	switch len(files) {
	case 0:
		fmt.Fprintln(c.stderr, "Error: no input file specified")
		return "", exitUsage
	case 1:
		return files[0], exitOK
	default:
		fmt.Fprintln(c.stderr, "Error: expected a single input file")
		return "", exitUsage
	}
}

func (c *cli) readSource(filePath string) (string, bool) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error reading file: %s\n", err)
		return "", false
	}
	return string(source), true
}

// report prints diagnostics to stderr and returns exitError if any of
// them is an error.
func (c *cli) report(diag *diagnostic.Diagnostics, filePath string) int {
	if diag.Count() > 0 {
		fmt.Fprintln(c.stderr, diag.Format(filePath))
	}
	if errs := diag.Errors(); len(errs) > 0 {
		fmt.Fprintf(c.stderr, "%d error(s) found.\n", len(errs))
		return exitError
	}
	return exitOK
}

func (c *cli) handleRun(args []string) int {
	maxDepth := 0
	var rest []string
	for _, arg := range args {
		if value, ok := strings.CutPrefix(arg, "--max-depth="); ok {
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				fmt.Fprintf(c.stderr, "Error: invalid --max-depth value %q\n", value)
				return exitUsage
			}
			maxDepth = n
			continue
		}
		rest = append(rest, arg)
	}

	filePath, code := c.fileArg(rest)
	if filePath == "" {
		return code
	}
	source, ok := c.readSource(filePath)
	if !ok {
		return exitError
	}

	diag, err := compiler.Run(source, compiler.Options{
		MaxDepth: maxDepth,
		In:       c.stdin,
		Out:      c.stdout,
	})
	if code := c.report(diag, filePath); code != exitOK {
		return code
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "%s:%s\n", filePath, err)
		return exitError
	}
	return exitOK
}

func (c *cli) handleCheck(args []string) int {
	filePath, code := c.fileArg(args)
	if filePath == "" {
		return code
	}
	source, ok := c.readSource(filePath)
	if !ok {
		return exitError
	}

	if code := c.report(compiler.Check(source), filePath); code != exitOK {
		return code
	}
	fmt.Fprintln(c.stdout, "No errors found.")
	return exitOK
}

func (c *cli) handleDump(args []string) int {
	filePath, code := c.fileArg(args)
	if filePath == "" {
		return code
	}
	source, ok := c.readSource(filePath)
	if !ok {
		return exitError
	}

	out, diag := compiler.Dump(source)
	if code := c.report(diag, filePath); code != exitOK {
		return code
	}
	fmt.Fprint(c.stdout, out)
	return exitOK
}

func (c *cli) handleFmt(args []string) int {
	write := false
	var rest []string
	for _, arg := range args {
		if arg == "-w" {
			write = true
			continue
		}
		rest = append(rest, arg)
	}

	filePath, code := c.fileArg(rest)
	if filePath == "" {
		return code
	}
	source, ok := c.readSource(filePath)
	if !ok {
		return exitError
	}

	out, diag := compiler.Format(source)
	if code := c.report(diag, filePath); code != exitOK {
		return code
	}
	if !write {
		fmt.Fprint(c.stdout, out)
		return exitOK
	}
	if err := os.WriteFile(filePath, []byte(out), 0644); err != nil {
		fmt.Fprintf(c.stderr, "Error writing file: %s\n", err)
		return exitError
	}
	return exitOK
}

func (c *cli) handleLint(args []string) int {
	filePath, code := c.fileArg(args)
	if filePath == "" {
		return code
	}
	source, ok := c.readSource(filePath)
	if !ok {
		return exitError
	}

	diag := compiler.Lint(source)
	if diag.HasErrors() {
		return c.report(diag, filePath)
	}

	warnings := diag.Warnings()
	if len(warnings) == 0 {
		fmt.Fprintln(c.stdout, "No lint warnings.")
		return exitOK
	}

	fmt.Fprintln(c.stdout, diag.Format(filePath))
	fmt.Fprintf(c.stdout, "%d warning(s) found.\n", len(warnings))
	return exitOK
}
