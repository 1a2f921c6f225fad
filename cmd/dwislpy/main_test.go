package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI runs the command line with the given arguments and stdin
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr strings.Builder
	c := &cli{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	code := c.run(args)
	return code, stdout.String(), stderr.String()
}

func writeProgram(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.dwi")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUsage(t *testing.T) {
	if code, _, stderr := runCLI(t, ""); code != exitUsage || !strings.Contains(stderr, "Usage:") {
		t.Errorf("expected usage on stderr with exit 2, got %d %q", code, stderr)
	}
	if code, stdout, _ := runCLI(t, "", "help"); code != exitOK || !strings.Contains(stdout, "dwislpy run") {
		t.Errorf("expected help on stdout, got %d %q", code, stdout)
	}
	if code, _, stderr := runCLI(t, "", "frobnicate"); code != exitUsage || !strings.Contains(stderr, "Unknown command") {
		t.Errorf("expected unknown command, got %d %q", code, stderr)
	}
	if code, _, _ := runCLI(t, "", "check"); code != exitUsage {
		t.Errorf("expected exit 2 without a file, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "run", "--max-depth=zero", "x.dwi"); code != exitUsage {
		t.Errorf("expected exit 2 for a bad depth, got %d", code)
	}
}

func TestRunCommand(t *testing.T) {
	path := writeProgram(t, "name: str = input(\"? \")\nprint(\"hello\", name)\n")
	code, stdout, stderr := runCLI(t, "world\n", "run", path)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if stdout != "? hello world\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRunCommandRuntimeError(t *testing.T) {
	path := writeProgram(t, "print(1 // 0)\n")
	code, _, stderr := runCLI(t, "", "run", path)
	if code != exitError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "prog.dwi:1:9: runtime error: division by zero") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRunCommandMaxDepth(t *testing.T) {
	path := writeProgram(t, "def f(n: int) -> int:\n    return f(n)\nprint(f(1))\n")
	code, _, stderr := runCLI(t, "", "run", "--max-depth=5", path)
	if code != exitError || !strings.Contains(stderr, "maximum call depth 5 exceeded") {
		t.Errorf("expected depth error, got %d %q", code, stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	good := writeProgram(t, "print(1)\n")
	if code, stdout, _ := runCLI(t, "", "check", good); code != exitOK || !strings.Contains(stdout, "No errors found.") {
		t.Errorf("expected clean check, got %d %q", code, stdout)
	}

	bad := writeProgram(t, "x: int = \"one\"\n")
	code, _, stderr := runCLI(t, "", "check", bad)
	if code != exitError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "error[") || !strings.Contains(stderr, "cannot initialize 'x'") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !strings.HasSuffix(stderr, "1 error(s) found.\n") {
		t.Errorf("expected an error count, got %q", stderr)
	}
}

func TestMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "", "check", filepath.Join(t.TempDir(), "missing.dwi"))
	if code != exitError || !strings.Contains(stderr, "Error reading file") {
		t.Errorf("expected read error, got %d %q", code, stderr)
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeProgram(t, "pass\n")
	code, stdout, _ := runCLI(t, "", "dump", path)
	if code != exitOK || !strings.Contains(stdout, "PassStmt") {
		t.Errorf("unexpected dump %d %q", code, stdout)
	}
}

func TestFmtCommand(t *testing.T) {
	path := writeProgram(t, "x:int=1\nprint(x)\n")
	code, stdout, _ := runCLI(t, "", "fmt", path)
	if code != exitOK || stdout != "x: int = 1\nprint(x)\n" {
		t.Errorf("unexpected fmt output %d %q", code, stdout)
	}

	if code, _, _ := runCLI(t, "", "fmt", "-w", path); code != exitOK {
		t.Fatalf("fmt -w failed with %d", code)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != "x: int = 1\nprint(x)\n" {
		t.Errorf("unexpected file contents %q", written)
	}
}

func TestLintCommand(t *testing.T) {
	path := writeProgram(t, "x: int = 1\n")
	code, stdout, _ := runCLI(t, "", "lint", path)
	if code != exitOK {
		t.Errorf("lint warnings should not fail, got %d", code)
	}
	if !strings.Contains(stdout, "warning[") || !strings.Contains(stdout, "1 warning(s) found.") {
		t.Errorf("unexpected lint output %q", stdout)
	}

	several := writeProgram(t, "def Bad(unused: int) -> int:\n    return 0\n")
	if _, stdout, _ := runCLI(t, "", "lint", several); !strings.Contains(stdout, "2 warning(s) found.") {
		t.Errorf("expected two warnings, got %q", stdout)
	}

	clean := writeProgram(t, "print(1)\n")
	if _, stdout, _ := runCLI(t, "", "lint", clean); !strings.Contains(stdout, "No lint warnings.") {
		t.Errorf("unexpected lint output %q", stdout)
	}
}
