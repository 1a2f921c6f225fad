package interp

import (
	"errors"
	"strings"
	"testing"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/parser"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("Parser errors: %s", p.Diagnostics().Format("test"))
	}
	return prog
}

func run(t *testing.T, source, input string) (string, error) {
	t.Helper()
	var out strings.Builder
	err := Run(parseProgram(t, source), Config{In: strings.NewReader(input), Out: &out})
	return out.String(), err
}

func expectOutput(t *testing.T, source, input, expected string) {
	t.Helper()
	out, err := run(t, source, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != expected {
		t.Errorf("expected output %q, got %q", expected, out)
	}
}

func expectRuntimeError(t *testing.T, source, substr string) *RuntimeError {
	t.Helper()
	_, err := run(t, source, "")
	if err == nil {
		t.Fatalf("expected runtime error containing %q, got none", substr)
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(rerr.Message, substr) {
		t.Errorf("expected message containing %q, got %q", substr, rerr.Message)
	}
	return rerr
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"int", "print(42)\n", "42\n"},
		{"string", "print(\"hi\")\n", "hi\n"},
		{"bools", "print(True, False)\n", "True False\n"},
		{"none", "print(None)\n", "None\n"},
		{"several", "print(1, \"a\", 2)\n", "1 a 2\n"},
		{"empty", "print()\n", "\n"},
		{"escapes", "print(\"a\\tb\")\n", "a\tb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, tt.source, "", tt.expected)
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"7 // 2", "3"},
		{"-7 // 2", "-3"},
		{"7 % 3", "1"},
		{"-7 % 2", "-1"},
		{"10 - 4 - 3", "3"},
		{"-(2 + 3)", "-5"},
		{"\"ab\" + \"cd\"", "abcd"},
		{"\"ab\" * 3", "ababab"},
		{"\"ab\" * 0", ""},
		{"\"ab\" * -2", ""},
		{"\"\" * 9223372036854775807", ""},
		{"1 < 2", "True"},
		{"2 <= 1", "False"},
		{"3 > 2", "True"},
		{"3 >= 4", "False"},
		{"5 == 5", "True"},
		{"not True", "False"},
		{"True and False", "False"},
		{"False or True", "True"},
		{"1 if True else 2", "1"},
		{"1 if False else 2", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expectOutput(t, "print("+tt.expr+")\n", "", tt.expected+"\n")
		})
	}
}

func TestShortCircuit(t *testing.T) {
	expectOutput(t, "print(False and 1 // 0 == 0)\n", "", "False\n")
	expectOutput(t, "print(True or 1 // 0 == 0)\n", "", "True\n")
	expectOutput(t, "print(1 if True else 1 // 0)\n", "", "1\n")
}

func TestDivisionByZero(t *testing.T) {
	rerr := expectRuntimeError(t, "x: int = 0\nprint(1 // x)\n", "division by zero")
	if rerr.Line != 2 {
		t.Errorf("expected line 2, got %d", rerr.Line)
	}
	expectRuntimeError(t, "print(5 % 0)\n", "division by zero")
}

func TestStringRepetitionTooLarge(t *testing.T) {
	rerr := expectRuntimeError(t, "print(\"ab\" * 9223372036854775807)\n", "string repetition too large")
	if rerr.Line != 1 || rerr.Column != 12 {
		t.Errorf("expected error at 1:12, got %d:%d", rerr.Line, rerr.Column)
	}
	expectRuntimeError(t, "s: str = \"abcd\"\nprint(s * 1073741824)\n", "string repetition too large")
}

func TestOutputBeforeErrorIsKept(t *testing.T) {
	out, err := run(t, "print(\"before\")\nprint(1 // 0)\n", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if out != "before\n" {
		t.Errorf("expected output before the error, got %q", out)
	}
}

func TestVariables(t *testing.T) {
	source := `x: int = 1
x = x + 1
x += 10
x -= 2
s: str = "a"
s += "b"
print(x, s)
`
	expectOutput(t, source, "", "10 ab\n")
}

func TestShadowedBindingRestoredAfterBlock(t *testing.T) {
	t.Run("if", func(t *testing.T) {
		source := `x: int = 1
if True:
    x: str = "a"
    print(x)
print(x + 1)
`
		expectOutput(t, source, "", "a\n2\n")
	})

	t.Run("loop body", func(t *testing.T) {
		source := `x: int = 0
i: int = 0
while i < 3:
    x: str = "s"
    i += 1
print(x + i)
`
		expectOutput(t, source, "", "3\n")
	})

	t.Run("assignment persists", func(t *testing.T) {
		source := `x: int = 1
if True:
    x = 5
print(x)
`
		expectOutput(t, source, "", "5\n")
	})

	t.Run("block-local name removed", func(t *testing.T) {
		expectRuntimeError(t, "if True:\n    y: int = 1\nprint(y)\n", "variable 'y' is not defined")
	})

	t.Run("restored on error", func(t *testing.T) {
		prog := parseProgram(t, "if True:\n    x: str = \"a\"\n    y: int = 2\n    print(1 // 0)\n")
		var out strings.Builder
		in := New(prog, Config{In: strings.NewReader(""), Out: &out})
		vars := env{"x": Int(1)}
		if _, _, err := in.execBlock(prog.Main, vars); err == nil {
			t.Fatal("expected an error")
		}
		if !vars["x"].Equal(Int(1)) {
			t.Errorf("expected x to be 1 again, got %s", vars["x"])
		}
		if _, ok := vars["y"]; ok {
			t.Error("expected y to be gone after the block")
		}
	})
}

func TestControlFlow(t *testing.T) {
	t.Run("if elif else", func(t *testing.T) {
		source := `def sign(n: int) -> str:
    if n < 0:
        return "-"
    elif n == 0:
        return "0"
    else:
        return "+"
print(sign(-5), sign(0), sign(3))
`
		expectOutput(t, source, "", "- 0 +\n")
	})

	t.Run("while", func(t *testing.T) {
		source := `i: int = 0
total: int = 0
while i < 5:
    total += i
    i += 1
print(total)
`
		expectOutput(t, source, "", "10\n")
	})

	t.Run("repeat runs at least once", func(t *testing.T) {
		source := `i: int = 10
repeat:
    print(i)
    i += 1
until i > 5
`
		expectOutput(t, source, "", "10\n")
	})

	t.Run("repeat until", func(t *testing.T) {
		source := `i: int = 0
repeat:
    i += 1
until i == 3
print(i)
`
		expectOutput(t, source, "", "3\n")
	})

	t.Run("return from inside loop", func(t *testing.T) {
		source := `def first_multiple(n: int, k: int) -> int:
    i: int = 1
    while True:
        if i % k == 0 and i >= n:
            return i
        i += 1
    return 0
print(first_multiple(10, 7))
`
		expectOutput(t, source, "", "14\n")
	})
}

func TestFunctions(t *testing.T) {
	t.Run("recursion", func(t *testing.T) {
		source := `def fact(n: int) -> int:
    if n <= 1:
        return 1
    return n * fact(n - 1)
print(fact(10))
`
		expectOutput(t, source, "", "3628800\n")
	})

	t.Run("fresh environment per call", func(t *testing.T) {
		source := `def f(x: int) -> int:
    y: int = x * 2
    return y
y: int = 5
print(f(1), y)
`
		expectOutput(t, source, "", "2 5\n")
	})

	t.Run("procedure call statement", func(t *testing.T) {
		source := `def greet(name: str):
    print("hello", name)
    return
greet("world")
`
		expectOutput(t, source, "", "hello world\n")
	})

	t.Run("falling off the end yields None", func(t *testing.T) {
		source := `def p():
    pass
print(p())
`
		expectOutput(t, source, "", "None\n")
	})

	t.Run("mutual recursion", func(t *testing.T) {
		source := `def is_even(n: int) -> bool:
    if n == 0:
        return True
    return is_odd(n - 1)
def is_odd(n: int) -> bool:
    if n == 0:
        return False
    return is_even(n - 1)
print(is_even(10), is_odd(7))
`
		expectOutput(t, source, "", "True True\n")
	})
}

func TestMaxDepth(t *testing.T) {
	source := `def down(n: int) -> int:
    return down(n + 1)
print(down(0))
`
	var out strings.Builder
	err := Run(parseProgram(t, source), Config{MaxDepth: 50, Out: &out, In: strings.NewReader("")})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %v", err)
	}
	if !strings.Contains(rerr.Message, "maximum call depth 50 exceeded") {
		t.Errorf("unexpected message %q", rerr.Message)
	}
}

func TestMaxDepthAllowsDeepEnoughRecursion(t *testing.T) {
	source := `def count(n: int) -> int:
    if n == 0:
        return 0
    return 1 + count(n - 1)
print(count(49))
`
	var out strings.Builder
	err := Run(parseProgram(t, source), Config{MaxDepth: 50, Out: &out, In: strings.NewReader("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "49\n" {
		t.Errorf("expected 49, got %q", out.String())
	}
}

func TestInput(t *testing.T) {
	source := `name: str = input("name? ")
n: int = int(input("n? "))
print(name, n + 1)
`
	expectOutput(t, source, "  alice\n 41 \n", "name? n? alice 42\n")
}

func TestInputAtEndOfStream(t *testing.T) {
	expectOutput(t, "print(\"[\" + input(\"> \") + \"]\")\n", "", "> []\n")
}

func TestConversions(t *testing.T) {
	expectOutput(t, "print(int(\"-12\") + 2)\n", "", "-10\n")
	expectOutput(t, "print(int(7))\n", "", "7\n")
	expectOutput(t, "print(str(12) + str(True) + str(None))\n", "", "12TrueNone\n")
	expectRuntimeError(t, "print(int(\"12abc\"))\n", "cannot be converted to an int")
	expectRuntimeError(t, "print(int(\"\"))\n", "cannot be converted to an int")
}

func TestUndefinedVariable(t *testing.T) {
	expectRuntimeError(t, "print(x)\n", "variable 'x' is not defined")
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Int(-3), "-3"},
		{Str("x y"), "x y"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{None, "None"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if _, ok := Str("1").AsInt(); ok {
		t.Error("str should not convert to int")
	}
	if n, ok := Int(4).AsInt(); !ok || n != 4 {
		t.Errorf("expected 4, got %d, %v", n, ok)
	}
	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Error("expected true")
	}
	if s, ok := Str("q").AsStr(); !ok || s != "q" {
		t.Errorf("expected q, got %q", s)
	}
	if !None.Equal(Value{}) || Int(1).Equal(Bool(true)) || !Str("a").Equal(Str("a")) {
		t.Error("Equal gave an unexpected result")
	}
	if None.Kind() != NoneKind || Int(0).Kind().String() != "int" {
		t.Error("unexpected kind")
	}
}
