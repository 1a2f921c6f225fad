package checker

import (
	"testing"

	"github.com/dwislpy/dwislpy/internal/ast"
)

func TestSymbolTableLookup(t *testing.T) {
	s := NewSymbolTable()
	s.AddLocal("x", TypeInt)

	if !s.HasInfo("x") {
		t.Fatal("expected x to be visible")
	}
	if s.HasInfo("y") {
		t.Error("y should not be visible")
	}
	if info := s.GetInfo("y"); info != nil {
		t.Errorf("expected nil info for y, got %+v", info)
	}

	s.Mark()
	if s.IsRedefining("x") {
		t.Error("x lives in an outer frame, so it is not a redefinition")
	}
	s.AddLocal("x", TypeStr)
	if !s.IsRedefining("x") {
		t.Error("x is now in the innermost frame")
	}
	if got := s.GetInfo("x").Type; got != TypeStr {
		t.Errorf("innermost binding should win, got %s", got)
	}

	s.PopUntilMark()
	if got := s.GetInfo("x").Type; got != TypeInt {
		t.Errorf("outer binding should be restored, got %s", got)
	}
}

func TestSymbolTableDepth(t *testing.T) {
	s := NewSymbolTable()
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
	s.Mark()
	s.Mark()
	if s.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", s.Depth())
	}
	s.PopUntilMark()
	s.PopUntilMark()
	if s.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", s.Depth())
	}
}

func TestPopWithoutMarkPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewSymbolTable().PopUntilMark()
}

func TestBlockRestoresScope(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"plain block", "x: int = 1\nif True:\n    y: int = 2\n"},
		{"error inside nested block", "if True:\n    while True:\n        z: int = \"s\"\n"},
		{"return inside loop", "def f() -> int:\n    while True:\n        return 1\n    return 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseProgram(t, tt.source)
			defs, err := BuildDefs(prog)
			if err != nil {
				t.Fatal(err)
			}

			blocks := []*ast.Block{prog.Main}
			for _, fn := range prog.Defs {
				blocks = append(blocks, fn.Body)
			}
			for _, block := range blocks {
				c := newChecker(defs)
				before := c.symt.Depth()
				c.checkBlock(block, Returns(TypeInt))
				if after := c.symt.Depth(); after != before {
					t.Errorf("depth before %d, after %d", before, after)
				}
			}
		})
	}
}
