package checker

import (
	"fmt"

	"github.com/dwislpy/dwislpy/internal/ast"
)

// Kind categorizes a semantic error
type Kind int

const (
	// ScopeError covers undeclared names, redefinitions and unknown callees
	ScopeError Kind = iota
	// TypeMismatch covers operand, assignment, argument and return types
	TypeMismatch
	// ReturnShape covers missing, misplaced and valueless returns
	ReturnShape
	// ArityError is a call with the wrong number of arguments
	ArityError
)

// String returns the string representation of the error kind
func (k Kind) String() string {
	switch k {
	case ScopeError:
		return "scope error"
	case TypeMismatch:
		return "type mismatch"
	case ReturnShape:
		return "return error"
	case ArityError:
		return "arity error"
	default:
		return "unknown"
	}
}

// Error is the first semantic error found in a program. Checking stops
// at the first error.
type Error struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// errorf builds an Error positioned at node
func errorf(kind Kind, node ast.Node, format string, args ...interface{}) *Error {
	line, col := node.Pos()
	return &Error{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}
