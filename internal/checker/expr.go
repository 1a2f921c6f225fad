package checker

import (
	"fmt"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// checkExpression returns the type of expr. Expressions only read the
// symbol table.
func (c *Checker) checkExpression(expr ast.Expression) (Type, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return TypeInt, nil
	case *ast.StringLit:
		return TypeStr, nil
	case *ast.BoolLit:
		return TypeBool, nil
	case *ast.NoneLit:
		return TypeNone, nil
	case *ast.Identifier:
		info := c.symt.GetInfo(e.Name)
		if info == nil {
			return TypeNone, errorf(ScopeError, e, "variable '%s' never introduced", e.Name)
		}
		return info.Type, nil
	case *ast.BinaryExpr:
		return c.checkBinaryExpr(e)
	case *ast.UnaryExpr:
		return c.checkUnaryExpr(e)
	case *ast.TernaryExpr:
		return c.checkTernaryExpr(e)
	case *ast.CallExpr:
		return c.checkCall(e, e.Function, e.Args)
	case *ast.InputExpr:
		t, err := c.checkExpression(e.Prompt)
		if err != nil {
			return TypeNone, err
		}
		if t != TypeStr {
			return TypeNone, errorf(TypeMismatch, e.Prompt, "input prompt expected str, got %s", t)
		}
		return TypeStr, nil
	case *ast.IntConvExpr:
		t, err := c.checkExpression(e.Expr)
		if err != nil {
			return TypeNone, err
		}
		if t != TypeStr && t != TypeInt {
			return TypeNone, errorf(TypeMismatch, e.Expr, "int() expected str or int, got %s", t)
		}
		return TypeInt, nil
	case *ast.StrConvExpr:
		if _, err := c.checkExpression(e.Expr); err != nil {
			return TypeNone, err
		}
		return TypeStr, nil
	default:
		line, col := expr.Pos()
		panic(fmt.Sprintf("checker: unhandled expression %T at %d:%d", expr, line, col))
	}
}

// checkBinaryExpr checks a binary expression
func (c *Checker) checkBinaryExpr(expr *ast.BinaryExpr) (Type, error) {
	left, err := c.checkExpression(expr.Left)
	if err != nil {
		return TypeNone, err
	}
	right, err := c.checkExpression(expr.Right)
	if err != nil {
		return TypeNone, err
	}

	switch expr.Op {
	case lexer.PLUS:
		if left == TypeInt && right == TypeInt {
			return TypeInt, nil
		}
		if left == TypeStr && right == TypeStr {
			return TypeStr, nil
		}
	case lexer.STAR:
		if left == TypeInt && right == TypeInt {
			return TypeInt, nil
		}
		if left == TypeStr && right == TypeInt {
			return TypeStr, nil
		}
	case lexer.MINUS, lexer.SLASHSLASH, lexer.PERCENT:
		if left == TypeInt && right == TypeInt {
			return TypeInt, nil
		}
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ, lexer.EQ:
		if left == TypeInt && right == TypeInt {
			return TypeBool, nil
		}
	case lexer.AND, lexer.OR:
		if left == TypeBool && right == TypeBool {
			return TypeBool, nil
		}
	default:
		panic(fmt.Sprintf("checker: unknown binary operator %s", expr.Op))
	}
	return TypeNone, errorf(TypeMismatch, expr, "operator '%s' not defined for %s and %s", expr.Op, left, right)
}

// checkUnaryExpr checks unary minus and not
func (c *Checker) checkUnaryExpr(expr *ast.UnaryExpr) (Type, error) {
	operand, err := c.checkExpression(expr.Operand)
	if err != nil {
		return TypeNone, err
	}

	switch expr.Op {
	case lexer.MINUS:
		if operand == TypeInt {
			return TypeInt, nil
		}
	case lexer.NOT:
		if operand == TypeBool {
			return TypeBool, nil
		}
	default:
		panic(fmt.Sprintf("checker: unknown unary operator %s", expr.Op))
	}
	return TypeNone, errorf(TypeMismatch, expr, "operator '%s' not defined for %s", expr.Op, operand)
}

// checkTernaryExpr checks then if cond else otherwise
func (c *Checker) checkTernaryExpr(expr *ast.TernaryExpr) (Type, error) {
	cond, err := c.checkExpression(expr.Cond)
	if err != nil {
		return TypeNone, err
	}
	if cond != TypeBool {
		return TypeNone, errorf(TypeMismatch, expr.Cond, "condition of conditional expression must be bool, got %s", cond)
	}

	then, err := c.checkExpression(expr.Then)
	if err != nil {
		return TypeNone, err
	}
	otherwise, err := c.checkExpression(expr.Else)
	if err != nil {
		return TypeNone, err
	}
	if !then.Equal(otherwise) {
		return TypeNone, errorf(TypeMismatch, expr, "branches of conditional expression differ: %s and %s", then, otherwise)
	}
	return then, nil
}

// checkCall checks a call of a definition, as a statement or inside an
// expression: the callee must exist, the arity must match, and every
// argument must have its formal's type.
func (c *Checker) checkCall(at ast.Node, name string, args []ast.Expression) (Type, error) {
	fn, ok := c.defs[name]
	if !ok {
		return TypeNone, errorf(ScopeError, at, "unknown function '%s'", name)
	}
	if len(args) != len(fn.Params) {
		return TypeNone, errorf(ArityError, at, "'%s' expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}
	for i, arg := range args {
		t, err := c.checkExpression(arg)
		if err != nil {
			return TypeNone, err
		}
		if want := fn.Params[i].Type; !t.Equal(want) {
			return TypeNone, errorf(TypeMismatch, arg, "argument %d of '%s' expected %s, got %s", i+1, name, want, t)
		}
	}
	return fn.ReturnType, nil
}
