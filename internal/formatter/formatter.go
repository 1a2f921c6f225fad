package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// Format takes an AST Program and returns canonical DwiSlpy source code.
// Definitions come first, in source order, followed by the script.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emitLine(s string) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(s)
	f.sb.WriteString("\n")
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.emitLine(fmt.Sprintf(format, args...))
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- program-level ---

func (f *formatter) formatProgram(prog *ast.Program) {
	for i, fn := range prog.Defs {
		if i > 0 {
			f.blankLine()
		}
		f.formatFuncDef(fn)
	}

	if prog.Main == nil || len(prog.Main.Statements) == 0 {
		return
	}
	if len(prog.Defs) > 0 {
		f.blankLine()
	}
	f.formatBlock(prog.Main)
}

func (f *formatter) formatFuncDef(fn *ast.FuncDef) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.Name)
	}
	header := fmt.Sprintf("def %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.ReturnType != nil {
		header += " -> " + fn.ReturnType.Name
	}
	f.emitLine(header + ":")
	f.formatSuite(fn.Body)
}

// --- statements ---

func (f *formatter) formatSuite(b *ast.Block) {
	f.incIndent()
	f.formatBlock(b)
	f.decIndent()
}

func (f *formatter) formatBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.IntroStmt:
		f.emitLinef("%s: %s = %s", stmt.Name, stmt.Type.Name, f.formatExpr(stmt.Value))

	case *ast.AssignStmt:
		f.emitLinef("%s = %s", stmt.Name, f.formatExpr(stmt.Value))

	case *ast.CompoundAssignStmt:
		f.emitLinef("%s %s %s", stmt.Name, stmt.Op, f.formatExpr(stmt.Value))

	case *ast.PassStmt:
		f.emitLine("pass")

	case *ast.PrintStmt:
		f.emitLinef("print(%s)", f.formatArgs(stmt.Args))

	case *ast.CallStmt:
		f.emitLinef("%s(%s)", stmt.Name, f.formatArgs(stmt.Args))

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			f.emitLinef("return %s", f.formatExpr(stmt.Value))
		} else {
			f.emitLine("return")
		}

	case *ast.IfStmt:
		for i, clause := range stmt.Clauses {
			keyword := "if"
			if i > 0 {
				keyword = "elif"
			}
			f.emitLinef("%s %s:", keyword, f.formatExpr(clause.Condition))
			f.formatSuite(clause.Body)
		}
		if stmt.Else != nil {
			f.emitLine("else:")
			f.formatSuite(stmt.Else)
		}

	case *ast.WhileStmt:
		f.emitLinef("while %s:", f.formatExpr(stmt.Condition))
		f.formatSuite(stmt.Body)

	case *ast.RepeatStmt:
		f.emitLine("repeat:")
		f.formatSuite(stmt.Body)
		f.emitLinef("until %s", f.formatExpr(stmt.Condition))

	case *ast.Block:
		f.formatBlock(stmt)
	}
}

// --- expressions ---

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, precTernary)
}

func (f *formatter) formatArgs(args []ast.Expression) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = f.formatExpr(arg)
	}
	return strings.Join(parts, ", ")
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	switch expr := e.(type) {
	case *ast.TernaryExpr:
		result := fmt.Sprintf("%s if %s else %s",
			f.formatExprPrec(expr.Then, precOr),
			f.formatExprPrec(expr.Cond, precOr),
			f.formatExprPrec(expr.Else, precTernary))
		return wrap(result, precTernary, parentPrec)

	case *ast.BinaryExpr:
		prec := precedence(expr.Op)
		left := f.formatExprPrec(expr.Left, prec)
		if prec == precCompare {
			// comparisons do not chain
			left = f.formatExprPrec(expr.Left, prec+1)
		}
		right := f.formatExprPrec(expr.Right, prec+1) // +1 for left-associativity
		return wrap(fmt.Sprintf("%s %s %s", left, expr.Op, right), prec, parentPrec)

	case *ast.UnaryExpr:
		if expr.Op == lexer.NOT {
			return wrap("not "+f.formatExprPrec(expr.Operand, precNot), precNot, parentPrec)
		}
		return wrap("-"+f.formatExprPrec(expr.Operand, precUnary), precUnary, parentPrec)

	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", expr.Function, f.formatArgs(expr.Args))

	case *ast.InputExpr:
		return fmt.Sprintf("input(%s)", f.formatExpr(expr.Prompt))

	case *ast.IntConvExpr:
		return fmt.Sprintf("int(%s)", f.formatExpr(expr.Expr))

	case *ast.StrConvExpr:
		return fmt.Sprintf("str(%s)", f.formatExpr(expr.Expr))

	case *ast.Identifier:
		return expr.Name

	case *ast.IntLit:
		return strconv.Itoa(expr.Value)

	case *ast.StringLit:
		return quote(expr.Value)

	case *ast.BoolLit:
		if expr.Value {
			return "True"
		}
		return "False"

	case *ast.NoneLit:
		return "None"

	default:
		return "<unknown>"
	}
}

func wrap(s string, prec, parentPrec int) string {
	if prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}

// quote writes s as a double-quoted literal using only the escapes the
// lexer understands.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// --- operator precedence ---

// Precedence levels (higher binds tighter)
const (
	precTernary = iota
	precOr
	precAnd
	precNot
	precCompare
	precAdd
	precMul
	precUnary
)

func precedence(op lexer.TokenType) int {
	switch op {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return precCompare
	case lexer.PLUS, lexer.MINUS:
		return precAdd
	case lexer.STAR, lexer.SLASHSLASH, lexer.PERCENT:
		return precMul
	default:
		return precTernary
	}
}
