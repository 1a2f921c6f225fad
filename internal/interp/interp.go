// Package interp runs a checked DwiSlpy program by walking its syntax tree.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// DefaultMaxDepth bounds recursion when Config.MaxDepth is not set
const DefaultMaxDepth = 1000

// maxStringLen caps the length of a string built by repetition.
const maxStringLen = 1 << 30

// Config controls a single run. Nil In and Out default to the process's
// standard input and output.
type Config struct {
	MaxDepth int
	In       io.Reader
	Out      io.Writer
}

// RuntimeError is a failure while running a program, positioned at the
// node that raised it.
type RuntimeError struct {
	Line    int
	Column  int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: runtime error: %s", e.Line, e.Column, e.Message)
}

func runtimeErrorf(node ast.Node, format string, args ...interface{}) *RuntimeError {
	line, col := node.Pos()
	return &RuntimeError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

// env holds the variables of one activation. Nested blocks share it and
// undo their own introductions on exit.
type env map[string]Value

// Interpreter executes one program
type Interpreter struct {
	defs     map[string]*ast.FuncDef
	in       *bufio.Reader
	out      *bufio.Writer
	maxDepth int
	depth    int
}

// New prepares prog for running under cfg
func New(prog *ast.Program, cfg Config) *Interpreter {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	defs := make(map[string]*ast.FuncDef, len(prog.Defs))
	for _, fn := range prog.Defs {
		defs[fn.Name] = fn
	}
	return &Interpreter{
		defs:     defs,
		in:       bufio.NewReader(cfg.In),
		out:      bufio.NewWriter(cfg.Out),
		maxDepth: cfg.MaxDepth,
	}
}

// Run executes the program's script block. Output written before a
// runtime error is still flushed.
func Run(prog *ast.Program, cfg Config) error {
	in := New(prog, cfg)
	defer in.out.Flush()
	if prog.Main == nil {
		return nil
	}
	_, _, err := in.execBlock(prog.Main, env{})
	return err
}

// execBlock runs statements until one returns. returned reports whether
// a return statement was executed. Names introduced in the block are
// restored to their outer binding, or removed, when the block exits.
func (in *Interpreter) execBlock(block *ast.Block, vars env) (result Value, returned bool, err error) {
	var shadowed map[string]*Value
	defer func() {
		for name, old := range shadowed {
			if old == nil {
				delete(vars, name)
			} else {
				vars[name] = *old
			}
		}
	}()

	for _, stmt := range block.Statements {
		if intro, ok := stmt.(*ast.IntroStmt); ok {
			if shadowed == nil {
				shadowed = make(map[string]*Value)
			}
			if _, seen := shadowed[intro.Name]; !seen {
				var saved *Value
				if old, bound := vars[intro.Name]; bound {
					saved = &old
				}
				shadowed[intro.Name] = saved
			}
		}
		result, returned, err = in.exec(stmt, vars)
		if err != nil || returned {
			return result, returned, err
		}
	}
	return None, false, nil
}

func (in *Interpreter) exec(stmt ast.Statement, vars env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.IntroStmt:
		v, err := in.eval(s.Value, vars)
		if err != nil {
			return None, false, err
		}
		vars[s.Name] = v
	case *ast.AssignStmt:
		v, err := in.eval(s.Value, vars)
		if err != nil {
			return None, false, err
		}
		vars[s.Name] = v
	case *ast.CompoundAssignStmt:
		current, ok := vars[s.Name]
		if !ok {
			return None, false, runtimeErrorf(s, "variable '%s' is not defined", s.Name)
		}
		v, err := in.eval(s.Value, vars)
		if err != nil {
			return None, false, err
		}
		op := lexer.PLUS
		if s.Op == lexer.MINUS_ASSIGN {
			op = lexer.MINUS
		}
		updated, err := in.applyBinary(s, op, current, v)
		if err != nil {
			return None, false, err
		}
		vars[s.Name] = updated
	case *ast.PassStmt:
	case *ast.PrintStmt:
		parts := make([]string, 0, len(s.Args))
		for _, arg := range s.Args {
			v, err := in.eval(arg, vars)
			if err != nil {
				return None, false, err
			}
			parts = append(parts, v.String())
		}
		fmt.Fprintln(in.out, strings.Join(parts, " "))
	case *ast.CallStmt:
		if _, err := in.call(s, s.Name, s.Args, vars); err != nil {
			return None, false, err
		}
	case *ast.ReturnStmt:
		if s.Value == nil {
			return None, true, nil
		}
		v, err := in.eval(s.Value, vars)
		if err != nil {
			return None, false, err
		}
		return v, true, nil
	case *ast.IfStmt:
		for _, clause := range s.Clauses {
			ok, err := in.condition(clause.Condition, vars)
			if err != nil {
				return None, false, err
			}
			if ok {
				return in.execBlock(clause.Body, vars)
			}
		}
		if s.Else != nil {
			return in.execBlock(s.Else, vars)
		}
	case *ast.WhileStmt:
		for {
			ok, err := in.condition(s.Condition, vars)
			if err != nil || !ok {
				return None, false, err
			}
			if v, returned, err := in.execBlock(s.Body, vars); err != nil || returned {
				return v, returned, err
			}
		}
	case *ast.RepeatStmt:
		for {
			if v, returned, err := in.execBlock(s.Body, vars); err != nil || returned {
				return v, returned, err
			}
			done, err := in.condition(s.Condition, vars)
			if err != nil || done {
				return None, false, err
			}
		}
	case *ast.Block:
		return in.execBlock(s, vars)
	default:
		return None, false, runtimeErrorf(stmt, "cannot execute %T", stmt)
	}
	return None, false, nil
}

func (in *Interpreter) condition(expr ast.Expression, vars env) (bool, error) {
	v, err := in.eval(expr, vars)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, runtimeErrorf(expr, "condition is %s, not bool", v.Kind())
	}
	return b, nil
}

// call runs a definition in a fresh environment. Arguments are evaluated
// in the caller's environment, left to right.
func (in *Interpreter) call(at ast.Node, name string, args []ast.Expression, vars env) (Value, error) {
	fn, ok := in.defs[name]
	if !ok {
		return None, runtimeErrorf(at, "unknown function '%s'", name)
	}
	if len(args) != len(fn.Params) {
		return None, runtimeErrorf(at, "'%s' expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}

	locals := make(env, len(fn.Params))
	for i, arg := range args {
		v, err := in.eval(arg, vars)
		if err != nil {
			return None, err
		}
		locals[fn.Params[i].Name] = v
	}

	if in.depth >= in.maxDepth {
		return None, runtimeErrorf(at, "maximum call depth %d exceeded", in.maxDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	result, _, err := in.execBlock(fn.Body, locals)
	return result, err
}

func (in *Interpreter) eval(expr ast.Expression, vars env) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return Int(e.Value), nil
	case *ast.StringLit:
		return Str(e.Value), nil
	case *ast.BoolLit:
		return Bool(e.Value), nil
	case *ast.NoneLit:
		return None, nil
	case *ast.Identifier:
		v, ok := vars[e.Name]
		if !ok {
			return None, runtimeErrorf(e, "variable '%s' is not defined", e.Name)
		}
		return v, nil
	case *ast.BinaryExpr:
		return in.evalBinary(e, vars)
	case *ast.UnaryExpr:
		v, err := in.eval(e.Operand, vars)
		if err != nil {
			return None, err
		}
		if n, ok := v.AsInt(); ok && e.Op == lexer.MINUS {
			return Int(-n), nil
		}
		if b, ok := v.AsBool(); ok && e.Op == lexer.NOT {
			return Bool(!b), nil
		}
		return None, runtimeErrorf(e, "wrong operand type %s for '%s'", v.Kind(), e.Op)
	case *ast.TernaryExpr:
		ok, err := in.condition(e.Cond, vars)
		if err != nil {
			return None, err
		}
		if ok {
			return in.eval(e.Then, vars)
		}
		return in.eval(e.Else, vars)
	case *ast.CallExpr:
		return in.call(e, e.Function, e.Args, vars)
	case *ast.InputExpr:
		return in.evalInput(e, vars)
	case *ast.IntConvExpr:
		v, err := in.eval(e.Expr, vars)
		if err != nil {
			return None, err
		}
		return toInt(e, v)
	case *ast.StrConvExpr:
		v, err := in.eval(e.Expr, vars)
		if err != nil {
			return None, err
		}
		return Str(v.String()), nil
	default:
		return None, runtimeErrorf(expr, "cannot evaluate %T", expr)
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr, vars env) (Value, error) {
	left, err := in.eval(e.Left, vars)
	if err != nil {
		return None, err
	}

	if e.Op == lexer.AND || e.Op == lexer.OR {
		lb, ok := left.AsBool()
		if !ok {
			return None, runtimeErrorf(e, "wrong operand type %s for '%s'", left.Kind(), e.Op)
		}
		if (e.Op == lexer.AND && !lb) || (e.Op == lexer.OR && lb) {
			return left, nil
		}
		right, err := in.eval(e.Right, vars)
		if err != nil {
			return None, err
		}
		if _, ok := right.AsBool(); !ok {
			return None, runtimeErrorf(e, "wrong operand type %s for '%s'", right.Kind(), e.Op)
		}
		return right, nil
	}

	right, err := in.eval(e.Right, vars)
	if err != nil {
		return None, err
	}
	return in.applyBinary(e, e.Op, left, right)
}

// applyBinary computes a strict binary operator. Division and remainder
// truncate toward zero.
func (in *Interpreter) applyBinary(at ast.Node, op lexer.TokenType, left, right Value) (Value, error) {
	ln, lok := left.AsInt()
	rn, rok := right.AsInt()
	ints := lok && rok

	switch op {
	case lexer.PLUS:
		if ints {
			return Int(ln + rn), nil
		}
		ls, lok := left.AsStr()
		rs, rok := right.AsStr()
		if lok && rok {
			return Str(ls + rs), nil
		}
	case lexer.MINUS:
		if ints {
			return Int(ln - rn), nil
		}
	case lexer.STAR:
		if ints {
			return Int(ln * rn), nil
		}
		if ls, ok := left.AsStr(); ok && rok {
			if rn <= 0 || ls == "" {
				return Str(""), nil
			}
			if rn > maxStringLen/len(ls) {
				return None, runtimeErrorf(at, "string repetition too large")
			}
			return Str(strings.Repeat(ls, rn)), nil
		}
	case lexer.SLASHSLASH, lexer.PERCENT:
		if ints {
			if rn == 0 {
				return None, runtimeErrorf(at, "division by zero")
			}
			if op == lexer.SLASHSLASH {
				return Int(ln / rn), nil
			}
			return Int(ln % rn), nil
		}
	case lexer.LT:
		if ints {
			return Bool(ln < rn), nil
		}
	case lexer.LEQ:
		if ints {
			return Bool(ln <= rn), nil
		}
	case lexer.GT:
		if ints {
			return Bool(ln > rn), nil
		}
	case lexer.GEQ:
		if ints {
			return Bool(ln >= rn), nil
		}
	case lexer.EQ:
		if ints {
			return Bool(ln == rn), nil
		}
	}
	return None, runtimeErrorf(at, "wrong operand types %s and %s for '%s'", left.Kind(), right.Kind(), op)
}

// evalInput writes the prompt and reads one whitespace-delimited word.
// At end of input the word is empty.
func (in *Interpreter) evalInput(e *ast.InputExpr, vars env) (Value, error) {
	v, err := in.eval(e.Prompt, vars)
	if err != nil {
		return None, err
	}
	prompt, ok := v.AsStr()
	if !ok {
		return None, runtimeErrorf(e, "prompt is %s, not str", v.Kind())
	}
	fmt.Fprint(in.out, prompt)
	if err := in.out.Flush(); err != nil {
		return None, runtimeErrorf(e, "writing prompt: %v", err)
	}

	word, err := in.readWord()
	if err != nil {
		return None, runtimeErrorf(e, "reading input: %v", err)
	}
	return Str(word), nil
}

func (in *Interpreter) readWord() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := in.in.ReadRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if isSpace(r) {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func toInt(at ast.Node, v Value) (Value, error) {
	if _, ok := v.AsInt(); ok {
		return v, nil
	}
	s, ok := v.AsStr()
	if !ok {
		return None, runtimeErrorf(at, "cannot convert %s to an int", v.Kind())
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return None, runtimeErrorf(at, "%q cannot be converted to an int", s)
	}
	return Int(n), nil
}
