package ast

import "github.com/dwislpy/dwislpy/internal/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Program represents an entire DwiSlpy source file: the definitions in
// source order followed by the top-level script.
type Program struct {
	Defs []*FuncDef
	Main *Block
}

func (p *Program) Pos() (int, int) {
	if len(p.Defs) > 0 {
		return p.Defs[0].Pos()
	}
	if p.Main != nil {
		return p.Main.Pos()
	}
	return 0, 0
}

// FuncDef represents a function or procedure definition.
// ReturnType is nil when the definition omits "-> type".
type FuncDef struct {
	Name       string
	Params     []*Param
	ReturnType *TypeRef
	Body       *Block
	Line       int
	Column     int
}

func (f *FuncDef) Pos() (int, int) { return f.Line, f.Column }

// IsProcedure reports whether the definition returns None.
func (f *FuncDef) IsProcedure() bool {
	return f.ReturnType == nil || f.ReturnType.Name == "None"
}

// Param represents a formal parameter
type Param struct {
	Name   string
	Type   *TypeRef
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }

// TypeRef represents a type annotation: int, str, bool or None
type TypeRef struct {
	Name   string
	Line   int
	Column int
}

func (t *TypeRef) Pos() (int, int) { return t.Line, t.Column }

// Block represents an indented suite of statements
type Block struct {
	Statements []Statement
	Line       int
	Column     int
}

func (b *Block) Pos() (int, int) { return b.Line, b.Column }
func (b *Block) stmtNode()       {}

// IntroStmt introduces a new variable: name: type = value
type IntroStmt struct {
	Name   string
	Type   *TypeRef
	Value  Expression
	Line   int
	Column int
}

func (s *IntroStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *IntroStmt) stmtNode()       {}

// AssignStmt represents name = value
type AssignStmt struct {
	Name   string
	Value  Expression
	Line   int
	Column int
}

func (s *AssignStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *AssignStmt) stmtNode()       {}

// CompoundAssignStmt represents name += value and name -= value.
// Op is lexer.PLUS_ASSIGN or lexer.MINUS_ASSIGN.
type CompoundAssignStmt struct {
	Name   string
	Op     lexer.TokenType
	Value  Expression
	Line   int
	Column int
}

func (s *CompoundAssignStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *CompoundAssignStmt) stmtNode()       {}

// PassStmt represents pass
type PassStmt struct {
	Line   int
	Column int
}

func (s *PassStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *PassStmt) stmtNode()       {}

// PrintStmt represents print(args...)
type PrintStmt struct {
	Args   []Expression
	Line   int
	Column int
}

func (s *PrintStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *PrintStmt) stmtNode()       {}

// CondClause is one "if" or "elif" arm of an IfStmt
type CondClause struct {
	Condition Expression
	Body      *Block
	Line      int
	Column    int
}

func (c *CondClause) Pos() (int, int) { return c.Line, c.Column }

// IfStmt represents an if/elif/else chain. Clauses holds the "if" arm
// followed by every "elif" arm; Else is nil when there is no else.
type IfStmt struct {
	Clauses []*CondClause
	Else    *Block
	Line    int
	Column  int
}

func (s *IfStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *IfStmt) stmtNode()       {}

// WhileStmt represents a while loop
type WhileStmt struct {
	Condition Expression
	Body      *Block
	Line      int
	Column    int
}

func (s *WhileStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *WhileStmt) stmtNode()       {}

// RepeatStmt represents repeat: body until condition
type RepeatStmt struct {
	Body      *Block
	Condition Expression
	Line      int
	Column    int
}

func (s *RepeatStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *RepeatStmt) stmtNode()       {}

// ReturnStmt represents return [value]. Value is nil for a bare return.
type ReturnStmt struct {
	Value  Expression
	Line   int
	Column int
}

func (s *ReturnStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *ReturnStmt) stmtNode()       {}

// CallStmt represents a procedure call used as a statement
type CallStmt struct {
	Name   string
	Args   []Expression
	Line   int
	Column int
}

func (s *CallStmt) Pos() (int, int) { return s.Line, s.Column }
func (s *CallStmt) stmtNode()       {}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Left   Expression
	Op     lexer.TokenType
	Right  Expression
	Line   int
	Column int
}

func (e *BinaryExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *BinaryExpr) exprNode()       {}

// UnaryExpr represents "-" or "not" applied to an operand
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	Line    int
	Column  int
}

func (e *UnaryExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *UnaryExpr) exprNode()       {}

// TernaryExpr represents then if cond else otherwise
type TernaryExpr struct {
	Then   Expression
	Cond   Expression
	Else   Expression
	Line   int
	Column int
}

func (e *TernaryExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *TernaryExpr) exprNode()       {}

// CallExpr represents a function call used as a value
type CallExpr struct {
	Function string
	Args     []Expression
	Line     int
	Column   int
}

func (e *CallExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *CallExpr) exprNode()       {}

// InputExpr represents input(prompt)
type InputExpr struct {
	Prompt Expression
	Line   int
	Column int
}

func (e *InputExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *InputExpr) exprNode()       {}

// IntConvExpr represents int(expr)
type IntConvExpr struct {
	Expr   Expression
	Line   int
	Column int
}

func (e *IntConvExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *IntConvExpr) exprNode()       {}

// StrConvExpr represents str(expr)
type StrConvExpr struct {
	Expr   Expression
	Line   int
	Column int
}

func (e *StrConvExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *StrConvExpr) exprNode()       {}

// Identifier represents a variable reference
type Identifier struct {
	Name   string
	Line   int
	Column int
}

func (e *Identifier) Pos() (int, int) { return e.Line, e.Column }
func (e *Identifier) exprNode()       {}

// IntLit represents an integer literal
type IntLit struct {
	Value  int
	Line   int
	Column int
}

func (e *IntLit) Pos() (int, int) { return e.Line, e.Column }
func (e *IntLit) exprNode()       {}

// StringLit represents a string literal. Value holds the decoded contents.
type StringLit struct {
	Value  string
	Line   int
	Column int
}

func (e *StringLit) Pos() (int, int) { return e.Line, e.Column }
func (e *StringLit) exprNode()       {}

// BoolLit represents True or False
type BoolLit struct {
	Value  bool
	Line   int
	Column int
}

func (e *BoolLit) Pos() (int, int) { return e.Line, e.Column }
func (e *BoolLit) exprNode()       {}

// NoneLit represents None
type NoneLit struct {
	Line   int
	Column int
}

func (e *NoneLit) Pos() (int, int) { return e.Line, e.Column }
func (e *NoneLit) exprNode()       {}
