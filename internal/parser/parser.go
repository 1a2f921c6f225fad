package parser

import (
	"strconv"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/diagnostic"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Program AST. Definitions may appear
// anywhere at top level; every other top-level statement joins the script.
func (p *Parser) Parse() *ast.Program {
	first := p.current()
	prog := &ast.Program{
		Main: &ast.Block{Line: first.Line, Column: first.Column},
	}

	for !p.check(lexer.EOF) {
		switch p.current().Type {
		case lexer.NEWLINE:
			p.advance()
		case lexer.DEF:
			prog.Defs = append(prog.Defs, p.parseFuncDef())
		case lexer.DEDENT:
			// only reachable after a bad dedent; the lexer already reported it
			p.advance()
		default:
			startPos := p.pos
			if stmt := p.parseStatement(); stmt != nil {
				prog.Main.Statements = append(prog.Main.Statements, stmt)
			}
			if p.pos == startPos {
				p.advance() // ensure forward progress to avoid infinite loop
			}
		}
	}
	return prog
}

// parseFuncDef parses: def <name>(<params>) [-> <type>]: <suite>
func (p *Parser) parseFuncDef() *ast.FuncDef {
	tok := p.expect(lexer.DEF)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	var retType *ast.TypeRef
	if p.match(lexer.ARROW) {
		retType = p.parseTypeRef()
	}
	p.expect(lexer.COLON)
	body := p.parseSuite()

	return &ast.FuncDef{
		Name:       name.Literal,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Line:       tok.Line,
		Column:     tok.Column,
	}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}
	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

// parseParam parses: <name>: <type>
func (p *Parser) parseParam() *ast.Param {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	paramType := p.parseTypeRef()
	return &ast.Param{
		Name:   name.Literal,
		Type:   paramType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseTypeRef parses one of int, str, bool or None
func (p *Parser) parseTypeRef() *ast.TypeRef {
	tok := p.current()
	switch tok.Type {
	case lexer.INT_TYPE, lexer.STR_TYPE, lexer.BOOL_TYPE, lexer.NONE:
		p.advance()
		return &ast.TypeRef{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	default:
		p.diags.Errorf(tok.Line, tok.Column, "expected a type (int, str, bool or None), got %s", describe(tok))
		return &ast.TypeRef{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
}

// parseSuite parses the indented block following a ':'
func (p *Parser) parseSuite() *ast.Block {
	if !p.match(lexer.NEWLINE) {
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "expected end of line after ':', got %s", describe(tok))
		p.synchronize()
	}

	tok := p.current()
	block := &ast.Block{Line: tok.Line, Column: tok.Column}
	if !p.match(lexer.INDENT) {
		p.diags.Errorf(tok.Line, tok.Column, "expected an indented block")
		return block
	}

	for !p.check(lexer.DEDENT) && !p.check(lexer.EOF) {
		startPos := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.DEDENT)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.current()
	switch tok.Type {
	case lexer.PASS:
		p.advance()
		p.expectEndOfLine()
		return &ast.PassStmt{Line: tok.Line, Column: tok.Column}
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.REPEAT:
		return p.parseRepeatStmt()
	case lexer.IDENT:
		return p.parseNameStmt()
	case lexer.INDENT:
		p.diags.ErrorWithHint(tok.Line, tok.Column, "unexpected indent",
			"only the body of def, if, elif, else, while and repeat is indented")
		p.skipIndentedBlock()
		return nil
	case lexer.DEF:
		p.diags.Errorf(tok.Line, tok.Column, "definitions are only allowed at top level")
		p.parseFuncDef()
		return nil
	default:
		p.diags.Errorf(tok.Line, tok.Column, "%s", unexpected(tok, "at start of statement"))
		startPos := p.pos
		p.synchronize()
		if p.pos == startPos && !p.check(lexer.EOF) && !p.check(lexer.DEDENT) {
			p.advance()
		}
		return nil
	}
}

// skipIndentedBlock discards a stray indented block, keeping INDENT and
// DEDENT balanced.
func (p *Parser) skipIndentedBlock() {
	p.expect(lexer.INDENT)
	for !p.check(lexer.DEDENT) && !p.check(lexer.EOF) {
		startPos := p.pos
		p.parseStatement()
		if p.pos == startPos {
			p.advance()
		}
	}
	p.match(lexer.DEDENT)
}

// parseNameStmt parses the statements that begin with a name:
// introduction, assignment, compound assignment and procedure call.
func (p *Parser) parseNameStmt() ast.Statement {
	name := p.advance()
	op := p.current()

	var stmt ast.Statement
	switch op.Type {
	case lexer.COLON:
		p.advance()
		varType := p.parseTypeRef()
		p.expect(lexer.ASSIGN)
		value := p.parseExpression()
		stmt = &ast.IntroStmt{Name: name.Literal, Type: varType, Value: value, Line: name.Line, Column: name.Column}
	case lexer.ASSIGN:
		p.advance()
		value := p.parseExpression()
		stmt = &ast.AssignStmt{Name: name.Literal, Value: value, Line: name.Line, Column: name.Column}
	case lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN:
		p.advance()
		value := p.parseExpression()
		stmt = &ast.CompoundAssignStmt{Name: name.Literal, Op: op.Type, Value: value, Line: name.Line, Column: name.Column}
	case lexer.LPAREN:
		p.advance()
		args := p.parseArgList()
		p.expect(lexer.RPAREN)
		stmt = &ast.CallStmt{Name: name.Literal, Args: args, Line: name.Line, Column: name.Column}
	default:
		p.diags.Errorf(op.Line, op.Column,
			"expected ':', '=', '+=', '-=' or '(' after '%s', got %s", name.Literal, describe(op))
		p.synchronize()
		return nil
	}
	p.expectEndOfLine()
	return stmt
}

// parsePrintStmt parses: print(<args>)
func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	tok := p.expect(lexer.PRINT)
	p.expect(lexer.LPAREN)
	args := p.parseArgList()
	p.expect(lexer.RPAREN)
	p.expectEndOfLine()
	return &ast.PrintStmt{Args: args, Line: tok.Line, Column: tok.Column}
}

// parseReturnStmt parses: return [<expr>]
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.expect(lexer.RETURN)
	stmt := &ast.ReturnStmt{Line: tok.Line, Column: tok.Column}
	if !p.check(lexer.NEWLINE) && !p.check(lexer.EOF) {
		stmt.Value = p.parseExpression()
	}
	p.expectEndOfLine()
	return stmt
}

// parseIfStmt parses: if <expr>: <suite> {elif <expr>: <suite>} [else: <suite>]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.expect(lexer.IF)
	stmt := &ast.IfStmt{Line: tok.Line, Column: tok.Column}
	stmt.Clauses = append(stmt.Clauses, p.parseCondClause(tok))

	for p.check(lexer.ELIF) {
		elifTok := p.advance()
		stmt.Clauses = append(stmt.Clauses, p.parseCondClause(elifTok))
	}

	if p.match(lexer.ELSE) {
		p.expect(lexer.COLON)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *Parser) parseCondClause(tok lexer.Token) *ast.CondClause {
	cond := p.parseExpression()
	p.expect(lexer.COLON)
	body := p.parseSuite()
	return &ast.CondClause{Condition: cond, Body: body, Line: tok.Line, Column: tok.Column}
}

// parseWhileStmt parses: while <expr>: <suite>
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.expect(lexer.WHILE)
	cond := p.parseExpression()
	p.expect(lexer.COLON)
	body := p.parseSuite()
	return &ast.WhileStmt{Condition: cond, Body: body, Line: tok.Line, Column: tok.Column}
}

// parseRepeatStmt parses: repeat: <suite> until <expr>
func (p *Parser) parseRepeatStmt() *ast.RepeatStmt {
	tok := p.expect(lexer.REPEAT)
	p.expect(lexer.COLON)
	body := p.parseSuite()
	p.expect(lexer.UNTIL)
	cond := p.parseExpression()
	p.expectEndOfLine()
	return &ast.RepeatStmt{Body: body, Condition: cond, Line: tok.Line, Column: tok.Column}
}

// Operator precedence levels, loosest first. "not" sits between "and" and
// the comparisons, as in Python.
const (
	precNone       = 0
	precOr         = 1
	precAnd        = 2
	precNot        = 3
	precComparison = 4
	precAdditive   = 5
	precMulti      = 6
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return precComparison
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASHSLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

// parseExpression parses a full expression, including the conditional
// form "<then> if <cond> else <else>".
func (p *Parser) parseExpression() ast.Expression {
	then := p.parsePrecedence(precOr)
	if !p.check(lexer.IF) {
		return then
	}
	tok := p.advance()
	cond := p.parsePrecedence(precOr)
	p.expect(lexer.ELSE)
	otherwise := p.parseExpression()
	return &ast.TernaryExpr{
		Then:   then,
		Cond:   cond,
		Else:   otherwise,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.parseOperand(minPrec)

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()
		right := p.parsePrecedence(prec + 1)
		left = &ast.BinaryExpr{
			Left:   left,
			Op:     op.Type,
			Right:  right,
			Line:   op.Line,
			Column: op.Column,
		}

		// comparisons do not chain
		if prec == precComparison && tokenPrecedence(p.current().Type) == precComparison {
			tok := p.current()
			p.diags.Errorf(tok.Line, tok.Column, "comparison operators cannot be chained")
		}
	}

	return left
}

// parseOperand parses "not" when the current level admits it, otherwise a
// unary expression.
func (p *Parser) parseOperand(minPrec int) ast.Expression {
	if p.check(lexer.NOT) && minPrec <= precNot {
		op := p.advance()
		operand := p.parsePrecedence(precNot)
		return &ast.UnaryExpr{
			Op:      op.Type,
			Operand: operand,
			Line:    op.Line,
			Column:  op.Column,
		}
	}
	return p.parseUnary()
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			Op:      op.Type,
			Operand: operand,
			Line:    op.Line,
			Column:  op.Column,
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		value, err := strconv.Atoi(tok.Literal)
		if err != nil {
			p.diags.Errorf(tok.Line, tok.Column, "integer literal %s is out of range", tok.Literal)
		}
		return &ast.IntLit{Value: value, Line: tok.Line, Column: tok.Column}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Line: tok.Line, Column: tok.Column}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Line: tok.Line, Column: tok.Column}
	case lexer.NONE:
		p.advance()
		return &ast.NoneLit{Line: tok.Line, Column: tok.Column}
	case lexer.IDENT:
		p.advance()
		if p.match(lexer.LPAREN) {
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			return &ast.CallExpr{Function: tok.Literal, Args: args, Line: tok.Line, Column: tok.Column}
		}
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.INPUT:
		prompt := p.parseBuiltinArg()
		return &ast.InputExpr{Prompt: prompt, Line: tok.Line, Column: tok.Column}
	case lexer.INT_TYPE:
		expr := p.parseBuiltinArg()
		return &ast.IntConvExpr{Expr: expr, Line: tok.Line, Column: tok.Column}
	case lexer.STR_TYPE:
		expr := p.parseBuiltinArg()
		return &ast.StrConvExpr{Expr: expr, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	default:
		p.diags.Errorf(tok.Line, tok.Column, "%s", unexpected(tok, "in expression"))
		if tok.Type != lexer.NEWLINE && tok.Type != lexer.EOF && tok.Type != lexer.DEDENT {
			p.advance()
		}
		return &ast.Identifier{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
}

// parseBuiltinArg parses the single parenthesized argument of input, int
// and str, starting at the builtin's keyword.
func (p *Parser) parseBuiltinArg() ast.Expression {
	p.advance()
	p.expect(lexer.LPAREN)
	expr := p.parseExpression()
	p.expect(lexer.RPAREN)
	return expr
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}
