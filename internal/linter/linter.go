package linter

import (
	"unicode"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/diagnostic"
)

// Linter performs style and best-practice checks on an AST program.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog *ast.Program
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given program and returns diagnostics
// ordered by position.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog: prog,
		diag: diagnostic.New(),
	}

	l.lintDefinitions()
	l.lintScript()

	l.diag.Sort()
	return l.diag
}

// lintDefinitions checks every function and procedure.
func (l *Linter) lintDefinitions() {
	for _, fn := range l.prog.Defs {
		l.checkPassOnlyBody(fn)
		l.checkDefinitionNaming(fn)

		if fn.Body != nil {
			usedNames := l.collectUsedNames(fn.Body.Statements)
			l.checkUnusedParams(fn.Name, fn.Params, usedNames)
			l.checkUnusedVariables(fn.Body.Statements, usedNames)
			l.checkUnreachable(fn.Body)
		}
	}
}

// lintScript checks the top-level statements.
func (l *Linter) lintScript() {
	main := l.prog.Main
	if main == nil {
		return
	}
	usedNames := l.collectUsedNames(main.Statements)
	// definitions cannot see script variables, so only the script's reads count
	l.checkUnusedVariables(main.Statements, usedNames)
	l.checkUnreachable(main)
}

// --- Lint rules ---

func kindOf(fn *ast.FuncDef) string {
	if fn.IsProcedure() {
		return "procedure"
	}
	return "function"
}

// checkPassOnlyBody warns if a definition does nothing but pass.
func (l *Linter) checkPassOnlyBody(fn *ast.FuncDef) {
	if fn.Body == nil {
		return
	}
	for _, stmt := range fn.Body.Statements {
		if _, ok := stmt.(*ast.PassStmt); !ok {
			return
		}
	}
	l.diag.Warningf(fn.Line, fn.Column, "%s '%s' has an empty body", kindOf(fn), fn.Name)
}

// checkDefinitionNaming warns if a definition name is not snake_case.
func (l *Linter) checkDefinitionNaming(fn *ast.FuncDef) {
	if !isSnakeCase(fn.Name) {
		l.diag.Warningf(fn.Line, fn.Column,
			"%s '%s' should use snake_case naming", kindOf(fn), fn.Name)
	}
}

// checkUnusedParams warns about parameters that are never read in the body.
func (l *Linter) checkUnusedParams(scopeName string, params []*ast.Param, usedNames map[string]bool) {
	for _, p := range params {
		if !usedNames[p.Name] {
			l.diag.Warningf(p.Line, p.Column,
				"parameter '%s' in '%s' is never used", p.Name, scopeName)
		}
	}
}

// checkUnusedVariables warns about introduced variables that are never read.
func (l *Linter) checkUnusedVariables(stmts []ast.Statement, usedNames map[string]bool) {
	for _, stmt := range stmts {
		if intro, ok := stmt.(*ast.IntroStmt); ok && !usedNames[intro.Name] {
			l.diag.WarningWithHint(intro.Line, intro.Column,
				"variable '"+intro.Name+"' is introduced but never used",
				"remove it, or read it somewhere")
		}
		for _, block := range nestedBlocks(stmt) {
			l.checkUnusedVariables(block.Statements, usedNames)
		}
	}
}

// checkUnreachable warns about the first statement following a return in
// each block.
func (l *Linter) checkUnreachable(block *ast.Block) {
	for i, stmt := range block.Statements {
		for _, nested := range nestedBlocks(stmt) {
			l.checkUnreachable(nested)
		}
		if _, ok := stmt.(*ast.ReturnStmt); ok && i+1 < len(block.Statements) {
			next := block.Statements[i+1]
			line, col := next.Pos()
			l.diag.Warningf(line, col, "unreachable statement after return")
			return
		}
	}
}

// nestedBlocks returns the blocks directly owned by stmt.
func nestedBlocks(stmt ast.Statement) []*ast.Block {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		blocks := make([]*ast.Block, 0, len(s.Clauses)+1)
		for _, clause := range s.Clauses {
			blocks = append(blocks, clause.Body)
		}
		if s.Else != nil {
			blocks = append(blocks, s.Else)
		}
		return blocks
	case *ast.WhileStmt:
		return []*ast.Block{s.Body}
	case *ast.RepeatStmt:
		return []*ast.Block{s.Body}
	case *ast.Block:
		return []*ast.Block{s}
	default:
		return nil
	}
}

// --- Name collection helpers ---

// collectUsedNames walks all expressions in a slice of statements and collects
// all identifier names that are read (referenced). This is used to detect
// unused variables and parameters.
func (l *Linter) collectUsedNames(stmts []ast.Statement) map[string]bool {
	used := make(map[string]bool)
	for _, stmt := range stmts {
		l.collectUsedNamesFromStmt(stmt, used)
	}
	return used
}

func (l *Linter) collectUsedNamesFromStmt(stmt ast.Statement, used map[string]bool) {
	switch s := stmt.(type) {
	case *ast.IntroStmt:
		// The initializer expression reads names, but the introduced name is not a read
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.AssignStmt:
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.CompoundAssignStmt:
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.PrintStmt:
		l.collectUsedNamesFromExprs(s.Args, used)
	case *ast.CallStmt:
		l.collectUsedNamesFromExprs(s.Args, used)
	case *ast.ReturnStmt:
		if s.Value != nil {
			l.collectUsedNamesFromExpr(s.Value, used)
		}
	case *ast.IfStmt:
		for _, clause := range s.Clauses {
			l.collectUsedNamesFromExpr(clause.Condition, used)
		}
	case *ast.WhileStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
	case *ast.RepeatStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
	}
	for _, block := range nestedBlocks(stmt) {
		for _, inner := range block.Statements {
			l.collectUsedNamesFromStmt(inner, used)
		}
	}
}

func (l *Linter) collectUsedNamesFromExprs(exprs []ast.Expression, used map[string]bool) {
	for _, e := range exprs {
		l.collectUsedNamesFromExpr(e, used)
	}
}

func (l *Linter) collectUsedNamesFromExpr(expr ast.Expression, used map[string]bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Name] = true
	case *ast.BinaryExpr:
		l.collectUsedNamesFromExpr(e.Left, used)
		l.collectUsedNamesFromExpr(e.Right, used)
	case *ast.UnaryExpr:
		l.collectUsedNamesFromExpr(e.Operand, used)
	case *ast.TernaryExpr:
		l.collectUsedNamesFromExpr(e.Then, used)
		l.collectUsedNamesFromExpr(e.Cond, used)
		l.collectUsedNamesFromExpr(e.Else, used)
	case *ast.CallExpr:
		l.collectUsedNamesFromExprs(e.Args, used)
	case *ast.InputExpr:
		l.collectUsedNamesFromExpr(e.Prompt, used)
	case *ast.IntConvExpr:
		l.collectUsedNamesFromExpr(e.Expr, used)
	case *ast.StrConvExpr:
		l.collectUsedNamesFromExpr(e.Expr, used)
	}
}

// --- Naming convention helpers ---

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
