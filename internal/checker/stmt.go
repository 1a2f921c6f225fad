package checker

import (
	"fmt"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// checkBlock checks the statements of a block in their own scope and
// returns the sequential merge of their behaviors. Statements after one
// that always returns are not checked.
func (c *Checker) checkBlock(block *ast.Block, expd Rtns) (Rtns, error) {
	c.symt.Mark()
	defer c.symt.PopUntilMark()

	rtns := Void()
	for _, stmt := range block.Statements {
		stmtRtns, err := c.checkStatement(stmt, expd)
		if err != nil {
			return Void(), err
		}

		merged, stop, ok := MergeSequence(rtns, stmtRtns)
		if !ok {
			if stmtRtns.Kind == RtnsType {
				return Void(), errorf(TypeMismatch, stmt,
					"statement returns %s but an earlier statement might return %s", stmtRtns.Type, rtns.Type)
			}
			return Void(), errorf(TypeMismatch, stmt,
				"statements might return different types: %s and %s", rtns.Type, stmtRtns.Type)
		}
		rtns = merged
		if stop {
			break
		}
	}
	return rtns, nil
}

// checkStatement checks a statement
func (c *Checker) checkStatement(stmt ast.Statement, expd Rtns) (Rtns, error) {
	switch s := stmt.(type) {
	case *ast.IntroStmt:
		return Void(), c.checkIntroStmt(s)
	case *ast.AssignStmt:
		return Void(), c.checkAssignStmt(s)
	case *ast.CompoundAssignStmt:
		return Void(), c.checkCompoundAssignStmt(s)
	case *ast.PassStmt:
		return Void(), nil
	case *ast.PrintStmt:
		for _, arg := range s.Args {
			if _, err := c.checkExpression(arg); err != nil {
				return Void(), err
			}
		}
		return Void(), nil
	case *ast.CallStmt:
		_, err := c.checkCall(s, s.Name, s.Args)
		return Void(), err
	case *ast.ReturnStmt:
		return c.checkReturnStmt(s, expd)
	case *ast.IfStmt:
		return c.checkIfStmt(s, expd)
	case *ast.WhileStmt:
		if err := c.checkCondition(s.Condition, "while"); err != nil {
			return Void(), err
		}
		body, err := c.checkBlock(s.Body, expd)
		if err != nil {
			return Void(), err
		}
		return MergeLoop(body), nil
	case *ast.RepeatStmt:
		body, err := c.checkBlock(s.Body, expd)
		if err != nil {
			return Void(), err
		}
		// the condition sees the enclosing scope only
		if err := c.checkCondition(s.Condition, "until"); err != nil {
			return Void(), err
		}
		return MergeLoop(body), nil
	case *ast.Block:
		return c.checkBlock(s, expd)
	default:
		line, col := stmt.Pos()
		panic(fmt.Sprintf("checker: unhandled statement %T at %d:%d", stmt, line, col))
	}
}

// checkIntroStmt checks name: type = value
func (c *Checker) checkIntroStmt(stmt *ast.IntroStmt) error {
	if c.symt.IsRedefining(stmt.Name) {
		return errorf(ScopeError, stmt, "variable '%s' already introduced in this scope", stmt.Name)
	}

	declared, ok := ResolveType(stmt.Type)
	if !ok {
		return errorf(TypeMismatch, stmt.Type, "unknown type '%s'", stmt.Type.Name)
	}

	valueType, err := c.checkExpression(stmt.Value)
	if err != nil {
		return err
	}
	if !valueType.Equal(declared) {
		return errorf(TypeMismatch, stmt.Value,
			"cannot initialize '%s': expected %s, got %s", stmt.Name, declared, valueType)
	}

	c.symt.AddLocal(stmt.Name, declared)
	return nil
}

// checkAssignStmt checks name = value
func (c *Checker) checkAssignStmt(stmt *ast.AssignStmt) error {
	info := c.symt.GetInfo(stmt.Name)
	if info == nil {
		return errorf(ScopeError, stmt, "variable '%s' never introduced", stmt.Name)
	}

	valueType, err := c.checkExpression(stmt.Value)
	if err != nil {
		return err
	}
	if !valueType.Equal(info.Type) {
		return errorf(TypeMismatch, stmt.Value,
			"cannot assign to '%s': expected %s, got %s", stmt.Name, info.Type, valueType)
	}
	return nil
}

// checkCompoundAssignStmt checks += (int or str) and -= (int only)
func (c *Checker) checkCompoundAssignStmt(stmt *ast.CompoundAssignStmt) error {
	info := c.symt.GetInfo(stmt.Name)
	if info == nil {
		return errorf(ScopeError, stmt, "variable '%s' never introduced", stmt.Name)
	}

	valueType, err := c.checkExpression(stmt.Value)
	if err != nil {
		return err
	}

	switch {
	case info.Type == TypeInt && valueType == TypeInt:
		return nil
	case stmt.Op == lexer.PLUS_ASSIGN && info.Type == TypeStr && valueType == TypeStr:
		return nil
	}
	return errorf(TypeMismatch, stmt, "operator '%s' not defined for %s and %s", stmt.Op, info.Type, valueType)
}

// checkReturnStmt checks return and return value against the enclosing
// context: Void at top level, Type T inside a definition.
func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt, expd Rtns) (Rtns, error) {
	if expd.IsVoid() {
		return Void(), errorf(ReturnShape, stmt, "unexpected return")
	}
	want := expd.Type

	if stmt.Value == nil {
		if want != TypeNone {
			return Void(), errorf(ReturnShape, stmt, "return without a value, expected %s", want)
		}
		return Returns(TypeNone), nil
	}

	got, err := c.checkExpression(stmt.Value)
	if err != nil {
		return Void(), err
	}
	if want == TypeNone && got != TypeNone {
		return Void(), errorf(ReturnShape, stmt, "procedure does not return a value")
	}
	if !got.Equal(want) {
		return Void(), errorf(TypeMismatch, stmt.Value, "return type expected %s, got %s", want, got)
	}
	return Returns(want), nil
}

// checkIfStmt checks every condition, then merges the behaviors of all
// arms. A missing else counts as an empty arm.
func (c *Checker) checkIfStmt(stmt *ast.IfStmt, expd Rtns) (Rtns, error) {
	for i, clause := range stmt.Clauses {
		keyword := "if"
		if i > 0 {
			keyword = "elif"
		}
		if err := c.checkCondition(clause.Condition, keyword); err != nil {
			return Void(), err
		}
	}

	var merged Rtns
	for i, clause := range stmt.Clauses {
		arm, err := c.checkBlock(clause.Body, expd)
		if err != nil {
			return Void(), err
		}
		if i == 0 {
			merged = arm
			continue
		}
		if merged, err = mergeArm(merged, arm, clause); err != nil {
			return Void(), err
		}
	}

	if stmt.Else == nil {
		merged, _ = MergeBranch(merged, Void())
		return merged, nil
	}
	arm, err := c.checkBlock(stmt.Else, expd)
	if err != nil {
		return Void(), err
	}
	return mergeArm(merged, arm, stmt.Else)
}

func mergeArm(merged, arm Rtns, at ast.Node) (Rtns, error) {
	result, ok := MergeBranch(merged, arm)
	if !ok {
		return Void(), errorf(TypeMismatch, at, "branch returns %s but sibling returns %s", arm.Type, merged.Type)
	}
	return result, nil
}

// checkCondition requires cond to be a bool
func (c *Checker) checkCondition(cond ast.Expression, keyword string) error {
	t, err := c.checkExpression(cond)
	if err != nil {
		return err
	}
	if t != TypeBool {
		return errorf(TypeMismatch, cond, "condition of '%s' must be bool, got %s", keyword, t)
	}
	return nil
}
