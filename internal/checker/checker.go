package checker

import (
	"errors"

	"github.com/dwislpy/dwislpy/internal/ast"
	"github.com/dwislpy/dwislpy/internal/diagnostic"
)

// ParamInfo holds information about a formal parameter
type ParamInfo struct {
	Name string
	Type Type
}

// FuncInfo holds the signature and body of a definition
type FuncInfo struct {
	Name       string
	Params     []ParamInfo
	ReturnType Type
	Decl       *ast.FuncDef
}

// Defs maps definition names to their signatures. It is built once by
// BuildDefs before any body is checked and is read-only afterwards, so
// definitions may refer to each other in any order.
type Defs map[string]*FuncInfo

// Checker performs semantic analysis of one definition body or of the
// top-level script. Each Checker owns its symbol table.
type Checker struct {
	defs Defs
	symt *SymbolTable
}

func newChecker(defs Defs) *Checker {
	return &Checker{defs: defs, symt: NewSymbolTable()}
}

// BuildDefs collects the signature of every definition in prog.
func BuildDefs(prog *ast.Program) (Defs, error) {
	defs := make(Defs, len(prog.Defs))
	for _, fn := range prog.Defs {
		if _, exists := defs[fn.Name]; exists {
			return nil, errorf(ScopeError, fn, "'%s' is already defined", fn.Name)
		}

		retType, ok := ResolveType(fn.ReturnType)
		if !ok {
			return nil, errorf(TypeMismatch, fn.ReturnType, "unknown type '%s'", fn.ReturnType.Name)
		}

		info := &FuncInfo{Name: fn.Name, ReturnType: retType, Decl: fn}
		for _, p := range fn.Params {
			pt, ok := ResolveType(p.Type)
			if !ok {
				return nil, errorf(TypeMismatch, p.Type, "unknown type '%s'", p.Type.Name)
			}
			info.Params = append(info.Params, ParamInfo{Name: p.Name, Type: pt})
		}
		defs[fn.Name] = info
	}
	return defs, nil
}

// Check performs semantic analysis on a whole program. It returns nil if
// the program may be run, or the first *Error found.
func Check(prog *ast.Program) error {
	defs, err := BuildDefs(prog)
	if err != nil {
		return err
	}
	// source order keeps the reported error deterministic
	for _, fn := range prog.Defs {
		if err := CheckDefinition(defs[fn.Name], defs); err != nil {
			return err
		}
	}
	if prog.Main != nil {
		return CheckScript(prog.Main, defs)
	}
	return nil
}

// CheckDiagnostics runs Check and reports its outcome as diagnostics
func CheckDiagnostics(prog *ast.Program) *diagnostic.Diagnostics {
	diags := diagnostic.New()
	if err := Check(prog); err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			diags.Errorf(cerr.Line, cerr.Column, "%s", cerr.Message)
		} else {
			diags.Errorf(0, 0, "%s", err)
		}
	}
	return diags
}

// CheckDefinition checks a function or procedure body against its
// declared return type. Every path through the body must return.
func CheckDefinition(fn *FuncInfo, defs Defs) error {
	c := newChecker(defs)
	for i, p := range fn.Params {
		if c.symt.IsRedefining(p.Name) {
			return errorf(ScopeError, fn.Decl.Params[i], "parameter '%s' is declared twice", p.Name)
		}
		c.symt.AddLocal(p.Name, p.Type)
	}

	body := fn.Decl.Body
	rtns, err := c.checkBlock(body, Returns(fn.ReturnType))
	if err != nil {
		return err
	}

	switch rtns.Kind {
	case RtnsVoid:
		return errorf(ReturnShape, fn.Decl, "body of '%s' never returns", fn.Name)
	case RtnsVoidOr:
		return errorf(ReturnShape, fn.Decl, "body of '%s' might not return", fn.Name)
	}
	if !rtns.Type.Equal(fn.ReturnType) {
		return errorf(TypeMismatch, fn.Decl, "body of '%s' returns %s but should return %s",
			fn.Name, rtns.Type, fn.ReturnType)
	}
	return nil
}

// CheckScript checks the top-level statements, which must not return.
func CheckScript(main *ast.Block, defs Defs) error {
	c := newChecker(defs)
	rtns, err := c.checkBlock(main, Void())
	if err != nil {
		return err
	}
	if !rtns.IsVoid() {
		return errorf(ReturnShape, main, "script should not return")
	}
	return nil
}
