package checker

import (
	"github.com/dwislpy/dwislpy/internal/ast"
)

// Type is one of the four primitive DwiSlpy types. Equality is tag
// equality; there is no subtyping and no implicit coercion.
type Type int

// Builtin types
const (
	TypeInt Type = iota
	TypeStr
	TypeBool
	TypeNone
)

// String returns the source spelling of the type
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeStr:
		return "str"
	case TypeBool:
		return "bool"
	case TypeNone:
		return "None"
	default:
		return "<invalid>"
	}
}

// Equal checks if two types are equal
func (t Type) Equal(other Type) bool {
	return t == other
}

// ResolveType resolves a type annotation. A missing annotation (a
// procedure without "-> type") resolves to None.
func ResolveType(ref *ast.TypeRef) (Type, bool) {
	if ref == nil {
		return TypeNone, true
	}
	switch ref.Name {
	case "int":
		return TypeInt, true
	case "str":
		return TypeStr, true
	case "bool":
		return TypeBool, true
	case "None":
		return TypeNone, true
	default:
		return TypeNone, false
	}
}
