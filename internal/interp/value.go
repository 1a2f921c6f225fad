package interp

import "strconv"

// Kind tags the dynamic type of a Value
type Kind int

const (
	NoneKind Kind = iota
	IntKind
	StrKind
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case StrKind:
		return "str"
	case BoolKind:
		return "bool"
	default:
		return "None"
	}
}

// Value is a runtime value. The zero Value is None.
type Value struct {
	kind Kind
	num  int
	str  string
	flag bool
}

// None is the only value of type None
var None = Value{}

func Int(n int) Value      { return Value{kind: IntKind, num: n} }
func Str(s string) Value   { return Value{kind: StrKind, str: s} }
func Bool(b bool) Value    { return Value{kind: BoolKind, flag: b} }
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer held by v, or false if v is not an int
func (v Value) AsInt() (int, bool) {
	return v.num, v.kind == IntKind
}

// AsStr returns the string held by v, or false if v is not a str
func (v Value) AsStr() (string, bool) {
	return v.str, v.kind == StrKind
}

// AsBool returns the boolean held by v, or false if v is not a bool
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == BoolKind
}

// String returns the printed form of v, as used by print and str()
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.Itoa(v.num)
	case StrKind:
		return v.str
	case BoolKind:
		if v.flag {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

// Equal reports whether v and other have the same kind and contents
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.num == other.num
	case StrKind:
		return v.str == other.str
	case BoolKind:
		return v.flag == other.flag
	default:
		return true
	}
}
