package checker

import "fmt"

// RtnsKind classifies the return behavior of a statement or block
type RtnsKind int

const (
	// RtnsVoid never returns a value on any path
	RtnsVoid RtnsKind = iota
	// RtnsType returns a value of Rtns.Type on every path
	RtnsType
	// RtnsVoidOr returns Rtns.Type on some paths and falls through on others
	RtnsVoidOr
)

// Rtns is the return behavior computed for every statement and block.
// Type is meaningful only when Kind is not RtnsVoid.
type Rtns struct {
	Kind RtnsKind
	Type Type
}

// Void is the behavior of a statement that never returns
func Void() Rtns { return Rtns{Kind: RtnsVoid} }

// Returns is the behavior of a statement that always returns t
func Returns(t Type) Rtns { return Rtns{Kind: RtnsType, Type: t} }

// VoidOr is the behavior of a statement that may return t
func VoidOr(t Type) Rtns { return Rtns{Kind: RtnsVoidOr, Type: t} }

func (r Rtns) String() string {
	switch r.Kind {
	case RtnsVoid:
		return "Void"
	case RtnsType:
		return fmt.Sprintf("Type %s", r.Type)
	case RtnsVoidOr:
		return fmt.Sprintf("VoidOr %s", r.Type)
	default:
		return "<invalid>"
	}
}

// Equal compares two behaviors, ignoring Type for Void
func (r Rtns) Equal(other Rtns) bool {
	if r.Kind != other.Kind {
		return false
	}
	return r.Kind == RtnsVoid || r.Type == other.Type
}

// IsVoid reports whether r is Void
func (r Rtns) IsVoid() bool { return r.Kind == RtnsVoid }

// MergeSequence folds the behavior of the next statement of a block into
// the behavior accumulated so far. stop is true when next always returns,
// in which case the rest of the block must not be checked. ok is false
// when next returns a different type than an earlier statement might.
func MergeSequence(acc, next Rtns) (merged Rtns, stop bool, ok bool) {
	switch next.Kind {
	case RtnsType:
		if acc.Kind != RtnsVoid && acc.Type != next.Type {
			return acc, true, false
		}
		return next, true, true
	case RtnsVoidOr:
		if acc.Kind == RtnsVoid {
			return next, false, true
		}
		if acc.Type != next.Type {
			return acc, false, false
		}
		return acc, false, true
	default:
		return acc, false, true
	}
}

// MergeBranch combines the behaviors of two arms of a conditional. The
// result is Type T only when both arms are Type T; a Void arm downgrades
// its sibling to VoidOr. ok is false when both arms return values of
// different types.
func MergeBranch(a, b Rtns) (Rtns, bool) {
	if a.Kind == RtnsVoid && b.Kind == RtnsVoid {
		return Void(), true
	}
	if a.Kind == RtnsVoid {
		return VoidOr(b.Type), true
	}
	if b.Kind == RtnsVoid {
		return VoidOr(a.Type), true
	}
	if a.Type != b.Type {
		return a, false
	}
	if a.Kind == RtnsType && b.Kind == RtnsType {
		return a, true
	}
	return VoidOr(a.Type), true
}

// MergeLoop gives the behavior of a loop whose body behaves as body.
// The body may run zero times, so a returning body only makes the loop
// VoidOr. repeat-until uses the same rule.
func MergeLoop(body Rtns) Rtns {
	if body.Kind == RtnsVoid {
		return Void()
	}
	return VoidOr(body.Type)
}
