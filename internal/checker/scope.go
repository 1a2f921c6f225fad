package checker

// SymbolInfo is an immutable binding of a name to its declared type
type SymbolInfo struct {
	Name string
	Type Type
}

// SymbolTable is a stack of scope frames. The bottom frame holds a
// definition's formal parameters; Mark pushes a frame per nested block.
type SymbolTable struct {
	frames []map[string]*SymbolInfo
}

// NewSymbolTable creates a table with a single, outermost frame
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		frames: []map[string]*SymbolInfo{make(map[string]*SymbolInfo)},
	}
}

// Mark begins a new lexical scope
func (s *SymbolTable) Mark() {
	s.frames = append(s.frames, make(map[string]*SymbolInfo))
}

// PopUntilMark ends the innermost scope opened by Mark. Popping the
// outermost frame means Mark and PopUntilMark are unbalanced, which is a
// bug in the checker rather than in the checked program.
func (s *SymbolTable) PopUntilMark() {
	if len(s.frames) <= 1 {
		panic("checker: PopUntilMark without matching Mark")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of active frames
func (s *SymbolTable) Depth() int {
	return len(s.frames)
}

// IsRedefining reports whether name is already bound in the innermost frame
func (s *SymbolTable) IsRedefining(name string) bool {
	_, ok := s.frames[len(s.frames)-1][name]
	return ok
}

// AddLocal binds name in the innermost frame. Callers check IsRedefining first.
func (s *SymbolTable) AddLocal(name string, t Type) {
	s.frames[len(s.frames)-1][name] = &SymbolInfo{Name: name, Type: t}
}

// HasInfo reports whether name is bound in any active frame
func (s *SymbolTable) HasInfo(name string) bool {
	return s.GetInfo(name) != nil
}

// GetInfo looks name up from the innermost frame outwards.
// Returns nil if the name is not bound.
func (s *SymbolTable) GetInfo(name string) *SymbolInfo {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if info, ok := s.frames[i][name]; ok {
			return info
		}
	}
	return nil
}
