// ==============================================================================================
// FILE: scope/scope.go
// ==============================================================================================
// PACKAGE: scope
// PURPOSE: Symbol table for the checker and IR lowerer (C4). A Table is a stack of
//          insertion-ordered scopes; entering a block pushes a scope, leaving it pops one.
//          Shadowing is implicit: a lookup walks from the innermost scope outward and returns
//          the first match.
// ==============================================================================================

package scope

import "zen/ast"

// Kind distinguishes what a Symbol names.
type Kind int

const (
	KindValue Kind = iota
	KindFunction
	KindType
	KindStructType
	KindFunctionType
	KindBehavior
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	case KindStructType:
		return "struct-type"
	case KindFunctionType:
		return "function-type"
	case KindBehavior:
		return "behavior"
	default:
		return "unknown"
	}
}

// Symbol is one entry in a scope: a name bound to a kind, its static type
// (when it has one), and, for declared variables, whether it was declared
// mutable.
type Symbol struct {
	Name    string
	Kind    Kind
	Type    ast.Type
	Mutable bool
	Decl    ast.Node // the declaring AST node, for diagnostics
}

// scopeFrame is one level of the stack: an insertion-ordered map so that
// iteration (as exposed through CurrentNames) is deterministic.
type scopeFrame struct {
	order []string
	store map[string]*Symbol
}

func newFrame() *scopeFrame {
	return &scopeFrame{store: make(map[string]*Symbol)}
}

func (f *scopeFrame) insert(sym *Symbol) {
	if _, exists := f.store[sym.Name]; !exists {
		f.order = append(f.order, sym.Name)
	}
	f.store[sym.Name] = sym
}

// Table is a stack of lexical scopes rooted at a single global frame.
type Table struct {
	frames []*scopeFrame
}

// NewTable builds a table with just the global scope open.
func NewTable() *Table {
	return &Table{frames: []*scopeFrame{newFrame()}}
}

// Enter pushes a new, empty scope.
func (t *Table) Enter() {
	t.frames = append(t.frames, newFrame())
}

// Exit pops the innermost scope. Calling Exit on the global scope panics:
// that is a lowering/checking bug, never a user-facing condition.
func (t *Table) Exit() {
	if len(t.frames) == 1 {
		panic("scope: cannot exit the global scope")
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Depth reports how many scopes are currently open, the global scope
// counting as depth 1.
func (t *Table) Depth() int { return len(t.frames) }

// Insert binds sym in the innermost open scope, shadowing any outer
// binding of the same name. It does not check for redeclaration within
// the same scope; the checker does that before calling Insert so it can
// attach a proper diagnostic.
func (t *Table) Insert(sym *Symbol) {
	t.frames[len(t.frames)-1].insert(sym)
}

// Lookup searches from the innermost scope outward and returns the first
// match.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if sym, ok := t.frames[i].store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only the innermost scope, used to detect
// redeclaration within the same block.
func (t *Table) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := t.frames[len(t.frames)-1].store[name]
	return sym, ok
}

// LookupGlobal searches only the outermost (global) scope, used to resolve
// top-level declarations (functions, structs, enums, behaviors) regardless
// of how deeply nested the reference site is.
func (t *Table) LookupGlobal(name string) (*Symbol, bool) {
	sym, ok := t.frames[0].store[name]
	return sym, ok
}

// CurrentNames returns the names bound in the innermost scope, in
// insertion order.
func (t *Table) CurrentNames() []string {
	f := t.frames[len(t.frames)-1]
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
