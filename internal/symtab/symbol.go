// Package symtab implements the process-scoped symbol table: a flat
// mapping from canonical identifier to Symbol, plus the
// identifier-attribute sum type that records linkage and storage
// information.
//
// DESIGN CHOICE: a flat map, not a scope-attached tree. Every name the
// symbol table sees is already canonical and globally unique, so there is
// no scoping left to represent here; that's the resolver's job
// (internal/resolver), not this package's.
package symtab

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hassan/cc-semant/internal/staticinit"
	"github.com/hassan/cc-semant/internal/types"
)

// IdentifierAttr is a symbol's linkage/storage attributes: FunAttr,
// StaticAttr, or LocalAttr.
type IdentifierAttr interface {
	String() string
	identifierAttrNode()
}

// FunAttr records a function symbol's definedness and linkage.
type FunAttr struct {
	IsDefined bool
	IsGlobal  bool
}

func (FunAttr) identifierAttrNode() {}
func (FunAttr) String() string      { return "FunAttr" }

// StaticAttr records a file-scope or static block-scope object's linkage
// and initial value.
type StaticAttr struct {
	IsGlobal bool
	Init     staticinit.InitialValue
}

func (StaticAttr) identifierAttrNode() {}
func (StaticAttr) String() string      { return "StaticAttr" }

// LocalAttr marks an ordinary automatic variable or parameter: the type
// alone carries all the information the rest of the pass needs.
type LocalAttr struct{}

func (LocalAttr) identifierAttrNode() {}
func (LocalAttr) String() string      { return "LocalAttr" }

// Symbol is one symbol-table entry: a type plus its attributes.
type Symbol struct {
	Type  types.Type
	Attrs IdentifierAttr
}

// SymbolTable is the global canonical-identifier -> Symbol mapping.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// New creates an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Put inserts or replaces the symbol bound to name.
func (t *SymbolTable) Put(name string, sym *Symbol) {
	t.symbols[name] = sym
}

// Get looks up name, returning (nil, false) if absent.
func (t *SymbolTable) Get(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// Contains reports whether name is bound.
func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

// Reset clears every entry. Used by the driver between independent
// Analyze calls.
func (t *SymbolTable) Reset() {
	t.symbols = make(map[string]*Symbol)
}

// Len reports how many symbols are currently bound.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// SortedNames returns every bound canonical identifier in sorted order, for
// deterministic debug output (Go's map iteration order is randomized, and
// dump-symbols output needs to be reproducible across runs).
func (t *SymbolTable) SortedNames() []string {
	names := maps.Keys(t.symbols)
	slices.Sort(names)
	return names
}
