package types

import "fmt"

// ScopeRole is the kind of lexical region a Scope represents.
type ScopeRole int

const (
	GlobalScope ScopeRole = iota
	BlockScope
	FunctionScope
	ClassScope
	NamespaceScope
)

// Scope is a node in the scope tree. Symbols are kept in insertion order
// (visible for diagnostics: "did you mean one of the names declared so
// far?") in addition to a name index for O(1) local lookup.
type Scope struct {
	Role   ScopeRole
	Parent *Scope

	order []*Symbol
	byName map[string]*Symbol

	// ReturnType is set on FunctionScope to the function's declared return
	// type, consulted when checking `return` statements.
	ReturnType *Type

	// OwnerClass is set on ClassScope to the class symbol this scope
	// belongs to, so lookup can walk OwnerClass.ParentName upward.
	OwnerClass *Symbol
}

// NewScope creates a scope as a child of parent (nil for the global scope).
func NewScope(role ScopeRole, parent *Scope) *Scope {
	return &Scope{
		Role:   role,
		Parent: parent,
		byName: make(map[string]*Symbol),
	}
}

// Define inserts sym into the scope. It returns an error if a symbol with
// the same name already exists in this exact scope (redeclaration); it does
// not consult parent scopes, so an inner scope may shadow an outer one.
func (s *Scope) Define(sym *Symbol) error {
	if _, exists := s.byName[sym.Name]; exists {
		return fmt.Errorf("%q already declared in this scope", sym.Name)
	}
	s.byName[sym.Name] = sym
	s.order = append(s.order, sym)
	return nil
}

// LookupLocal returns the symbol named name defined directly in s, without
// consulting parent scopes.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.byName[name]
	return sym, ok
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Names returns the declared names in insertion order, used for did-you-mean
// suggestions.
func (s *Scope) Names() []string {
	names := make([]string, len(s.order))
	for i, sym := range s.order {
		names[i] = sym.Name
	}
	return names
}

// EnclosingFunction walks up from s to the nearest FunctionScope, returning
// nil if none exists (e.g. a top-level initializer).
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Role == FunctionScope {
			return cur
		}
	}
	return nil
}
