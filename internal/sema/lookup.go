package sema

import "github.com/alir-lang/alirc/internal/types"

// lookup resolves a name starting in scope and walking parents; when a
// class scope's own lookup fails, it walks the class's parent-name chain
// consulting each ancestor's inner scope; finally, it scans Enum symbols
// visible from scope for a matching member constant.
func (a *Analyzer) lookup(scope *types.Scope, name string) (*types.Symbol, bool) {
	for cur := scope; cur != nil; cur = cur.Parent {
		if sym, ok := cur.LookupLocal(name); ok {
			return sym, true
		}
		if cur.Role == types.ClassScope && cur.OwnerClass != nil {
			if sym, ok := a.lookupInherited(cur.OwnerClass, name); ok {
				return sym, true
			}
		}
	}
	return a.lookupEnumMember(scope, name)
}

// lookupInherited walks classSym.ParentName upward through a.classes,
// consulting each ancestor's inner scope directly (not the ancestor's own
// parent chain recursively through lookup, to avoid re-triggering the enum
// fallback at every level).
func (a *Analyzer) lookupInherited(classSym *types.Symbol, name string) (*types.Symbol, bool) {
	cur := classSym
	for cur.ParentName != "" {
		parent, ok := a.classes[cur.ParentName]
		if !ok || parent.Inner == nil {
			return nil, false
		}
		if sym, ok := parent.Inner.LookupLocal(name); ok {
			return sym, true
		}
		cur = parent
	}
	return nil, false
}

// lookupEnumMember is the third fallback: scan every Enum symbol visible
// from scope (lexically, via the normal parent chain) and return the first
// member whose name matches, so `RED` resolves without a `Color::` prefix
// when exactly one visible enum declares it (see DESIGN.md for the
// resolved open question on enum member scoping).
func (a *Analyzer) lookupEnumMember(scope *types.Scope, name string) (*types.Symbol, bool) {
	for cur := scope; cur != nil; cur = cur.Parent {
		for _, sym := range cur.Symbols() {
			if sym.Kind != types.EnumSymbol || sym.Inner == nil {
				continue
			}
			if member, ok := sym.Inner.LookupLocal(name); ok {
				return member, true
			}
		}
	}
	return nil, false
}

// classMember resolves a member name on a named class, walking the
// inheritance chain. Used for `obj.field`, `obj.method(...)`, and the
// implicit `this.field` form.
func (a *Analyzer) classMember(className, memberName string) (*types.Symbol, bool) {
	classSym, ok := a.classes[className]
	if !ok || classSym.Inner == nil {
		return nil, false
	}
	if sym, ok := classSym.Inner.LookupLocal(memberName); ok {
		return sym, true
	}
	return a.lookupInherited(classSym, memberName)
}

// enumMember resolves a member name on a named enum. Used for the
// qualified `Enum.Member` access form (the bare-name fallback goes through
// lookupEnumMember instead).
func (a *Analyzer) enumMember(enumName, memberName string) (*types.Symbol, bool) {
	enumSym, ok := a.enums[enumName]
	if !ok || enumSym.Inner == nil {
		return nil, false
	}
	return enumSym.Inner.LookupLocal(memberName)
}
