package sema

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/types"
)

// scanProgram is Pass 1: walk top-level only, registering every function,
// class, enum, and namespace so that mutual references resolve regardless
// of source order. Function and method bodies are not visited here.
func (a *Analyzer) scanProgram(prog *ast.Program) {
	a.scanDecls(prog.Decls)
}

func (a *Analyzer) scanDecls(decls []ast.Node) {
	for _, d := range decls {
		a.scanDecl(d)
	}
}

func (a *Analyzer) scanDecl(node ast.Node) {
	switch n := node.(type) {
	case *ast.FuncDef:
		a.scanFunc(n)
	case *ast.Class:
		a.scanClass(n)
	case *ast.Enum:
		a.scanEnum(n)
	case *ast.Namespace:
		a.scanNamespace(n)
	}
}

func paramTypesOf(params []ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func (a *Analyzer) scanFunc(f *ast.FuncDef) {
	paramTypes := paramTypesOf(f.Params)
	f.MangledName = Mangle(f.Name, paramTypes)

	sym := &types.Symbol{Name: f.Name, Kind: types.FuncSymbol, Type: f.RetType, ParamTypes: paramTypes}
	if err := a.current.Define(sym); err != nil {
		a.reportError(errors.SEM002, f.Pos, "function %q already declared: %s", f.Name, err)
	}
	a.result.Functions = append(a.result.Functions, f)
}

func (a *Analyzer) scanClass(c *ast.Class) {
	inner := types.NewScope(types.ClassScope, a.current)
	classSym := &types.Symbol{
		Name:       c.Name,
		Kind:       types.ClassSymbol,
		Type:       types.NewClass(c.Name),
		ParentName: c.ParentName,
		Inner:      inner,
	}
	inner.OwnerClass = classSym

	if err := a.current.Define(classSym); err != nil {
		a.reportError(errors.SEM002, c.Pos, "class %q already declared: %s", c.Name, err)
	}
	a.classes[c.Name] = classSym

	saved := a.current
	a.current = inner
	for i := range c.Members {
		m := &c.Members[i]
		switch {
		case m.Var != nil:
			sym := &types.Symbol{
				Name:        m.Var.Name,
				Kind:        types.VarSymbol,
				Type:        m.Var.VarType,
				Mutable:     m.Var.IsMutable,
				Initialized: true,
			}
			if err := inner.Define(sym); err != nil {
				a.reportError(errors.SEM002, m.Var.Pos, "field %q already declared in class %q: %s", m.Var.Name, c.Name, err)
			}
		case m.Method != nil:
			m.Method.ClassName = c.Name
			paramTypes := paramTypesOf(m.Method.Params)
			m.Method.MangledName = Mangle(m.Method.Name, paramTypes)
			sym := &types.Symbol{Name: m.Method.Name, Kind: types.FuncSymbol, Type: m.Method.RetType, ParamTypes: paramTypes}
			if err := inner.Define(sym); err != nil {
				a.reportError(errors.SEM002, m.Method.Pos, "method %q already declared in class %q: %s", m.Method.Name, c.Name, err)
			}
			a.result.Functions = append(a.result.Functions, m.Method)
		}
	}
	a.current = saved
	a.result.Classes = append(a.result.Classes, c)
}

// scanEnum registers the enum symbol and each member as an integer-valued
// constant in the enum's inner scope. An entry with no explicit value gets
// the next sequential integer, C-style.
func (a *Analyzer) scanEnum(e *ast.Enum) {
	inner := types.NewScope(types.NamespaceScope, a.current)
	enumSym := &types.Symbol{Name: e.Name, Kind: types.EnumSymbol, Type: types.NewEnum(e.Name), Inner: inner}
	if err := a.current.Define(enumSym); err != nil {
		a.reportError(errors.SEM002, e.Pos, "enum %q already declared: %s", e.Name, err)
	}
	a.enums[e.Name] = enumSym

	next := 0
	for _, entry := range e.Entries {
		val := next
		if entry.Value != nil {
			val = *entry.Value
		}
		next = val + 1
		memberSym := &types.Symbol{
			Name: entry.Name, Kind: types.VarSymbol, Type: types.NewEnum(e.Name),
			Initialized: true, IsEnumMember: true, EnumValue: val,
		}
		if err := inner.Define(memberSym); err != nil {
			a.reportError(errors.SEM002, e.Pos, "enum member %q already declared in %q: %s", entry.Name, e.Name, err)
		}
	}
	a.result.Enums = append(a.result.Enums, e)
}

func (a *Analyzer) scanNamespace(n *ast.Namespace) {
	inner := types.NewScope(types.NamespaceScope, a.current)
	sym := &types.Symbol{Name: n.Name, Kind: types.NamespaceSymbol, Inner: inner}
	if err := a.current.Define(sym); err != nil {
		a.reportError(errors.SEM002, n.Pos, "namespace %q already declared: %s", n.Name, err)
	}

	saved := a.current
	a.current = inner
	a.scanDecls(n.Body)
	a.current = saved
}
