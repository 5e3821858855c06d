package irgen

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

// genAddr lowers an l-value expression to a pointer Value: the address to
// load from or store into. Enum member access is never an l-value — it
// reaches here only through caller misuse and returns an Unknown address.
func (g *Generator) genAddr(expr ast.Expr) ir.Value {
	switch n := expr.(type) {
	case *ast.VarRef:
		return g.addrOfName(n.Name, n.IsClassMember)
	case *ast.MemberAccess:
		return g.addrOfMember(n)
	case *ast.ArrayAccess:
		return g.addrOfArrayAccess(n)
	default:
		return g.genExpr(expr)
	}
}

// addrOfName resolves a bare identifier to its address: a captured field
// inside the flux context when lowering a resume body, otherwise its
// stack alloca. An implicit class-member reference loads `this` first.
func (g *Generator) addrOfName(name string, isClassMember bool) ir.Value {
	if slot, ok := g.locals[name]; ok {
		if slot.inFluxCtx {
			return g.getPtrField(g.ctxPointer(), slot.fieldIdx, slot.fieldType)
		}
		return slot.addr
	}
	if isClassMember || name == "this" {
		return g.addrOfMemberOnThis(name)
	}
	return ir.Value{Kind: ir.LocalRef, Name: name, ValType: g.typeOfName(name)}
}

func (g *Generator) typeOfName(name string) types.Type {
	if slot, ok := g.locals[name]; ok {
		if slot.inFluxCtx {
			return slot.fieldType
		}
		return slot.addr.ValType.Deref()
	}
	return types.NewScalar(types.Unknown)
}

// addrOfMemberOnThis handles an implicit `field` reference inside a
// method body: load `this`, then get_ptr this, idx.
func (g *Generator) addrOfMemberOnThis(name string) ir.Value {
	thisVal := g.loadLocal("this")
	className := thisVal.ValType.Deref().Name
	idx, ok := g.module.FieldIndex(className, name)
	if !ok {
		return ir.Value{Kind: ir.LocalRef, Name: name, ValType: types.NewScalar(types.Unknown)}
	}
	fieldType := g.fieldType(className, idx)
	return g.getPtrField(thisVal, idx, fieldType)
}

func (g *Generator) addrOfMember(m *ast.MemberAccess) ir.Value {
	baseType := g.typeOf(m.Object)
	base := g.genExpr(m.Object)
	className := baseType.Name
	if baseType.IsPointer() {
		className = baseType.Deref().Name
	}
	idx, ok := g.module.FieldIndex(className, m.MemberName)
	if !ok {
		g.reportError(errors.IRG002, m.Pos, "no field index for %s.%s", className, m.MemberName)
		return ir.Value{Kind: ir.LocalRef, Name: m.MemberName, ValType: types.NewScalar(types.Unknown)}
	}
	fieldType := g.fieldType(className, idx)
	return g.getPtrField(base, idx, fieldType)
}

func (g *Generator) addrOfArrayAccess(a *ast.ArrayAccess) ir.Value {
	base := g.genExpr(a.Target)
	index := g.genExpr(a.Index)
	elemType := g.typeOf(a)
	dest := g.fn.NewTemp(elemType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpGetPtr, Dest: &dest, Op1: base, Op2: index})
	return dest
}

func (g *Generator) getPtrField(base ir.Value, idx int, fieldType types.Type) ir.Value {
	dest := g.fn.NewTemp(fieldType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpGetPtr, Dest: &dest, Op1: base, Op2: ir.ConstIntVal(int64(idx), types.NewScalar(types.Int))})
	return dest
}

func (g *Generator) fieldType(className string, idx int) types.Type {
	for _, f := range g.module.Structs[className] {
		if f.Index == idx {
			return f.Type
		}
	}
	return types.NewScalar(types.Unknown)
}

func (g *Generator) loadLocal(name string) ir.Value {
	addr := g.addrOfName(name, false)
	t := g.typeOfName(name)
	dest := g.fn.NewTemp(t)
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: addr})
	return dest
}

// ctxPointer returns the flux context pointer value, bound to the local
// name "ctx" by lowerFlux before the resume body is lowered.
func (g *Generator) ctxPointer() ir.Value {
	return g.loadLocal("ctx")
}
