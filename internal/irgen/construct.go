package irgen

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

// genCall lowers a free-function call, or, when the callee name names a
// known class, rewrites into object-construction lowering.
func (g *Generator) genCall(c *ast.Call) ir.Value {
	if _, isClass := g.module.Structs[c.Name]; isClass {
		return g.genConstruct(c)
	}

	args := make([]ir.Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = g.genExpr(a)
	}
	retType := g.typeOf(c)
	dest := g.fn.NewTemp(retType)

	callee, ok := g.funcs[c.Name]
	if !ok {
		g.reportError(errors.IRG005, c.Pos, "call target %q does not resolve to a known function", c.Name)
		return dest
	}
	g.emit(ir.Instruction{Op: ir.OpCall, Dest: &dest, Op1: ir.TypeVal(mangledOf(callee)), Args: args})
	return dest
}

// methodSymbol is the call-target name for a method: ClassName_methodName.
// The compiled method function is emitted under this same name (see
// mangledOf in function.go) so call sites always resolve.
func methodSymbol(className, methodName string) string {
	return className + "_" + methodName
}

// genConstruct emits exactly the five-step object-construction sequence:
// sizeof, alloc_heap, bitcast, call the initializer with the new object as
// `this`, then the expression result is that object pointer.
func (g *Generator) genConstruct(c *ast.Call) ir.Value {
	classType := types.NewClass(c.Name)
	sizeVal := g.fn.NewTemp(types.NewScalar(types.Long))
	g.emit(ir.Instruction{Op: ir.OpSizeof, Dest: &sizeVal, Op1: ir.TypeVal(c.Name)})

	rawVal := g.fn.NewTemp(types.NewScalar(types.Char).PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAllocHeap, Dest: &rawVal, Op1: sizeVal})

	objVal := g.fn.NewTemp(classType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpBitcast, Dest: &objVal, Op1: rawVal, Op2: ir.TypeVal(classType.PointerTo().String())})

	args := make([]ir.Value, len(c.Args)+1)
	args[0] = objVal
	for i, a := range c.Args {
		args[i+1] = g.genExpr(a)
	}
	g.emit(ir.Instruction{Op: ir.OpCall, Op1: ir.TypeVal(c.Name), Args: args})

	return objVal
}

// genMethodCall lowers `obj.method(args)` to a call against the method's
// mangled name, with the receiver as the implicit first (`this`) argument.
func (g *Generator) genMethodCall(m *ast.MethodCall) ir.Value {
	objVal := g.genExpr(m.Object)
	objType := g.typeOf(m.Object)
	className := objType.Name
	if objType.IsPointer() {
		className = objType.Deref().Name
	}

	args := make([]ir.Value, len(m.Args)+1)
	args[0] = objVal
	for i, a := range m.Args {
		args[i+1] = g.genExpr(a)
	}

	retType := g.typeOf(m)
	dest := g.fn.NewTemp(retType)
	g.emit(ir.Instruction{Op: ir.OpCall, Dest: &dest, Op1: ir.TypeVal(methodSymbol(className, m.MethodName)), Args: args})
	return dest
}
