package irgen

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

func (g *Generator) lowerStmt(node ast.Node) {
	switch n := node.(type) {
	case *ast.VarDecl:
		g.lowerVarDecl(n)
	case *ast.Assign:
		g.lowerAssign(n)
	case *ast.Return:
		g.lowerReturn(n)
	case *ast.If:
		g.lowerIf(n)
	case *ast.While:
		g.lowerWhile(n)
	case *ast.Loop:
		g.lowerLoop(n)
	case *ast.ForIn:
		g.lowerForIn(n)
	case *ast.Switch:
		g.lowerSwitch(n)
	case *ast.Break:
		g.lowerBreak(n)
	case *ast.Continue:
		g.lowerContinue(n)
	case *ast.Emit:
		g.lowerEmit(n)
	case ast.Expr:
		g.genExpr(n)
	}
}

func (g *Generator) lowerVarDecl(v *ast.VarDecl) {
	if slot, ok := g.locals[v.Name]; ok && slot.inFluxCtx {
		// A flux capture already has its slot in the heap context.
		if v.Initializer != nil {
			val := g.genExpr(v.Initializer)
			g.emit(ir.Instruction{Op: ir.OpStore, Op1: val, Op2: g.addrOfName(v.Name, false)})
		}
		return
	}
	declType := g.irType(v.VarType)
	addr := g.fn.NewTemp(declType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &addr, Op1: ir.TypeVal(declType.String())})
	if v.Initializer != nil {
		val := g.genExpr(v.Initializer)
		g.emit(ir.Instruction{Op: ir.OpStore, Op1: val, Op2: addr})
	}
	g.locals[v.Name] = localSlot{addr: addr}
}

func (g *Generator) lowerAssign(asn *ast.Assign) {
	var addr ir.Value
	switch {
	case asn.Target != nil && asn.Index != nil:
		base := g.genExpr(asn.Target)
		index := g.genExpr(asn.Index)
		elemType := g.typeOf(asn.Value)
		dest := g.fn.NewTemp(elemType.PointerTo())
		g.emit(ir.Instruction{Op: ir.OpGetPtr, Dest: &dest, Op1: base, Op2: index})
		addr = dest
	case asn.Target != nil:
		addr = g.genAddr(asn.Target)
	default:
		addr = g.addrOfName(asn.Name, false)
	}
	val := g.genExpr(asn.Value)

	if asn.Op != ast.AssignSet {
		dstType := addr.ValType.Deref()
		cur := g.fn.NewTemp(dstType)
		g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &cur, Op1: addr})
		op := compoundOpcode(asn.Op, dstType.IsFloatingKind())
		dest := g.fn.NewTemp(dstType)
		g.emit(ir.Instruction{Op: op, Dest: &dest, Op1: cur, Op2: val})
		val = dest
	}
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: val, Op2: addr})
}

func compoundOpcode(op ast.AssignOp, float bool) ir.Opcode {
	switch op {
	case ast.AssignAdd:
		if float {
			return ir.OpFAdd
		}
		return ir.OpAdd
	case ast.AssignSub:
		if float {
			return ir.OpFSub
		}
		return ir.OpSub
	case ast.AssignMul:
		if float {
			return ir.OpFMul
		}
		return ir.OpMul
	case ast.AssignDiv:
		if float {
			return ir.OpFDiv
		}
		return ir.OpDiv
	default:
		return ir.OpAdd
	}
}

func (g *Generator) lowerReturn(r *ast.Return) {
	if fc := g.activeFlux; fc != nil {
		if r.Value != nil {
			g.genExpr(r.Value) // evaluated for side effects; a flux function's result channel is `emit`, not `return`
		}
		g.finishFlux(fc.layout)
		return
	}
	if r.Value == nil {
		g.emit(ir.Instruction{Op: ir.OpRet})
		return
	}
	val := g.genExpr(r.Value)
	g.emit(ir.Instruction{Op: ir.OpRet, Op1: val})
}

func (g *Generator) lowerIf(n *ast.If) {
	cond := g.genExpr(n.Cond)
	thenBlk := g.fn.NewBlock("if_then")
	mergeBlk := g.fn.NewBlock("if_merge")
	elseBlk := mergeBlk
	if n.ElseBody != nil {
		elseBlk = g.fn.NewBlock("if_else")
	}
	g.emit(ir.Instruction{Op: ir.OpCondi, Op1: cond, Op2: ir.LabelVal(thenBlk.Label), Args: []ir.Value{ir.LabelVal(elseBlk.Label)}})

	g.block = thenBlk
	g.lowerBlock(n.ThenBody)
	g.terminateJump(mergeBlk)

	if n.ElseBody != nil {
		g.block = elseBlk
		g.lowerBlock(n.ElseBody)
		g.terminateJump(mergeBlk)
	}

	g.block = mergeBlk
}

// terminateJump emits `jump target` unless the current block already has a
// terminator (an inner branch or return already closed it).
func (g *Generator) terminateJump(target *ir.BasicBlock) {
	if _, ok := g.block.Terminator(); ok {
		return
	}
	g.emit(ir.Instruction{Op: ir.OpJump, Op1: ir.LabelVal(target.Label)})
}

func (g *Generator) lowerWhile(n *ast.While) {
	condBlk := g.fn.NewBlock("while_cond")
	bodyBlk := g.fn.NewBlock("while_body")
	endBlk := g.fn.NewBlock("while_end")

	if n.IsDoWhile {
		g.terminateJump(bodyBlk)
	} else {
		g.terminateJump(condBlk)
	}

	g.block = condBlk
	cond := g.genExpr(n.Cond)
	g.emit(ir.Instruction{Op: ir.OpCondi, Op1: cond, Op2: ir.LabelVal(bodyBlk.Label), Args: []ir.Value{ir.LabelVal(endBlk.Label)}})

	g.block = bodyBlk
	g.pushLoop(endBlk, condBlk)
	g.lowerBlock(n.Body)
	g.popLoop()
	g.terminateJump(condBlk)

	g.block = endBlk
}

// lowerLoop handles both the bare infinite `loop { body }` and the counted
// form bounded by Iterations: an implicit counter alloca starting at 0,
// incremented once per iteration and tested against the bound before the
// body runs.
func (g *Generator) lowerLoop(n *ast.Loop) {
	if n.Iterations == nil {
		bodyBlk := g.fn.NewBlock("loop_body")
		endBlk := g.fn.NewBlock("loop_end")
		g.terminateJump(bodyBlk)

		g.block = bodyBlk
		g.pushLoop(endBlk, bodyBlk)
		g.lowerBlock(n.Body)
		g.popLoop()
		g.terminateJump(bodyBlk)

		g.block = endBlk
		return
	}

	intType := types.NewScalar(types.Int)
	bound := g.genExpr(n.Iterations)
	counterAddr := g.fn.NewTemp(intType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &counterAddr, Op1: ir.TypeVal(intType.String())})
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: ir.ConstIntVal(0, intType), Op2: counterAddr})

	condBlk := g.fn.NewBlock("loop_cond")
	bodyBlk := g.fn.NewBlock("loop_body")
	stepBlk := g.fn.NewBlock("loop_step")
	endBlk := g.fn.NewBlock("loop_end")
	g.terminateJump(condBlk)

	g.block = condBlk
	cur := g.fn.NewTemp(intType)
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &cur, Op1: counterAddr})
	cond := g.fn.NewTemp(types.NewScalar(types.Bool))
	g.emit(ir.Instruction{Op: ir.OpLt, Dest: &cond, Op1: cur, Op2: bound})
	g.emit(ir.Instruction{Op: ir.OpCondi, Op1: cond, Op2: ir.LabelVal(bodyBlk.Label), Args: []ir.Value{ir.LabelVal(endBlk.Label)}})

	g.block = bodyBlk
	g.pushLoop(endBlk, stepBlk)
	g.lowerBlock(n.Body)
	g.popLoop()
	g.terminateJump(stepBlk)

	g.block = stepBlk
	cur2 := g.fn.NewTemp(intType)
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &cur2, Op1: counterAddr})
	next := g.fn.NewTemp(intType)
	g.emit(ir.Instruction{Op: ir.OpAdd, Dest: &next, Op1: cur2, Op2: ir.ConstIntVal(1, intType)})
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: next, Op2: counterAddr})
	g.terminateJump(condBlk)

	g.block = endBlk
}

func (g *Generator) lowerForIn(n *ast.ForIn) {
	coll := g.genExpr(n.Collection)
	iterBlk := g.fn.NewBlock("for_init")
	g.terminateJump(iterBlk)
	g.block = iterBlk

	iterVal := g.fn.NewTemp(types.NewScalar(types.Unknown))
	g.emit(ir.Instruction{Op: ir.OpIterInit, Dest: &iterVal, Op1: coll})

	condBlk := g.fn.NewBlock("for_cond")
	bodyBlk := g.fn.NewBlock("for_body")
	endBlk := g.fn.NewBlock("for_end")
	g.terminateJump(condBlk)

	g.block = condBlk
	validVal := g.fn.NewTemp(types.NewScalar(types.Bool))
	g.emit(ir.Instruction{Op: ir.OpIterValid, Dest: &validVal, Op1: iterVal})
	g.emit(ir.Instruction{Op: ir.OpCondi, Op1: validVal, Op2: ir.LabelVal(bodyBlk.Label), Args: []ir.Value{ir.LabelVal(endBlk.Label)}})

	g.block = bodyBlk
	if slot, ok := g.locals[n.VarName]; ok && slot.inFluxCtx {
		elemVal := g.fn.NewTemp(n.IterType)
		g.emit(ir.Instruction{Op: ir.OpIterGet, Dest: &elemVal, Op1: iterVal})
		g.emit(ir.Instruction{Op: ir.OpStore, Op1: elemVal, Op2: g.addrOfName(n.VarName, false)})
	} else {
		elemAddr := g.fn.NewTemp(n.IterType.PointerTo())
		g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &elemAddr, Op1: ir.TypeVal(n.IterType.String())})
		elemVal := g.fn.NewTemp(n.IterType)
		g.emit(ir.Instruction{Op: ir.OpIterGet, Dest: &elemVal, Op1: iterVal})
		g.emit(ir.Instruction{Op: ir.OpStore, Op1: elemVal, Op2: elemAddr})
		g.locals[n.VarName] = localSlot{addr: elemAddr}
	}

	g.pushLoop(endBlk, condBlk)
	g.lowerBlock(n.Body)
	g.popLoop()

	nextVal := g.fn.NewTemp(types.NewScalar(types.Unknown))
	g.emit(ir.Instruction{Op: ir.OpIterNext, Dest: &nextVal, Op1: iterVal})
	g.terminateJump(condBlk)

	g.block = endBlk
}

// lowerSwitch allocates one block per case plus a default block, emits a
// `switch` with the case table, and chains fallthrough ("leak") cases into
// the next case block instead of jumping straight to switch end.
func (g *Generator) lowerSwitch(n *ast.Switch) {
	selector := g.genExpr(n.Condition)
	endBlk := g.fn.NewBlock("switch_end")

	caseBlocks := make([]*ir.BasicBlock, len(n.Cases))
	for i := range n.Cases {
		caseBlocks[i] = g.fn.NewBlock(caseLabel(i))
	}
	var defaultBlk *ir.BasicBlock
	if n.DefaultCase != nil {
		defaultBlk = g.fn.NewBlock("default")
	}

	var cases []ir.CaseEntry
	for i, c := range n.Cases {
		cases = append(cases, ir.CaseEntry{Value: g.constFold(c.Value), Label: caseBlocks[i].Label})
	}
	defaultLabel := endBlk.Label
	if defaultBlk != nil {
		defaultLabel = defaultBlk.Label
	}
	g.emit(ir.Instruction{Op: ir.OpSwitch, Op1: selector, Op2: ir.LabelVal(defaultLabel), Cases: cases})

	g.pushLoop(endBlk, nil) // break targets switch end; continue is invalid here
	for i, c := range n.Cases {
		g.block = caseBlocks[i]
		g.lowerBlock(c.Body)
		if c.IsLeak {
			target := endBlk
			if i+1 < len(caseBlocks) {
				target = caseBlocks[i+1]
			}
			g.terminateJump(target)
		} else {
			g.terminateJump(endBlk)
		}
	}
	if defaultBlk != nil {
		g.block = defaultBlk
		g.lowerBlock(n.DefaultCase)
		g.terminateJump(endBlk)
	}
	g.popLoop()

	g.block = endBlk
}

func caseLabel(i int) string {
	return fmt.Sprintf("case_%d", i+1)
}

// constFold evaluates a case label that must be known at compile time: an
// integer literal, a bare enum member, an `Enum.Member` access, or unary
// minus applied to any of those.
func (g *Generator) constFold(expr ast.Expr) int64 {
	switch n := expr.(type) {
	case *ast.Literal:
		if v, ok := n.Value.(int); ok {
			return int64(v)
		}
	case *ast.VarRef:
		if v, ok := g.enumConstant(n.Name); ok {
			return v.IntVal
		}
	case *ast.MemberAccess:
		if members, ok := g.module.Enums[enumTypeName(n.Object)]; ok {
			for _, m := range members {
				if m.Name == n.MemberName {
					return int64(m.Value)
				}
			}
		}
	case *ast.UnaryOp:
		if n.Op == "-" {
			return -g.constFold(n.Operand)
		}
	}
	return 0
}

// enumTypeName recovers the enum type name from the object side of an
// `Enum.Member` access, which parses as a bare VarRef naming the type.
func enumTypeName(obj ast.Expr) string {
	if ref, ok := obj.(*ast.VarRef); ok {
		return ref.Name
	}
	return ""
}

func (g *Generator) lowerBreak(n *ast.Break) {
	frame, ok := g.currentLoop()
	if !ok {
		g.sink.Warning(diag.SpanOf(n.Pos), errors.IRG003, "break with no enclosing loop or switch frame")
		return
	}
	g.emit(ir.Instruction{Op: ir.OpJump, Op1: ir.LabelVal(frame.breakTo.Label)})
}

func (g *Generator) lowerContinue(n *ast.Continue) {
	frame, ok := g.currentLoop()
	if !ok || frame.continueTo == nil {
		g.sink.Warning(diag.SpanOf(n.Pos), errors.IRG003, "continue with no enclosing loop frame")
		return
	}
	g.emit(ir.Instruction{Op: ir.OpJump, Op1: ir.LabelVal(frame.continueTo.Label)})
}
