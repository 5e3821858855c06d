package irgen

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

// fluxLayout is the field plan for one coroutine's context struct: state
// and finished and result always occupy indices 0-2, followed by `this`
// (methods only), then parameters, then every captured local.
type fluxLayout struct {
	structName string
	fields     []ir.Field
	fieldIdx   map[string]int // field name -> field index, state/finished/result included
}

const (
	fluxFieldState    = 0
	fluxFieldFinished = 1
	fluxFieldResult   = 2
)

func fluxStructName(f *ast.FuncDef) string {
	return "FluxCtx_" + f.Name
}

// captureInfo is one variable the capture-collection pre-pass found: its
// name and declared type, so the context struct can give it a properly
// typed field instead of a placeholder.
type captureInfo struct {
	name string
	typ  types.Type
}

// collectCaptures walks a flux body and enumerates every variable that
// needs a context slot: every variable declared anywhere in the body
// (regardless of nesting) and the induction variable of every for-in.
// Parameters and `this` are added by the caller, not here.
func collectCaptures(body []ast.Node) []captureInfo {
	var caps []captureInfo
	seen := make(map[string]bool)
	add := func(n string, t types.Type) {
		if !seen[n] {
			seen[n] = true
			caps = append(caps, captureInfo{name: n, typ: t})
		}
	}
	var walkStmts func([]ast.Node)
	var walkStmt func(ast.Node)
	walkStmt = func(node ast.Node) {
		switch n := node.(type) {
		case *ast.VarDecl:
			add(n.Name, n.VarType)
		case *ast.ForIn:
			add(n.VarName, n.IterType)
			walkStmts(n.Body)
		case *ast.If:
			walkStmts(n.ThenBody)
			walkStmts(n.ElseBody)
		case *ast.While:
			walkStmts(n.Body)
		case *ast.Loop:
			walkStmts(n.Body)
		case *ast.Switch:
			for _, c := range n.Cases {
				walkStmts(c.Body)
			}
			walkStmts(n.DefaultCase)
		}
	}
	walkStmts = func(stmts []ast.Node) {
		for _, s := range stmts {
			walkStmt(s)
		}
	}
	walkStmts(body)
	return caps
}

// buildFluxLayout lays out the context struct: state, finished, result,
// then `this` if a method, then parameters, then captures — in that
// order, each dense from index 0.
func (g *Generator) buildFluxLayout(f *ast.FuncDef, captures []captureInfo) fluxLayout {
	layout := fluxLayout{structName: fluxStructName(f), fieldIdx: make(map[string]int)}
	push := func(name string, t types.Type) {
		idx := len(layout.fields)
		layout.fields = append(layout.fields, ir.Field{Name: name, Type: t, Index: idx})
		layout.fieldIdx[name] = idx
	}
	push("state", types.NewScalar(types.Int))
	push("finished", types.NewScalar(types.Bool))
	push("result", f.RetType)
	if f.ClassName != "" {
		push("this", types.NewClass(f.ClassName).PointerTo())
	}
	paramSet := make(map[string]bool)
	for _, p := range f.Params {
		push(p.Name, g.irType(p.Type))
		paramSet[p.Name] = true
	}
	for _, c := range captures {
		if paramSet[c.name] {
			continue
		}
		push(c.name, g.irType(c.typ))
	}
	return layout
}

// lowerFlux implements the coroutine transform: a factory function under
// the original name returning an opaque `char*` context, and a companion
// `<name>_Resume(void*)` state-machine dispatcher.
func (g *Generator) lowerFlux(f *ast.FuncDef) {
	captures := collectCaptures(f.Body)
	layout := g.buildFluxLayout(f, captures)
	g.module.Structs[layout.structName] = layout.fields

	g.lowerFluxFactory(f, layout)
	g.lowerFluxResume(f, layout)
}

// lowerFluxFactory emits the original function's name and signature,
// returning a heap-allocated, fully initialized context as `char*`.
func (g *Generator) lowerFluxFactory(f *ast.FuncDef, layout fluxLayout) {
	paramNames, paramTypes := paramSignature(f)
	charPtr := types.NewScalar(types.Char).PointerTo()
	fn := ir.NewFunction(mangledOf(f), charPtr, paramNames, paramTypes)
	fn.FromFlux = true
	g.module.AddFunction(fn)

	g.fn = fn
	g.locals = make(map[string]localSlot)
	g.fluxCtx = nil
	g.loopStack = nil
	g.newBlockAndSwitch("entry")

	sizeVal := g.fn.NewTemp(types.NewScalar(types.Long))
	g.emit(ir.Instruction{Op: ir.OpSizeof, Dest: &sizeVal, Op1: ir.TypeVal(layout.structName)})

	rawVal := g.fn.NewTemp(charPtr)
	g.emit(ir.Instruction{Op: ir.OpAllocHeap, Dest: &rawVal, Op1: sizeVal})

	ctxType := types.NewClass(layout.structName).PointerTo()
	ctxVal := g.fn.NewTemp(ctxType)
	g.emit(ir.Instruction{Op: ir.OpBitcast, Dest: &ctxVal, Op1: rawVal, Op2: ir.TypeVal(ctxType.String())})

	g.storeFluxField(ctxVal, layout, "state", ir.ConstIntVal(0, types.NewScalar(types.Int)))
	g.storeFluxField(ctxVal, layout, "finished", ir.ConstIntVal(0, types.NewScalar(types.Bool)))

	if f.ClassName != "" {
		g.storeFluxField(ctxVal, layout, "this", ir.LocalVal("this", types.NewClass(f.ClassName).PointerTo()))
	}
	for _, p := range f.Params {
		g.storeFluxField(ctxVal, layout, p.Name, ir.LocalVal(p.Name, p.Type))
	}

	g.emit(ir.Instruction{Op: ir.OpRet, Op1: rawVal})
}

func (g *Generator) storeFluxField(ctx ir.Value, layout fluxLayout, name string, val ir.Value) {
	idx := layout.fieldIdx[name]
	addr := g.getPtrField(ctx, idx, layout.fields[idx].Type)
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: val, Op2: addr})
}

// lowerFluxResume emits the state-machine dispatcher. Every parameter,
// `this`, and captured local is rebound to resolve through the heap
// context rather than a stack alloca; lowerVarDecl and lowerForIn store a
// captured name into its context field instead of giving it an alloca.
func (g *Generator) lowerFluxResume(f *ast.FuncDef, layout fluxLayout) {
	resumeName := f.Name + "_Resume"
	if f.ClassName != "" {
		resumeName = methodSymbol(f.ClassName, f.Name) + "_Resume"
	}
	voidPtr := types.NewScalar(types.Void).PointerTo()
	fn := ir.NewFunction(resumeName, types.NewScalar(types.Void), []string{"raw_ctx"}, []types.Type{voidPtr})
	g.module.AddFunction(fn)

	g.fn = fn
	g.locals = make(map[string]localSlot)
	g.loopStack = nil
	entry := g.newBlockAndSwitch("entry")
	g.allocaParam("raw_ctx", voidPtr)

	ctxType := types.NewClass(layout.structName).PointerTo()
	rawLoaded := g.loadLocal("raw_ctx")
	ctxVal := g.fn.NewTemp(ctxType)
	g.emit(ir.Instruction{Op: ir.OpBitcast, Dest: &ctxVal, Op1: rawLoaded, Op2: ir.TypeVal(ctxType.String())})

	// Bind "ctx" as an ordinary local so ctxPointer()/loadLocal("ctx") work
	// unchanged inside addr.go.
	ctxAlloca := g.fn.NewTemp(ctxType.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &ctxAlloca, Op1: ir.TypeVal(ctxType.String())})
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: ctxVal, Op2: ctxAlloca})
	g.locals["ctx"] = localSlot{addr: ctxAlloca}

	for name, idx := range layout.fieldIdx {
		if name == "state" || name == "finished" || name == "result" {
			continue
		}
		g.locals[name] = localSlot{inFluxCtx: true, fieldIdx: idx, fieldType: layout.fields[idx].Type}
	}
	fluxT := f.RetType
	g.fluxCtx = &fluxT

	stateVal := g.fn.NewTemp(types.NewScalar(types.Int))
	stateAddr := g.getPtrField(g.ctxPointer(), fluxFieldState, types.NewScalar(types.Int))
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &stateVal, Op1: stateAddr})

	startBlk := g.fn.NewBlock("start")
	endBlk := g.fn.NewBlock("end")

	dispatch := fluxDispatch{instrIdx: len(entry.Instructions), block: entry, cases: []ir.CaseEntry{{Value: 0, Label: startBlk.Label}}}
	dispatch.emit(stateVal, endBlk.Label)

	g.block = startBlk
	nextState := 1
	fc := &fluxLowerCtx{layout: layout, dispatch: &dispatch, nextState: &nextState, endBlk: endBlk, stateVal: stateVal}
	fc.lowerFluxBody(g, f.Body)

	if _, ok := g.block.Terminator(); !ok {
		g.finishFlux(layout)
	}

	g.block = endBlk
	g.emit(ir.Instruction{Op: ir.OpRet})

	dispatch.patch()
}

// fluxDispatch tracks the entry block's switch instruction so new
// resume_k cases can be appended as `emit` sites are discovered while
// lowering the body.
type fluxDispatch struct {
	instrIdx int
	block    *ir.BasicBlock
	selector ir.Value
	cases    []ir.CaseEntry
	defLabel string
}

func (d *fluxDispatch) emit(selector ir.Value, defLabel string) {
	d.selector = selector
	d.defLabel = defLabel
	d.block.Append(ir.Instruction{Op: ir.OpSwitch, Op1: selector, Op2: ir.LabelVal(defLabel), Cases: d.cases})
}

func (d *fluxDispatch) addCase(value int64, label string) {
	d.cases = append(d.cases, ir.CaseEntry{Value: value, Label: label})
}

func (d *fluxDispatch) patch() {
	d.block.Instructions[d.instrIdx] = ir.Instruction{Op: ir.OpSwitch, Op1: d.selector, Op2: ir.LabelVal(d.defLabel), Cases: d.cases}
}

// fluxLowerCtx threads the running dispatch table and next-state counter
// through the resume body's lowering, so lowerEmit can create a resume_k
// block and register it without every caller needing this state.
type fluxLowerCtx struct {
	layout    fluxLayout
	dispatch  *fluxDispatch
	nextState *int
	endBlk    *ir.BasicBlock
	stateVal  ir.Value
}

func (fc *fluxLowerCtx) lowerFluxBody(g *Generator, body []ast.Node) {
	g.activeFlux = fc
	g.lowerBlock(body)
	g.activeFlux = nil
}

// lowerEmit is the `emit value` rewrite: store the value into `result`,
// store the next state into `state`, `ret void`, then continue lowering
// in a fresh `resume_k` block registered with the dispatch switch.
func (g *Generator) lowerEmit(e *ast.Emit) {
	fc := g.activeFlux
	if fc == nil {
		g.reportError(errors.IRG004, e.Pos, "emit lowered outside an active flux context")
		return
	}
	val := g.genExpr(e.Value)
	resultAddr := g.getPtrField(g.ctxPointer(), fluxFieldResult, fc.layout.fields[fluxFieldResult].Type)
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: val, Op2: resultAddr})

	k := *fc.nextState
	*fc.nextState++
	stateAddr := g.getPtrField(g.ctxPointer(), fluxFieldState, types.NewScalar(types.Int))
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: ir.ConstIntVal(int64(k), types.NewScalar(types.Int)), Op2: stateAddr})
	g.emit(ir.Instruction{Op: ir.OpRet})

	resumeBlk := g.fn.NewBlock(fmt.Sprintf("resume_%d", k))
	fc.dispatch.addCase(int64(k), resumeBlk.Label)
	g.block = resumeBlk
}

// finishFlux is the `return`/fallthrough rewrite inside a flux body: store
// finished=true, ret void.
func (g *Generator) finishFlux(layout fluxLayout) {
	finishedAddr := g.getPtrField(g.ctxPointer(), fluxFieldFinished, types.NewScalar(types.Bool))
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: ir.ConstIntVal(1, types.NewScalar(types.Bool)), Op2: finishedAddr})
	g.emit(ir.Instruction{Op: ir.OpRet})
}
