package irgen

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

// mangledOf is the name a compiled function is emitted under. A method's
// call sites target ClassName_methodName (see methodSymbol in construct.go),
// so the compiled method must share that name rather than its Semantic
// overload-mangled name. Free functions keep their Semantic mangling.
func mangledOf(f *ast.FuncDef) string {
	if f.ClassName != "" {
		if f.Name == f.ClassName { // initializer: called as `call ClassName(...)`
			return f.ClassName
		}
		return methodSymbol(f.ClassName, f.Name)
	}
	if f.MangledName != "" {
		return f.MangledName
	}
	return f.Name
}

// lowerFunction lowers an ordinary (non-flux) function or method: an
// alloca + store per parameter (and `this`, for methods), then the body
// lowered straight into the entry block and onward.
func (g *Generator) lowerFunction(f *ast.FuncDef) {
	paramNames, paramTypes := paramSignature(f)
	fn := ir.NewFunction(mangledOf(f), f.RetType, paramNames, paramTypes)
	g.module.AddFunction(fn)

	g.fn = fn
	g.locals = make(map[string]localSlot)
	g.fluxCtx = nil
	g.loopStack = nil
	g.newBlockAndSwitch("entry")

	if f.ClassName != "" {
		g.allocaParam("this", types.NewClass(f.ClassName).PointerTo())
	}
	for _, p := range f.Params {
		g.allocaParam(p.Name, g.irType(p.Type))
	}

	g.lowerBlock(f.Body)
	g.terminateFallthrough(f.RetType)
}

func paramSignature(f *ast.FuncDef) ([]string, []types.Type) {
	names := make([]string, 0, len(f.Params)+1)
	typs := make([]types.Type, 0, len(f.Params)+1)
	if f.ClassName != "" {
		names = append(names, "this")
		typs = append(typs, types.NewClass(f.ClassName).PointerTo())
	}
	for _, p := range f.Params {
		names = append(names, p.Name)
		typs = append(typs, p.Type)
	}
	return names, typs
}

// allocaParam emits `alloca` + `store` for one incoming parameter and
// records its stack address in g.locals.
func (g *Generator) allocaParam(name string, t types.Type) {
	addr := g.fn.NewTemp(t.PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &addr, Op1: ir.TypeVal(t.String())})
	g.emit(ir.Instruction{Op: ir.OpStore, Op1: ir.LocalVal(name, t), Op2: addr})
	g.locals[name] = localSlot{addr: addr}
}

// terminateFallthrough closes a block left without a terminator at the end
// of a function body: void functions get a bare `ret`, others a placeholder
// `ret 0` of the return type. Semantic does not report a non-void body that
// ends without a return, so this placeholder is all such a body gets.
func (g *Generator) terminateFallthrough(retType types.Type) {
	if _, ok := g.block.Terminator(); ok {
		return
	}
	if retType.IsVoid() {
		g.emit(ir.Instruction{Op: ir.OpRet})
		return
	}
	g.emit(ir.Instruction{Op: ir.OpRet, Op1: ir.ConstIntVal(0, retType)})
}

func (g *Generator) lowerBlock(stmts []ast.Node) {
	for _, s := range stmts {
		if _, ok := g.block.Terminator(); ok {
			return // dead code after a terminator (verifier would flag it)
		}
		g.lowerStmt(s)
	}
}
