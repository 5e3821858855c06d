// Package irgen lowers an analyzed AST (program plus the sema.Result side
// table) into an ir.Module: a class-layout pass, statement/expression
// lowering into a CFG of basic blocks, object-construction lowering, and
// coroutine (flux) lowering into a context struct plus factory and resume
// functions.
package irgen

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/sema"
	"github.com/alir-lang/alirc/internal/types"
)

// loopFrame is one entry on the loop-context stack: where `break` and
// `continue` jump to. A switch frame, pushed purely so `break` can target
// it, has breakTo set to the switch end and continueTo nil.
type loopFrame struct {
	breakTo    *ir.BasicBlock
	continueTo *ir.BasicBlock
}

// localSlot is where a declared name currently lives: either a stack
// alloca (ordinary function) or a field index inside a heap-allocated
// flux context (resume function body).
type localSlot struct {
	addr      ir.Value // alloca pointer, valid when !inFluxCtx
	fieldIdx  int      // valid when inFluxCtx
	fieldType types.Type
	inFluxCtx bool
}

// Generator holds all state threaded through class-layout and per-function
// lowering. There is no global state: current function/block/loop-stack
// are explicit fields, saved and restored by callers that recurse into
// nested scopes.
type Generator struct {
	module *ir.Module
	sink   diag.Sink
	types  *sema.SideTable

	// funcs maps a free function's source name to its declaration, so a
	// call site targets the callee's already-resolved mangled name instead
	// of recomputing one from the call's actual argument types.
	funcs map[string]*ast.FuncDef

	fn        *ir.Function
	block     *ir.BasicBlock
	loopStack []loopFrame
	locals    map[string]localSlot
	fluxCtx   *types.Type // non-nil while lowering a flux resume body

	// activeFlux carries the running dispatch table and state counter
	// while lowering a flux resume body; nil for an ordinary function.
	activeFlux *fluxLowerCtx

	errorCount int
}

func New(sink diag.Sink, sideTable *sema.SideTable) *Generator {
	return &Generator{module: ir.NewModule(), sink: sink, types: sideTable}
}

func (g *Generator) reportError(code string, pos ast.Pos, format string, args ...interface{}) {
	g.errorCount++
	g.sink.Error(diag.SpanOf(pos), code, fmt.Sprintf(format, args...))
}

// Generate runs the class-layout pass followed by lowering of every
// top-level function, method, and namespace body. Returns the built
// module and the error count.
func (g *Generator) Generate(prog *ast.Program, result *sema.Result) (*ir.Module, int) {
	g.layoutClasses(result.Classes)
	g.layoutEnums(result.Enums)

	g.funcs = make(map[string]*ast.FuncDef, len(result.Functions))
	for _, fn := range result.Functions {
		if fn.ClassName == "" {
			g.funcs[fn.Name] = fn
		}
	}

	for _, fn := range result.Functions {
		if fn.Body == nil {
			continue
		}
		if fn.IsFlux {
			g.lowerFlux(fn)
		} else {
			g.lowerFunction(fn)
		}
	}
	return g.module, g.errorCount
}

// irType is the storage representation of a declared type: class values
// are always reached through one pointer indirection (objects live on the
// heap, built by genConstruct), so a bare class type gets one implicit
// PointerTo() wherever it is used as a variable's, field's, or parameter's
// actual storage type. Explicit pointer types and every other kind pass
// through unchanged.
func (g *Generator) irType(t types.Type) types.Type {
	if t.Base == types.Class && t.PointerDepth == 0 {
		return t.PointerTo()
	}
	return t
}

func (g *Generator) typeOf(n ast.Node) types.Type {
	if e, ok := n.(ast.Expr); ok {
		if t, found := g.types.Get(e); found {
			return t
		}
	}
	return types.NewScalar(types.Unknown)
}

func (g *Generator) emit(in ir.Instruction) {
	g.block.Append(in)
}

func (g *Generator) newBlockAndSwitch(hint string) *ir.BasicBlock {
	blk := g.fn.NewBlock(hint)
	g.block = blk
	return blk
}

func (g *Generator) pushLoop(breakTo, continueTo *ir.BasicBlock) {
	g.loopStack = append(g.loopStack, loopFrame{breakTo: breakTo, continueTo: continueTo})
}

func (g *Generator) popLoop() {
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
}

func (g *Generator) currentLoop() (loopFrame, bool) {
	if len(g.loopStack) == 0 {
		return loopFrame{}, false
	}
	return g.loopStack[len(g.loopStack)-1], true
}
