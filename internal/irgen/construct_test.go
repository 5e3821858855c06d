package irgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/sema"
	"github.com/alir-lang/alirc/internal/types"
)

func longT() types.Type { return types.NewScalar(types.Long) }

// A call site's argument type need not match the callee's declared
// parameter type (Semantic resolves calls by name only, matching the
// absence of argument-type-directed overload resolution). genCall must
// still target the callee's own declared mangled name rather than
// recomputing one from the call's actual argument types, or the emitted
// call would name a symbol nothing was ever compiled under.
func TestCallTargetsCalleeDeclaredMangling(t *testing.T) {
	callee := &ast.FuncDef{
		Name:    "addOne",
		RetType: intT(),
		Params:  []ast.Param{{Name: "n", Type: longT()}},
		Body: []ast.Node{
			&ast.Return{Value: &ast.VarRef{Name: "n", Pos: pos(1)}, Pos: pos(1)},
		},
		Pos: pos(1),
	}
	callee.MangledName = sema.Mangle(callee.Name, []types.Type{longT()})

	callExpr := &ast.Call{Name: "addOne", Args: []ast.Expr{&ast.VarRef{Name: "x", Pos: pos(3)}}, Pos: pos(3)}
	caller := &ast.FuncDef{
		Name:    "main",
		RetType: intT(),
		Body: []ast.Node{
			&ast.VarDecl{Name: "x", VarType: intT(), Initializer: &ast.Literal{Kind: ast.IntLit, Value: 5, Pos: pos(2)}, Pos: pos(2)},
			&ast.Return{Value: callExpr, Pos: pos(3)},
		},
		Pos: pos(2),
	}

	sideTable := sema.NewSideTable()
	sideTable.Set(callExpr, intT())

	g := New(diag.NewRecorder(), sideTable)
	result := &sema.Result{Functions: []*ast.FuncDef{callee, caller}}
	module, errCount := g.Generate(&ast.Program{}, result)
	require.Equal(t, 0, errCount)

	mainFn, ok := module.FunctionByName("main")
	require.True(t, ok)

	entry, ok := mainFn.BlockByLabel("entry")
	require.True(t, ok)

	var callInstr ir.Instruction
	var found bool
	for _, in := range entry.Instructions {
		if in.Op == ir.OpCall {
			callInstr = in
			found = true
		}
	}
	require.True(t, found, "expected an OpCall instruction")

	assert.Equal(t, callee.MangledName, callInstr.Op1.Name)
	// the bug this guards against: recomputing the mangled name from the
	// call's actual (int) argument type instead of the callee's declared
	// (long) parameter type would have produced a different symbol name.
	assert.NotEqual(t, sema.Mangle("addOne", []types.Type{intT()}), callInstr.Op1.Name)
}

func TestCallToUnresolvedNameReportsDefensiveError(t *testing.T) {
	callExpr := &ast.Call{Name: "nope", Pos: pos(1)}
	caller := &ast.FuncDef{
		Name:    "main",
		RetType: types.NewScalar(types.Void),
		Body: []ast.Node{
			&ast.Return{Value: callExpr, Pos: pos(1)},
		},
		Pos: pos(1),
	}

	sideTable := sema.NewSideTable()
	sideTable.Set(callExpr, types.NewScalar(types.Unknown))

	rec := diag.NewRecorder()
	g := New(rec, sideTable)
	result := &sema.Result{Functions: []*ast.FuncDef{caller}}
	_, errCount := g.Generate(&ast.Program{}, result)

	assert.Equal(t, 1, errCount)
	require.Len(t, rec.Diagnostics, 1)
	assert.Equal(t, "IRG005", rec.Diagnostics[0].Code)
}
