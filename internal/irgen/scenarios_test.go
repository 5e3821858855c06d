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

func pos(line int) ast.Pos { return ast.Pos{File: "t.alir", Line: line, Col: 1} }

func intT() types.Type { return types.NewScalar(types.Int) }

func lastInstr(b *ir.BasicBlock) ir.Instruction {
	return b.Instructions[len(b.Instructions)-1]
}

// S4 — Constructor lowering: `let b = B();` inside a function body.
func TestS4ConstructorLowering(t *testing.T) {
	classB := &ast.Class{Name: "B", Members: []ast.ClassMember{
		{Var: &ast.VarDecl{Name: "y", VarType: intT()}},
	}, Pos: pos(1)}

	fn := &ast.FuncDef{
		Name:    "main",
		RetType: types.NewScalar(types.Void),
		Body: []ast.Node{
			&ast.VarDecl{Name: "b", VarType: types.NewClass("B"), Initializer: &ast.Call{Name: "B", Pos: pos(2)}, Pos: pos(2)},
			&ast.Return{Pos: pos(3)},
		},
		Pos: pos(2),
	}

	sideTable := sema.NewSideTable()
	sideTable.Set(fn.Body[0].(*ast.VarDecl).Initializer, types.NewClass("B").PointerTo())

	g := New(diag.NewRecorder(), sideTable)
	g.layoutClasses([]*ast.Class{classB})
	g.lowerFunction(fn)

	entry, ok := g.fn.BlockByLabel("entry")
	require.True(t, ok)

	var ops []ir.Opcode
	for _, in := range entry.Instructions {
		ops = append(ops, in.Op)
	}
	require.Contains(t, ops, ir.OpSizeof)
	require.Contains(t, ops, ir.OpAllocHeap)
	require.Contains(t, ops, ir.OpBitcast)
	require.Contains(t, ops, ir.OpCall)

	var callInstr ir.Instruction
	for _, in := range entry.Instructions {
		if in.Op == ir.OpCall {
			callInstr = in
		}
	}
	assert.Equal(t, "B", callInstr.Op1.Name)
	require.Len(t, callInstr.Args, 1)
}

// S5 — Switch with fallthrough ("leak").
func TestS5SwitchFallthrough(t *testing.T) {
	sw := &ast.Switch{
		Condition: &ast.VarRef{Name: "n", Pos: pos(1)},
		Cases: []*ast.Case{
			{Value: &ast.Literal{Kind: ast.IntLit, Value: 1, Pos: pos(2)}, Body: nil, IsLeak: true, Pos: pos(2)},
			{Value: &ast.Literal{Kind: ast.IntLit, Value: 2, Pos: pos(3)}, Body: nil, IsLeak: false, Pos: pos(3)},
		},
		DefaultCase: []ast.Node{},
		Pos:         pos(1),
	}
	fn := &ast.FuncDef{
		Name: "f", RetType: types.NewScalar(types.Void),
		Params: []ast.Param{{Name: "n", Type: intT()}},
		Body:   []ast.Node{sw},
		Pos:    pos(1),
	}

	g := New(diag.NewRecorder(), sema.NewSideTable())
	g.lowerFunction(fn)

	caseOne, ok := g.fn.BlockByLabel("case_1")
	require.True(t, ok)
	caseTwo, ok := g.fn.BlockByLabel("case_2")
	require.True(t, ok)
	def, ok := g.fn.BlockByLabel("default")
	require.True(t, ok)
	end, ok := g.fn.BlockByLabel("switch_end")
	require.True(t, ok)

	assert.Equal(t, ir.OpJump, lastInstr(caseOne).Op)
	assert.Equal(t, caseTwo.Label, lastInstr(caseOne).Op1.Name)

	assert.Equal(t, ir.OpJump, lastInstr(caseTwo).Op)
	assert.Equal(t, end.Label, lastInstr(caseTwo).Op1.Name)

	assert.Equal(t, ir.OpJump, lastInstr(def).Op)
	assert.Equal(t, end.Label, lastInstr(def).Op1.Name)
}

// S6 — Coroutine (flux) lowering.
//
//	flux int counter(int n) {
//	  int i = 0;
//	  while (i < n) { emit i; i = i + 1; }
//	}
func TestS6FluxLowering(t *testing.T) {
	body := []ast.Node{
		&ast.VarDecl{Name: "i", VarType: intT(), Initializer: &ast.Literal{Kind: ast.IntLit, Value: 0, Pos: pos(2)}, Pos: pos(2)},
		&ast.While{
			Cond: &ast.BinaryOp{Op: "<", Left: &ast.VarRef{Name: "i", Pos: pos(3)}, Right: &ast.VarRef{Name: "n", Pos: pos(3)}, Pos: pos(3)},
			Body: []ast.Node{
				&ast.Emit{Value: &ast.VarRef{Name: "i", Pos: pos(3)}, Pos: pos(3)},
				&ast.Assign{Name: "i", Op: ast.AssignSet, Value: &ast.BinaryOp{Op: "+", Left: &ast.VarRef{Name: "i", Pos: pos(3)}, Right: &ast.Literal{Kind: ast.IntLit, Value: 1, Pos: pos(3)}, Pos: pos(3)}, Pos: pos(3)},
			},
			Pos: pos(3),
		},
	}
	fn := &ast.FuncDef{
		Name:    "counter",
		RetType: intT(),
		Params:  []ast.Param{{Name: "n", Type: intT()}},
		Body:    body,
		IsFlux:  true,
		Pos:     pos(1),
	}

	g := New(diag.NewRecorder(), sema.NewSideTable())
	g.lowerFlux(fn)

	structFields, ok := g.module.Structs["FluxCtx_counter"]
	require.True(t, ok)
	names := make(map[string]int)
	for _, f := range structFields {
		names[f.Name] = f.Index
	}
	assert.Equal(t, 0, names["state"])
	assert.Equal(t, 1, names["finished"])
	assert.Equal(t, 2, names["result"])
	_, hasN := names["n"]
	_, hasI := names["i"]
	assert.True(t, hasN)
	assert.True(t, hasI)

	factory, ok := g.module.FunctionByName("counter")
	require.True(t, ok)
	assert.True(t, factory.FromFlux)
	assert.Equal(t, types.NewScalar(types.Char).PointerTo(), factory.RetType)

	resume, ok := g.module.FunctionByName("counter_Resume")
	require.True(t, ok)
	entry, ok := resume.BlockByLabel("entry")
	require.True(t, ok)
	assert.Equal(t, ir.OpSwitch, lastInstr(entry).Op)
	dispatchCases := lastInstr(entry).Cases
	require.Len(t, dispatchCases, 2) // state 0 -> start, state 1 -> resume_1
	assert.Equal(t, int64(0), dispatchCases[0].Value)
	assert.Equal(t, "start", dispatchCases[0].Label)
	assert.Equal(t, int64(1), dispatchCases[1].Value)

	_, hasResume1 := resume.BlockByLabel("resume_1")
	assert.True(t, hasResume1)

	for _, b := range resume.Blocks {
		for _, in := range b.Instructions {
			assert.NotEqual(t, ir.OpYield, in.Op, "no residual yield after flux lowering")
		}
	}
}
