package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/types"
)

func pos(line int) ast.Pos { return ast.Pos{File: "t.alir", Line: line, Col: 1} }

func intT() types.Type    { return types.NewScalar(types.Int) }
func stringT() types.Type { return types.NewScalar(types.String) }

// S1 — Integer function: int add(int a, int b) { return a + b; }
func TestS1IntegerFunction(t *testing.T) {
	fn := &ast.FuncDef{
		Name:    "add",
		RetType: intT(),
		Params:  []ast.Param{{Name: "a", Type: intT()}, {Name: "b", Type: intT()}},
		Body: []ast.Node{
			&ast.Return{Value: &ast.BinaryOp{
				Op:    "+",
				Left:  &ast.VarRef{Name: "a", Pos: pos(1)},
				Right: &ast.VarRef{Name: "b", Pos: pos(1)},
				Pos:   pos(1),
			}, Pos: pos(1)},
		},
		Pos: pos(1),
	}
	prog := &ast.Program{Decls: []ast.Node{fn}}

	rec := diag.NewRecorder()
	result, errCount := New("t.alir", rec).Analyze(prog)

	require.Equal(t, 0, errCount)
	assert.Equal(t, "_Z3addii", fn.MangledName)

	sym, ok := result.Global.LookupLocal("add")
	require.True(t, ok)
	assert.Equal(t, types.FuncSymbol, sym.Kind)
	assert.Equal(t, []types.Type{intT(), intT()}, sym.ParamTypes)
}

// S2 — Inference and error.
func TestS2InferenceAndError(t *testing.T) {
	// let x = 42;
	xDecl := &ast.VarDecl{Name: "x", VarType: types.Type{Base: types.Auto}, Initializer: &ast.Literal{Kind: ast.IntLit, Value: 42, Pos: pos(1)}, Pos: pos(1)}
	// let y; (no initializer, no annotation)
	yDecl := &ast.VarDecl{Name: "y", VarType: types.Type{Base: types.Auto}, Pos: pos(2)}
	// string s = x; (type mismatch)
	sDecl := &ast.VarDecl{Name: "s", VarType: stringT(), Initializer: &ast.VarRef{Name: "x", Pos: pos(3)}, Pos: pos(3)}

	fn := &ast.FuncDef{
		Name:    "main",
		RetType: types.NewScalar(types.Void),
		Body:    []ast.Node{xDecl, yDecl, sDecl},
		Pos:     pos(1),
	}
	prog := &ast.Program{Decls: []ast.Node{fn}}

	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(prog)

	assert.Equal(t, 2, errCount)
	assert.Equal(t, intT(), xDecl.VarType)
}

// S3 — Class with parent: class A { int x; } class B : A { int y; }
func TestS3ClassWithParent(t *testing.T) {
	classA := &ast.Class{
		Name: "A",
		Members: []ast.ClassMember{
			{Var: &ast.VarDecl{Name: "x", VarType: intT(), Pos: pos(1)}},
		},
		Pos: pos(1),
	}
	classB := &ast.Class{
		Name:       "B",
		ParentName: "A",
		Members: []ast.ClassMember{
			{Var: &ast.VarDecl{Name: "y", VarType: intT(), Pos: pos(2)}},
		},
		Pos: pos(2),
	}
	prog := &ast.Program{Decls: []ast.Node{classA, classB}}

	rec := diag.NewRecorder()
	result, errCount := New("t.alir", rec).Analyze(prog)

	require.Equal(t, 0, errCount)
	require.Len(t, result.Classes, 2)

	bSym, ok := result.Global.LookupLocal("B")
	require.True(t, ok)
	assert.Equal(t, "A", bSym.ParentName)

	_, hasY := bSym.Inner.LookupLocal("y")
	assert.True(t, hasY)
	_, hasXLocally := bSym.Inner.LookupLocal("x")
	assert.False(t, hasXLocally, "x is declared on A, not directly on B")
}

func TestEnumImplicitMemberResolution(t *testing.T) {
	red := 0
	enum := &ast.Enum{Name: "Color", Entries: []ast.EnumEntry{{Name: "Red", Value: &red}, {Name: "Blue"}}, Pos: pos(1)}
	fn := &ast.FuncDef{
		Name:    "use",
		RetType: types.NewEnum("Color"),
		Body: []ast.Node{
			&ast.Return{Value: &ast.VarRef{Name: "Blue", Pos: pos(2)}, Pos: pos(2)},
		},
		Pos: pos(2),
	}
	prog := &ast.Program{Decls: []ast.Node{enum, fn}}

	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(prog)
	assert.Equal(t, 0, errCount)
}

func TestEnumQualifiedMemberAccessResolution(t *testing.T) {
	red := 0
	enum := &ast.Enum{Name: "Signal", Entries: []ast.EnumEntry{{Name: "Red", Value: &red}, {Name: "Green"}}, Pos: pos(1)}
	fn := &ast.FuncDef{
		Name:    "use",
		RetType: types.NewEnum("Signal"),
		Body: []ast.Node{
			&ast.Return{
				Value: &ast.MemberAccess{Object: &ast.VarRef{Name: "Signal", Pos: pos(2)}, MemberName: "Green", Pos: pos(2)},
				Pos:   pos(2),
			},
		},
		Pos: pos(2),
	}
	prog := &ast.Program{Decls: []ast.Node{enum, fn}}

	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(prog)
	assert.Equal(t, 0, errCount)
}

func TestEnumQualifiedMemberAccessUnknownMemberReportsError(t *testing.T) {
	enum := &ast.Enum{Name: "Signal", Entries: []ast.EnumEntry{{Name: "Red"}}, Pos: pos(1)}
	fn := &ast.FuncDef{
		Name:    "use",
		RetType: types.NewEnum("Signal"),
		Body: []ast.Node{
			&ast.Return{
				Value: &ast.MemberAccess{Object: &ast.VarRef{Name: "Signal", Pos: pos(2)}, MemberName: "Purple", Pos: pos(2)},
				Pos:   pos(2),
			},
		},
		Pos: pos(2),
	}
	prog := &ast.Program{Decls: []ast.Node{enum, fn}}

	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(prog)
	assert.Equal(t, 1, errCount)
	require.Len(t, rec.Diagnostics, 1)
	assert.Equal(t, "SEM009", rec.Diagnostics[0].Code)
}

func TestBreakOutsideLoopReportsControlFlowError(t *testing.T) {
	fn := &ast.FuncDef{
		Name:    "f",
		RetType: types.NewScalar(types.Void),
		Body:    []ast.Node{&ast.Break{Pos: pos(1)}},
		Pos:     pos(1),
	}
	prog := &ast.Program{Decls: []ast.Node{fn}}

	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(prog)
	assert.Equal(t, 1, errCount)
	require.Len(t, rec.Diagnostics, 1)
	assert.Equal(t, "SEM006", rec.Diagnostics[0].Code)
}

func TestDidYouMeanHintOnTypo(t *testing.T) {
	fn := &ast.FuncDef{
		Name:    "f",
		RetType: intT(),
		Params:  []ast.Param{{Name: "count", Type: intT()}},
		Body: []ast.Node{
			&ast.Return{Value: &ast.VarRef{Name: "coutn", Pos: pos(1)}, Pos: pos(1)},
		},
		Pos: pos(1),
	}
	prog := &ast.Program{Decls: []ast.Node{fn}}

	rec := diag.NewRecorder()
	New("t.alir", rec).Analyze(prog)

	var sawHint bool
	for _, d := range rec.Diagnostics {
		if d.Severity == diag.SeverityHint {
			sawHint = true
		}
	}
	assert.True(t, sawHint, "expected a did-you-mean hint for a near-miss identifier")
}

func TestNilProgramIsFatal(t *testing.T) {
	rec := diag.NewRecorder()
	_, errCount := New("t.alir", rec).Analyze(nil)
	assert.Equal(t, 1, errCount)
}
