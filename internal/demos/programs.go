// Package demos is a small registry of hand-built AST programs used by
// internal/inspect and cmd/alirc's `check` command in place of a parser: a
// lexer/parser is explicitly out of scope for this module (the AST is an
// input contract other tooling satisfies), so these fixtures stand in for
// source files when exercising the pipeline end to end.
package demos

import (
	"sort"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/types"
)

func p(line int) ast.Pos { return ast.Pos{File: "<demo>", Line: line, Col: 1} }

func intT() types.Type { return types.NewScalar(types.Int) }

var registry = map[string]func() *ast.Program{
	"add":     addFunction,
	"counter": fluxCounter,
	"traffic": trafficSwitch,
}

// Names returns every registered demo name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load builds the named demo program, or reports ok=false if no such demo
// is registered.
func Load(name string) (*ast.Program, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// addFunction: int add(int a, int b) { return a + b; }
func addFunction() *ast.Program {
	fn := &ast.FuncDef{
		Name:    "add",
		RetType: intT(),
		Params:  []ast.Param{{Name: "a", Type: intT()}, {Name: "b", Type: intT()}},
		Body: []ast.Node{
			&ast.Return{
				Value: &ast.BinaryOp{Op: "+", Left: &ast.VarRef{Name: "a", Pos: p(1)}, Right: &ast.VarRef{Name: "b", Pos: p(1)}, Pos: p(1)},
				Pos:   p(1),
			},
		},
		Pos: p(1),
	}
	return &ast.Program{Decls: []ast.Node{fn}}
}

// fluxCounter: flux int counter(int n) { int i = 0; while (i < n) { emit i; i = i + 1; } }
func fluxCounter() *ast.Program {
	fn := &ast.FuncDef{
		Name:    "counter",
		RetType: intT(),
		Params:  []ast.Param{{Name: "n", Type: intT()}},
		IsFlux:  true,
		Body: []ast.Node{
			&ast.VarDecl{Name: "i", VarType: intT(), IsMutable: true, Initializer: &ast.Literal{Kind: ast.IntLit, Value: 0, Pos: p(2)}, Pos: p(2)},
			&ast.While{
				Cond: &ast.BinaryOp{Op: "<", Left: &ast.VarRef{Name: "i", Pos: p(3)}, Right: &ast.VarRef{Name: "n", Pos: p(3)}, Pos: p(3)},
				Body: []ast.Node{
					&ast.Emit{Value: &ast.VarRef{Name: "i", Pos: p(4)}, Pos: p(4)},
					&ast.Assign{
						Name: "i", Op: ast.AssignSet,
						Value: &ast.BinaryOp{Op: "+", Left: &ast.VarRef{Name: "i", Pos: p(5)}, Right: &ast.Literal{Kind: ast.IntLit, Value: 1, Pos: p(5)}, Pos: p(5)},
						Pos:   p(5),
					},
				},
				Pos: p(3),
			},
		},
		Pos: p(1),
	}
	return &ast.Program{Decls: []ast.Node{fn}}
}

// trafficSwitch: an enum plus a switch with one fallthrough ("leak") case,
// exercising switch lowering independent of flux.
func trafficSwitch() *ast.Program {
	enum := &ast.Enum{
		Name: "Signal",
		Entries: []ast.EnumEntry{
			{Name: "Red"}, {Name: "Amber"}, {Name: "Green"},
		},
		Pos: p(1),
	}
	fn := &ast.FuncDef{
		Name:    "describe",
		RetType: types.NewScalar(types.Void),
		Params:  []ast.Param{{Name: "s", Type: types.NewEnum("Signal")}},
		Body: []ast.Node{
			&ast.Switch{
				Condition: &ast.VarRef{Name: "s", Pos: p(2)},
				Cases: []*ast.Case{
					{
						Value: &ast.MemberAccess{Object: &ast.VarRef{Name: "Signal", Pos: p(3)}, MemberName: "Red", Pos: p(3)},
						Body:  nil,
						IsLeak: true, Pos: p(3),
					},
					{
						Value: &ast.MemberAccess{Object: &ast.VarRef{Name: "Signal", Pos: p(4)}, MemberName: "Amber", Pos: p(4)},
						Body:  []ast.Node{&ast.Break{Pos: p(4)}},
						Pos:   p(4),
					},
				},
				DefaultCase: []ast.Node{},
				Pos:         p(2),
			},
			&ast.Return{Pos: p(5)},
		},
		Pos: p(2),
	}
	return &ast.Program{Decls: []ast.Node{enum, fn}}
}
