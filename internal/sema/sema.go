// Package sema implements the two-pass semantic analyzer: name resolution
// with hierarchical, class-inheritance-aware scopes, type inference for
// `let`, type-compatibility checking, function-overload mangling, and a
// node→type side table consumed by internal/irgen.
//
// There is no unification or generalization here — Alir's type model is
// structural and nominal, not polymorphic — so analysis accumulates
// diagnostics onto a Sink as it walks the program once for declarations
// (Scan) and once for bodies (Check), rather than solving constraints.
package sema

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/types"
)

// SideTable is the node→type mapping Semantic produces for every
// expression node it visits. Keyed by node identity (pointer equality),
// never by structural content — two structurally identical expressions at
// different source positions are different map keys.
type SideTable struct {
	byNode map[ast.Node]types.Type
}

func NewSideTable() *SideTable {
	return &SideTable{byNode: make(map[ast.Node]types.Type)}
}

func (s *SideTable) Set(n ast.Node, t types.Type) {
	s.byNode[n] = t
}

func (s *SideTable) Get(n ast.Node) (types.Type, bool) {
	t, ok := s.byNode[n]
	return t, ok
}

// Len reports how many nodes carry an entry, used by the type-table
// totality property test.
func (s *SideTable) Len() int { return len(s.byNode) }

// Result is everything Semantic hands to the IR generator: the populated
// scope tree, the side table, and the registries irgen needs for class
// layout (class/enum declarations in source order).
type Result struct {
	Global    *types.Scope
	Types     *SideTable
	Classes   []*ast.Class   // in first-seen source order, flattened across namespaces
	Enums     []*ast.Enum    // in first-seen source order
	Functions []*ast.FuncDef // free functions and methods, in first-seen source order
}

// Analyzer holds all state threaded through Pass 1 and Pass 2. There is no
// global or singleton state; loop/switch nesting and whether the current
// function is a flux body are tracked with plain counters and a flag,
// saved and restored around each nested scope.
type Analyzer struct {
	filename string
	sink     diag.Sink

	global  *types.Scope
	current *types.Scope

	sideTable *SideTable
	classes   map[string]*types.Symbol
	enums     map[string]*types.Symbol
	result    Result

	errorCount int
	infoCount  int

	inLoop   int
	inSwitch int
	inFlux   bool
}

// New creates an Analyzer for one compilation unit.
func New(filename string, sink diag.Sink) *Analyzer {
	global := types.NewScope(types.GlobalScope, nil)
	return &Analyzer{
		filename:  filename,
		sink:      sink,
		global:    global,
		current:   global,
		sideTable: NewSideTable(),
		classes:   make(map[string]*types.Symbol),
		enums:     make(map[string]*types.Symbol),
	}
}

// Analyze runs Pass 1 (Scan) then Pass 2 (Check) over prog and returns the
// Result plus the total error count. A positive error count means the
// driver must not proceed to IR generation.
//
// A nil prog is the only fatal input; everything else runs to completion so
// the caller sees every independent diagnostic in one pass.
func (a *Analyzer) Analyze(prog *ast.Program) (*Result, int) {
	if prog == nil {
		a.errorCount++
		return &a.result, a.errorCount
	}
	a.scanProgram(prog)
	a.checkProgram(prog)
	a.result.Global = a.global
	a.result.Types = a.sideTable
	return &a.result, a.errorCount
}

func (a *Analyzer) reportError(code string, pos ast.Pos, format string, args ...interface{}) {
	a.errorCount++
	a.sink.Error(diag.SpanOf(pos), code, fmt.Sprintf(format, args...))
}

func (a *Analyzer) reportInfo(code string, pos ast.Pos, format string, args ...interface{}) {
	a.infoCount++
	a.sink.Info(diag.SpanOf(pos), code, fmt.Sprintf(format, args...))
}

func (a *Analyzer) reportWarning(code string, pos ast.Pos, format string, args ...interface{}) {
	a.sink.Warning(diag.SpanOf(pos), code, fmt.Sprintf(format, args...))
}
