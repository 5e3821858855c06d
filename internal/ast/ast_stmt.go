package ast

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/types"
)

// VarDecl is `let`/`var` (is_mutable distinguishes them). VarType is
// types.Auto when the parser saw no annotation; Semantic resolves it in
// place before IR generation runs, so no IR instruction ever carries Auto.
type VarDecl struct {
	Name        string
	VarType     types.Type
	Initializer Expr // nil if absent
	IsMutable   bool
	IsArray     bool
	ArraySize   int // meaningful iff IsArray
	Pos         Pos
}

func (v *VarDecl) Position() Pos  { return v.Pos }
func (v *VarDecl) String() string { return fmt.Sprintf("let %s: %s", v.Name, v.VarType) }
func (v *VarDecl) stmtNode()      {}

// AssignOp distinguishes plain `=` from compound assignment operators.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// Assign covers `name = value`, `target[index] = value`, and
// `target.field = value` — exactly one of Name or Target is set, Index is
// only meaningful when Target is an array access.
type Assign struct {
	Name   string // set iff assigning to a bare identifier
	Target Expr   // set iff assigning through a member/array l-value
	Index  Expr   // set iff Target is an array access
	Value  Expr
	Op     AssignOp
	Pos    Pos
}

func (a *Assign) Position() Pos  { return a.Pos }
func (a *Assign) String() string { return "assign" }
func (a *Assign) stmtNode()      {}

// Return is `return;` or `return expr;`.
type Return struct {
	Value Expr // nil for a bare return
	Pos   Pos
}

func (r *Return) Position() Pos  { return r.Pos }
func (r *Return) String() string { return "return" }
func (r *Return) stmtNode()      {}

// If is `if (cond) { then } [else { else }]`.
type If struct {
	Cond     Expr
	ThenBody []Node
	ElseBody []Node // nil if no else
	Pos      Pos
}

func (i *If) Position() Pos  { return i.Pos }
func (i *If) String() string { return "if" }
func (i *If) stmtNode()      {}

// While is `while (cond) { body }` or, when IsDoWhile, `while once { body }`
// (do-while semantics, condition tested after the first iteration).
type While struct {
	Cond      Expr
	Body      []Node
	IsDoWhile bool
	Pos       Pos
}

func (w *While) Position() Pos  { return w.Pos }
func (w *While) String() string { return "while" }
func (w *While) stmtNode()      {}

// Loop is an infinite `loop { body }`; Iterations is nil for a bare
// infinite loop, or an expression bounding a counted loop.
type Loop struct {
	Iterations Expr
	Body       []Node
	Pos        Pos
}

func (l *Loop) Position() Pos  { return l.Pos }
func (l *Loop) String() string { return "loop" }
func (l *Loop) stmtNode()      {}

// ForIn is `for x in collection { body }`.
type ForIn struct {
	VarName    string
	IterType   types.Type // element type, resolved by Semantic
	Collection Expr
	Body       []Node
	Pos        Pos
}

func (f *ForIn) Position() Pos  { return f.Pos }
func (f *ForIn) String() string { return fmt.Sprintf("for %s in ...", f.VarName) }
func (f *ForIn) stmtNode()      {}

// Case is one arm of a Switch. IsLeak marks a "leak" (fallthrough) case:
// control falls into the next case block instead of jumping to switch end.
type Case struct {
	Value Expr // nil for the default case (paired with Switch.DefaultCase instead)
	Body  []Node
	IsLeak bool
	Pos   Pos
}

func (c *Case) Position() Pos  { return c.Pos }
func (c *Case) String() string { return "case" }
func (c *Case) stmtNode()      {}

// Switch is `switch (condition) { cases... [default: ...] }`.
type Switch struct {
	Condition   Expr
	Cases       []*Case
	DefaultCase []Node // nil if no default
	Pos         Pos
}

func (s *Switch) Position() Pos  { return s.Pos }
func (s *Switch) String() string { return "switch" }
func (s *Switch) stmtNode()      {}

// Break is `break;`.
type Break struct{ Pos Pos }

func (b *Break) Position() Pos  { return b.Pos }
func (b *Break) String() string { return "break" }
func (b *Break) stmtNode()      {}

// Continue is `continue;`.
type Continue struct{ Pos Pos }

func (c *Continue) Position() Pos  { return c.Pos }
func (c *Continue) String() string { return "continue" }
func (c *Continue) stmtNode()      {}

// Emit is the coroutine suspend-with-value statement, valid only inside a
// `flux` function body.
type Emit struct {
	Value Expr
	Pos   Pos
}

func (e *Emit) Position() Pos  { return e.Pos }
func (e *Emit) String() string { return fmt.Sprintf("emit %s", e.Value) }
func (e *Emit) stmtNode()      {}

// Param is one function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FuncDef is a function or method declaration. ClassName is set when this
// is a method (body gets an implicit `this` parameter). MangledName starts
// empty and is filled in by Semantic's mangling pass.
type FuncDef struct {
	Name        string
	RetType     types.Type
	Params      []Param
	Body        []Node // nil for a declaration without a body
	ClassName   string // non-empty iff this is a method
	IsFlux      bool
	IsVarargs   bool
	MangledName string
	Pos         Pos
}

func (f *FuncDef) Position() Pos  { return f.Pos }
func (f *FuncDef) String() string { return fmt.Sprintf("func %s", f.Name) }
func (f *FuncDef) stmtNode()      {}

// ClassMember is one member declaration inside a Class body: either a field
// (Var set) or a method (Method set).
type ClassMember struct {
	Var    *VarDecl
	Method *FuncDef
}

// Class is a class declaration, optionally extending a parent.
type Class struct {
	Name       string
	ParentName string // empty if no parent
	Members    []ClassMember
	Traits     []string
	Pos        Pos
}

func (c *Class) Position() Pos  { return c.Pos }
func (c *Class) String() string { return fmt.Sprintf("class %s", c.Name) }
func (c *Class) stmtNode()      {}

// EnumEntry is one `Name [= value]` member of an Enum declaration. Value is
// nil when the parser saw no explicit initializer (Semantic assigns the
// next sequential integer, C-style).
type EnumEntry struct {
	Name  string
	Value *int
}

// Enum is an enum declaration.
type Enum struct {
	Name    string
	Entries []EnumEntry
	Pos     Pos
}

func (e *Enum) Position() Pos  { return e.Pos }
func (e *Enum) String() string { return fmt.Sprintf("enum %s", e.Name) }
func (e *Enum) stmtNode()      {}

// Namespace is a named grouping of top-level declarations.
type Namespace struct {
	Name string
	Body []Node
	Pos  Pos
}

func (n *Namespace) Position() Pos  { return n.Pos }
func (n *Namespace) String() string { return fmt.Sprintf("namespace %s", n.Name) }
func (n *Namespace) stmtNode()      {}
