// Package ast defines the input contract the parser is expected to satisfy.
// Lexing and parsing are external collaborators — nothing in this module
// constructs these nodes from source text — but every downstream pass
// (internal/sema, internal/irgen) consumes exactly this shape.
//
// Nodes are a Go sum type: one interface, one concrete struct per node
// kind, ordered children as slices rather than next-pointers. This gives
// the analyzers exhaustiveness via type switches instead of kind-tag
// checks on a tagged union.
package ast

import (
	"fmt"

	"github.com/alir-lang/alirc/internal/types"
)

// Pos is a source position, carried by every node for diagnostics.
type Pos struct {
	File   string
	Line   int
	Col    int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col) }

// Node is the base interface every AST node satisfies.
type Node interface {
	Position() Pos
	String() string
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that does not itself produce a value (though it may
// contain expressions that do).
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed compilation unit: an ordered list of
// top-level declarations (functions, classes, enums, namespaces).
type Program struct {
	Decls []Node
}

func (p *Program) Position() Pos { return Pos{} }
func (p *Program) String() string { return fmt.Sprintf("Program(%d decls)", len(p.Decls)) }

// ---- Literal, identifier and operator expressions ----

// LiteralKind distinguishes the literal kinds the lexer/parser may produce.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	CharLit
	BoolLit
)

// Literal is a constant value with its static type already attached by the
// parser (the parser knows an integer literal's type without help from
// Semantic).
type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) Position() Pos  { return l.Pos }
func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) exprNode()      {}

// VarRef is a bare name reference: a local, a parameter, a field (implicit
// `this.field`), or (resolved later by Semantic) an enum member constant.
type VarRef struct {
	Name          string
	IsClassMember bool // true if written as an implicit member (no `this.` prefix)
	Pos           Pos
}

func (v *VarRef) Position() Pos  { return v.Pos }
func (v *VarRef) String() string { return v.Name }
func (v *VarRef) exprNode()      {}

// BinaryOp is a binary operator expression.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryOp) Position() Pos  { return b.Pos }
func (b *BinaryOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *BinaryOp) exprNode()      {}

// UnaryOp is a unary operator expression (-, !, ~, etc).
type UnaryOp struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (u *UnaryOp) Position() Pos  { return u.Pos }
func (u *UnaryOp) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (u *UnaryOp) exprNode()      {}

// Call is a free-function call, OR (once Semantic identifies the callee
// name as a class) a constructor call lowered by irgen into object
// construction.
type Call struct {
	Name string
	Args []Expr
	Pos  Pos
}

func (c *Call) Position() Pos  { return c.Pos }
func (c *Call) String() string { return fmt.Sprintf("%s(...)", c.Name) }
func (c *Call) exprNode()      {}

// MethodCall is `object.method(args)`.
type MethodCall struct {
	Object     Expr
	MethodName string
	Args       []Expr
	Pos        Pos
}

func (m *MethodCall) Position() Pos  { return m.Pos }
func (m *MethodCall) String() string { return fmt.Sprintf("%s.%s(...)", m.Object, m.MethodName) }
func (m *MethodCall) exprNode()      {}

// MemberAccess is `object.field` (also used for the pseudo-member
// `string.length`).
type MemberAccess struct {
	Object     Expr
	MemberName string
	Pos        Pos
}

func (m *MemberAccess) Position() Pos  { return m.Pos }
func (m *MemberAccess) String() string { return fmt.Sprintf("%s.%s", m.Object, m.MemberName) }
func (m *MemberAccess) exprNode()      {}

// ArrayAccess is `target[index]`.
type ArrayAccess struct {
	Target Expr
	Index  Expr
	Pos    Pos
}

func (a *ArrayAccess) Position() Pos  { return a.Pos }
func (a *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", a.Target, a.Index) }
func (a *ArrayAccess) exprNode()      {}

// Cast is an explicit type cast.
type Cast struct {
	VarType types.Type
	Operand Expr
	Pos     Pos
}

func (c *Cast) Position() Pos  { return c.Pos }
func (c *Cast) String() string { return fmt.Sprintf("(%s)%s", c.VarType, c.Operand) }
func (c *Cast) exprNode()      {}

// ArrayLit is a bracketed array literal.
type ArrayLit struct {
	Elements []Expr
	Pos      Pos
}

func (a *ArrayLit) Position() Pos  { return a.Pos }
func (a *ArrayLit) String() string { return fmt.Sprintf("[%d elems]", len(a.Elements)) }
func (a *ArrayLit) exprNode()      {}

// TraitAccess is `object::trait_name`, a compile-time trait/interface
// member reference distinct from ordinary member access.
type TraitAccess struct {
	Object    Expr
	TraitName string
	Pos       Pos
}

func (t *TraitAccess) Position() Pos  { return t.Pos }
func (t *TraitAccess) String() string { return fmt.Sprintf("%s::%s", t.Object, t.TraitName) }
func (t *TraitAccess) exprNode()      {}
