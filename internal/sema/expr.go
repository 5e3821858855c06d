package sema

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/types"
)

// literalType maps a parsed literal kind to its static type. The parser
// already knows an integer literal's type without Semantic's help; this
// just mirrors that mapping for the side table.
func literalType(l *ast.Literal) types.Type {
	switch l.Kind {
	case ast.IntLit:
		return types.NewScalar(types.Int)
	case ast.FloatLit:
		return types.NewScalar(types.Double)
	case ast.StringLit:
		return types.NewScalar(types.String)
	case ast.CharLit:
		return types.NewScalar(types.Char)
	case ast.BoolLit:
		return types.NewScalar(types.Bool)
	default:
		return types.NewScalar(types.Unknown)
	}
}

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

var logicalOps = map[string]bool{"&&": true, "||": true}

// checkExpr types node, records the result in the side table, and returns
// it so callers (checkVarDecl, checkAssign, checkReturn, ...) can classify
// assignability against it.
func (a *Analyzer) checkExpr(node ast.Expr) types.Type {
	t := a.typeOf(node)
	a.sideTable.Set(node, t)
	return t
}

func (a *Analyzer) typeOf(node ast.Expr) types.Type {
	switch n := node.(type) {
	case *ast.Literal:
		return literalType(n)
	case *ast.VarRef:
		return a.typeOfVarRef(n)
	case *ast.BinaryOp:
		return a.typeOfBinaryOp(n)
	case *ast.UnaryOp:
		return a.typeOfUnaryOp(n)
	case *ast.Call:
		return a.typeOfCall(n)
	case *ast.MethodCall:
		return a.typeOfMethodCall(n)
	case *ast.MemberAccess:
		return a.typeOfMemberAccess(n)
	case *ast.ArrayAccess:
		return a.typeOfArrayAccess(n)
	case *ast.Cast:
		a.checkExpr(n.Operand)
		return n.VarType
	case *ast.ArrayLit:
		return a.typeOfArrayLit(n)
	case *ast.TraitAccess:
		a.checkExpr(n.Object)
		return types.NewScalar(types.Unknown)
	default:
		return types.NewScalar(types.Unknown)
	}
}

func (a *Analyzer) typeOfVarRef(v *ast.VarRef) types.Type {
	sym, ok := a.lookup(a.current, v.Name)
	if !ok {
		a.reportNameError(v.Pos, v.Name)
		return types.NewScalar(types.Unknown)
	}
	return sym.Type
}

// typeOfBinaryOp picks the wider numeric operand's type for arithmetic,
// bool for comparisons and logical operators, and falls back to
// string-concatenation for `+` between two strings.
func (a *Analyzer) typeOfBinaryOp(b *ast.BinaryOp) types.Type {
	lt := a.checkExpr(b.Left)
	rt := a.checkExpr(b.Right)

	if comparisonOps[b.Op] || logicalOps[b.Op] {
		return types.NewScalar(types.Bool)
	}

	if lt.IsUnknown() || rt.IsUnknown() {
		return types.NewScalar(types.Unknown)
	}

	if b.Op == "+" && lt.Base == types.String && rt.Base == types.String {
		return types.NewScalar(types.String)
	}

	if lt.IsPointer() && rt.IsIntegerKind() && (b.Op == "+" || b.Op == "-") {
		return lt
	}
	if rt.IsPointer() && lt.IsIntegerKind() && b.Op == "+" {
		return rt
	}
	if lt.IsPointer() && rt.IsPointer() && b.Op == "-" {
		return types.NewScalar(types.Long)
	}

	if lt.IsScalarNumeric() && rt.IsScalarNumeric() {
		if rt.Rank() > lt.Rank() {
			return rt
		}
		return lt
	}

	a.reportError(errors.SEM003, b.Pos, "operator %q is not defined for %s and %s", b.Op, lt, rt)
	return types.NewScalar(types.Unknown)
}

func (a *Analyzer) typeOfUnaryOp(u *ast.UnaryOp) types.Type {
	t := a.checkExpr(u.Operand)
	switch u.Op {
	case "!":
		return types.NewScalar(types.Bool)
	case "&":
		return t.PointerTo()
	case "*":
		if !t.IsPointer() {
			a.reportError(errors.SEM003, u.Pos, "cannot dereference non-pointer type %s", t)
			return types.NewScalar(types.Unknown)
		}
		return t.Deref()
	default: // -, ~, ++, --
		return t
	}
}

// typeOfCall resolves Call.Name against the current scope. A name
// resolving to a ClassSymbol is a constructor call and types as that class
// (irgen recognizes it by the class's struct layout and lowers it into
// object construction instead of an ordinary function call).
func (a *Analyzer) typeOfCall(c *ast.Call) types.Type {
	for _, arg := range c.Args {
		a.checkExpr(arg)
	}

	if classSym, ok := a.classes[c.Name]; ok {
		return classSym.Type
	}

	sym, ok := a.lookup(a.current, c.Name)
	if !ok {
		a.reportNameError(c.Pos, c.Name)
		return types.NewScalar(types.Unknown)
	}
	if sym.Kind != types.FuncSymbol {
		a.reportError(errors.SEM010, c.Pos, "%q is not callable", c.Name)
		return types.NewScalar(types.Unknown)
	}
	return sym.Type
}

func (a *Analyzer) typeOfMethodCall(m *ast.MethodCall) types.Type {
	objType := a.checkExpr(m.Object)
	for _, arg := range m.Args {
		a.checkExpr(arg)
	}
	if objType.Base != types.Class {
		if !objType.IsUnknown() {
			a.reportError(errors.SEM009, m.Pos, "%s has no method %q", objType, m.MethodName)
		}
		return types.NewScalar(types.Unknown)
	}
	sym, ok := a.classMember(objType.Name, m.MethodName)
	if !ok {
		a.reportError(errors.SEM009, m.Pos, "class %s has no method %q", objType.Name, m.MethodName)
		return types.NewScalar(types.Unknown)
	}
	return sym.Type
}

func (a *Analyzer) typeOfMemberAccess(m *ast.MemberAccess) types.Type {
	objType := a.checkExpr(m.Object)

	if objType.IsArray() || (objType.IsPointer() && m.MemberName == "length") {
		if m.MemberName == "length" {
			return types.NewScalar(types.Int)
		}
	}
	if objType.Base == types.String && m.MemberName == "length" {
		return types.NewScalar(types.Int)
	}

	base := objType
	if base.IsPointer() {
		base = base.Deref()
	}

	if base.Base == types.Enum {
		sym, ok := a.enumMember(base.Name, m.MemberName)
		if !ok {
			a.reportError(errors.SEM009, m.Pos, "enum %s has no member %q", base.Name, m.MemberName)
			return types.NewScalar(types.Unknown)
		}
		return sym.Type
	}

	if base.Base != types.Class {
		if !objType.IsUnknown() {
			a.reportError(errors.SEM009, m.Pos, "%s has no member %q", objType, m.MemberName)
		}
		return types.NewScalar(types.Unknown)
	}
	sym, ok := a.classMember(base.Name, m.MemberName)
	if !ok {
		a.reportError(errors.SEM009, m.Pos, "class %s has no member %q", base.Name, m.MemberName)
		return types.NewScalar(types.Unknown)
	}
	return sym.Type
}

func (a *Analyzer) typeOfArrayAccess(ar *ast.ArrayAccess) types.Type {
	targetType := a.checkExpr(ar.Target)
	a.checkExpr(ar.Index)
	switch {
	case targetType.IsArray():
		return targetType.ElementType()
	case targetType.IsPointer():
		return targetType.Deref()
	default:
		if !targetType.IsUnknown() {
			a.reportError(errors.SEM003, ar.Pos, "cannot index non-array, non-pointer type %s", targetType)
		}
		return types.NewScalar(types.Unknown)
	}
}

// typeOfArrayLit types every element, reporting a mismatch against the
// first element's type, and returns a fixed-size array of that type.
func (a *Analyzer) typeOfArrayLit(arr *ast.ArrayLit) types.Type {
	if len(arr.Elements) == 0 {
		return types.Type{Base: types.Unknown, ArraySize: 0}
	}
	elemType := a.checkExpr(arr.Elements[0])
	for _, el := range arr.Elements[1:] {
		t := a.checkExpr(el)
		a.checkAssignable(t, elemType, el.Position())
	}
	result := elemType
	result.ArraySize = len(arr.Elements)
	return result
}
