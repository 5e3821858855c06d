package irgen

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

var arithOpcode = map[string]ir.Opcode{
	"+": ir.OpAdd, "-": ir.OpSub, "*": ir.OpMul, "/": ir.OpDiv, "%": ir.OpMod,
}

var fArithOpcode = map[string]ir.Opcode{
	"+": ir.OpFAdd, "-": ir.OpFSub, "*": ir.OpFMul, "/": ir.OpFDiv,
}

var compareOpcode = map[string]ir.Opcode{
	"<": ir.OpLt, ">": ir.OpGt, "<=": ir.OpLte, ">=": ir.OpGte, "==": ir.OpEq, "!=": ir.OpNeq,
}

var bitwiseOpcode = map[string]ir.Opcode{
	"&": ir.OpAnd, "|": ir.OpOr, "^": ir.OpXor, "<<": ir.OpShl, ">>": ir.OpShr,
}

// genExpr lowers an r-value expression, emitting whatever instructions are
// needed and returning the Value holding its result.
func (g *Generator) genExpr(expr ast.Expr) ir.Value {
	switch n := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(n)
	case *ast.VarRef:
		if v, ok := g.enumConstant(n.Name); ok {
			return v
		}
		return g.loadLocal(n.Name)
	case *ast.BinaryOp:
		return g.genBinaryOp(n)
	case *ast.UnaryOp:
		return g.genUnaryOp(n)
	case *ast.Call:
		return g.genCall(n)
	case *ast.MethodCall:
		return g.genMethodCall(n)
	case *ast.MemberAccess:
		return g.genMemberAccessValue(n)
	case *ast.ArrayAccess:
		addr := g.addrOfArrayAccess(n)
		dest := g.fn.NewTemp(g.typeOf(n))
		g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: addr})
		return dest
	case *ast.Cast:
		return g.genCast(n)
	case *ast.ArrayLit:
		return g.genArrayLit(n)
	case *ast.TraitAccess:
		return g.genExpr(n.Object)
	default:
		return ir.Value{ValType: types.NewScalar(types.Unknown)}
	}
}

func (g *Generator) genLiteral(l *ast.Literal) ir.Value {
	switch l.Kind {
	case ast.IntLit:
		v, _ := l.Value.(int)
		return ir.ConstIntVal(int64(v), types.NewScalar(types.Int))
	case ast.FloatLit:
		v, _ := l.Value.(float64)
		return ir.ConstFloatVal(v, types.NewScalar(types.Double))
	case ast.BoolLit:
		v, _ := l.Value.(bool)
		iv := int64(0)
		if v {
			iv = 1
		}
		return ir.ConstIntVal(iv, types.NewScalar(types.Bool))
	case ast.CharLit:
		v, _ := l.Value.(rune)
		return ir.ConstIntVal(int64(v), types.NewScalar(types.Char))
	case ast.StringLit:
		s, _ := l.Value.(string)
		return g.module.InternString(s)
	default:
		return ir.Value{ValType: types.NewScalar(types.Unknown)}
	}
}

// enumConstant resolves a bare name against every registered enum layout,
// mirroring the semantic analyzer's implicit enum-member lookup so a
// reference like `Red` lowers to the constant the enum registered, not a
// local-variable load.
func (g *Generator) enumConstant(name string) (ir.Value, bool) {
	if _, isLocal := g.locals[name]; isLocal {
		return ir.Value{}, false
	}
	for enumName, members := range g.module.Enums {
		for _, m := range members {
			if m.Name == name {
				return ir.ConstIntVal(int64(m.Value), types.NewEnum(enumName)), true
			}
		}
	}
	return ir.Value{}, false
}

// genBinaryOp lowers arithmetic/compare/bitwise operators, inserting a
// `cast` temporary on whichever operand has a narrower base kind when the
// two operands mix integer and floating-point.
func (g *Generator) genBinaryOp(b *ast.BinaryOp) ir.Value {
	lv := g.genExpr(b.Left)
	rv := g.genExpr(b.Right)
	resultType := g.typeOf(b)

	if op, ok := compareOpcode[b.Op]; ok {
		lv, rv = g.promote(lv, rv)
		dest := g.fn.NewTemp(types.NewScalar(types.Bool))
		g.emit(ir.Instruction{Op: op, Dest: &dest, Op1: lv, Op2: rv})
		return dest
	}

	lv, rv = g.promote(lv, rv)
	useFloat := lv.ValType.IsFloatingKind() || rv.ValType.IsFloatingKind()

	if op, ok := bitwiseOpcode[b.Op]; ok {
		dest := g.fn.NewTemp(resultType)
		g.emit(ir.Instruction{Op: op, Dest: &dest, Op1: lv, Op2: rv})
		return dest
	}

	var op ir.Opcode
	var ok bool
	if useFloat {
		op, ok = fArithOpcode[b.Op]
	} else {
		op, ok = arithOpcode[b.Op]
	}
	if !ok {
		op = ir.OpAdd
	}
	dest := g.fn.NewTemp(resultType)
	g.emit(ir.Instruction{Op: op, Dest: &dest, Op1: lv, Op2: rv})
	return dest
}

// promote inserts a `cast` instruction on the narrower of two operands
// when one is floating and the other is integer, so both sides of an
// arithmetic or compare opcode share one base kind.
func (g *Generator) promote(a, b ir.Value) (ir.Value, ir.Value) {
	aFloat, bFloat := a.ValType.IsFloatingKind(), b.ValType.IsFloatingKind()
	if aFloat == bFloat {
		return a, b
	}
	if !aFloat {
		return g.castTo(a, b.ValType), b
	}
	return a, g.castTo(b, a.ValType)
}

func (g *Generator) castTo(v ir.Value, t types.Type) ir.Value {
	dest := g.fn.NewTemp(t)
	g.emit(ir.Instruction{Op: ir.OpCast, Dest: &dest, Op1: v, Op2: ir.TypeVal(t.String())})
	return dest
}

func (g *Generator) genUnaryOp(u *ast.UnaryOp) ir.Value {
	switch u.Op {
	case "&":
		return g.genAddr(u.Operand)
	case "*":
		base := g.genExpr(u.Operand)
		dest := g.fn.NewTemp(g.typeOf(u))
		g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: base})
		return dest
	case "!":
		operand := g.genExpr(u.Operand)
		dest := g.fn.NewTemp(types.NewScalar(types.Bool))
		g.emit(ir.Instruction{Op: ir.OpNot, Dest: &dest, Op1: operand})
		return dest
	default: // -, ~
		operand := g.genExpr(u.Operand)
		dest := g.fn.NewTemp(g.typeOf(u))
		op := ir.OpSub
		if operand.ValType.IsFloatingKind() {
			op = ir.OpFSub
		}
		zero := ir.ConstIntVal(0, operand.ValType)
		if operand.ValType.IsFloatingKind() {
			zero = ir.ConstFloatVal(0, operand.ValType)
		}
		g.emit(ir.Instruction{Op: op, Dest: &dest, Op1: zero, Op2: operand})
		return dest
	}
}

func (g *Generator) genCast(c *ast.Cast) ir.Value {
	v := g.genExpr(c.Operand)
	return g.castTo(v, c.VarType)
}

func (g *Generator) genArrayLit(arr *ast.ArrayLit) ir.Value {
	elemType := g.typeOf(arr).ElementType()
	arrAddr := g.fn.NewTemp(g.typeOf(arr).PointerTo())
	g.emit(ir.Instruction{Op: ir.OpAlloca, Dest: &arrAddr, Op1: ir.TypeVal(g.typeOf(arr).String())})
	for i, el := range arr.Elements {
		v := g.genExpr(el)
		slot := g.getPtrField(arrAddr, i, elemType)
		g.emit(ir.Instruction{Op: ir.OpStore, Op1: v, Op2: slot})
	}
	dest := g.fn.NewTemp(g.typeOf(arr))
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: arrAddr})
	return dest
}

func (g *Generator) genMemberAccessValue(m *ast.MemberAccess) ir.Value {
	objType := g.typeOf(m.Object)
	if m.MemberName == "length" && (objType.Base == types.String || objType.IsArray()) {
		obj := g.genExpr(m.Object)
		dest := g.fn.NewTemp(types.NewScalar(types.Int))
		g.emit(ir.Instruction{Op: ir.OpCall, Dest: &dest, Op1: ir.TypeVal("length"), Args: []ir.Value{obj}})
		return dest
	}
	addr := g.addrOfMember(m)
	dest := g.fn.NewTemp(g.typeOf(m))
	g.emit(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: addr})
	return dest
}
