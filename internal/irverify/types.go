package irverify

import (
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
)

var integerArith = map[ir.Opcode]bool{
	ir.OpAdd: true, ir.OpSub: true, ir.OpMul: true, ir.OpDiv: true, ir.OpMod: true,
	ir.OpAnd: true, ir.OpOr: true, ir.OpXor: true, ir.OpShl: true, ir.OpShr: true,
}

var floatArith = map[ir.Opcode]bool{
	ir.OpFAdd: true, ir.OpFSub: true, ir.OpFMul: true, ir.OpFDiv: true,
}

var compareOps = map[ir.Opcode]bool{
	ir.OpLt: true, ir.OpGt: true, ir.OpLte: true, ir.OpGte: true, ir.OpEq: true, ir.OpNeq: true,
}

// checkTypes verifies that binary-op operand kinds agree with the opcode's
// family, and that store/load pointer-depth arithmetic checks out.
func (v *verifier) checkTypes(fn *ir.Function) {
	for _, b := range fn.Blocks {
		for _, in := range b.Instructions {
			switch {
			case integerArith[in.Op]:
				v.requireKind(in, in.Op1, false)
				v.requireKind(in, in.Op2, false)
			case floatArith[in.Op]:
				v.requireKind(in, in.Op1, true)
				v.requireKind(in, in.Op2, true)
			case compareOps[in.Op]:
				// Compare accepts either family, but the two sides must agree.
				if in.Op1.ValType.IsFloatingKind() != in.Op2.ValType.IsFloatingKind() {
					v.errf(in.Line, in.Col, errors.IRV003, "%s: operands disagree on floating-ness (%s vs %s)", in.Op, in.Op1.ValType, in.Op2.ValType)
				}
			case in.Op == ir.OpStore:
				v.checkStore(in)
			case in.Op == ir.OpLoad:
				v.checkLoad(in)
			}
		}
	}
}

func (v *verifier) requireKind(in ir.Instruction, operand ir.Value, wantFloat bool) {
	if operand.Kind != ir.Temp && operand.Kind != ir.ConstInt && operand.Kind != ir.ConstFloat && operand.Kind != ir.LocalRef && operand.Kind != ir.GlobalRef {
		return
	}
	isFloat := operand.ValType.IsFloatingKind()
	if isFloat != wantFloat {
		family := "integer"
		if wantFloat {
			family = "floating"
		}
		v.errf(in.Line, in.Col, errors.IRV003, "%s expects a %s operand, got %s", in.Op, family, operand.ValType)
	}
}

// checkStore verifies `store val, ptr`: ptr's pointer depth must equal
// val's depth + 1 with matching base kind. An integer constant may be
// stored into any pointee (a literal 0 assigns to any pointer depth,
// matching the null-constant rule used throughout the generator); a
// floating constant only into a non-pointer floating pointee.
func (v *verifier) checkStore(in ir.Instruction) {
	val, ptr := in.Op1, in.Op2
	if !ptr.ValType.IsPointer() {
		v.errf(in.Line, in.Col, errors.IRV004, "store target %s is not a pointer (depth 0)", ptr)
		return
	}
	want := ptr.ValType.Deref()
	if val.Kind == ir.ConstInt || val.Kind == ir.ConstFloat {
		if val.Kind == ir.ConstFloat && (want.IsPointer() || !want.IsFloatingKind()) {
			v.errf(in.Line, in.Col, errors.IRV004, "store: floating constant %s into non-floating pointee type %s", val, want)
		}
		return
	}
	if val.ValType.PointerDepth != want.PointerDepth || val.ValType.Base != want.Base {
		v.errf(in.Line, in.Col, errors.IRV004, "store: value type %s does not match pointee type %s", val.ValType, want)
	}
}

// checkLoad verifies `load dst, ptr`: dst's depth must be ptr's depth - 1.
func (v *verifier) checkLoad(in ir.Instruction) {
	ptr := in.Op1
	if !ptr.ValType.IsPointer() {
		v.errf(in.Line, in.Col, errors.IRV004, "load source %s is not a pointer (depth 0)", ptr)
		return
	}
	if in.Dest == nil {
		return
	}
	want := ptr.ValType.Deref()
	if in.Dest.ValType.PointerDepth != want.PointerDepth || in.Dest.ValType.Base != want.Base {
		v.errf(in.Line, in.Col, errors.IRV004, "load: dest type %s does not match pointee type %s", in.Dest.ValType, want)
	}
}
