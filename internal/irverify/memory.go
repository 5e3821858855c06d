package irverify

import (
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
)

// checkMemory verifies: every `free` has a matching prior `alloc_heap` or
// `bitcast` of one in the same function (syntactic only — it tracks which
// temporaries were produced by one of those two opcodes, not whether the
// value actually reaches the free along every path), `get_ptr` targets a
// pointer, and no instruction dereferences a constant-integer address.
func (v *verifier) checkMemory(fn *ir.Function) {
	heapOrigin := make(map[int]bool) // temp id -> produced by alloc_heap/bitcast-of-heap
	for _, b := range fn.Blocks {
		for _, in := range b.Instructions {
			switch in.Op {
			case ir.OpAllocHeap:
				if in.Dest != nil {
					heapOrigin[in.Dest.TempID] = true
				}
			case ir.OpBitcast:
				if in.Dest != nil && in.Op1.Kind == ir.Temp && heapOrigin[in.Op1.TempID] {
					heapOrigin[in.Dest.TempID] = true
				}
			case ir.OpFree:
				if in.Op1.Kind != ir.Temp || !heapOrigin[in.Op1.TempID] {
					v.warnf(in.Line, in.Col, errors.IRV005, "free %s has no matching alloc_heap/bitcast in this function", in.Op1)
				}
			case ir.OpGetPtr:
				if !in.Op1.ValType.IsPointer() {
					v.errf(in.Line, in.Col, errors.IRV006, "get_ptr target %s is not a pointer", in.Op1)
				}
			}
			v.checkDeref(in)
		}
	}
}

// checkDeref flags loads, stores, and get_ptr instructions whose address
// operand is a bare constant integer — there is no heap object at a literal
// address.
func (v *verifier) checkDeref(in ir.Instruction) {
	var addr ir.Value
	switch in.Op {
	case ir.OpLoad, ir.OpGetPtr:
		addr = in.Op1
	case ir.OpStore:
		addr = in.Op2
	default:
		return
	}
	if addr.Kind == ir.ConstInt {
		v.errf(in.Line, in.Col, errors.IRV007, "%s: dereferencing a constant-integer address", in.Op)
	}
}
