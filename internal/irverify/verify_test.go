package irverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/types"
)

func intT() types.Type { return types.NewScalar(types.Int) }

func newFn(name string) *ir.Function {
	return ir.NewFunction(name, intT(), nil, nil)
}

func TestCleanFunctionVerifiesClean(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	entry.Append(ir.Instruction{Op: ir.OpRet, Op1: ir.ConstIntVal(0, intT())})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	assert.Equal(t, 0, errCount)
	assert.Empty(t, rec.Diagnostics)
}

func TestMissingTerminatorReported(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	tmp := fn.NewTemp(intT())
	entry.Append(ir.Instruction{Op: ir.OpAlloca, Dest: &tmp, Op1: ir.TypeVal("int")})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	require.Equal(t, 1, errCount)
	assert.Equal(t, "IRV001", rec.Diagnostics[0].Code)
}

func TestBadBranchTargetReported(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	entry.Append(ir.Instruction{Op: ir.OpJump, Op1: ir.LabelVal("nowhere")})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	require.Equal(t, 1, errCount)
	assert.Equal(t, "IRV002", rec.Diagnostics[0].Code)
}

func TestUnreachableBlockWarns(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	entry.Append(ir.Instruction{Op: ir.OpRet, Op1: ir.ConstIntVal(0, intT())})
	dead := fn.NewBlock("dead")
	dead.Append(ir.Instruction{Op: ir.OpRet})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	assert.Equal(t, 0, errCount)
	require.Len(t, rec.Diagnostics, 1)
	assert.Equal(t, diag.SeverityWarning, rec.Diagnostics[0].Severity)
	assert.Equal(t, "IRV008", rec.Diagnostics[0].Code)
}

func TestFloatOpcodeRejectsIntegerOperand(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	dest := fn.NewTemp(types.NewScalar(types.Double))
	entry.Append(ir.Instruction{
		Op: ir.OpFAdd, Dest: &dest,
		Op1: ir.ConstIntVal(1, intT()),
		Op2: ir.ConstFloatVal(2, types.NewScalar(types.Double)),
	})
	entry.Append(ir.Instruction{Op: ir.OpRet})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	require.Equal(t, 1, errCount)
	assert.Equal(t, "IRV003", rec.Diagnostics[0].Code)
}

func TestStoreTypeMismatchReported(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	ptr := fn.NewTemp(intT().PointerTo())
	entry.Append(ir.Instruction{Op: ir.OpAlloca, Dest: &ptr, Op1: ir.TypeVal("int")})
	entry.Append(ir.Instruction{Op: ir.OpStore, Op1: ir.ConstFloatVal(1.5, types.NewScalar(types.Double)), Op2: ptr})
	entry.Append(ir.Instruction{Op: ir.OpRet})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	require.Equal(t, 1, errCount)
	assert.Equal(t, "IRV004", rec.Diagnostics[0].Code)
}

func TestFreeWithNoMatchingAllocWarns(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	bogus := fn.NewTemp(types.NewScalar(types.Char).PointerTo())
	entry.Append(ir.Instruction{Op: ir.OpCast, Dest: &bogus, Op1: ir.ConstIntVal(0, intT())})
	entry.Append(ir.Instruction{Op: ir.OpFree, Op1: bogus})
	entry.Append(ir.Instruction{Op: ir.OpRet})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	assert.Equal(t, 0, errCount)
	var codes []string
	for _, d := range rec.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "IRV005")
}

func TestDerefOfConstantAddressReported(t *testing.T) {
	m := ir.NewModule()
	fn := newFn("f")
	m.AddFunction(fn)

	entry := fn.NewBlock("entry")
	dest := fn.NewTemp(intT())
	badAddr := ir.ConstIntVal(0x1000, intT().PointerTo())
	entry.Append(ir.Instruction{Op: ir.OpLoad, Dest: &dest, Op1: badAddr})
	entry.Append(ir.Instruction{Op: ir.OpRet})

	rec := diag.NewRecorder()
	errCount := Verify(m, rec)
	require.GreaterOrEqual(t, errCount, 1)
	var codes []string
	for _, d := range rec.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "IRV007")
}
