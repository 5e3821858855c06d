// Package ir defines the Module data structure IR Gen produces and IR
// Verify consumes: functions of basic blocks of instructions over typed
// values, plus the struct/enum layout tables the generator fills in during
// its class-layout pass.
package ir

import (
	"fmt"
	"strings"

	"github.com/alir-lang/alirc/internal/types"
)

// Opcode is one instruction kind. Categories mirror the abstract opcode
// table: memory, arithmetic, compare, bitwise, control, iteration, and the
// single pre-lowering coroutine opcode.
type Opcode int

const (
	OpAlloca Opcode = iota
	OpLoad
	OpStore
	OpGetPtr
	OpBitcast
	OpSizeof
	OpAllocHeap
	OpFree

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	OpLt
	OpGt
	OpLte
	OpGte
	OpEq
	OpNeq

	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpNot

	OpJump
	OpCondi
	OpSwitch
	OpCall
	OpRet
	OpCast

	OpIterInit
	OpIterValid
	OpIterGet
	OpIterNext

	OpYield
)

var opcodeNames = map[Opcode]string{
	OpAlloca: "alloca", OpLoad: "load", OpStore: "store", OpGetPtr: "get_ptr",
	OpBitcast: "bitcast", OpSizeof: "sizeof", OpAllocHeap: "alloc_heap", OpFree: "free",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv",
	OpLt: "lt", OpGt: "gt", OpLte: "lte", OpGte: "gte", OpEq: "eq", OpNeq: "neq",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpShl: "shl", OpShr: "shr", OpNot: "not",
	OpJump: "jump", OpCondi: "condi", OpSwitch: "switch", OpCall: "call", OpRet: "ret", OpCast: "cast",
	OpIterInit: "iter_init", OpIterValid: "iter_valid", OpIterGet: "iter_get", OpIterNext: "iter_next",
	OpYield: "yield",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "invalid"
}

// terminators is the set of opcodes allowed as a block's last instruction.
var terminators = map[Opcode]bool{OpJump: true, OpCondi: true, OpSwitch: true, OpRet: true}

func (op Opcode) IsTerminator() bool { return terminators[op] }

// ValueKind distinguishes the seven shapes a Value may take.
type ValueKind int

const (
	ConstInt ValueKind = iota
	ConstFloat
	Temp
	LocalRef
	GlobalRef
	LabelRef
	TypeRef
)

// Value is an IR operand: a constant, an SSA temporary, a named local or
// global reference, a block-label reference, or a class-name type
// reference (used by sizeof/bitcast).
type Value struct {
	Kind    ValueKind
	IntVal  int64
	FltVal  float64
	TempID  int
	Name    string // local/global/label/type name
	ValType types.Type
}

func ConstIntVal(v int64, t types.Type) Value   { return Value{Kind: ConstInt, IntVal: v, ValType: t} }
func ConstFloatVal(v float64, t types.Type) Value { return Value{Kind: ConstFloat, FltVal: v, ValType: t} }
func TempVal(id int, t types.Type) Value        { return Value{Kind: Temp, TempID: id, ValType: t} }
func LocalVal(name string, t types.Type) Value  { return Value{Kind: LocalRef, Name: name, ValType: t} }
func GlobalVal(name string, t types.Type) Value { return Value{Kind: GlobalRef, Name: name, ValType: t} }
func LabelVal(name string) Value                { return Value{Kind: LabelRef, Name: name} }
func TypeVal(name string) Value                 { return Value{Kind: TypeRef, Name: name} }

func (v Value) String() string {
	switch v.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", v.IntVal)
	case ConstFloat:
		return fmt.Sprintf("%g", v.FltVal)
	case Temp:
		return fmt.Sprintf("%%t%d", v.TempID)
	case LocalRef:
		return v.Name
	case GlobalRef:
		return "@" + v.Name
	case LabelRef:
		return "label " + v.Name
	case TypeRef:
		return v.Name
	default:
		return "<invalid>"
	}
}

// CaseEntry is one arm of a switch's case table: a constant-folded literal
// value and the block it dispatches to.
type CaseEntry struct {
	Value int64
	Label string
}

// Instruction is one IR op: an opcode, an optional destination temporary,
// up to two operands, an optional argument vector (call args, or the
// "false" branch target encoded as a LabelRef), an optional case table,
// and a source position for diagnostics.
type Instruction struct {
	Op       Opcode
	Dest     *Value
	Op1, Op2 Value
	Args     []Value
	Cases    []CaseEntry
	Line     int
	Col      int
}

// String() omits a zero-valued Op1/Op2; unaryOps lists the opcodes whose
// Op1 is rendered even when it is the zero Value.
var unaryOps = map[Opcode]bool{
	OpAlloca: true, OpSizeof: true, OpAllocHeap: true, OpFree: true,
	OpJump: true, OpRet: true, OpNot: true, OpBitcast: true, OpLoad: true,
}

func (in Instruction) String() string {
	var b strings.Builder
	if in.Dest != nil {
		fmt.Fprintf(&b, "%s = ", in.Dest)
	}
	b.WriteString(in.Op.String())
	var operands []string
	if zero := (Value{}); in.Op1 != zero || unaryOps[in.Op] {
		operands = append(operands, in.Op1.String())
	}
	if zero := (Value{}); in.Op2 != zero {
		operands = append(operands, in.Op2.String())
	}
	for _, a := range in.Args {
		operands = append(operands, a.String())
	}
	if len(operands) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(operands, ", "))
	}
	return b.String()
}

// BasicBlock is a straight-line instruction sequence. Successor edges are
// implicit in its terminator (jump/condi/switch targets, or none for ret).
type BasicBlock struct {
	Label        string
	Instructions []Instruction
}

func (b *BasicBlock) Append(in Instruction) { b.Instructions = append(b.Instructions, in) }

func (b *BasicBlock) Terminator() (Instruction, bool) {
	if len(b.Instructions) == 0 {
		return Instruction{}, false
	}
	last := b.Instructions[len(b.Instructions)-1]
	if last.Op.IsTerminator() {
		return last, true
	}
	return Instruction{}, false
}

// Function is one IR function: mangled name, signature, ordered blocks,
// and whether it was lowered from a `flux` coroutine (set on the factory
// function only; the companion `<name>_Resume` function is ordinary).
type Function struct {
	Name       string
	RetType    types.Type
	Params     []types.Type
	ParamNames []string
	Blocks     []*BasicBlock
	FromFlux   bool

	nextTemp int
}

func NewFunction(name string, ret types.Type, paramNames []string, paramTypes []types.Type) *Function {
	return &Function{Name: name, RetType: ret, Params: paramTypes, ParamNames: paramNames}
}

// NewTemp allocates the next SSA temporary id for this function.
func (f *Function) NewTemp(t types.Type) Value {
	v := TempVal(f.nextTemp, t)
	f.nextTemp++
	return v
}

// NewBlock appends and returns a fresh block with a unique label derived
// from hint (callers pass "then"/"else"/"loop_cond" etc; duplicates get a
// numeric suffix).
func (f *Function) NewBlock(hint string) *BasicBlock {
	label := hint
	if f.hasLabel(label) {
		for i := 1; ; i++ {
			candidate := fmt.Sprintf("%s_%d", hint, i)
			if !f.hasLabel(candidate) {
				label = candidate
				break
			}
		}
	}
	blk := &BasicBlock{Label: label}
	f.Blocks = append(f.Blocks, blk)
	return blk
}

func (f *Function) hasLabel(label string) bool {
	for _, b := range f.Blocks {
		if b.Label == label {
			return true
		}
	}
	return false
}

func (f *Function) BlockByLabel(label string) (*BasicBlock, bool) {
	for _, b := range f.Blocks {
		if b.Label == label {
			return b, true
		}
	}
	return nil, false
}

// Field is one entry in a flattened class layout: parent fields occupy the
// low indices, own fields follow, all dense from 0.
type Field struct {
	Name  string
	Type  types.Type
	Index int
}

// EnumValue is one member of a flattened enum layout.
type EnumValue struct {
	Name  string
	Value int
}

// Global is a module-level string literal or variable, addressed by a
// stable label distinct from its source name (string literals are
// interned and named sequentially).
type Global struct {
	Label string
	Type  types.Type
	Value string // string literal content, or empty for a plain variable slot
}

// Module is the complete output of IR generation: every function, every
// interned global, and the flattened struct/enum layout tables the
// generator computed during its class-layout pass.
type Module struct {
	Functions []*Function
	Globals   []Global
	Structs   map[string][]Field
	Enums     map[string][]EnumValue

	nextGlobal int
}

func NewModule() *Module {
	return &Module{Structs: make(map[string][]Field), Enums: make(map[string][]EnumValue)}
}

func (m *Module) AddFunction(fn *Function) { m.Functions = append(m.Functions, fn) }

// InternString adds (or reuses) a string-literal global and returns its
// reference value.
func (m *Module) InternString(s string) Value {
	for _, g := range m.Globals {
		if g.Value == s {
			return GlobalVal(g.Label, types.NewScalar(types.String))
		}
	}
	label := fmt.Sprintf("str.%d", m.nextGlobal)
	m.nextGlobal++
	m.Globals = append(m.Globals, Global{Label: label, Type: types.NewScalar(types.String), Value: s})
	return GlobalVal(label, types.NewScalar(types.String))
}

func (m *Module) FunctionByName(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// String renders the whole module as readable text: one function per
// block of output, one line per instruction, suitable for a driver to print
// or a test to diff against a golden file.
func (m *Module) String() string {
	var b strings.Builder
	for _, fn := range m.Functions {
		fmt.Fprintf(&b, "func %s(%s) %s {\n", fn.Name, strings.Join(fn.ParamNames, ", "), fn.RetType)
		for _, blk := range fn.Blocks {
			fmt.Fprintf(&b, "%s:\n", blk.Label)
			for _, in := range blk.Instructions {
				fmt.Fprintf(&b, "  %s\n", in.String())
			}
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// FieldIndex looks up a field's flattened index within className's layout.
func (m *Module) FieldIndex(className, fieldName string) (int, bool) {
	for _, f := range m.Structs[className] {
		if f.Name == fieldName {
			return f.Index, true
		}
	}
	return 0, false
}
