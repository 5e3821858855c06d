package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alir-lang/alirc/internal/types"
)

func TestBlockTerminator(t *testing.T) {
	fn := NewFunction("f", types.NewScalar(types.Int), nil, nil)
	blk := fn.NewBlock("entry")
	blk.Append(Instruction{Op: OpAdd, Dest: ptr(fn.NewTemp(types.NewScalar(types.Int)))})
	_, ok := blk.Terminator()
	assert.False(t, ok)

	blk.Append(Instruction{Op: OpRet})
	term, ok := blk.Terminator()
	require.True(t, ok)
	assert.Equal(t, OpRet, term.Op)
}

func TestNewBlockUniqueLabels(t *testing.T) {
	fn := NewFunction("f", types.NewScalar(types.Void), nil, nil)
	a := fn.NewBlock("merge")
	b := fn.NewBlock("merge")
	assert.Equal(t, "merge", a.Label)
	assert.Equal(t, "merge_1", b.Label)
}

func TestModuleFieldIndexDensity(t *testing.T) {
	m := NewModule()
	m.Structs["A"] = []Field{{Name: "x", Type: types.NewScalar(types.Int), Index: 0}}
	m.Structs["B"] = []Field{
		{Name: "x", Type: types.NewScalar(types.Int), Index: 0},
		{Name: "y", Type: types.NewScalar(types.Int), Index: 1},
	}

	for class, fields := range m.Structs {
		for i, f := range fields {
			assert.Equal(t, i, f.Index, "class %s field %s out of order", class, f.Name)
		}
	}

	idx, ok := m.FieldIndex("B", "y")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestInternStringDeduplicates(t *testing.T) {
	m := NewModule()
	v1 := m.InternString("hello")
	v2 := m.InternString("hello")
	v3 := m.InternString("world")
	assert.Equal(t, v1.Name, v2.Name)
	assert.NotEqual(t, v1.Name, v3.Name)
	assert.Len(t, m.Globals, 2)
}

func ptr(v Value) *Value { return &v }
