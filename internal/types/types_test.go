package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeStringRendersPointerAndArray(t *testing.T) {
	arrPtr := Type{Base: Int, ArraySize: 4, PointerDepth: 1}
	assert.Equal(t, "int[4]*", arrPtr.String())

	cls := NewClass("Animal").PointerTo()
	assert.Equal(t, "Animal*", cls.String())
}

func TestTypeEqualsIsStructural(t *testing.T) {
	a := Type{Base: Int, PointerDepth: 1}
	b := Type{Base: Int, PointerDepth: 1}
	c := Type{Base: Int, PointerDepth: 2}
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestDerefRequiresPointer(t *testing.T) {
	p := Type{Base: Int, PointerDepth: 1}
	require.Equal(t, Type{Base: Int}, p.Deref())
	assert.Panics(t, func() { Type{Base: Int}.Deref() })
}

func TestRankOrdersWidestWins(t *testing.T) {
	assert.Greater(t, Type{Base: LongDouble}.Rank(), Type{Base: Double}.Rank())
	assert.Greater(t, Type{Base: Double}.Rank(), Type{Base: Float}.Rank())
	assert.Greater(t, Type{Base: Float}.Rank(), Type{Base: Long}.Rank())
	assert.Greater(t, Type{Base: Long}.Rank(), Type{Base: Int}.Rank())
}

func TestCompatibilityRules(t *testing.T) {
	intT := Type{Base: Int}
	longT := Type{Base: Long}
	shortT := Type{Base: Short}
	strT := Type{Base: String}
	charPtr := Type{Base: Char, PointerDepth: 1}
	voidPtr := Type{Base: Void, PointerDepth: 1}
	classPtr := NewClass("Foo").PointerTo()
	enumT := NewEnum("Color")
	arr := Type{Base: Int, ArraySize: 4}
	ptr := Type{Base: Int, PointerDepth: 1}

	assert.Equal(t, Identical, Compatibility(intT, intT))
	assert.Equal(t, WideningNumeric, Compatibility(intT, longT))
	assert.Equal(t, NarrowingNumeric, Compatibility(longT, shortT))
	assert.Equal(t, EnumIntConversion, Compatibility(enumT, intT))
	assert.Equal(t, EnumIntConversion, Compatibility(intT, enumT))
	assert.Equal(t, StringCharConversion, Compatibility(strT, charPtr))
	assert.Equal(t, StringCharConversion, Compatibility(charPtr, strT))
	assert.Equal(t, ArrayDecay, Compatibility(arr, ptr))
	assert.Equal(t, VoidPointerConversion, Compatibility(classPtr, voidPtr))
	assert.Equal(t, Incompatible, Compatibility(strT, intT))
}

func TestScopeDefineRejectsRedeclaration(t *testing.T) {
	s := NewScope(BlockScope, nil)
	require.NoError(t, s.Define(&Symbol{Name: "x", Kind: VarSymbol, Type: Type{Base: Int}}))
	err := s.Define(&Symbol{Name: "x", Kind: VarSymbol, Type: Type{Base: Int}})
	assert.Error(t, err)
}

func TestScopeOrderIsInsertionOrder(t *testing.T) {
	s := NewScope(GlobalScope, nil)
	require.NoError(t, s.Define(&Symbol{Name: "b"}))
	require.NoError(t, s.Define(&Symbol{Name: "a"}))
	assert.Equal(t, []string{"b", "a"}, s.Names())
}

func TestEnclosingFunctionWalksUp(t *testing.T) {
	fn := NewScope(FunctionScope, nil)
	block := NewScope(BlockScope, fn)
	nested := NewScope(BlockScope, block)
	assert.Same(t, fn, nested.EnclosingFunction())
}
