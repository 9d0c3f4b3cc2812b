package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseTypes_Equals(t *testing.T) {
	require.True(t, Int.Equals(Int))
	require.False(t, Int.Equals(Long))
	require.False(t, Int.Equals(UInt))
	require.True(t, Double.Equals(Double))
}

func TestPointerType_Equals(t *testing.T) {
	p1 := NewPointer(Int)
	p2 := NewPointer(Int)
	p3 := NewPointer(Long)

	require.True(t, p1.Equals(p2))
	require.False(t, p1.Equals(p3))
	require.False(t, p1.Equals(Int))
}

func TestPointerType_NestedEquals(t *testing.T) {
	a := NewPointer(NewPointer(Int))
	b := NewPointer(NewPointer(Int))
	c := NewPointer(NewPointer(Long))

	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
}

func TestArrayType_Equals(t *testing.T) {
	a1 := NewArray(10, Int)
	a2 := NewArray(10, Int)
	a3 := NewArray(5, Int)
	a4 := NewArray(10, Long)

	require.True(t, a1.Equals(a2))
	require.False(t, a1.Equals(a3), "different sizes must not be equal")
	require.False(t, a1.Equals(a4), "different element types must not be equal")
}

func TestFunType_Equals(t *testing.T) {
	f1 := NewFunType([]Type{Int, Long}, Int)
	f2 := NewFunType([]Type{Int, Long}, Int)
	f3 := NewFunType([]Type{Int}, Int)
	f4 := NewFunType([]Type{Int, Long}, Double)

	require.True(t, f1.Equals(f2))
	require.False(t, f1.Equals(f3))
	require.False(t, f1.Equals(f4))
}

func TestIsArithmeticIsIntegerIsPointerIsArray(t *testing.T) {
	require.True(t, IsArithmetic(Int))
	require.True(t, IsArithmetic(Double))
	require.False(t, IsArithmetic(NewPointer(Int)))

	require.True(t, IsInteger(ULong))
	require.False(t, IsInteger(Double))

	require.True(t, IsPointer(NewPointer(Int)))
	require.False(t, IsPointer(Int))

	require.True(t, IsArray(NewArray(3, Int)))
	require.False(t, IsArray(NewPointer(Int)))
}

func TestIsScalar(t *testing.T) {
	require.True(t, IsScalar(Int))
	require.True(t, IsScalar(NewPointer(Int)))
	require.False(t, IsScalar(NewArray(3, Int)))
}

func TestIsUnsigned(t *testing.T) {
	require.True(t, IsUnsigned(UInt))
	require.True(t, IsUnsigned(ULong))
	require.False(t, IsUnsigned(Int))
	require.False(t, IsUnsigned(Long))
}

func TestRank(t *testing.T) {
	require.Less(t, Rank(Int), Rank(Long))
	require.Less(t, Rank(UInt), Rank(ULong))
	require.Equal(t, Rank(Int), Rank(UInt))
}
