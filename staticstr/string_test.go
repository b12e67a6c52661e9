package staticstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringAppend(t *testing.T) {
	s := New(8)
	require.True(t, s.IsEmpty())
	require.True(t, s.AppendString("abc"))
	require.True(t, s.AppendByte('-'))
	require.True(t, s.Append(From(3, "xyz")))
	require.Equal(t, "abc-xyz", s.String())

	require.False(t, s.AppendString("12"), "only one byte is left")
	require.Equal(t, "abc-xyz1", s.String())
	require.False(t, s.AppendByte('!'))
	require.False(t, s.Append(From(1, "q")))
	require.Equal(t, 8, s.Size())
	require.Equal(t, 8, s.Len())
}

func TestStringInvalidCapacityPanics(t *testing.T) {
	require.Panics(t, func() { New(0) })
	require.Panics(t, func() { From(-1, "") })
}

func TestStringFromTruncates(t *testing.T) {
	s := From(4, "abcdef")
	require.Equal(t, "abcd", s.String())
	require.Equal(t, 4, s.Capacity())
}

func TestStringCompare(t *testing.T) {
	a := From(10, "hello")
	b := From(5, "hello")
	c := From(10, "help")

	require.True(t, a.Equal(b), "capacities may differ")
	require.False(t, a.Equal(c))
	require.True(t, a.EqualString("hello"))
	require.Equal(t, 0, a.Compare(b))
	require.Equal(t, -1, a.Compare(c))
	require.Equal(t, 1, c.Compare(a))
}

func TestStringPrefixSuffix(t *testing.T) {
	s := From(16, "static-string")

	require.True(t, s.StartsWith(From(6, "static")))
	require.False(t, s.StartsWith(From(6, "string")))
	require.True(t, s.EndsWith(From(6, "string")))
	require.False(t, s.EndsWith(From(6, "static")))
	require.True(t, s.StartsWith(New(1)))
	require.True(t, s.EndsWith(New(1)))
	require.False(t, From(2, "ab").StartsWith(From(3, "abc")))
	require.False(t, From(2, "bc").EndsWith(From(3, "abc")))
}

func TestStringSkip(t *testing.T) {
	s := From(8, "abcdef")

	require.True(t, s.Skip(2))
	require.Equal(t, "cdef", s.String())

	require.False(t, s.Skip(5))
	require.Equal(t, "cdef", s.String())

	require.True(t, s.Skip(4))
	require.True(t, s.IsEmpty())

	require.True(t, s.Skip(0))
	require.False(t, s.Skip(-1))
}

func TestStringTruncate(t *testing.T) {
	s := From(8, "abcdef")

	require.True(t, s.Truncate(3))
	require.Equal(t, "abc", s.String())

	require.False(t, s.Truncate(3), "truncating to the current length does nothing")
	require.False(t, s.Truncate(10))
	require.True(t, s.Truncate(0))
	require.True(t, s.IsEmpty())
}

func TestStringAtSet(t *testing.T) {
	s := From(4, "ab")

	c, ok := s.At(1)
	require.True(t, ok)
	require.Equal(t, byte('b'), c)

	_, ok = s.At(2)
	require.False(t, ok)
	_, ok = s.At(-1)
	require.False(t, ok)

	require.True(t, s.Set(0, 'x'))
	require.False(t, s.Set(2, 'y'))
	require.Equal(t, "xb", s.String())
}

func TestStringAssign(t *testing.T) {
	s := From(3, "zz")
	require.Equal(t, 3, s.Assign(From(6, "abcdef")))
	require.Equal(t, "abc", s.String())

	require.Equal(t, 2, s.AssignCString([]byte{'h', 'i', 0, 'x'}))
	require.Equal(t, "hi", s.String())

	require.Equal(t, 3, s.AssignCString([]byte("long")))
	require.Equal(t, "lon", s.String())
}

func TestStringCString(t *testing.T) {
	s := From(4, "abcd")
	require.Equal(t, []byte{'a', 'b', 'c', 'd', 0}, s.CString())

	s.Truncate(2)
	require.Equal(t, []byte{'a', 'b', 0}, s.CString())
	assert.Equal(t, "ab", s.String())

	s.Clear()
	require.Equal(t, []byte{0}, s.CString())
}

func TestStringBytesAliasing(t *testing.T) {
	s := From(4, "ab")
	b := s.Bytes()
	require.Equal(t, 2, cap(b), "callers cannot append into spare capacity")
}
