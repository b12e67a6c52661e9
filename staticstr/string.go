// Package staticstr implements a byte string over a fixed backing array.
//
// A String never grows past the capacity it was created with. Appends keep
// the prefix that fits and report whether anything was cut off; indexing
// is bounds-checked and reports failure instead of panicking.
package staticstr

import "bytes"

// String holds at most Capacity bytes. One extra byte of storage is kept
// for the NUL terminator written by CString.
type String struct {
	size int
	buf  []byte
}

// New creates an empty string holding at most capacity bytes.
// Capacity must be > 0.
func New(capacity int) *String {
	if capacity <= 0 {
		panic("capacity must be > 0")
	}

	return &String{buf: make([]byte, capacity+1)}
}

// From creates a string of the given capacity holding as much of s as fits.
func From(capacity int, s string) *String {
	str := New(capacity)
	str.AppendString(s)
	return str
}

func (s *String) capacity() int {
	return len(s.buf) - 1
}

// Append adds the contents of other. Returns false if other did not fit
// completely; the part that fit is kept.
func (s *String) Append(other *String) bool {
	n := copy(s.buf[s.size:s.capacity()], other.buf[:other.size])
	s.size += n
	return n == other.size
}

// AppendString adds str, see Append.
func (s *String) AppendString(str string) bool {
	n := copy(s.buf[s.size:s.capacity()], str)
	s.size += n
	return n == len(str)
}

// AppendByte adds a single byte. Returns false if the string is full.
func (s *String) AppendByte(c byte) bool {
	if s.size >= s.capacity() {
		return false
	}

	s.buf[s.size] = c
	s.size++
	return true
}

// Assign replaces the contents with as much of other as fits and returns
// how many bytes were copied.
func (s *String) Assign(other *String) int {
	s.size = copy(s.buf[:s.capacity()], other.buf[:other.size])
	return s.size
}

// AssignCString replaces the contents with the bytes of b up to its first
// NUL byte (or all of b if there is none), as many as fit.
func (s *String) AssignCString(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s.size = copy(s.buf[:s.capacity()], b)
	return s.size
}

// Equal reports whether both strings hold the same bytes. Capacities may
// differ.
func (s *String) Equal(other *String) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// EqualString reports whether s holds exactly the bytes of str.
func (s *String) EqualString(str string) bool {
	return string(s.Bytes()) == str
}

// Compare returns -1, 0 or +1 comparing s and other lexicographically.
func (s *String) Compare(other *String) int {
	return bytes.Compare(s.Bytes(), other.Bytes())
}

// StartsWith reports whether other is a prefix of s.
func (s *String) StartsWith(other *String) bool {
	return bytes.HasPrefix(s.Bytes(), other.Bytes())
}

// EndsWith reports whether other is a suffix of s.
func (s *String) EndsWith(other *String) bool {
	return bytes.HasSuffix(s.Bytes(), other.Bytes())
}

// Skip drops the first n bytes. Returns false, leaving s unchanged, if s
// is shorter than n.
func (s *String) Skip(n int) bool {
	if n < 0 || n > s.size {
		return false
	}

	copy(s.buf, s.buf[n:s.size])
	s.size -= n
	return true
}

// Truncate shortens s to length bytes. Returns false if s is not longer
// than length.
func (s *String) Truncate(length int) bool {
	if length < 0 || length >= s.size {
		return false
	}

	s.size = length
	return true
}

// Clear empties the string.
func (s *String) Clear() {
	s.size = 0
}

// At returns the byte at index. ok is false if index is out of range.
func (s *String) At(index int) (c byte, ok bool) {
	if index < 0 || index >= s.size {
		return 0, false
	}
	return s.buf[index], true
}

// Set overwrites the byte at index. Returns false if index is out of range.
func (s *String) Set(index int, c byte) bool {
	if index < 0 || index >= s.size {
		return false
	}
	s.buf[index] = c
	return true
}

// Size returns the length in bytes.
func (s *String) Size() int { return s.size }

// Len is an alias of Size.
func (s *String) Len() int { return s.size }

// Capacity returns the maximum length in bytes.
func (s *String) Capacity() int { return s.capacity() }

// IsEmpty reports whether the string has no bytes.
func (s *String) IsEmpty() bool { return s.size == 0 }

// Bytes returns the contents. The slice aliases the string storage and is
// valid until the next mutation.
func (s *String) Bytes() []byte {
	return s.buf[:s.size:s.size]
}

// String returns a copy of the contents as a Go string.
func (s *String) String() string {
	return string(s.buf[:s.size])
}

// CString returns the contents followed by a NUL byte, for handing to code
// that expects a terminated string. The slice aliases the string storage.
func (s *String) CString() []byte {
	s.buf[s.size] = 0
	return s.buf[: s.size+1 : s.size+1]
}
