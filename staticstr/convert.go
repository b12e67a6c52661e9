package staticstr

import "unsafe"

// Integer is satisfied by every built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

const digitPairs = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// Of renders v in decimal into a new string of the given capacity.
// If the rendering does not fit, the returned string is empty.
func Of[I Integer](capacity int, v I) *String {
	s := New(capacity)

	var tmp [20]byte // len("-9223372036854775808"), len("18446744073709551615")
	i := len(tmp)

	negative := v < 0
	var u uint64
	if negative {
		u = uint64(-int64(v))
	} else {
		u = uint64(v)
	}

	for u >= 100 {
		p := (u % 100) * 2
		u /= 100
		i -= 2
		tmp[i], tmp[i+1] = digitPairs[p], digitPairs[p+1]
	}
	if u >= 10 {
		p := u * 2
		i -= 2
		tmp[i], tmp[i+1] = digitPairs[p], digitPairs[p+1]
	} else {
		i--
		tmp[i] = digitPairs[u*2+1]
	}
	if negative {
		i--
		tmp[i] = '-'
	}

	if len(tmp)-i <= capacity {
		s.size = copy(s.buf, tmp[i:])
	}
	return s
}

// ToInteger parses s as a decimal integer with an optional leading '-'.
// ok is false if s is empty, contains anything but digits after the sign,
// is negative for an unsigned I, or does not fit in I.
func ToInteger[I Integer](s *String) (v I, ok bool) {
	b := s.Bytes()

	negative := len(b) > 0 && b[0] == '-'
	if negative {
		b = b[1:]
	}
	if len(b) == 0 {
		return 0, false
	}

	var zero I
	signed := zero-1 < 0
	if negative && !signed {
		return 0, false
	}

	bits := uint64(unsafe.Sizeof(zero)) * 8
	var limit uint64
	if signed {
		limit = uint64(1)<<(bits-1) - 1
		if negative {
			limit++
		}
	} else {
		limit = ^uint64(0) >> (64 - bits)
	}

	var acc uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := uint64(c - '0')
		if acc > (limit-d)/10 {
			return 0, false
		}
		acc = acc*10 + d
	}

	if negative {
		return I(-int64(acc)), true
	}
	return I(acc), true
}
