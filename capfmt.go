package capfmt

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Sentinel errors for programmatic error handling.
var (
	ErrOverflow             = errors.New("write exceeds buffer capacity")
	ErrCapacityOverflow     = errors.New("capacity arithmetic overflow")
	ErrUnbounded            = errors.New("capacity not derivable from kind")
	ErrInsufficientCapacity = errors.New("insufficient buffer capacity")
	ErrInvalidSpec          = errors.New("invalid format spec")
	ErrNotASCII             = errors.New("string is not ASCII")
)

// Kind identifies the variant of a formattable [Value]. Integer kinds carry
// their bit width because the width alone determines their capacity.
type Kind int

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindRune
	KindString
	KindASCII
	KindMessage
)

var kindNames = [...]string{
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindRune:    "rune",
	KindString:  "string",
	KindASCII:   "ascii",
	KindMessage: "message",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a kind name back into a [Kind]. The names "int" and
// "uint" resolve to the platform word size.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int":
		return KindOf[int](), nil
	case "uint":
		return KindOf[uint](), nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s)
}

// Signed reports whether k is a signed integer kind.
func (k Kind) Signed() bool { return k >= KindInt8 && k <= KindInt64 }

// Integer reports whether k is an integer kind of either signedness.
func (k Kind) Integer() bool { return k >= KindInt8 && k <= KindUint64 }

// KindOf returns the integer kind matching the bit width and signedness of T.
func KindOf[T constraints.Integer]() Kind {
	var zero T
	signed := ^zero < 0
	return intKind(signed, unsafe.Sizeof(zero))
}

func intKind(signed bool, size uintptr) Kind {
	k := KindUint8
	switch size {
	case 2:
		k = KindUint16
	case 4:
		k = KindUint32
	case 8:
		k = KindUint64
	}
	if signed {
		k -= KindUint8 - KindInt8
	}
	return k
}

// Decimal rendering lengths of the extreme value of each integer kind:
// MinIntN for signed kinds (sign included), MaxUintN for unsigned ones.
var intWidths = [...]int{
	KindInt8:   len("-128"),
	KindInt16:  len("-32768"),
	KindInt32:  len("-2147483648"),
	KindInt64:  len("-9223372036854775808"),
	KindUint8:  len("255"),
	KindUint16: len("65535"),
	KindUint32: len("4294967295"),
	KindUint64: len("18446744073709551615"),
}

// maxIntLen is the longest decimal rendering of any supported integer.
const maxIntLen = 20

// MaxLen returns the number of bytes sufficient to hold the rendering of any
// value of kind under spec. The result depends only on the kind and the
// spec, never on a concrete value.
//
// String and ASCII kinds have no type-level bound and return [ErrUnbounded]
// unless spec clips them. Message kinds carry their bound on the value; use
// [Value.Capacity] for those.
func MaxLen(kind Kind, spec Spec) (int, error) {
	e, err := kindExtent(kind)
	if err != nil {
		return 0, err
	}
	return spec.bound(e)
}

// MaxLenOf is [MaxLen] for the integer kind of T. Integer kinds are always
// bounded; it panics only if spec arithmetic overflows.
func MaxLenOf[T constraints.Integer](spec Spec) int {
	n, err := MaxLen(KindOf[T](), spec)
	if err != nil {
		panic(fmt.Errorf("capfmt: %w", err))
	}
	return n
}

// extent is the type-level shape of a rendering: an upper bound on its
// bytes, the range of rune counts it may have, and the widest rune it may
// contain. The pad bound needs all four.
type extent struct {
	bytes    int
	minChars int
	maxChars int
	unit     int
	bounded  bool
}

func kindExtent(kind Kind) (extent, error) {
	switch {
	case kind.Integer():
		w := intWidths[kind]
		return extent{bytes: w, minChars: 1, maxChars: w, unit: 1, bounded: true}, nil
	case kind == KindRune:
		return extent{bytes: utf8.UTFMax, minChars: 1, maxChars: 1, unit: utf8.UTFMax, bounded: true}, nil
	case kind == KindString:
		return extent{unit: utf8.UTFMax}, nil
	case kind == KindASCII:
		return extent{unit: 1}, nil
	case kind == KindMessage:
		return extent{unit: utf8.UTFMax}, fmt.Errorf("%w: %s bound is carried by the value", ErrUnbounded, kind)
	default:
		return extent{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidSpec, int(kind))
	}
}

// exactExtent describes a rendering whose text is already known.
func exactExtent(bytes, chars, unit int) extent {
	return extent{bytes: bytes, minChars: chars, maxChars: chars, unit: unit, bounded: true}
}

func addCap(a, b int) (int, error) {
	if a > math.MaxInt-b {
		return 0, ErrCapacityOverflow
	}
	return a + b, nil
}

func mulCap(a, b int) (int, error) {
	if a != 0 && b > math.MaxInt/a {
		return 0, ErrCapacityOverflow
	}
	return a * b, nil
}
