package capfmt

import (
	"fmt"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Value is a formattable value: a signed or unsigned integer, a rune, a
// string, or a previously composed [Message]. The set of variants is closed;
// build values with [Int], [Uint], [Rune], [Str], [ASCII] and [Msg].
//
// The zero Value is an int8 zero.
type Value struct {
	kind  Kind
	i     int64
	u     uint64
	r     rune
	s     string
	bound int
}

// Int returns a value for a signed integer of any width. The capacity is
// derived from the width of T.
func Int[T constraints.Signed](v T) Value {
	return Value{kind: KindOf[T](), i: int64(v)}
}

// Uint returns a value for an unsigned integer of any width.
func Uint[T constraints.Unsigned](v T) Value {
	return Value{kind: KindOf[T](), u: uint64(v)}
}

// Rune returns a value for a single character. Invalid runes render as U+FFFD.
func Rune(r rune) Value {
	return Value{kind: KindRune, r: r}
}

// Str returns a value for a string. Strings have no type-level capacity;
// their capacity is taken from s itself.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// ASCII returns a value for a string known to be ASCII. Padding bounds for
// ASCII values assume one byte per rune, which keeps padded capacities
// tight. It panics with [ErrNotASCII] if s has a non-ASCII byte.
func ASCII(s string) Value {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			panic(fmt.Errorf("capfmt: %w: byte %#x at %d", ErrNotASCII, s[i], i))
		}
	}
	return Value{kind: KindASCII, s: s}
}

// Msg returns a value embedding a composed message. Its capacity is the
// message capacity, not its length, so a message type can be sized once and
// embedded anywhere. The message buffer must not change while the value is
// in use.
func Msg(m Message) Value {
	return Value{kind: KindMessage, s: scratchString(m.Bytes()), bound: m.Cap()}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// With binds spec to v. The pair is what both passes consume.
func (v Value) With(spec Spec) Arg { return Arg{value: v, spec: spec} }

// String renders v under the plain spec.
func (v Value) String() string {
	var scratch [maxIntLen]byte
	return string(v.text(&scratch))
}

// text renders v without any spec. Integer and rune renderings are built in
// scratch and alias it.
func (v Value) text(scratch *[maxIntLen]byte) string {
	switch {
	case v.kind.Signed():
		return scratchString(strconv.AppendInt(scratch[:0], v.i, 10))
	case v.kind.Integer():
		return scratchString(strconv.AppendUint(scratch[:0], v.u, 10))
	case v.kind == KindRune:
		return scratchString(scratch[:utf8.EncodeRune(scratch[:], v.r)])
	default:
		return v.s
	}
}

// extent returns the bound v contributes before any spec is applied:
// type-level for integers, runes and messages, exact for strings.
func (v Value) extent() extent {
	switch v.kind {
	case KindString:
		return exactExtent(len(v.s), utf8.RuneCountInString(v.s), utf8.UTFMax)
	case KindASCII:
		return exactExtent(len(v.s), len(v.s), 1)
	case KindMessage:
		return extent{bytes: v.bound, maxChars: v.bound, unit: utf8.UTFMax, bounded: true}
	default:
		e, _ := kindExtent(v.kind)
		return e
	}
}

// Capacity returns the number of bytes sufficient for v under spec. For
// integers, runes and messages it equals [MaxLen] of the kind; for strings it
// is computed from the string.
func (v Value) Capacity(spec Spec) (int, error) {
	return spec.bound(v.extent())
}

// WriteInto renders v under spec into w. The rendering is written in full or
// not at all; it fails with [ErrOverflow] when w lacks room.
func (v Value) WriteInto(w *Writer, spec Spec) error {
	var scratch [maxIntLen]byte
	body, marker := spec.clipText(v.text(&scratch))
	before, after := spec.padding(utf8.RuneCountInString(body) + utf8.RuneCountInString(marker))

	need := len(body) + len(marker)
	if before+after > 0 {
		need += (before + after) * utf8.RuneLen(spec.fill)
	}
	if err := w.reserve(need); err != nil {
		return err
	}

	if err := w.writeRepeat(spec.fill, before); err != nil {
		return err
	}
	if _, err := w.WriteString(body); err != nil {
		return err
	}
	if _, err := w.WriteString(marker); err != nil {
		return err
	}
	return w.writeRepeat(spec.fill, after)
}

// Arg is a value bound to the spec that formats it. Sizing and writing an
// Arg always use the same spec.
type Arg struct {
	value Value
	spec  Spec
}

// Value returns the bound value.
func (a Arg) Value() Value { return a.value }

// Spec returns the bound spec.
func (a Arg) Spec() Spec { return a.spec }

// Capacity returns the capacity of the value under the bound spec.
func (a Arg) Capacity() (int, error) { return a.value.Capacity(a.spec) }

// WriteInto renders the value under the bound spec.
func (a Arg) WriteInto(w *Writer) error { return a.value.WriteInto(w, a.spec) }

// Part returns a message part formatting a.
func (a Arg) Part() Part { return Part{arg: a, dynamic: true} }

// CapacityOf returns the capacity of v under spec.
func CapacityOf(v Value, spec Spec) (int, error) {
	return v.Capacity(spec)
}

// FormatInto renders v under spec into w.
func FormatInto(w *Writer, v Value, spec Spec) error {
	return v.WriteInto(w, spec)
}

// scratchString views b as a string without copying. b must not be modified
// while the string is in use.
func scratchString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
