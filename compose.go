package capfmt

import (
	"fmt"
)

// Part is one element of a composed message: literal text or a dynamic
// [Arg]. Build parts with [Lit] and [Dyn].
type Part struct {
	lit     string
	arg     Arg
	dynamic bool
}

// Lit returns a literal part. Its capacity is len(text).
func Lit(text string) Part { return Part{lit: text} }

// Dyn returns a part formatting v under spec.
func Dyn(v Value, spec Spec) Part { return v.With(spec).Part() }

// IsLiteral reports whether p is literal text.
func (p Part) IsLiteral() bool { return !p.dynamic }

// Capacity returns the number of bytes p may write.
func (p Part) Capacity() (int, error) {
	if !p.dynamic {
		return len(p.lit), nil
	}
	return p.arg.Capacity()
}

// WriteInto writes p into w.
func (p Part) WriteInto(w *Writer) error {
	if !p.dynamic {
		_, err := w.WriteString(p.lit)
		return err
	}
	return p.arg.WriteInto(w)
}

// Capacity returns the sum of the part capacities. It fails with
// [ErrCapacityOverflow] when the sum does not fit in an int.
func Capacity(parts ...Part) (int, error) {
	total := 0
	for i, p := range parts {
		n, err := p.Capacity()
		if err != nil {
			return 0, fmt.Errorf("part %d: %w", i, err)
		}
		if total, err = addCap(total, n); err != nil {
			return 0, fmt.Errorf("part %d: %w", i, err)
		}
	}
	return total, nil
}

// Message is composed text together with the capacity it was sized for.
type Message struct {
	buf []byte
	n   int
}

// String returns the message text.
func (m Message) String() string { return string(m.buf[:m.n]) }

// Bytes returns the message text. The slice aliases the message buffer.
func (m Message) Bytes() []byte { return m.buf[:m.n:m.n] }

// Len returns the length of the text in bytes.
func (m Message) Len() int { return m.n }

// Cap returns the capacity the message was sized for. It is at least Len.
func (m Message) Cap() int { return len(m.buf) }

// ComposeInto writes parts in order into buf. It fails with
// [ErrInsufficientCapacity] if buf is shorter than [Capacity] of parts, so a
// caller-sized array is checked before anything is written.
//
// An [ErrOverflow] after that check means a capacity bound is wrong.
func ComposeInto(buf []byte, parts ...Part) (Message, error) {
	total, err := Capacity(parts...)
	if err != nil {
		return Message{}, err
	}
	if len(buf) < total {
		return Message{}, fmt.Errorf("%w: buffer has %d bytes, parts require %d", ErrInsufficientCapacity, len(buf), total)
	}
	return compose(buf, parts)
}

func compose(buf []byte, parts []Part) (Message, error) {
	w := NewWriter(buf)
	for i, p := range parts {
		if err := p.WriteInto(w); err != nil {
			return Message{}, fmt.Errorf("part %d: %w", i, err)
		}
	}
	return Message{buf: buf, n: w.Len()}, nil
}

// Compose sizes parts, allocates a single buffer of exactly that size and
// writes every part into it in order.
//
// Compose panics when the capacity sum overflows or when a part writes more
// than its capacity. Both are programming errors: the first is a message too
// large to exist, the second a broken capacity bound.
func Compose(parts ...Part) Message {
	total, err := Capacity(parts...)
	if err != nil {
		panic(fmt.Errorf("capfmt: %w", err))
	}
	m, err := compose(make([]byte, total), parts)
	if err != nil {
		panic(fmt.Errorf("capfmt: capacity bound violated: %w", err))
	}
	return m
}

// Concat is Compose(parts...).String().
func Concat(parts ...Part) string {
	return Compose(parts...).String()
}

// Assert panics with the composed message when ok is false. Nothing is
// sized or written when ok is true.
func Assert(ok bool, parts ...Part) {
	if !ok {
		Panic(parts...)
	}
}

// AssertFunc is like [Assert] but builds the parts only on failure.
func AssertFunc(ok bool, parts func() []Part) {
	if !ok {
		Panic(parts()...)
	}
}

// Panic panics with the composed message as a string.
func Panic(parts ...Part) {
	panic(Concat(parts...))
}
