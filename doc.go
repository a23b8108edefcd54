// Package capfmt formats values into fixed-size buffers that are sized
// before anything is written.
//
// Formatting happens in two passes driven by the same value and [Spec]. The
// capacity pass computes how many bytes a value may need, without writing.
// The write pass renders the value into a [Writer] over a buffer of that
// size and is guaranteed to stay within it. A message is an ordered list of
// parts; [Compose] sums the part capacities, allocates one buffer of exactly
// that size and writes the parts in order:
//
//	msg := capfmt.Concat(
//		capfmt.Lit("String '"),
//		capfmt.Dyn(capfmt.Str(s), capfmt.Clip(16, "…")),
//		capfmt.Lit("' is too long; expected no more than "),
//		capfmt.Dyn(capfmt.Uint(maxLen), capfmt.Plain()),
//		capfmt.Lit(" bytes"),
//	)
//
// # Values
//
// [Value] is a closed set of variants:
//
//   - [Int] and [Uint]: integers of any width, rendered in decimal
//   - [Rune]: a single character
//   - [Str] and [ASCII]: strings, copied byte for byte
//   - [Msg]: a previously composed [Message]
//
// Integers, runes and messages have capacities derived from their type
// alone; see [MaxLen]. Strings have no type-level bound, so their capacity
// is taken from the string itself unless a clipping spec bounds it.
//
// # Specs
//
// A [Spec] clips and then pads a rendering:
//
//   - [Clip]: keep at most N bytes, cut on a rune boundary, append a marker
//   - [ClipChars]: keep at most N runes, append a marker
//   - [Spec.Pad]: fill to a width in runes, aligned left, center or right
//
// Padding widths count runes and assume every rune is one column wide.
//
// # Caller-sized buffers
//
// [ComposeInto] writes into a caller-supplied buffer, typically an array on
// the stack, after checking that it is large enough:
//
//	var buf [64]byte
//	msg, err := capfmt.ComposeInto(buf[:], parts...)
//
// # Assertions
//
// [Assert] and [AssertFunc] compose a message and panic with it only when
// the asserted condition is false; on the success path nothing is sized or
// written.
//
// # Capacity plans
//
// [Explain] reports the capacity and the bytes written of every part.
// [WritePlan] renders the report as text, JSON, JSONL, YAML, CSV, TSV, a
// table or Markdown.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrOverflow]: a write does not fit in the buffer
//   - [ErrCapacityOverflow]: a capacity does not fit in an int
//   - [ErrUnbounded]: a kind has no type-level capacity
//   - [ErrInsufficientCapacity]: a caller buffer is too small
//   - [ErrInvalidSpec]: a spec was built with invalid arguments
//   - [ErrNotASCII]: [ASCII] was given non-ASCII text
//   - [ErrUnsupportedFormat]: unknown report format
//
// [Compose] treats capacity overflow and write overflow as programming
// errors and panics with the wrapped sentinel.
package capfmt
