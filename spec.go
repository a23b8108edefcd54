package capfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Alignment controls where a padded value sits inside its width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

var alignNames = [...]string{AlignLeft: "left", AlignCenter: "center", AlignRight: "right"}

// String returns the alignment name.
func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignNames[a]
}

// ParseAlignment parses "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	for a, name := range alignNames {
		if name == s {
			return Alignment(a), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown alignment %q", ErrInvalidSpec, s)
}

type clipMode uint8

const (
	clipNone clipMode = iota
	clipBytes
	clipChars
)

// Spec is a formatting policy applied to a [Value] in both the capacity pass
// and the write pass. The zero value is [Plain].
//
// A Spec optionally clips the rendering and then optionally pads the clipped
// result. Specs are immutable values; the builder methods return copies.
type Spec struct {
	clip   clipMode
	limit  int
	marker string

	padded bool
	width  int
	fill   rune
	align  Alignment
}

// Plain returns the spec that renders a value as-is.
func Plain() Spec { return Spec{} }

// Clip truncates the rendering to its longest prefix of at most maxBytes
// bytes that ends on a rune boundary. When truncation happens, marker is
// appended after the prefix.
func Clip(maxBytes int, marker string) Spec {
	return newClip(clipBytes, maxBytes, marker)
}

// ClipChars truncates the rendering to at most maxChars runes, appending
// marker when truncation happens.
func ClipChars(maxChars int, marker string) Spec {
	return newClip(clipChars, maxChars, marker)
}

func newClip(mode clipMode, limit int, marker string) Spec {
	if limit < 0 {
		panic(fmt.Errorf("capfmt: %w: negative clip length %d", ErrInvalidSpec, limit))
	}
	if !utf8.ValidString(marker) {
		panic(fmt.Errorf("capfmt: %w: clip marker %q is not valid UTF-8", ErrInvalidSpec, marker))
	}
	return Spec{clip: mode, limit: limit, marker: marker}
}

// Pad returns a spec padding a plain rendering to width runes.
func Pad(width int, fill rune, align Alignment) Spec {
	return Plain().Pad(width, fill, align)
}

// Pad adds padding to s. Renderings shorter than width runes are filled with
// fill: before the value for [AlignRight], after it for [AlignLeft], and on
// both sides for [AlignCenter] with the odd rune trailing.
//
// Width is measured in runes, assuming every rune occupies one column. This
// is wrong for wide and combining characters and is accepted as is.
func (s Spec) Pad(width int, fill rune, align Alignment) Spec {
	if width < 0 {
		panic(fmt.Errorf("capfmt: %w: negative pad width %d", ErrInvalidSpec, width))
	}
	if !utf8.ValidRune(fill) {
		panic(fmt.Errorf("capfmt: %w: invalid fill rune %U", ErrInvalidSpec, fill))
	}
	if align < AlignLeft || align > AlignRight {
		panic(fmt.Errorf("capfmt: %w: %s", ErrInvalidSpec, align))
	}
	s.padded = true
	s.width = width
	s.fill = fill
	s.align = align
	return s
}

// IsPlain reports whether s leaves renderings untouched.
func (s Spec) IsPlain() bool { return s.clip == clipNone && !s.padded }

// String describes the spec, e.g. `clip(16,"…")+pad(8,' ',left)`.
func (s Spec) String() string {
	if s.IsPlain() {
		return "plain"
	}
	var parts []string
	switch s.clip {
	case clipBytes:
		parts = append(parts, fmt.Sprintf("clip(%d,%s)", s.limit, strconv.Quote(s.marker)))
	case clipChars:
		parts = append(parts, fmt.Sprintf("clipchars(%d,%s)", s.limit, strconv.Quote(s.marker)))
	}
	if s.padded {
		parts = append(parts, fmt.Sprintf("pad(%d,%s,%s)", s.width, strconv.QuoteRune(s.fill), s.align))
	}
	return strings.Join(parts, "+")
}

// clipText splits src into the part that is kept and the marker to append.
// The marker is empty when src fits.
func (s Spec) clipText(src string) (body, marker string) {
	switch s.clip {
	case clipBytes:
		if len(src) <= s.limit {
			return src, ""
		}
		i := s.limit
		for i > 0 && !utf8.RuneStart(src[i]) {
			i--
		}
		return src[:i], s.marker
	case clipChars:
		n := 0
		for i := range src {
			if n == s.limit {
				return src[:i], s.marker
			}
			n++
		}
	}
	return src, ""
}

// padding returns the number of fill runes written before and after a
// rendering of chars runes.
func (s Spec) padding(chars int) (before, after int) {
	if !s.padded || s.width <= chars {
		return 0, 0
	}
	pad := s.width - chars
	switch s.align {
	case AlignRight:
		return pad, 0
	case AlignCenter:
		return pad / 2, pad - pad/2
	default:
		return 0, pad
	}
}

// bound is the capacity of a rendering shaped like e under s.
func (s Spec) bound(e extent) (int, error) {
	e, err := s.clipExtent(e)
	if err != nil {
		return 0, err
	}
	if !e.bounded {
		return 0, ErrUnbounded
	}
	if !s.padded {
		return e.bytes, nil
	}
	return padBound(e, s.width, utf8.RuneLen(s.fill))
}

func (s Spec) clipExtent(e extent) (extent, error) {
	if s.clip == clipNone {
		return e, nil
	}
	limit, chars := s.limit, s.limit
	if s.clip == clipChars {
		var err error
		if limit, err = mulCap(s.limit, e.unit); err != nil {
			return extent{}, err
		}
	}
	if e.bounded {
		limit = min(limit, e.bytes)
		chars = min(chars, e.maxChars)
	}
	bytes, err := addCap(limit, len(s.marker))
	if err != nil {
		return extent{}, err
	}
	markerChars := utf8.RuneCountInString(s.marker)
	maxChars, err := addCap(chars, markerChars)
	if err != nil {
		return extent{}, err
	}
	return extent{
		bytes:    bytes,
		minChars: min(e.minChars, markerChars),
		maxChars: maxChars,
		unit:     max(e.unit, widestRune(s.marker)),
		bounded:  true,
	}, nil
}

// padBound maximizes body+padding over every rune count the rendering may
// have. The sum is piecewise linear in the rune count with breaks at width
// and at bytes/unit, so checking the interval ends and the points around the
// breaks is enough.
func padBound(e extent, width, fill int) (int, error) {
	lo, hi := e.minChars, e.maxChars
	clamp := func(c int) int { return min(max(c, lo), hi) }
	split := e.bytes / e.unit
	next := split
	if split < hi {
		next++
	}
	best := 0
	for _, c := range [...]int{lo, hi, clamp(width), clamp(split), clamp(next)} {
		body, err := mulCap(e.unit, c)
		if err != nil {
			return 0, err
		}
		pad, err := mulCap(max(width-c, 0), fill)
		if err != nil {
			return 0, err
		}
		n, err := addCap(min(body, e.bytes), pad)
		if err != nil {
			return 0, err
		}
		best = max(best, n)
	}
	return best, nil
}

func widestRune(s string) int {
	w := 0
	for _, r := range s {
		w = max(w, utf8.RuneLen(r))
	}
	return w
}
