package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bjaus/capfmt"
)

var errInvalidPart = errors.New("invalid part")

// parsePart parses a part descriptor:
//
//	lit:TEXT
//	KIND:VALUE[|clip=N,MARKER][|clipchars=N,MARKER][|pad=WIDTH,FILL,ALIGN]
//
// KIND is str, ascii, rune, int, int8..int64, uint or uint8..uint64. Literal
// text is taken verbatim; dynamic values cannot contain '|'.
func parsePart(s string) (capfmt.Part, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return capfmt.Part{}, fmt.Errorf("%w: %q has no kind prefix", errInvalidPart, s)
	}
	if kind == "lit" {
		return capfmt.Lit(rest), nil
	}
	fields := strings.Split(rest, "|")
	v, err := parseValue(kind, fields[0])
	if err != nil {
		return capfmt.Part{}, err
	}
	spec := capfmt.Plain()
	for _, opt := range fields[1:] {
		if spec, err = applyOption(spec, opt); err != nil {
			return capfmt.Part{}, err
		}
	}
	return capfmt.Dyn(v, spec), nil
}

func parseParts(args []string) ([]capfmt.Part, error) {
	parts := make([]capfmt.Part, len(args))
	for i, arg := range args {
		p, err := parsePart(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		parts[i] = p
	}
	return parts, nil
}

func parseValue(kind, text string) (capfmt.Value, error) {
	switch kind {
	case "str":
		return capfmt.Str(text), nil
	case "ascii":
		for i := 0; i < len(text); i++ {
			if text[i] >= utf8.RuneSelf {
				return capfmt.Value{}, fmt.Errorf("%w: %w: %q", errInvalidPart, capfmt.ErrNotASCII, text)
			}
		}
		return capfmt.ASCII(text), nil
	case "rune":
		r, size := utf8.DecodeRuneInString(text)
		if size == 0 || size != len(text) || r == utf8.RuneError {
			return capfmt.Value{}, fmt.Errorf("%w: rune value %q must be a single character", errInvalidPart, text)
		}
		return capfmt.Rune(r), nil
	}

	k, err := capfmt.ParseKind(kind)
	if err != nil || !k.Integer() {
		return capfmt.Value{}, fmt.Errorf("%w: unknown kind %q", errInvalidPart, kind)
	}
	bits := intBits(k)
	if k.Signed() {
		n, err := strconv.ParseInt(text, 10, bits)
		if err != nil {
			return capfmt.Value{}, fmt.Errorf("%w: %w", errInvalidPart, err)
		}
		return signedValue(k, n), nil
	}
	n, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return capfmt.Value{}, fmt.Errorf("%w: %w", errInvalidPart, err)
	}
	return unsignedValue(k, n), nil
}

func intBits(k capfmt.Kind) int {
	switch k {
	case capfmt.KindInt8, capfmt.KindUint8:
		return 8
	case capfmt.KindInt16, capfmt.KindUint16:
		return 16
	case capfmt.KindInt32, capfmt.KindUint32:
		return 32
	default:
		return 64
	}
}

// signedValue narrows n to the Go type of k so the value keeps its kind.
func signedValue(k capfmt.Kind, n int64) capfmt.Value {
	switch k {
	case capfmt.KindInt8:
		return capfmt.Int(int8(n))
	case capfmt.KindInt16:
		return capfmt.Int(int16(n))
	case capfmt.KindInt32:
		return capfmt.Int(int32(n))
	default:
		return capfmt.Int(n)
	}
}

func unsignedValue(k capfmt.Kind, n uint64) capfmt.Value {
	switch k {
	case capfmt.KindUint8:
		return capfmt.Uint(uint8(n))
	case capfmt.KindUint16:
		return capfmt.Uint(uint16(n))
	case capfmt.KindUint32:
		return capfmt.Uint(uint32(n))
	default:
		return capfmt.Uint(n)
	}
}

func applyOption(spec capfmt.Spec, opt string) (capfmt.Spec, error) {
	name, args, _ := strings.Cut(opt, "=")
	switch name {
	case "clip", "clipchars":
		limit, marker, _ := strings.Cut(args, ",")
		n, err := parseCount(name, limit)
		if err != nil {
			return spec, err
		}
		if !spec.IsPlain() {
			return spec, fmt.Errorf("%w: %s must come before any other option", errInvalidPart, name)
		}
		if name == "clip" {
			return capfmt.Clip(n, marker), nil
		}
		return capfmt.ClipChars(n, marker), nil
	case "pad":
		return applyPad(spec, args)
	default:
		return spec, fmt.Errorf("%w: unknown option %q", errInvalidPart, name)
	}
}

// applyPad parses WIDTH,FILL,ALIGN. FILL may itself be a comma, so it is
// whatever lies between the first and the last comma.
func applyPad(spec capfmt.Spec, args string) (capfmt.Spec, error) {
	first := strings.Index(args, ",")
	last := strings.LastIndex(args, ",")
	if first < 0 || first == last {
		return spec, fmt.Errorf("%w: pad expects WIDTH,FILL,ALIGN, got %q", errInvalidPart, args)
	}
	width, err := parseCount("pad", args[:first])
	if err != nil {
		return spec, err
	}
	fill := args[first+1 : last]
	if utf8.RuneCountInString(fill) != 1 {
		return spec, fmt.Errorf("%w: pad fill %q must be a single character", errInvalidPart, fill)
	}
	r, _ := utf8.DecodeRuneInString(fill)
	align, err := capfmt.ParseAlignment(args[last+1:])
	if err != nil {
		return spec, fmt.Errorf("%w: %w", errInvalidPart, err)
	}
	return spec.Pad(width, r, align), nil
}

func parseCount(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s expects a non-negative count, got %q", errInvalidPart, name, s)
	}
	return n, nil
}
