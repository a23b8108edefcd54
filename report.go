package capfmt

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for unknown report formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an output format for a capacity [Plan].
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	Table    Format = "table"
	Markdown Format = "markdown"
)

var formats = []Format{Text, JSON, JSONL, YAML, CSV, TSV, Table, Markdown}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// WritePlan renders plan to w in format f.
func WritePlan(w io.Writer, f Format, plan Plan) error {
	switch f {
	case Text:
		return writeText(w, plan)
	case JSON:
		return json.NewEncoder(w).Encode(plan)
	case JSONL:
		return writeJSONL(w, plan)
	case YAML:
		return writeYAML(w, plan)
	case CSV:
		return writeCSV(w, plan, ',')
	case TSV:
		return writeCSV(w, plan, '\t')
	case Table:
		return writeTable(w, plan)
	case Markdown:
		return writeMarkdown(w, plan)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// MarshalPlan renders plan in format f and returns the bytes.
func MarshalPlan(f Format, plan Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePlan(&buf, f, plan); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeText(w io.Writer, plan Plan) error {
	if _, err := fmt.Fprintln(w, plan.Text); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d bytes used by %d parts\n", plan.Written, plan.Capacity, len(plan.Entries))
	return err
}

func writeJSONL(w io.Writer, plan Plan) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range plan.Entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, plan Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, plan Plan, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(planHeader); err != nil {
		return err
	}
	for _, row := range plan.rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
