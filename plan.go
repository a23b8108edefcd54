package capfmt

import (
	"fmt"
	"strconv"
)

// PlanEntry describes how one part of a message was sized and how much of
// that size it used.
type PlanEntry struct {
	Index    int    `json:"index" yaml:"index"`
	Kind     string `json:"kind" yaml:"kind"`
	Spec     string `json:"spec" yaml:"spec"`
	Capacity int    `json:"capacity" yaml:"capacity"`
	Written  int    `json:"written" yaml:"written"`
}

// Slack returns the capacity the part left unused.
func (e PlanEntry) Slack() int { return e.Capacity - e.Written }

// Plan is the capacity breakdown of a composed message.
type Plan struct {
	Entries  []PlanEntry `json:"entries" yaml:"entries"`
	Capacity int         `json:"capacity" yaml:"capacity"`
	Written  int         `json:"written" yaml:"written"`
	Text     string      `json:"text" yaml:"text"`
}

// Explain composes parts like [Compose] and records, per part, the capacity
// it was given and the bytes it wrote. Unlike Compose it returns errors
// instead of panicking.
func Explain(parts ...Part) (Plan, error) {
	total, err := Capacity(parts...)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{Entries: make([]PlanEntry, 0, len(parts)), Capacity: total}
	w := NewWriter(make([]byte, total))
	for i, p := range parts {
		n, _ := p.Capacity()
		start := w.Len()
		if err := p.WriteInto(w); err != nil {
			return Plan{}, fmt.Errorf("part %d: %w", i, err)
		}
		entry := PlanEntry{Index: i, Kind: "literal", Spec: "-", Capacity: n, Written: w.Len() - start}
		if !p.IsLiteral() {
			entry.Kind = p.arg.value.Kind().String()
			entry.Spec = p.arg.spec.String()
		}
		plan.Entries = append(plan.Entries, entry)
	}
	plan.Written = w.Len()
	plan.Text = w.Finish()
	return plan, nil
}

var planHeader = []string{"#", "Kind", "Spec", "Capacity", "Written", "Slack"}

// planAligns right-aligns the numeric columns.
var planAligns = []Alignment{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}

func (e PlanEntry) row() []string {
	return []string{
		strconv.Itoa(e.Index),
		e.Kind,
		e.Spec,
		strconv.Itoa(e.Capacity),
		strconv.Itoa(e.Written),
		strconv.Itoa(e.Slack()),
	}
}

func (p Plan) rows() [][]string {
	rows := make([][]string, len(p.Entries))
	for i, e := range p.Entries {
		rows[i] = e.row()
	}
	return rows
}

func (p Plan) footer() []string {
	return []string{"", "total", "", strconv.Itoa(p.Capacity), strconv.Itoa(p.Written), strconv.Itoa(p.Capacity - p.Written)}
}
