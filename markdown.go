package capfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeMarkdown(w io.Writer, plan Plan) error {
	rows := plan.rows()
	footer := plan.footer()
	footer[1] = "**total**"
	widths := computeWidths(planHeader, rows, footer)
	// Alignment markers need at least three columns.
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	if err := writeMarkdownRow(w, planHeader, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		switch planAligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range append(rows, footer) {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = strings.ReplaceAll(cells[i], "|", `\|`)
		}
		padded[i] = alignCell(cell, width, planAligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
