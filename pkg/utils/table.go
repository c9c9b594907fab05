package utils

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderTable writes named columns and rows as an aligned text table.
// Used for stdout rendering of analysis results.
func RenderTable(w io.Writer, title string, columns []string, rows [][]string) error {
	if _, err := fmt.Fprintf(w, "\n── %s ──\n", title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	separators := make([]string, len(columns))
	for i, col := range columns {
		separators[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
	}
	return nil
}
