// Package render holds the shared table output used by the listing,
// shop and admin commands.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"clusterview/internal/domain/resource"
)

// cellWidth caps how many characters a table cell shows.
const cellWidth = 40

// Truncate shortens s to at most max runes, appending "..." when it
// had to cut. Counting runes keeps multi-byte text from being split
// mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Table writes the records as a tab-aligned table: an ID column
// followed by the given record fields. transform, when non-nil, may
// rewrite a cell value given its column; it runs before truncation.
func Table(w io.Writer, columns []string, records []resource.Record, transform func(column, value string) string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t\n", strings.Join(columns, "\t"))

	for _, rec := range records {
		values := make([]string, 0, len(columns))
		for _, col := range columns {
			value, _ := rec.Lookup(col)
			if transform != nil {
				value = transform(col, value)
			}
			values = append(values, Truncate(value, cellWidth))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", rec.ID(), strings.Join(values, "\t"))
	}

	tw.Flush()
}
