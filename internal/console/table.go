package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const EmptyMessage = "Sin registros"

// Page slices an already loaded list for display. Pages are 1-based; a page
// past the end is clamped to the last one. It also returns the page actually
// shown and the page count.
func Page[T any](rows []T, page, size int) ([]T, int, int) {
	if size <= 0 {
		size = len(rows)
		if size == 0 {
			size = 1
		}
	}
	pages := (len(rows) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], page, pages
}

// Table renders one page of rows under a title.
func Table[T any](w io.Writer, title string, cols []Column[T], rows []T, page, size int) error {
	shown, page, pages := Page(rows, page, size)

	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	if len(shown) == 0 {
		fmt.Fprintln(tw, EmptyMessage)
	}
	cells := make([]string, len(cols))
	for _, row := range shown {
		for i, c := range cols {
			cells[i] = c.Value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Página %d de %d (%d registros)\n", page, pages, len(rows))
	return err
}
