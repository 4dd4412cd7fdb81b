package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
)

// Alignment of a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column is one column of a Table.
type Column[T any] struct {
	Name  string
	Width int
	Align Alignment
	// Value extracts the cell text of a row.
	Value func(T) string
}

// Table writes rows under a colored header. The last column is not padded.
type Table[T any] struct {
	Columns     []Column[T]
	HeaderColor string
}

// NewTable creates a table with the default header color.
func NewTable[T any](columns ...Column[T]) *Table[T] {
	return &Table[T]{Columns: columns, HeaderColor: colors.Blue}
}

// Write writes the header, a separator and one line per row. Nothing is
// written for no rows.
func (t *Table[T]) Write(w io.Writer, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(t.Columns))
	separators := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = t.cell(i, col.Name, AlignLeft)
		separators[i] = makeSeparator(col.Width)
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", t.HeaderColor, strings.TrimRight(strings.Join(headers, "  "), " "), colors.Reset); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", t.HeaderColor, strings.Join(separators, "  "), colors.Reset); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = t.cell(i, col.Value(row), col.Align)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table[T]) cell(i int, s string, align Alignment) string {
	width := t.Columns[i].Width
	if i == len(t.Columns)-1 && align == AlignLeft {
		return truncateString(s, width)
	}
	return formatString(truncateString(s, width), width, align)
}

// formatString pads s to width.
func formatString(s string, width int, align Alignment) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := strings.Repeat(" ", width-n)
	if align == AlignRight {
		return pad + s
	}
	return s + pad
}

// truncateString cuts s to width runes, ending in "..." when cut.
func truncateString(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
