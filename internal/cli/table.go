package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows in columns sized to their widest cell. Widths are
// measured as displayed, so cells may carry ANSI styling.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	right   map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns a column, for numbers.
func (t *Table) AlignRight(colIndex int) {
	t.right[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
		}
	}

	var result strings.Builder
	gap := strings.Repeat(" ", t.padding)
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = t.pad(i, cell, colWidths[i])
		}
		result.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		result.WriteString("\n")
	}

	writeLine(t.headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)
	for _, row := range t.rows {
		writeLine(row)
	}
	return result.String()
}

func (t *Table) pad(col int, s string, width int) string {
	n := width - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	if t.right[col] {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
