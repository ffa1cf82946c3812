// Package table renders rows of data for the terminal, using lipgloss,
// or as a markdown table.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	toolbridge "github.com/mutablelogic/go-toolbridge"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Data is implemented by anything which can be rendered as a table
type Data interface {
	// Header returns the column labels
	Header() []string

	// Len returns the number of rows
	Len() int

	// Row returns the cells for row i, or nil to skip the row
	Row(i int) []any
}

// Bold wraps a cell which is highlighted in terminal output
type Bold struct{ Value any }

// Format selects how a table is written
type Format string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	FormatTerminal Format = "table"
	FormatMarkdown Format = "markdown"
)

const (
	empty    = "-"
	ellipsis = "…"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	borderStyle = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Write renders the data in the given format. When w is a terminal, the
// table is constrained to its width.
func Write(w io.Writer, data Data, format Format) error {
	var result string
	switch format {
	case FormatTerminal, "":
		result = Render(data, Width(w))
	case FormatMarkdown:
		result = Markdown(data)
	default:
		return toolbridge.ErrBadParameter.Withf("unknown table format %q", format)
	}
	_, err := fmt.Fprintln(w, result)
	return err
}

// Width returns the width of the terminal attached to w, or zero
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		return width
	}
	return 0
}

// Render returns the data as a bordered table. A positive width wraps
// cells when the table would otherwise be wider.
func Render(data Data, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, row := range rows(data) {
		cells := make([]string, len(row))
		for j, v := range row {
			if bold, ok := v.(Bold); ok {
				cells[j] = boldStyle.Render(Cell(bold.Value))
			} else {
				cells[j] = Cell(v)
			}
		}
		t.Row(cells...)
	}

	// Only constrain when the natural width does not fit
	result := t.Render()
	if width > 0 && lipgloss.Width(result) > width {
		result = t.Width(width).Render()
	}
	return result
}

// Markdown returns the data as a markdown table
func Markdown(data Data) string {
	header := data.Header()
	if len(header) == 0 {
		return ""
	}

	var buf strings.Builder
	writeMarkdownRow(&buf, header)
	buf.WriteString("\n|")
	for range header {
		buf.WriteString("---|")
	}
	for _, row := range rows(data) {
		cells := make([]string, len(header))
		for j := range header {
			switch {
			case j >= len(row):
				cells[j] = empty
			case isBold(row[j]) && Cell(row[j]) != empty:
				cells[j] = "**" + Cell(row[j]) + "**"
			default:
				cells[j] = Cell(row[j])
			}
		}
		buf.WriteString("\n")
		writeMarkdownRow(&buf, cells)
	}
	return buf.String()
}

// Cell converts a value to its display text. Nil and empty values are
// rendered as a dash.
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return empty
	case Bold:
		return Cell(v.Value)
	case string:
		if v == "" {
			return empty
		}
		return v
	case bool:
		if v {
			return "yes"
		}
		return empty
	case fmt.Stringer:
		return Cell(v.String())
	default:
		return Cell(fmt.Sprint(v))
	}
}

// Truncate shortens s to at most max runes, collapsing newlines
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); max > 0 && len(r) > max {
		return string(r[:max-1]) + ellipsis
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func rows(data Data) [][]any {
	result := make([][]any, 0, data.Len())
	for i := range data.Len() {
		if row := data.Row(i); row != nil {
			result = append(result, row)
		}
	}
	return result
}

func isBold(v any) bool {
	_, ok := v.(Bold)
	return ok
}

func writeMarkdownRow(buf *strings.Builder, cells []string) {
	buf.WriteString("|")
	for _, cell := range cells {
		buf.WriteString(" ")
		buf.WriteString(strings.ReplaceAll(cell, "|", "\\|"))
		buf.WriteString(" |")
	}
}
