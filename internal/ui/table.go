package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows under bold headers, columns padded to the widest cell.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given headers.
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow adds a row; missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if t.noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	for i, h := range t.headers {
		bold.Fprint(t.writer, t.cell(h, i, widths))
	}
	fmt.Fprintln(t.writer)
	for i, w := range widths {
		gray.Fprint(t.writer, t.cell(strings.Repeat("-", w), i, widths))
	}
	fmt.Fprintln(t.writer)
	for _, row := range t.rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprint(t.writer, t.cell(cell, i, widths))
		}
		fmt.Fprintln(t.writer)
	}
}

// cell pads s to its column width; the last column is not padded.
func (t *Table) cell(s string, i int, widths []int) string {
	if i == len(widths)-1 {
		return s
	}
	return padRight(s, widths[i]) + "  "
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// KeyValue renders "key: value" lines with aligned values.
type KeyValue struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValue creates a key-value block.
func NewKeyValue(w io.Writer, noColor bool) *KeyValue {
	return &KeyValue{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair.
func (kv *KeyValue) AddRow(key, value string) {
	kv.keys = append(kv.keys, key)
	kv.values = append(kv.values, value)
}

// Render writes the block.
func (kv *KeyValue) Render() {
	width := 0
	for _, k := range kv.keys {
		if n := utf8.RuneCountInString(k); n > width {
			width = n
		}
	}
	cyan := color.New(color.FgCyan)
	if kv.noColor {
		cyan.DisableColor()
	}
	for i, k := range kv.keys {
		cyan.Fprint(kv.writer, padRight(k+":", width+1))
		fmt.Fprintf(kv.writer, " %s\n", kv.values[i])
	}
}
