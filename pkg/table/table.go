// Package table projects a row dataset through a set of column descriptors
// into a header/body/footer model. It performs no sorting, filtering,
// grouping or pagination: every row yields one body row and every column one
// header cell, one body cell per row and one footer cell.
package table

import (
	"fmt"
	"strconv"
)

// Column describes how to read and render one column of R.
type Column[R any] struct {
	ID string
	// Header renders the header cell. Nil leaves a placeholder (empty) cell.
	Header func(HeaderContext[R]) string
	// Accessor reads the raw value of the column from a row.
	Accessor func(R) any
	// Cell renders the body cell. Nil renders the raw accessor value.
	Cell func(CellContext[R]) string
	// Footer renders the footer cell. Nil leaves a placeholder (empty) cell.
	Footer func(HeaderContext[R]) string
}

// HeaderContext is passed to header and footer render functions.
type HeaderContext[R any] struct {
	Column Column[R]
	Index  int
	Rows   []R
}

// CellContext is passed to cell render functions.
type CellContext[R any] struct {
	Row      R
	RowIndex int
	Column   Column[R]
	value    any
}

// Value returns the accessor's value for the cell.
func (c CellContext[R]) Value() any {
	return c.value
}

// Accessor builds a column reading get from each row, with a static header.
func Accessor[R any](id, header string, get func(R) any) Column[R] {
	return Column[R]{
		ID:       id,
		Header:   func(HeaderContext[R]) string { return header },
		Accessor: get,
	}
}

// Model is the core row model derived from data and columns.
type Model struct {
	HeaderGroups []HeaderGroup `json:"headerGroups"`
	Rows         []Row         `json:"rows"`
	FooterGroups []HeaderGroup `json:"footerGroups"`
}

// HeaderGroup is one row of header (or footer) cells.
type HeaderGroup struct {
	ID      string   `json:"id"`
	Headers []Header `json:"headers"`
}

// Header is a header or footer cell.
type Header struct {
	ID          string `json:"id"`
	ColumnID    string `json:"columnId"`
	Placeholder bool   `json:"placeholder"`
	Content     string `json:"content"`
}

// Row is one body row.
type Row struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Cells []Cell `json:"cells"`
}

// Cell is one body cell.
type Cell struct {
	ID       string `json:"id"`
	ColumnID string `json:"columnId"`
	Value    any    `json:"-"`
	Content  string `json:"content"`
}

// New derives the row model.
func New[R any](data []R, columns []Column[R]) Model {
	ids := make([]string, len(columns))
	for idx, column := range columns {
		ids[idx] = column.ID
		if ids[idx] == "" {
			ids[idx] = strconv.Itoa(idx)
		}
	}

	header := HeaderGroup{ID: "0", Headers: make([]Header, len(columns))}
	footer := HeaderGroup{ID: "0", Headers: make([]Header, len(columns))}
	for idx, column := range columns {
		ctx := HeaderContext[R]{Column: column, Index: idx, Rows: data}
		header.Headers[idx] = projectHeader("0_"+ids[idx], ids[idx], column.Header, ctx)
		footer.Headers[idx] = projectHeader("0_"+ids[idx], ids[idx], column.Footer, ctx)
	}

	rows := make([]Row, len(data))
	for rowIdx, record := range data {
		rowID := strconv.Itoa(rowIdx)
		cells := make([]Cell, len(columns))
		for colIdx, column := range columns {
			var value any
			if column.Accessor != nil {
				value = column.Accessor(record)
			}
			content := formatValue(value)
			if column.Cell != nil {
				content = column.Cell(CellContext[R]{Row: record, RowIndex: rowIdx, Column: column, value: value})
			}
			cells[colIdx] = Cell{
				ID:       rowID + "_" + ids[colIdx],
				ColumnID: ids[colIdx],
				Value:    value,
				Content:  content,
			}
		}
		rows[rowIdx] = Row{ID: rowID, Index: rowIdx, Cells: cells}
	}

	return Model{
		HeaderGroups: []HeaderGroup{header},
		Rows:         rows,
		FooterGroups: []HeaderGroup{footer},
	}
}

func projectHeader[R any](id, columnID string, render func(HeaderContext[R]) string, ctx HeaderContext[R]) Header {
	if render == nil {
		return Header{ID: id, ColumnID: columnID, Placeholder: true}
	}
	return Header{ID: id, ColumnID: columnID, Content: render(ctx)}
}

// HasFooter reports whether any column declares footer content.
func (m Model) HasFooter() bool {
	for _, group := range m.FooterGroups {
		for _, header := range group.Headers {
			if !header.Placeholder {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the model has no body rows.
func (m Model) Empty() bool {
	return len(m.Rows) == 0
}

// HeaderTexts returns the content of the first header group.
func (m Model) HeaderTexts() []string {
	if len(m.HeaderGroups) == 0 {
		return nil
	}
	out := make([]string, len(m.HeaderGroups[0].Headers))
	for idx, header := range m.HeaderGroups[0].Headers {
		out[idx] = header.Content
	}
	return out
}

// CellTexts returns the body as rows of rendered cell content.
func (m Model) CellTexts() [][]string {
	out := make([][]string, len(m.Rows))
	for rowIdx, row := range m.Rows {
		out[rowIdx] = make([]string, len(row.Cells))
		for colIdx, cell := range row.Cells {
			out[rowIdx][colIdx] = cell.Content
		}
	}
	return out
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
