package storage

import (
	"sort"
	"strings"
)

// Row is one sheet row with every cell normalised to a string.
type Row []string

// Cell returns the trimmed value at column i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Present reports whether column i holds a non-blank value.
func (r Row) Present(i int) bool {
	return r.Cell(i) != ""
}

// RowPatch maps column indexes to the values an update should write.
type RowPatch map[int]string

// Set stores v at column i.
func (p RowPatch) Set(i int, v string) RowPatch {
	p[i] = v
	return p
}

// Columns returns the patched column letters in sheet order.
func (p RowPatch) Columns() []string {
	idx := make([]int, 0, len(p))
	for i := range p {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]string, len(idx))
	for n, i := range idx {
		out[n] = ColumnLetter(i)
	}
	return out
}

// Dense expands the patch to a full row. Untouched positions are "" which
// the endpoint treats as "keep the current value".
func (p RowPatch) Dense() []string {
	width := 0
	for i := range p {
		if i+1 > width {
			width = i + 1
		}
	}
	out := make([]string, width)
	for i, v := range p {
		if i >= 0 {
			out[i] = v
		}
	}
	return out
}
