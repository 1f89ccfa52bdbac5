package sheetfake

// Width covers every column of the dispatch sheet (A..BP).
const Width = 68

// RowWith builds a sheet row of Width cells with the given columns set.
func RowWith(cells map[int]interface{}) []interface{} {
	row := make([]interface{}, Width)
	for i := range row {
		row[i] = ""
	}
	for i, v := range cells {
		for len(row) <= i {
			row = append(row, "")
		}
		row[i] = v
	}
	return row
}

// WithHeader prefixes n header rows to data rows.
func WithHeader(n int, rows ...[]interface{}) [][]interface{} {
	out := make([][]interface{}, 0, n+len(rows))
	for i := 0; i < n; i++ {
		out = append(out, []interface{}{"header"})
	}
	return append(out, rows...)
}
