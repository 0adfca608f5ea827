package domain

// Matrix is a sparse matrix with labelled rows and columns.
// Labels keep their insertion order. Entries never set read as zero.
//
// The corpus uses it for the term-document matrix (terms × article IDs),
// its transpose, the Gram similarity matrices and the hot term matrix.
type Matrix struct {
	rows     []string
	cols     []string
	rowIndex map[string]int
	colIndex map[string]int
	values   map[string]map[string]float64
}

// NewMatrix creates an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
		values:   make(map[string]map[string]float64),
	}
}

// AddRow registers a row label if it is not already present.
func (m *Matrix) AddRow(row string) {
	if _, ok := m.rowIndex[row]; ok {
		return
	}
	m.rowIndex[row] = len(m.rows)
	m.rows = append(m.rows, row)
}

// AddCol registers a column label if it is not already present.
func (m *Matrix) AddCol(col string) {
	if _, ok := m.colIndex[col]; ok {
		return
	}
	m.colIndex[col] = len(m.cols)
	m.cols = append(m.cols, col)
}

// Set stores a value, registering its labels as needed.
// Setting zero removes the entry.
func (m *Matrix) Set(row, col string, value float64) {
	m.AddRow(row)
	m.AddCol(col)
	if value == 0 {
		if r, ok := m.values[row]; ok {
			delete(r, col)
		}
		return
	}
	r, ok := m.values[row]
	if !ok {
		r = make(map[string]float64)
		m.values[row] = r
	}
	r[col] = value
}

// Get returns the value at (row, col), zero when absent.
func (m *Matrix) Get(row, col string) float64 {
	return m.values[row][col]
}

// Rows returns the row labels in insertion order.
func (m *Matrix) Rows() []string {
	return append([]string(nil), m.rows...)
}

// Cols returns the column labels in insertion order.
func (m *Matrix) Cols() []string {
	return append([]string(nil), m.cols...)
}

// HasRow reports whether row is a registered label.
func (m *Matrix) HasRow(row string) bool {
	_, ok := m.rowIndex[row]
	return ok
}

// HasCol reports whether col is a registered label.
func (m *Matrix) HasCol(col string) bool {
	_, ok := m.colIndex[col]
	return ok
}

// Row returns the nonzero entries of a row keyed by column.
func (m *Matrix) Row(row string) map[string]float64 {
	out := make(map[string]float64, len(m.values[row]))
	for col, v := range m.values[row] {
		out[col] = v
	}
	return out
}

// Col returns the nonzero entries of a column keyed by row.
func (m *Matrix) Col(col string) map[string]float64 {
	out := make(map[string]float64)
	for row, r := range m.values {
		if v, ok := r[col]; ok {
			out[row] = v
		}
	}
	return out
}

// NonZero counts the nonzero entries of a row.
func (m *Matrix) NonZero(row string) int {
	return len(m.values[row])
}

// Shape returns the number of rows and columns.
func (m *Matrix) Shape() (rows, cols int) {
	return len(m.rows), len(m.cols)
}

// Empty reports whether the matrix has no rows or no columns.
func (m *Matrix) Empty() bool {
	return len(m.rows) == 0 || len(m.cols) == 0
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix()
	for _, col := range m.cols {
		t.AddRow(col)
	}
	for _, row := range m.rows {
		t.AddCol(row)
	}
	for row, r := range m.values {
		for col, v := range r {
			t.Set(col, row, v)
		}
	}
	return t
}

// Dense returns the values in row-major order, one slice per row.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i, row := range m.rows {
		out[i] = make([]float64, len(m.cols))
		for col, v := range m.values[row] {
			out[i][m.colIndex[col]] = v
		}
	}
	return out
}

// MatrixFromDense builds a matrix from row-major values and labels.
// values must have len(rows) slices of len(cols) entries.
func MatrixFromDense(rows, cols []string, values [][]float64) *Matrix {
	m := NewMatrix()
	for _, row := range rows {
		m.AddRow(row)
	}
	for _, col := range cols {
		m.AddCol(col)
	}
	for i, row := range rows {
		for j, col := range cols {
			m.Set(row, col, values[i][j])
		}
	}
	return m
}
