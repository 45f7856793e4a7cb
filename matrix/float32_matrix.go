package matrix

// internal Float32 matrix representation
type Float32Matrix struct {
	nrow int
	ncol int
	data []float32
}

// NewFloat32Matrix creates a new Float32Matrix with r rows and c columns.
// if r <= 0 or c <= 0, it will panic. A float32 slice is used as the
// underlying storage and the data layout is in row major order, i.e. the
// (i*c + j)-th element in the data slice is the [i, j]-th element in the
// matrix.
func NewFloat32Matrix(r, c int) *Float32Matrix {
	if r <= 0 || c <= 0 {
		panic(ErrBadShape)
	}
	return &Float32Matrix{
		nrow: r,
		ncol: c,
		data: make([]float32, r*c),
	}
}

// get the shape of the matrix
func (m *Float32Matrix) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float32Matrix) Get(r, c int) float32 {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Float32Matrix) Set(r, c int, val float32) {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// Row returns the r-th row as a slice aliasing the matrix storage.
// Writes through the returned slice mutate the matrix in place, which
// is what the training hot loop relies on.
func (m *Float32Matrix) Row(r int) []float32 {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}
