// Package linalg wraps the dense linear algebra the corpus needs.
//
// It converts labelled domain matrices to gonum matrices and back, so the
// core services never handle gonum types directly.
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// Gram returns X·Xᵀ for the labelled matrix X, labelled by X's rows on
// both axes. The result is symmetric positive semi-definite.
func Gram(x *domain.Matrix) *domain.Matrix {
	rows := x.Rows()
	if len(rows) == 0 {
		return domain.NewMatrix()
	}

	sym := gram(x)
	values := make([][]float64, len(rows))
	for i := range rows {
		values[i] = make([]float64, len(rows))
		for j := range rows {
			values[i][j] = sym.At(i, j)
		}
	}
	return domain.MatrixFromDense(rows, rows, values)
}

// gram builds the symmetric product. A matrix without columns yields the
// zero matrix.
func gram(x *domain.Matrix) *mat.SymDense {
	n, k := x.Shape()
	if k == 0 {
		return mat.NewSymDense(n, nil)
	}

	dense := mat.NewDense(n, k, nil)
	for i, row := range x.Dense() {
		dense.SetRow(i, row)
	}

	var sym mat.SymDense
	sym.SymOuterK(1, dense)
	return &sym
}

// SymmetricEigenvalues returns the eigenvalues of a square symmetric
// labelled matrix in ascending order. ok is false when the factorisation
// fails or the matrix is not square.
func SymmetricEigenvalues(m *domain.Matrix) (values []float64, ok bool) {
	rows, cols := m.Shape()
	if rows != cols {
		return nil, false
	}
	if rows == 0 {
		return nil, true
	}

	sym := mat.NewSymDense(rows, nil)
	for i, row := range m.Dense() {
		for j := i; j < cols; j++ {
			sym.SetSym(i, j, row[j])
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return nil, false
	}
	return eig.Values(nil), true
}

// IsSymmetric reports whether m equals its transpose within tol.
func IsSymmetric(m *domain.Matrix, tol float64) bool {
	rows, cols := m.Shape()
	if rows != cols {
		return false
	}
	if rows == 0 {
		return true
	}
	dense := mat.NewDense(rows, cols, nil)
	for i, row := range m.Dense() {
		dense.SetRow(i, row)
	}
	return mat.EqualApprox(dense, dense.T(), tol)
}
