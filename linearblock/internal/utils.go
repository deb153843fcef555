package internal

import (
	"errors"
	"fmt"

	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// ErrVerification means the encode matrix lost its identity block. It always
// indicates a defect in the elimination, never bad input.
var ErrVerification = errors.New("systematic form verification failed")

// ColumnRotated returns a copy of H where column c holds column (c+shift)%cols of H.
func ColumnRotated(H mat.SparseMat, shift int) mat.SparseMat {
	rows, cols := H.Dims()
	result := mat.CSRMat(rows, cols)

	for c := 0; c < cols; c++ {
		result.SetColumn(c, H.Column((c+shift)%cols))
	}
	return result
}

// ColumnSwapped returns a copy of H where column c holds column order[c] of H.
func ColumnSwapped(H mat.SparseMat, order []int) mat.SparseMat {
	rows, cols := H.Dims()
	if len(order) != cols {
		panic("ordering length must equal the number of columns")
	}
	result := mat.CSRMat(rows, cols)

	for c, c1 := range order {
		result.SetColumn(c, H.Column(c1))
	}
	return result
}

// VerifyIdentity checks that every row i of the p x n matrix E has exactly one
// set entry in columns [k+i, n) and that it sits at column k+i.
func VerifyIdentity(E mat.SparseMat) error {
	p, n := E.Dims()
	k := n - p

	for i := 0; i < p; i++ {
		ones := 0
		for _, c := range E.Row(i).NonzeroArray() {
			if c >= k+i {
				ones++
			}
		}
		if ones != 1 || E.At(i, k+i) == 0 {
			logrus.Errorf("row %v of the encode matrix is not systematic: %v", i, E.Row(i).NonzeroArray())
			return fmt.Errorf("%w: row %v has %v entries in columns [%v,%v)", ErrVerification, i, ones, k+i, n)
		}
	}
	return nil
}

// Generator derives G=[I, A^T] from an encode matrix E=[A, I].
func Generator(E mat.SparseMat) mat.SparseMat {
	p, n := E.Dims()
	k := n - p

	A := E.Slice(0, 0, p, k)
	AT := A.T() // k x p

	G := mat.DOKMat(k, n)
	G.SetMatrix(mat.CSRIdentity(k), 0, 0)
	G.SetMatrix(AT, 0, k)
	return G
}

//ValidateHGMatrices tests if G*H.T ==0 where H.T is the transpose of H
func ValidateHGMatrices(G, H mat.SparseMat) bool {
	rows, _ := G.Dims()
	cols, _ := H.Dims()

	cache := make([]mat.SparseVector, cols)
	for i := 0; i < cols; i++ {
		cache[i] = H.Row(i)
	}
	for i := 0; i < rows; i++ {
		row := G.Row(i)
		for j := 0; j < cols; j++ {
			//equiv to G*H.T
			if row.Dot(cache[j])%2 != 0 {
				return false
			}
		}
	}

	return true
}
