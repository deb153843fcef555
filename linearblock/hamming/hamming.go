package hamming

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

// New creates the parity check matrix of the hamming code with paritySymbols
// parity symbols and 2^paritySymbols-1 codeword symbols. The matrix is full rank
// so its systematic form never needs repair rows.
func New(paritySymbols int) (mat.SparseMat, error) {
	if paritySymbols < 3 {
		return nil, fmt.Errorf("hamming codes require >=3 parity symbols but found %v", paritySymbols)
	}
	if paritySymbols > 20 {
		return nil, fmt.Errorf("hamming codes with %v parity symbols are too large", paritySymbols)
	}
	n := 1<<paritySymbols - 1
	H := mat.CSRMat(paritySymbols, n)

	//To make Hamming codes we make the columns the bit versions
	// of every number from 1 to and including n -> [1,n] (note they're nonzero)
	for i := 1; i <= n; i++ {
		vec := mat.CSRVec(paritySymbols)
		for j := 0; j < paritySymbols; j++ {
			if i&(1<<j) > 0 {
				vec.Set(j, 1)
			}
		}
		H.SetColumn(i-1, vec)
	}
	return H, nil
}
