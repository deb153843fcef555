package linearblock

import (
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

// Incidence is the adjacency between parities and symbols of a code.
// Parities[i] lists the symbols of decode row i and Symbols[j] lists the
// parities touching symbol j, both ascending. Encode[i] lists the symbols an
// encoder XORs for parity i.
type Incidence struct {
	Parities [][]int
	Symbols  [][]int
	Encode   [][]int
}

// RowIndices returns the ascending column indices of every row of m.
func RowIndices(m mat.SparseMat) [][]int {
	rows, _ := m.Dims()
	result := make([][]int, rows)
	for r := 0; r < rows; r++ {
		result[r] = append(make([]int, 0), m.Row(r).NonzeroArray()...)
		slices.Sort(result[r])
	}
	return result
}

// Transpose turns per-row column lists into per-column row lists for cols columns.
func Transpose(rows [][]int, cols int) [][]int {
	result := make([][]int, cols)
	for c := range result {
		result[c] = make([]int, 0)
	}
	for r, row := range rows {
		for _, c := range row {
			result[c] = append(result[c], r)
		}
	}
	return result
}

// Extract builds the incidence of a code from its encode and decode matrices.
func Extract(encode, decode mat.SparseMat) *Incidence {
	_, n := decode.Dims()
	parities := RowIndices(decode)
	return &Incidence{
		Parities: parities,
		Symbols:  Transpose(parities, n),
		Encode:   RowIndices(encode),
	}
}

// Incidence returns the incidence of the code.
func (s *Systematic) Incidence() *Incidence {
	return Extract(s.Encode, s.Decode)
}

// EncodeRows returns, for each of the p parities, the symbols an encoder XORs.
func (s *Systematic) EncodeRows() [][]int {
	return RowIndices(s.Encode)
}

// NewIncidence builds the incidence of a plain parity matrix (no encode view).
func NewIncidence(H mat.SparseMat) *Incidence {
	_, n := H.Dims()
	parities := RowIndices(H)
	return &Incidence{
		Parities: parities,
		Symbols:  Transpose(parities, n),
	}
}

// Symmetric reports whether j is in Parities[i] exactly when i is in Symbols[j].
func (inc *Incidence) Symmetric() bool {
	edges := 0
	for i, symbols := range inc.Parities {
		for _, j := range symbols {
			if j < 0 || j >= len(inc.Symbols) {
				return false
			}
			if _, found := slices.BinarySearch(inc.Symbols[j], i); !found {
				return false
			}
			edges++
		}
	}
	for _, parities := range inc.Symbols {
		edges -= len(parities)
	}
	return edges == 0
}

// Matrix rebuilds the decode matrix described by the incidence.
func (inc *Incidence) Matrix() mat.SparseMat {
	H := mat.DOKMat(len(inc.Parities), len(inc.Symbols))
	for i, symbols := range inc.Parities {
		for _, j := range symbols {
			H.Set(i, j, 1)
		}
	}
	return H
}

// ParityDegrees returns the number of symbols in every parity.
func (inc *Incidence) ParityDegrees() []int {
	return degrees(inc.Parities)
}

// SymbolDegrees returns the number of parities touching every symbol.
func (inc *Incidence) SymbolDegrees() []int {
	return degrees(inc.Symbols)
}

func degrees(lists [][]int) []int {
	result := make([]int, len(lists))
	for i, l := range lists {
		result[i] = len(l)
	}
	return result
}
