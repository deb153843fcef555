package internal

import (
	"context"
	"math/rand"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
	"github.com/stretchr/testify/require"
)

func rowsOf(m mat.SparseMat) [][]int {
	rows, _ := m.Dims()
	result := make([][]int, rows)
	for r := 0; r < rows; r++ {
		result[r] = append([]int{}, m.Row(r).NonzeroArray()...)
	}
	return result
}

func TestFindPivotGF2(t *testing.T) {
	tests := []struct {
		input    mat.SparseMat
		forPivot int
		row, col int
		found    bool
	}{
		{mat.CSRMat(2, 4, 0, 1, 1, 0, 1, 0, 0, 1), 0, 1, 0, true},
		{mat.CSRMat(2, 4, 0, 0, 1, 1, 0, 0, 1, 0), 0, 0, 2, true},
		{mat.CSRMat(2, 4, 1, 0, 0, 1, 0, 0, 0, 1), 1, 1, 3, true},
		{mat.CSRMat(2, 4, 1, 1, 1, 1, 0, 0, 0, 0), 1, -1, -1, false},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			row, col, found := findPivotGF2(test.input, test.forPivot)
			require.Equal(t, test.found, found)
			require.Equal(t, test.row, row)
			require.Equal(t, test.col, col)
		})
	}
}

func TestSystematicGF2_ColumnSwaps(t *testing.T) {
	H := mat.CSRMat(2, 4,
		0, 0, 1, 1,
		0, 0, 1, 0)

	result, err := SystematicGF2(context.Background(), H, 2, rand.New(rand.NewSource(1)), 1, false)
	require.NoError(t, err)

	require.Equal(t, []Pivot{{Row: 0, Column: 2}, {Row: 1, Column: 3}}, result.Pivots)
	require.Empty(t, result.EmptyPivots)
	require.Equal(t, [][]int{{2}, {3}}, rowsOf(result.Encode))
	require.Equal(t, [][]int{{2, 3}, {2}}, rowsOf(result.Decode))
	require.Equal(t, []int{0, 1, 2, 3}, result.ColumnOrder)
	require.True(t, ColumnSwapped(H, result.ColumnOrder).Equals(result.Decode))

	// the input is never touched
	require.Equal(t, [][]int{{2, 3}, {2}}, rowsOf(H))
}

func TestSystematicGF2_RankDeficient(t *testing.T) {
	H := mat.CSRMat(3, 4,
		1, 1, 1, 0,
		0, 1, 1, 1,
		1, 0, 0, 1)

	result, err := SystematicGF2(context.Background(), H, 2, rand.New(rand.NewSource(7)), 1, false)
	require.NoError(t, err)

	require.Equal(t, []int{2}, result.EmptyPivots)
	require.True(t, result.Pivots[2].Empty)
	require.Equal(t, [][]int{{0, 1}, {2}, {0, 3}}, rowsOf(result.Encode))
	require.Equal(t, [][]int{{1, 2, 3}, {0, 2, 3}, {0, 1}, {0, 3}}, rowsOf(result.Decode))
	require.Equal(t, []int{3, 0, 1, 2}, result.ColumnOrder)
	require.NoError(t, VerifyIdentity(result.Encode))
}

func TestSystematicGF2_IdenticalRows(t *testing.T) {
	tests := []struct {
		p, n, weight int
	}{
		{3, 6, 2},
		{4, 8, 3},
		{5, 12, 8},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			H := mat.CSRMat(test.p, test.n)
			for r := 0; r < test.p; r++ {
				H.Set(r, 0, 1)
				H.Set(r, 1, 1)
			}

			result, err := SystematicGF2(context.Background(), H, test.weight, rand.New(rand.NewSource(int64(i))), 1, false)
			require.NoError(t, err)
			require.Len(t, result.EmptyPivots, test.p-1)

			rows, cols := result.Decode.Dims()
			require.Equal(t, 2*test.p-1, rows)
			require.Equal(t, test.n, cols)
			require.NoError(t, VerifyIdentity(result.Encode))

			// each repair row carries exactly weight ones
			for r := test.p; r < rows; r++ {
				require.Equal(t, test.weight, result.Decode.Row(r).HammingWeight())
			}
		})
	}
}

func TestSystematicGF2_InsufficientColumns(t *testing.T) {
	H := mat.CSRMat(3, 4,
		1, 1, 0, 0,
		1, 1, 0, 0,
		1, 1, 0, 0)

	_, err := SystematicGF2(context.Background(), H, 8, rand.New(rand.NewSource(1)), 1, false)
	require.ErrorIs(t, err, ErrInsufficientColumns)
}

func TestSystematicGF2_Threads(t *testing.T) {
	H := randomH(40, 60, 6, 11)

	single, err := SystematicGF2(context.Background(), H, 4, rand.New(rand.NewSource(3)), 1, false)
	require.NoError(t, err)
	multi, err := SystematicGF2(context.Background(), H, 4, rand.New(rand.NewSource(3)), 4, false)
	require.NoError(t, err)

	require.True(t, single.Encode.Equals(multi.Encode))
	require.True(t, single.Decode.Equals(multi.Decode))
	require.Equal(t, single.ColumnOrder, multi.ColumnOrder)

	// zero threads falls back to every CPU
	all, err := SystematicGF2(context.Background(), H, 4, rand.New(rand.NewSource(3)), 0, false)
	require.NoError(t, err)
	require.True(t, single.Encode.Equals(all.Encode))
	require.Equal(t, single.ColumnOrder, all.ColumnOrder)
}

func TestSystematicGF2_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SystematicGF2(ctx, randomH(10, 14, 3, 1), 2, rand.New(rand.NewSource(1)), 1, false)
	require.ErrorIs(t, err, context.Canceled)
}

// cancelledLate reports cancellation through Err while its Done channel never
// fires, as seen when the cancel lands after the last pivot was checked.
type cancelledLate struct {
	context.Context
}

func (cancelledLate) Err() error { return context.Canceled }

func TestSystematicGF2_CancelledBeforeRotation(t *testing.T) {
	ctx := cancelledLate{context.Background()}

	// full rank, no repairs
	hamming := mat.CSRMat(3, 7, 1, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1)
	_, err := SystematicGF2(ctx, hamming, 2, rand.New(rand.NewSource(1)), 1, false)
	require.ErrorIs(t, err, context.Canceled)

	// rank deficient, the repair loop runs to completion
	H := mat.CSRMat(3, 6, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0)
	_, err = SystematicGF2(ctx, H, 2, rand.New(rand.NewSource(1)), 1, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepairRow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		vec, err := RepairRow(2, 5, 12, 4, rng)
		require.NoError(t, err)
		require.Equal(t, 4, vec.HammingWeight())
		require.Equal(t, 1, vec.At(2))
		for _, c := range vec.NonzeroArray() {
			require.True(t, c == 2 || c >= 5, "unexpected column %v", c)
		}
	}

	_, err := RepairRow(0, 5, 6, 3, rng)
	require.ErrorIs(t, err, ErrInsufficientColumns)

	_, err = RepairRow(0, 5, 6, 0, rng)
	require.Error(t, err)
}

func TestCalculateRank(t *testing.T) {
	tests := []struct {
		input    mat.SparseMat
		expected int
	}{
		{ //Hamming 7
			mat.CSRMat(3, 7, 1, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 1),
			3,
		},
		{ //Random - one linearly dependent row
			mat.CSRMat(4, 5, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1),
			3,
		},
		{mat.CSRMat(2, 2), 0},
		{nil, -1},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			require.Equal(t, test.expected, CalculateRank(context.Background(), test.input, 1, false))
		})
	}
}

func randomH(p, n, weight int, seed int64) mat.SparseMat {
	rng := rand.New(rand.NewSource(seed))
	H := mat.CSRMat(p, n)
	for r := 0; r < p; r++ {
		for _, c := range rng.Perm(n)[:weight] {
			H.Set(r, c, 1)
		}
	}
	return H
}
