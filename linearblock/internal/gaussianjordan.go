package internal

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

// ErrInsufficientColumns is returned when a repair row cannot be built because
// there are fewer message columns than the requested weight needs.
var ErrInsufficientColumns = errors.New("insufficient message columns for repair row")

// Pivot records where the elimination of one pivot index was anchored.
// Row and Column are the position the search found before alignment.
type Pivot struct {
	Row    int
	Column int
	Empty  bool
}

// Result holds everything produced by SystematicGF2.
type Result struct {
	Encode      mat.SparseMat // p x n, identity block in columns [k, n)
	Decode      mat.SparseMat // p_extended x n, the input rows plus repair rows
	ColumnOrder []int         // column c of Encode/Decode was input column ColumnOrder[c]
	Pivots      []Pivot
	EmptyPivots []int
}

func swapColOrder(i, j int, colIndices []int) {
	x := len(colIndices)
	if 0 <= i && i < x && 0 <= j && j < x {
		colIndices[i], colIndices[j] = colIndices[j], colIndices[i]
	}
}

// swapColumnsTogether swaps columns i and j of every matrix given so their column
// identities never diverge.
func swapColumnsTogether(i, j int, matrices ...mat.SparseMat) {
	for _, m := range matrices {
		if m == nil {
			continue
		}
		ci := mat.CSRVecCopy(m.Column(i))
		cj := mat.CSRVecCopy(m.Column(j))
		m.SetColumn(i, cj)
		m.SetColumn(j, ci)
	}
}

// findPivotGF2 scans columns forPivot..n-1 and, inside each column, rows
// forPivot..p-1, returning the first set entry found.
func findPivotGF2(W mat.SparseMat, forPivot int) (row, col int, found bool) {
	_, cols := W.Dims()
	for c := forPivot; c < cols; c++ {
		best := -1
		for _, r := range W.Column(c).NonzeroArray() {
			if r >= forPivot && (best == -1 || r < best) {
				best = r
			}
		}
		if best != -1 {
			return best, c, true
		}
	}
	return -1, -1, false
}

// eliminateOtherRows XORs row rowIndex into every other row with a one in column rowIndex.
func eliminateOtherRows(ctx context.Context, rowIndex int, W mat.SparseMat, threads int) {
	others := make([]int, 0)
	for _, r := range W.Column(rowIndex).NonzeroArray() {
		if r != rowIndex {
			others = append(others, r)
		}
	}
	if len(others) == 0 {
		return
	}

	prow := mat.CSRVecCopy(W.Row(rowIndex))

	if threads == 1 || len(others) == 1 {
		for _, r := range others {
			row := mat.CSRVecCopy(W.Row(r))
			row.Add(row, prow)
			W.SetRow(r, row)
		}
		return
	}

	pool := threadpool.NewFixedSize(ctx, threads, len(others))
	mux := sync.Mutex{}
	for _, index := range others {
		r := index
		pool.Add(func() {
			mux.Lock()
			row := mat.CSRVecCopy(W.Row(r))
			mux.Unlock()

			// in GF2 subtraction is addition
			row.Add(row, prow)

			mux.Lock()
			W.SetRow(r, row)
			mux.Unlock()
		})
	}
	pool.Wait()
}

// reduce runs the pivot search, alignment and elimination steps over W for every
// pivot index. Column swaps are mirrored onto origin (when not nil) and recorded in order.
func reduce(ctx context.Context, W, origin mat.SparseMat, order []int, threads int, showProgressBar bool) ([]Pivot, error) {
	rows, _ := W.Dims()
	pivots := make([]Pivot, rows)

	bar := pb.Full.New(rows)
	bar.Set("prefix", "Processing Pivot ")
	bar.SetWriter(os.Stdout)
	if showProgressBar {
		bar.Start()
	}

	for t := 0; t < rows; t++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		bar.Increment()

		row, col, found := findPivotGF2(W, t)
		if !found {
			logrus.Debugf("Empty pivot at %v", t)
			pivots[t] = Pivot{Row: -1, Column: -1, Empty: true}
			continue
		}
		pivots[t] = Pivot{Row: row, Column: col}

		if row != t {
			W.SwapRows(t, row)
		}
		if col != t {
			swapColumnsTogether(t, col, W, origin)
			swapColOrder(t, col, order)
		}

		eliminateOtherRows(ctx, t, W, threads)
	}

	if showProgressBar {
		bar.SetTemplateString(`{{string . "prefix"}}{{counters . }}{{string . "suffix"}}`)
		bar.Set("suffix", " Done")
		bar.Finish()
	}
	return pivots, nil
}

// RepairRow builds the row that replaces an empty pivot: a one at column pivot and
// weight-1 further ones spread uniformly over the message columns [p, n).
func RepairRow(pivot, p, n, weight int, rng *rand.Rand) (mat.SparseVector, error) {
	k := n - p
	if weight < 1 {
		return nil, fmt.Errorf("repair weight must be >=1 but found %v", weight)
	}
	if weight-1 > k {
		return nil, fmt.Errorf("%w: weight %v needs %v message columns but only %v exist", ErrInsufficientColumns, weight, weight-1, k)
	}

	vec := mat.CSRVec(n)
	vec.Set(pivot, 1)
	for _, i := range rng.Perm(k)[:weight-1] {
		vec.Set(p+i, 1)
	}
	return vec, nil
}

// SystematicGF2 transforms H into the systematic form [A, I]. Rank deficient pivots are
// repaired by appending new rows to a copy of H. H itself is never modified.
func SystematicGF2(ctx context.Context, H mat.SparseMat, weight int, rng *rand.Rand, threads int, showProgressBar bool) (*Result, error) {
	rows, cols := H.Dims()
	if cols <= rows {
		panic("H matrix shape == (rows, cols) where rows < cols required")
	}

	W := mat.CSRMatCopy(H)
	origin := mat.CSRMatCopy(H)
	order := make([]int, cols)
	for c := 0; c < cols; c++ {
		order[c] = c
	}

	logrus.Debugf("Row reduction")
	pivots, err := reduce(ctx, W, origin, order, threads, showProgressBar)
	if err != nil {
		return nil, err
	}

	empty := make([]int, 0)
	for t, pivot := range pivots {
		if pivot.Empty {
			empty = append(empty, t)
		}
	}

	if len(empty) > 0 {
		logrus.Debugf("Repairing %v empty pivots", len(empty))
		grown := mat.CSRMat(rows+len(empty), cols)
		grown.SetMatrix(origin, 0, 0)

		for i, t := range empty {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			vec, err := RepairRow(t, rows, cols, weight, rng)
			if err != nil {
				return nil, err
			}
			grown.SetRow(rows+i, vec)
			W.SetRow(t, mat.CSRVecCopy(vec))
			eliminateOtherRows(ctx, t, W, threads)
		}
		origin = grown
	}

	// a cancelled elimination pass may have left W partially reduced
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// [I, A] -> [A, I]
	logrus.Debugf("Rotating columns")
	rotatedOrder := make([]int, cols)
	for c := range rotatedOrder {
		rotatedOrder[c] = order[(c+rows)%cols]
	}

	return &Result{
		Encode:      ColumnRotated(W, rows),
		Decode:      ColumnRotated(origin, rows),
		ColumnOrder: rotatedOrder,
		Pivots:      pivots,
		EmptyPivots: empty,
	}, nil
}

// CalculateRank returns the GF2 rank of H.
func CalculateRank(ctx context.Context, H mat.SparseMat, threads int, showProgressBar bool) int {
	if H == nil {
		return -1
	}

	tmp := mat.CSRMatCopy(H)
	_, cols := H.Dims()
	order := make([]int, cols)

	pivots, err := reduce(ctx, tmp, nil, order, threads, showProgressBar)
	if err != nil {
		return -1
	}

	rank := 0
	for _, p := range pivots {
		if !p.Empty {
			rank++
		}
	}
	return rank
}
