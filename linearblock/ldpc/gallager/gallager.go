package gallager

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nathanhack/sysldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Search builds a Gallager parity check matrix with m parities, column weight wc
// and row weight wr. Every band after the first is a column permutation of the
// first; a band is redrawn while it closes a cycle shorter than
// smallestCycleAllowed. Each band sums to the all ones row, so the matrix has at
// most m-wc+1 independent rows.
func Search(ctx context.Context, rng *rand.Rand, m, wc, wr, smallestCycleAllowed, maxIter, threads int) (mat.SparseMat, error) {
	if 3 > wc {
		return nil, fmt.Errorf("wc must be greater than or equal to 3")
	}
	if wc >= wr {
		return nil, fmt.Errorf("wc (%v) must be less than wr (%v)", wc, wr)
	}
	if m%wc != 0 {
		return nil, fmt.Errorf("wc (%v) must divide m (%v)", wc, m)
	}
	if smallestCycleAllowed%2 != 0 {
		return nil, fmt.Errorf("smallestCycle must be an even number")
	}
	if smallestCycleAllowed < 4 {
		return nil, fmt.Errorf("smallestCycle must at least 4")
	}

	N := m / wc * wr
	K := m / wc
	// band zero, every other band permutes its columns
	HPrime := mat.DOKMat(K, N)
	for i := 0; i < K; i++ {
		offset := i * wr
		for col := 0; col < wr; col++ {
			HPrime.Set(i, col+offset, 1)
		}
	}

	H := mat.DOKMat(m, N)
	H.SetMatrix(HPrime, 0, 0)

	iter := maxIter
	s := 1
	for s < wc && iter > 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		iter--
		logrus.Debugf("Iterations remaining %v", iter)
		H.SetMatrix(permuteColumns(HPrime, rng), s*K, 0)

		inc := linearblock.NewIncidence(H.Slice(0, 0, (s+1)*K, N))
		calGirth := linearblock.CalculateGirthLowerBound(ctx, inc, smallestCycleAllowed, threads)
		if -1 < calGirth && calGirth < smallestCycleAllowed {
			continue
		}
		s++
	}
	if s != wc {
		return nil, fmt.Errorf("failed to find a solution in %v iterations", maxIter)
	}
	logrus.Debugf("Gallager H Matrix found")
	return H, nil
}

func permuteColumns(H mat.SparseMat, rng *rand.Rand) mat.SparseMat {
	rows, cols := H.Dims()
	result := mat.DOKMat(rows, cols)
	for i, col := range rng.Perm(cols) {
		result.SetColumn(i, H.Column(col))
	}
	return result
}
