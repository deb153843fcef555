// Package regular draws random (c,d)-regular LDPC parity check matrices from
// the configuration model.
package regular

import (
	"fmt"
	"math/rand"

	mat "github.com/nathanhack/sparsemat"
)

// Dims returns the codeword length n and parity count p of a (c,d)-regular
// code carrying k message symbols.
func Dims(k, c, d int) (n, p int, err error) {
	if k < 1 || c < 1 || d <= c {
		return 0, 0, fmt.Errorf("require k >= 1 and 1 <= c < d but found k=%v c=%v d=%v", k, c, d)
	}
	if (k*d)%(d-c) != 0 {
		return 0, 0, fmt.Errorf("d-c (%v) must divide k*d (%v)", d-c, k*d)
	}
	n = k * d / (d - c)
	if (n*c)%d != 0 {
		return 0, 0, fmt.Errorf("d (%v) must divide n*c (%v)", d, n*c)
	}
	return n, n * c / d, nil
}

// New returns a p x n matrix where every symbol has c sockets and every parity
// has d. Sockets are matched by a random permutation and a symbol joined to the
// same parity twice drops out of it, so degrees are at most c and d.
func New(k, c, d int, rng *rand.Rand) (mat.SparseMat, error) {
	n, p, err := Dims(k, c, d)
	if err != nil {
		return nil, err
	}

	H := mat.DOKMat(p, n)
	for e, socket := range rng.Perm(n * c) {
		parity, symbol := e/d, socket/c
		H.Set(parity, symbol, (H.At(parity, symbol)+1)%2)
	}
	return H, nil
}
