package gallager

import (
	"context"
	"math/rand"
	"testing"

	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	H, err := Search(context.Background(), rand.New(rand.NewSource(3)), 12, 3, 4, 4, 100, 1)
	require.NoError(t, err)

	m, n := H.Dims()
	require.Equal(t, 12, m)
	require.Equal(t, 16, n)

	inc := linearblock.NewIncidence(H)
	for _, d := range inc.ParityDegrees() {
		require.Equal(t, 4, d)
	}
	for _, d := range inc.SymbolDegrees() {
		require.Equal(t, 3, d)
	}

	opts := linearblock.DefaultOptions()
	opts.RepairWeight = 3
	opts.Rand = rand.New(rand.NewSource(1))
	code, err := linearblock.NewSystematic(context.Background(), H, opts)
	require.NoError(t, err)
	require.GreaterOrEqual(t, code.Repaired(), 2)
	require.True(t, code.Validate())
}

func TestSearch_GirthUnreachable(t *testing.T) {
	// two bands of four columns per row always share a pair of columns
	_, err := Search(context.Background(), rand.New(rand.NewSource(5)), 6, 3, 4, 6, 50, 1)
	require.Error(t, err)
}

func TestSearch_Invalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Search(context.Background(), rng, 12, 2, 4, 4, 10, 1)
	require.Error(t, err)
	_, err = Search(context.Background(), rng, 12, 4, 4, 4, 10, 1)
	require.Error(t, err)
	_, err = Search(context.Background(), rng, 10, 3, 4, 4, 10, 1)
	require.Error(t, err)
	_, err = Search(context.Background(), rng, 12, 3, 4, 5, 10, 1)
	require.Error(t, err)
}
