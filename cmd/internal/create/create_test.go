package create

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nathanhack/sysldpc/bipartite"
	mat "github.com/nathanhack/sparsemat"
	"github.com/stretchr/testify/require"
)

func TestWriteH(t *testing.T) {
	H := mat.CSRMat(2, 4,
		1, 0, 1, 0,
		0, 1, 1, 1)
	path := filepath.Join(t.TempDir(), "raw.txt")
	require.NoError(t, WriteH(path, H))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0 2\n1 2 3", string(bs))

	read, err := bipartite.ReadFile(path, bipartite.DefaultRatio, 4)
	require.NoError(t, err)
	require.True(t, H.Equals(read))

	require.Error(t, WriteH(filepath.Join(path, "sub.txt"), H))
}

func TestRand(t *testing.T) {
	require.Equal(t, Rand(4).Int63(), Rand(4).Int63())
	require.NotNil(t, Rand(0))
}
