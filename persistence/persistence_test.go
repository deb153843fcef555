package persistence

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathanhack/sysldpc/bipartite"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/stretchr/testify/require"
)

func scenarioRecord(t *testing.T) *Record {
	H, err := bipartite.Read(strings.NewReader("0 1 2\n1 2 3\n0 3"), bipartite.DefaultRatio)
	require.NoError(t, err)

	opts := linearblock.DefaultOptions()
	opts.RepairWeight = 2
	opts.Rand = rand.New(rand.NewSource(1))
	code, err := linearblock.NewSystematic(context.Background(), H, opts)
	require.NoError(t, err)
	return NewRecord(code)
}

func TestNewRecord(t *testing.T) {
	record := scenarioRecord(t)
	require.Equal(t, 1, record.Message)
	require.Equal(t, 3, record.Parity)
	require.Equal(t, 4, record.Codeword)
	require.Equal(t, 1, record.Repaired)
	require.Equal(t, [][]int{{0, 1}, {2}, {0, 3}}, record.Encode)
	require.NoError(t, record.Check())
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	record := scenarioRecord(t)

	paths, err := Save(dir, record, JSON)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "symbols_and_parities_k=1.json"), paths.Record)

	decode, err := os.ReadFile(filepath.Join(dir, "k=1_decode.txt"))
	require.NoError(t, err)
	require.Equal(t, "1 2 3\n0 2 3\n0 1\n0 3", string(decode))

	encode, err := os.ReadFile(filepath.Join(dir, "k=1_encode.txt"))
	require.NoError(t, err)
	require.Equal(t, "0 1\n2\n0 3", string(encode))

	// the extended parity count can reach n, so the listings are read back unbounded
	parities, err := bipartite.ReadRows(strings.NewReader(string(decode)))
	require.NoError(t, err)
	require.Equal(t, record.Parities, parities)

	symbols, err := bipartite.ReadRows(strings.NewReader(string(encode)))
	require.NoError(t, err)
	require.Equal(t, record.Encode, symbols)

	loaded, err := Load(paths.Record)
	require.NoError(t, err)
	require.Equal(t, record, loaded)
}

func TestSave_YAML(t *testing.T) {
	dir := t.TempDir()
	record := scenarioRecord(t)

	paths, err := Save(dir, record, YAML)
	require.NoError(t, err)
	require.Equal(t, ".yaml", filepath.Ext(paths.Record))

	loaded, err := Load(paths.Record)
	require.NoError(t, err)
	require.Equal(t, record, loaded)
	require.NoError(t, loaded.Check())
}

func TestSave_Failures(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Save(filepath.Join(file, "sub"), scenarioRecord(t), JSON)
	require.ErrorIs(t, err, ErrPersistence)

	_, err = Save(t.TempDir(), scenarioRecord(t), Format("xml"))
	require.ErrorIs(t, err, ErrPersistence)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, ErrPersistence)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrPersistence)
}

func TestCheck(t *testing.T) {
	record := scenarioRecord(t)
	record.Symbols[0] = []int{0}
	require.ErrorIs(t, record.Check(), ErrPersistence)

	record = scenarioRecord(t)
	record.Codeword++
	require.ErrorIs(t, record.Check(), ErrPersistence)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	require.Equal(t, YAML, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	require.Equal(t, JSON, f)

	_, err = ParseFormat("toml")
	require.ErrorIs(t, err, ErrPersistence)
}
