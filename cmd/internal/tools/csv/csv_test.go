package csv

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/nathanhack/sysldpc/cmd/internal/tools"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	s := tools.Summary{File: "a.json", Codeword: 16, Message: 4, Parity: 12, Extended: 13, Rate: 0.25, Girth: -1, Components: 2}
	s.ParityDegree.Update(4)
	s.ParityDegree.Update(4)
	s.SymbolDegree.Update(3)
	s.SymbolDegree.Update(3)

	buf := bytes.Buffer{}
	require.NoError(t, Write(&buf, []tools.Summary{s}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, header, rows[0])
	require.Equal(t, []string{"a.json", "", "16", "4", "12", "13", "0.25", "4", "0"}, rows[1][:9])
	require.Equal(t, []string{"3", "0", "-1", "2"}, rows[1][9:])
}
