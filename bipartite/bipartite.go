// Package bipartite reads and writes the text description of a parity check
// matrix: line i lists the symbols that parity i touches.
package bipartite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathanhack/sysldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

// Read parses the description with the codeword length derived from ratio.
func Read(r io.Reader, ratio Ratio) (mat.SparseMat, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return build(rows, ratio.Codeword(len(rows)))
}

// ReadN parses the description for a codeword of exactly n symbols.
func ReadN(r io.Reader, n int) (mat.SparseMat, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return build(rows, n)
}

// ReadFile opens path and parses it. An n > 0 takes precedence over ratio.
func ReadFile(path string, ratio Ratio, n int) (mat.SparseMat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if n > 0 {
		return ReadN(f, n)
	}
	return Read(f, ratio)
}

// ReadRows returns the raw per-line index lists without bounding them to a
// codeword length. A blank line yields an empty row.
func ReadRows(r io.Reader) ([][]int, error) {
	rows := make([][]int, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		row := make([]int, len(fields))
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: line %v: %v", linearblock.ErrMalformedInput, len(rows)+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func build(rows [][]int, n int) (mat.SparseMat, error) {
	p := len(rows)
	if p == 0 {
		return nil, fmt.Errorf("%w: no parity lines", linearblock.ErrMalformedInput)
	}
	if n <= p {
		return nil, fmt.Errorf("%w: codeword length %v must exceed the %v parities", linearblock.ErrMalformedInput, n, p)
	}

	H := mat.CSRMat(p, n)
	for i, row := range rows {
		for _, j := range row {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("%w: line %v: symbol %v outside [0,%v)", linearblock.ErrMalformedInput, i+1, j, n)
			}
			H.Set(i, j, 1)
		}
	}
	return H, nil
}

// WriteRows writes one line per row with indices separated by single spaces.
// Lines are joined by a newline and the output does not end with one.
func WriteRows(w io.Writer, rows [][]int) error {
	buf := strings.Builder{}
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(strconv.Itoa(v))
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// Write writes the description of H.
func Write(w io.Writer, H mat.SparseMat) error {
	return WriteRows(w, linearblock.RowIndices(H))
}
