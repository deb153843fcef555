package tools

import (
	"context"
	"crypto/md5"
	"fmt"
	"math"
	"os"

	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/nathanhack/sysldpc/persistence"
	mat "github.com/nathanhack/sparsemat"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Summary describes one stored code.
type Summary struct {
	File         string
	Fingerprint  string
	Codeword     int
	Message      int
	Parity       int
	Extended     int
	Rate         float64
	ParityDegree avgstd.AvgStd
	SymbolDegree avgstd.AvgStd
	Girth        int
	Components   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%v (%v)\n  n=%v k=%v p=%v p_extended=%v rate=%.4f\n  parity degree %.3f±%.3f symbol degree %.3f±%.3f\n  girth=%v components=%v",
		s.File, s.Fingerprint,
		s.Codeword, s.Message, s.Parity, s.Extended, s.Rate,
		s.ParityDegree.Mean, math.Sqrt(s.ParityDegree.SampledVariance()),
		s.SymbolDegree.Mean, math.Sqrt(s.SymbolDegree.SampledVariance()),
		s.Girth, s.Components)
}

func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

// LoadRecord reads a stored code and checks it is consistent.
func LoadRecord(filepath string) (*persistence.Record, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("the RECORD file %v must exist", filepath)
	}

	record, err := persistence.Load(filepath)
	if err != nil {
		return nil, err
	}
	if err := record.Check(); err != nil {
		return nil, fmt.Errorf("%v: %w", filepath, err)
	}
	return record, nil
}

// Summarize computes the summary of a record. threads is passed to the girth search.
func Summarize(ctx context.Context, file string, record *persistence.Record, threads int) Summary {
	inc := record.Incidence()
	s := Summary{
		File:        file,
		Fingerprint: Md5Sum(inc.Matrix()),
		Codeword:    record.Codeword,
		Message:     record.Message,
		Parity:      record.Parity,
		Extended:    len(record.Parities),
		Girth:       linearblock.CalculateGirth(ctx, inc, threads),
		Components:  Components(inc),
	}
	if s.Codeword > 0 {
		s.Rate = float64(s.Message) / float64(s.Codeword)
	}
	for _, d := range inc.ParityDegrees() {
		s.ParityDegree.Update(float64(d))
	}
	for _, d := range inc.SymbolDegrees() {
		s.SymbolDegree.Update(float64(d))
	}
	return s
}

// Components counts the connected components of the tanner graph, isolated
// symbols and parities included.
func Components(inc *linearblock.Incidence) int {
	n := len(inc.Symbols)
	g := simple.NewUndirectedGraph()
	for j := range inc.Symbols {
		g.AddNode(simple.Node(j))
	}
	for i, symbols := range inc.Parities {
		parity := simple.Node(n + i)
		g.AddNode(parity)
		for _, j := range symbols {
			g.SetEdge(g.NewEdge(parity, simple.Node(j)))
		}
	}
	return len(topo.ConnectedComponents(g))
}

// Histogram counts how many entries of degrees equal each value in [0, max].
func Histogram(degrees []int) []int {
	max := 0
	for _, d := range degrees {
		if d > max {
			max = d
		}
	}
	result := make([]int, max+1)
	for _, d := range degrees {
		result[d]++
	}
	return result
}
