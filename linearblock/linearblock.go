package linearblock

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/nathanhack/sysldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// DefaultRepairWeight is the number of ones placed in each synthesized repair row.
const DefaultRepairWeight = 8

var (
	// ErrMalformedInput is returned when a parity matrix or its text description is inconsistent.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInsufficientColumns is returned when the repair weight needs more message columns than exist.
	ErrInsufficientColumns = internal.ErrInsufficientColumns
	// ErrVerification is returned when the encode matrix fails its identity check.
	ErrVerification = internal.ErrVerification
	// ErrInvalidOptions is returned for options that can never produce a code.
	ErrInvalidOptions = errors.New("invalid options")
)

// Options controls how NewSystematic builds the code.
type Options struct {
	RepairWeight    int        // ones per repair row, >=1
	Check           bool       // verify the identity block after elimination
	Rand            *rand.Rand // source for repair rows; nil seeds from the clock
	Threads         int        // workers for row elimination; <=0 uses all CPUs
	ShowProgressBar bool
}

// DefaultOptions returns the options used when nothing else is requested.
func DefaultOptions() Options {
	return Options{
		RepairWeight: DefaultRepairWeight,
		Check:        true,
		Threads:      1,
	}
}

//Systematic contains the parity constraints of a systematic linear block code.
// Columns [0,k) are message symbols and columns [k,n) are parity symbols.
type Systematic struct {
	Encode      mat.SparseMat // p x n, [A, I]
	Decode      mat.SparseMat // p_extended x n, every constraint including repairs
	ColumnOrder []int         // symbol c was symbol ColumnOrder[c] of the input matrix
	EmptyPivots []int         // pivot indices that needed a repair row
}

//NewSystematic transforms the parity matrix H into systematic form.
// H is left untouched.
func NewSystematic(ctx context.Context, H mat.SparseMat, opts Options) (*Systematic, error) {
	if H == nil {
		return nil, fmt.Errorf("%w: missing parity matrix", ErrMalformedInput)
	}
	p, n := H.Dims()
	if p < 1 {
		return nil, fmt.Errorf("%w: parity matrix has no rows", ErrMalformedInput)
	}
	if n <= p {
		return nil, fmt.Errorf("%w: parity matrix shape (%v, %v) requires more columns than rows", ErrMalformedInput, p, n)
	}
	if opts.RepairWeight < 1 {
		return nil, fmt.Errorf("%w: repair weight must be >=1 but found %v", ErrInvalidOptions, opts.RepairWeight)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	logrus.Debugf("Creating systematic form of a (%v, %v) parity matrix", p, n)
	result, err := internal.SystematicGF2(ctx, H, opts.RepairWeight, rng, opts.Threads, opts.ShowProgressBar)
	if err != nil {
		return nil, err
	}

	if opts.Check {
		if err := internal.VerifyIdentity(result.Encode); err != nil {
			return nil, err
		}
	}

	logrus.Debugf("Systematic form complete with %v repair rows", len(result.EmptyPivots))
	return &Systematic{
		Encode:      result.Encode,
		Decode:      result.Decode,
		ColumnOrder: result.ColumnOrder,
		EmptyPivots: result.EmptyPivots,
	}, nil
}

func (s *Systematic) MessageLength() int {
	return s.CodewordLength() - s.ParitySymbols()
}
func (s *Systematic) ParitySymbols() int {
	p, _ := s.Encode.Dims()
	return p
}

// ExtendedParitySymbols is the number of decode constraints, repairs included.
func (s *Systematic) ExtendedParitySymbols() int {
	p, _ := s.Decode.Dims()
	return p
}
func (s *Systematic) CodewordLength() int {
	_, n := s.Encode.Dims()
	return n
}
func (s *Systematic) CodeRate() float64 {
	return float64(s.MessageLength()) / float64(s.CodewordLength())
}

// Repaired returns how many rows were added to make the constraints full rank.
func (s *Systematic) Repaired() int {
	return s.ExtendedParitySymbols() - s.ParitySymbols()
}

// Generator returns G=[I, A^T] for the encode matrix [A, I].
func (s *Systematic) Generator() mat.SparseMat {
	return internal.Generator(s.Encode)
}

//Validate tests that every codeword of the generator satisfies both the encode
// and the decode constraints.
func (s *Systematic) Validate() bool {
	G := s.Generator()
	return internal.ValidateHGMatrices(G, s.Encode) && internal.ValidateHGMatrices(G, s.Decode)
}

// Rank returns the GF2 rank of the decode constraints.
func (s *Systematic) Rank(ctx context.Context, threads int) int {
	return internal.CalculateRank(ctx, s.Decode, threads, false)
}

func (s *Systematic) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nEncode:\n")
	buf.WriteString(s.Encode.String())
	buf.WriteString("\nDecode:\n")
	buf.WriteString(s.Decode.String())
	buf.WriteString(fmt.Sprintf("\nOrder: %v", s.ColumnOrder))
	buf.WriteString("\n}\n")
	return buf.String()
}
