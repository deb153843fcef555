package bipartite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathanhack/sysldpc/linearblock"
)

// Ratio is the codeword to parity length ratio n:p as a fraction.
type Ratio struct {
	Num, Den int
}

// DefaultRatio gives n = floor(4p/3).
var DefaultRatio = Ratio{Num: 4, Den: 3}

// ParseRatio parses "num/den" or a bare integer.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	num, den := s, "1"
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, den = s[:i], s[i+1:]
	}

	r := Ratio{}
	var err error
	if r.Num, err = strconv.Atoi(strings.TrimSpace(num)); err != nil {
		return Ratio{}, fmt.Errorf("%w: ratio %q: %v", linearblock.ErrInvalidOptions, s, err)
	}
	if r.Den, err = strconv.Atoi(strings.TrimSpace(den)); err != nil {
		return Ratio{}, fmt.Errorf("%w: ratio %q: %v", linearblock.ErrInvalidOptions, s, err)
	}
	if r.Num <= 0 || r.Den <= 0 {
		return Ratio{}, fmt.Errorf("%w: ratio %q must be positive", linearblock.ErrInvalidOptions, s)
	}
	if r.Num <= r.Den {
		return Ratio{}, fmt.Errorf("%w: ratio %q must be greater than 1", linearblock.ErrInvalidOptions, s)
	}
	return r, nil
}

// Codeword returns the codeword length for p parity symbols.
func (r Ratio) Codeword(p int) int {
	return p * r.Num / r.Den
}

func (r Ratio) String() string {
	return fmt.Sprintf("%v/%v", r.Num, r.Den)
}
