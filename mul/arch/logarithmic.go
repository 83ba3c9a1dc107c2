package arch

import (
	"fmt"
	"math/bits"
)

// LogRefinement selects the post-processing applied to the Mitchell
// approximation.
type LogRefinement int

const (
	// LogPlain is Mitchell's algorithm without correction.
	LogPlain LogRefinement = iota
	// LogAndCorrection adds (a&b)>>1 to reduce the systematic underestimate.
	LogAndCorrection
	// LogSetLSB forces the least significant result bit to one. It is not
	// applied to zero operands, which still yield 0.
	LogSetLSB
	// LogTruncate clears the two least significant result bits.
	LogTruncate

	logRefinementCount
)

var logRefinementNames = [logRefinementCount]string{
	"Plain", "AndCorrection", "SetLSB", "Truncate",
}

// String returns the name of the refinement.
func (r LogRefinement) String() string {
	if r >= 0 && r < logRefinementCount {
		return logRefinementNames[r]
	}
	return fmt.Sprintf("LogRefinement(%d)", r)
}

// Valid reports whether r is a known refinement.
func (r LogRefinement) Valid() bool {
	return r >= 0 && r < logRefinementCount
}

// Logarithmic approximates a*b in the log domain.
//
// Each operand x > 0 is written as 2^i * (1 + m/2^i) with i = floor(log2 x)
// and m = x - 2^i. Dropping the m*n cross term leaves
//
//	2^(i+j) + m*2^j + n*2^i
//
// which needs only shifts and additions. A zero operand yields zero for
// every refinement.
type Logarithmic struct {
	name       string
	refinement LogRefinement
}

// NewLogarithmic returns a Mitchell-style multiplier with the given
// refinement.
func NewLogarithmic(name string, refinement LogRefinement) (Logarithmic, error) {
	if name == "" {
		return Logarithmic{}, errEmptyName
	}
	if !refinement.Valid() {
		return Logarithmic{}, fmt.Errorf("arch: %s: invalid log refinement: %d", name, refinement)
	}
	return Logarithmic{name: name, refinement: refinement}, nil
}

// Name returns the architecture name.
func (l Logarithmic) Name() string { return l.name }

// Refinement returns the configured refinement.
func (l Logarithmic) Refinement() LogRefinement { return l.refinement }

// Multiply returns the refined Mitchell product.
func (l Logarithmic) Multiply(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	p := mitchell(a, b)
	switch l.refinement {
	case LogAndCorrection:
		return p + (a&b)>>1
	case LogSetLSB:
		return p | 1
	case LogTruncate:
		return p &^ 0b11
	default:
		return p
	}
}

// mitchell requires a, b > 0.
func mitchell(a, b uint32) uint32 {
	i := uint(bits.Len32(a) - 1)
	j := uint(bits.Len32(b) - 1)
	m := a - 1<<i
	n := b - 1<<j
	return 1<<(i+j) + m<<j + n<<i
}
