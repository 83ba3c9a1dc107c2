package errstat

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-approxmul/mul/arch"
)

// Engine builds result tables and error metrics for one operand domain.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	width int
	size  int

	// exact holds a*b in row-major order and negExact its negation; both
	// are shared read-only by all calls.
	exact      []float64
	negExact   []float64
	maxProduct float64
}

// NewEngine creates an engine. The default configuration uses 8-bit
// operands.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	size := 1 << uint(cfg.wordWidth)
	exact := make([]float64, size*size)
	for a := 0; a < size; a++ {
		row := exact[a*size : (a+1)*size]
		for b := range row {
			row[b] = float64(a * b)
		}
	}

	negExact := make([]float64, len(exact))
	vecmath.ScaleBlock(negExact, exact, -1)

	return &Engine{
		width:      cfg.wordWidth,
		size:       size,
		exact:      exact,
		negExact:   negExact,
		maxProduct: float64((size - 1) * (size - 1)),
	}, nil
}

// WordWidth returns the operand width in bits.
func (e *Engine) WordWidth() int { return e.width }

// DomainSize returns the number of values per operand, 2^N.
func (e *Engine) DomainSize() int { return e.size }

// BuildTable evaluates a for every operand pair of the domain. A result
// above [MaxStorageValue] aborts the build with an [*OverflowError].
func (e *Engine) BuildTable(a arch.Architecture) (*Table, error) {
	if a == nil {
		return nil, errNilArchitecture
	}

	data := make([]uint16, e.size*e.size)
	for x := 0; x < e.size; x++ {
		row := data[x*e.size : (x+1)*e.size]
		for y := range row {
			v := a.Multiply(uint32(x), uint32(y))
			if v > MaxStorageValue {
				return nil, &OverflowError{Arch: a.Name(), A: uint32(x), B: uint32(y), Value: v}
			}
			row[y] = uint16(v)
		}
	}

	return &Table{name: a.Name(), width: e.width, size: e.size, data: data}, nil
}

// ExactTable returns the exact product table of the domain.
func (e *Engine) ExactTable() *Table {
	data := make([]uint16, len(e.exact))
	for i, v := range e.exact {
		data[i] = uint16(v)
	}
	return &Table{name: arch.Exact().Name(), width: e.width, size: e.size, data: data}
}
