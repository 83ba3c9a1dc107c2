package errstat

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-approxmul/mul/arch"
)

// MaxStorageValue is the largest value a table cell can hold.
const MaxStorageValue = math.MaxUint16

// Table is the dense result table of one architecture. Cell (a, b) is
// stored row-major at index a<<width | b.
type Table struct {
	name  string
	width int
	size  int
	data  []uint16
}

// NewTable wraps data as a table for width-bit operands. data must hold
// exactly 2^width * 2^width cells and is not copied.
func NewTable(name string, width int, data []uint16) (*Table, error) {
	if width < arch.MinWordWidth || width > arch.MaxWordWidth {
		return nil, fmt.Errorf("errstat: table %s: word width must be in [%d, %d]: %d: %w",
			name, arch.MinWordWidth, arch.MaxWordWidth, width, ErrShapeMismatch)
	}
	size := 1 << uint(width)
	if len(data) != size*size {
		return nil, fmt.Errorf("errstat: table %s: got %d cells, want %d: %w", name, len(data), size*size, ErrShapeMismatch)
	}
	return &Table{name: name, width: width, size: size, data: data}, nil
}

// Name returns the name of the architecture that produced the table.
func (t *Table) Name() string { return t.name }

// Width returns the operand width in bits.
func (t *Table) Width() int { return t.width }

// Size returns the number of operand values per axis, 2^width.
func (t *Table) Size() int { return t.size }

// Shape returns the table dimensions (rows, cols).
func (t *Table) Shape() (rows, cols int) { return t.size, t.size }

// Len returns the number of cells.
func (t *Table) Len() int { return len(t.data) }

// At returns the result for operands (a, b). It panics if either operand is
// outside the domain.
func (t *Table) At(a, b int) uint16 {
	if a < 0 || a >= t.size || b < 0 || b >= t.size {
		panic(fmt.Sprintf("errstat: operand (%d, %d) outside domain [0, %d)", a, b, t.size))
	}
	return t.data[a<<uint(t.width)|b]
}

// Data returns the row-major cell slice. The slice aliases the table.
func (t *Table) Data() []uint16 { return t.data }

// Float64 returns the cells converted to float64.
func (t *Table) Float64() []float64 {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = float64(v)
	}
	return out
}

// Equal reports whether t and o have the same shape and identical cells.
func (t *Table) Equal(o *Table) bool {
	if o == nil || t.width != o.width || len(t.data) != len(o.data) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
