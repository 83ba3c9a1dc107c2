package arch

import (
	"errors"
	"fmt"
)

const (
	// DefaultWordWidth is the operand width in bits used by the catalog.
	DefaultWordWidth = 8

	// MinWordWidth and MaxWordWidth bound the supported operand widths.
	// The product of two MaxWordWidth operands must fit in 16 bits.
	MinWordWidth = 2
	MaxWordWidth = 8
)

var errEmptyName = errors.New("arch: architecture name must not be empty")

// Architecture is one approximate multiplication algorithm.
//
// Multiply must be pure and must not panic for operands in [0, 2^N).
type Architecture interface {
	Name() string
	Multiply(a, b uint32) uint32
}

// Func adapts a plain function to the Architecture interface.
type Func struct {
	name string
	fn   func(a, b uint32) uint32
}

// NewFunc returns an architecture that delegates to fn.
func NewFunc(name string, fn func(a, b uint32) uint32) (Func, error) {
	if name == "" {
		return Func{}, errEmptyName
	}
	if fn == nil {
		return Func{}, fmt.Errorf("arch: %s: nil multiply function", name)
	}
	return Func{name: name, fn: fn}, nil
}

// Name returns the architecture name.
func (f Func) Name() string { return f.name }

// Multiply calls the wrapped function.
func (f Func) Multiply(a, b uint32) uint32 { return f.fn(a, b) }

type exact struct{}

// Exact returns the identity baseline that computes a*b without error.
func Exact() Architecture { return exact{} }

func (exact) Name() string                { return "Exact" }
func (exact) Multiply(a, b uint32) uint32 { return a * b }

func validateWidth(width int) error {
	if width < MinWordWidth || width > MaxWordWidth {
		return fmt.Errorf("arch: word width must be in [%d, %d]: %d", MinWordWidth, MaxWordWidth, width)
	}
	return nil
}

// lowMask returns a mask with the low k bits set.
func lowMask(k int) uint32 {
	if k <= 0 {
		return 0
	}
	if k >= 32 {
		return ^uint32(0)
	}
	return 1<<uint(k) - 1
}
