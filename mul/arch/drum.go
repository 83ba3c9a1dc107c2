package arch

import (
	"fmt"
	"math/bits"
)

// DynamicRange is the DRUM multiplier. Each operand is reduced to its k
// most significant bits starting at the leading one; the lowest kept bit is
// forced to one to unbias the truncation. The k-bit cores are multiplied
// exactly and shifted back into place.
type DynamicRange struct {
	name string
	k    int
}

// NewDynamicRange returns a DRUM multiplier keeping k bits per operand.
func NewDynamicRange(name string, k, width int) (DynamicRange, error) {
	if name == "" {
		return DynamicRange{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return DynamicRange{}, err
	}
	if k < 2 || k > width {
		return DynamicRange{}, fmt.Errorf("arch: %s: kept bits must be in [2, %d]: %d", name, width, k)
	}
	return DynamicRange{name: name, k: k}, nil
}

// Name returns the architecture name.
func (d DynamicRange) Name() string { return d.name }

// Multiply returns the DRUM product. Operands that already fit in k bits
// are multiplied exactly.
func (d DynamicRange) Multiply(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	la := bits.Len32(a) - 1
	lb := bits.Len32(b) - 1
	if la < d.k-1 || lb < d.k-1 {
		return a * b
	}
	sa := uint(la - (d.k - 1))
	sb := uint(lb - (d.k - 1))
	ca := a>>sa | 1
	cb := b>>sb | 1
	return (ca * cb) << (sa + sb)
}
