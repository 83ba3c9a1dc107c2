package arch

import "fmt"

// Mask computes the exact product, clears a fixed set of low-order result
// bits and adds a fixed bias. It models truncating the least significant
// partial-product columns of an array multiplier.
type Mask struct {
	name  string
	clear uint32
	bias  uint32
}

// NewTruncation clears the low k bits of the product. k must not exceed the
// result width of 2*width bits.
func NewTruncation(name string, k, width int) (Mask, error) {
	if err := validateMask(name, k, width); err != nil {
		return Mask{}, err
	}
	return Mask{name: name, clear: lowMask(k)}, nil
}

// NewCompensatedTruncation clears the low k bits of the product and adds
// 2^(k-1), the midpoint of the discarded range.
func NewCompensatedTruncation(name string, k, width int) (Mask, error) {
	if err := validateMask(name, k, width); err != nil {
		return Mask{}, err
	}
	m := Mask{name: name, clear: lowMask(k)}
	if k > 0 {
		m.bias = 1 << uint(k-1)
	}
	return m, nil
}

// NewBitMask clears the bits of clear that lie inside the 2*width-bit
// result. Bits above the result width never carry product bits and are
// ignored.
func NewBitMask(name string, clear uint32, width int) (Mask, error) {
	if name == "" {
		return Mask{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return Mask{}, err
	}
	return Mask{name: name, clear: clear & lowMask(2*width)}, nil
}

func validateMask(name string, k, width int) error {
	if name == "" {
		return errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return err
	}
	if k < 0 || k > 2*width {
		return fmt.Errorf("arch: %s: truncation width must be in [0, %d]: %d", name, 2*width, k)
	}
	return nil
}

// Name returns the architecture name.
func (m Mask) Name() string { return m.name }

// Multiply returns (a*b &^ clear) + bias.
func (m Mask) Multiply(a, b uint32) uint32 {
	return (a*b)&^m.clear + m.bias
}

// Cleared returns the cleared bit pattern.
func (m Mask) Cleared() uint32 { return m.clear }
