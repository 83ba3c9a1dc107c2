package arch

// OrAccumulate models an array multiplier whose partial-product network
// ORs bits together instead of adding them. For every set bit i of a and
// set bit j of b, bit i+j of the result is set. Carries are lost, so the
// result never exceeds the exact product.
type OrAccumulate struct {
	name  string
	width int
}

// NewOrAccumulate returns an OR-accumulation multiplier over width-bit
// operands.
func NewOrAccumulate(name string, width int) (OrAccumulate, error) {
	if name == "" {
		return OrAccumulate{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return OrAccumulate{}, err
	}
	return OrAccumulate{name: name, width: width}, nil
}

// Name returns the architecture name.
func (o OrAccumulate) Name() string { return o.name }

// Multiply returns the OR of all shifted partial-product bits.
func (o OrAccumulate) Multiply(a, b uint32) uint32 {
	var res uint32
	for i := 0; i < o.width; i++ {
		if (a>>uint(i))&1 == 0 {
			continue
		}
		for j := 0; j < o.width; j++ {
			if (b>>uint(j))&1 == 1 {
				res |= 1 << uint(i+j)
			}
		}
	}
	return res
}
