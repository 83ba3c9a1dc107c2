package arch

import "fmt"

// SegmentPolicy selects how a [Segment] multiplier combines the partial
// products of the operand halves.
type SegmentPolicy int

const (
	// SegmentProductNonzero keeps only the scaled high*high product and
	// falls back to low*low when that product is zero, i.e. when either
	// high half is zero (ETM).
	SegmentProductNonzero SegmentPolicy = iota
	// SegmentEitherNonzero keeps only the scaled high*high product whenever
	// either high half is nonzero, and uses low*low only when both are zero
	// (static segment). An operand pair with one zero high half yields 0.
	SegmentEitherNonzero
	// SegmentDropCross sums low*low and the scaled high*high product and
	// unconditionally drops both cross terms (approximate Wallace tree).
	SegmentDropCross

	segmentPolicyCount
)

var segmentPolicyNames = [segmentPolicyCount]string{
	"ProductNonzero", "EitherNonzero", "DropCross",
}

// String returns the name of the policy.
func (p SegmentPolicy) String() string {
	if p >= 0 && p < segmentPolicyCount {
		return segmentPolicyNames[p]
	}
	return fmt.Sprintf("SegmentPolicy(%d)", p)
}

// Valid reports whether p is a known policy.
func (p SegmentPolicy) Valid() bool {
	return p >= 0 && p < segmentPolicyCount
}

// Segment splits each operand into a high and a low half of width/2 bits
// and multiplies only some of the four partial products.
type Segment struct {
	name    string
	policy  SegmentPolicy
	half    uint
	lowMask uint32
}

// NewSegment returns a segment-splitting multiplier for width-bit operands.
func NewSegment(name string, policy SegmentPolicy, width int) (Segment, error) {
	if name == "" {
		return Segment{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return Segment{}, err
	}
	if !policy.Valid() {
		return Segment{}, fmt.Errorf("arch: %s: invalid segment policy: %d", name, policy)
	}
	half := uint(width / 2)
	return Segment{name: name, policy: policy, half: half, lowMask: lowMask(int(half))}, nil
}

// Name returns the architecture name.
func (s Segment) Name() string { return s.name }

// Policy returns the partial-product policy.
func (s Segment) Policy() SegmentPolicy { return s.policy }

// Multiply returns the approximate product.
func (s Segment) Multiply(a, b uint32) uint32 {
	ah, al := a>>s.half, a&s.lowMask
	bh, bl := b>>s.half, b&s.lowMask
	hh := ah * bh

	switch s.policy {
	case SegmentProductNonzero:
		if hh != 0 {
			return hh << (2 * s.half)
		}
		return al * bl
	case SegmentEitherNonzero:
		if ah != 0 || bh != 0 {
			return hh << (2 * s.half)
		}
		return al * bl
	default:
		return al*bl + hh<<(2*s.half)
	}
}

// OperandTruncation drops the low shift bits of both operands, multiplies
// the remaining high parts and scales the result back (pruned partial
// products).
type OperandTruncation struct {
	name  string
	shift uint
}

// NewOperandTruncation returns a multiplier that ignores the low shift bits
// of each width-bit operand.
func NewOperandTruncation(name string, shift, width int) (OperandTruncation, error) {
	if name == "" {
		return OperandTruncation{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return OperandTruncation{}, err
	}
	if shift < 0 || shift > width {
		return OperandTruncation{}, fmt.Errorf("arch: %s: operand shift must be in [0, %d]: %d", name, width, shift)
	}
	return OperandTruncation{name: name, shift: uint(shift)}, nil
}

// Name returns the architecture name.
func (o OperandTruncation) Name() string { return o.name }

// Multiply returns ((a>>s)*(b>>s)) << 2s.
func (o OperandTruncation) Multiply(a, b uint32) uint32 {
	return ((a >> o.shift) * (b >> o.shift)) << (2 * o.shift)
}
