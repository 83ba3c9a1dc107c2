package arch

import "fmt"

// DefectKind selects the bitwise rule of a [Defective] multiplier.
type DefectKind int

const (
	// DefectUnderdesigned subtracts 2 from the product when both operands
	// end in 0b11.
	DefectUnderdesigned DefectKind = iota
	// DefectBrokenArray clears the low half of b before multiplying and
	// clears the two low product bits afterwards.
	DefectBrokenArray
	// DefectInaccurateCounter rewrites a product ending in 0b100 to end in
	// 0b010.
	DefectInaccurateCounter
	// DefectLinearized returns p/2 + p/4 computed with shifts.
	DefectLinearized

	defectKindCount
)

var defectKindNames = [defectKindCount]string{
	"Underdesigned", "BrokenArray", "InaccurateCounter", "Linearized",
}

// String returns the name of the defect.
func (k DefectKind) String() string {
	if k >= 0 && k < defectKindCount {
		return defectKindNames[k]
	}
	return fmt.Sprintf("DefectKind(%d)", k)
}

// Valid reports whether k is a known defect.
func (k DefectKind) Valid() bool {
	return k >= 0 && k < defectKindCount
}

// Defective applies a fixed bitwise fault to an otherwise exact product.
// These multipliers produce large, structured errors and serve as
// calibration baselines.
type Defective struct {
	name     string
	kind     DefectKind
	highMask uint32
}

// NewDefective returns a defective multiplier for width-bit operands.
func NewDefective(name string, kind DefectKind, width int) (Defective, error) {
	if name == "" {
		return Defective{}, errEmptyName
	}
	if err := validateWidth(width); err != nil {
		return Defective{}, err
	}
	if !kind.Valid() {
		return Defective{}, fmt.Errorf("arch: %s: invalid defect kind: %d", name, kind)
	}
	half := width / 2
	return Defective{
		name:     name,
		kind:     kind,
		highMask: lowMask(width) &^ lowMask(half),
	}, nil
}

// Name returns the architecture name.
func (d Defective) Name() string { return d.name }

// Kind returns the defect rule.
func (d Defective) Kind() DefectKind { return d.kind }

// Multiply returns the faulty product.
func (d Defective) Multiply(a, b uint32) uint32 {
	switch d.kind {
	case DefectUnderdesigned:
		p := a * b
		// Both operands are odd and at least 3 here, so p >= 9.
		if a&0b11 == 0b11 && b&0b11 == 0b11 {
			p -= 2
		}
		return p
	case DefectBrokenArray:
		return (a * (b & d.highMask)) &^ 0b11
	case DefectInaccurateCounter:
		p := a * b
		if p&0b111 == 0b100 {
			p = p&^0b111 | 0b010
		}
		return p
	default:
		p := a * b
		return p>>1 + p>>2
	}
}
