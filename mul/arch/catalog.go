package arch

import (
	"errors"
	"fmt"
	"strings"
)

const (
	tamTruncation       = 1
	tam2Truncation      = 2
	alteredPPTruncation = 4
	pppShift            = 2
	drumKeptBits        = 4

	// app2Clear clears product bits 2..9 and keeps bits 0 and 1.
	app2Clear uint32 = 0x3FF &^ 0x3
	// evoClear wraps the product to 16 bits.
	evoClear uint32 = ^uint32(0xFFFF)
)

var errEmptySelection = errors.New("arch: selection must name at least one architecture")

// Catalog is an ordered, read-only list of architectures for one word
// width.
type Catalog struct {
	width  int
	items  []Architecture
	byName map[string]int
}

// NewCatalog builds the default catalog for width-bit operands.
func NewCatalog(width int) (*Catalog, error) {
	if err := validateWidth(width); err != nil {
		return nil, err
	}

	var b builder
	b.add(NewDefective("Underdesigned", DefectUnderdesigned, width))
	b.add(NewDefective("BrokenArray", DefectBrokenArray, width))
	b.add(NewDefective("InaccurateCounter", DefectInaccurateCounter, width))
	b.add(NewSegment("ETM", SegmentProductNonzero, width))
	b.add(NewSegment("SSM", SegmentEitherNonzero, width))
	b.add(NewSegment("ApproxWallace", SegmentDropCross, width))
	b.add(NewLogarithmic("Mitchell", LogPlain))
	b.add(NewLogarithmic("IterLog", LogAndCorrection))
	b.add(NewDynamicRange("DRUM", min(drumKeptBits, width), width))
	b.add(NewTruncation("AlteredPP", alteredPPTruncation, width))
	b.add(NewBitMask("APP2", app2Clear, width))
	b.add(NewTruncation("TAM1", tamTruncation, width))
	b.add(NewTruncation("TAM2", tam2Truncation, width))
	b.add(NewLogarithmic("ALM_SOA", LogSetLSB))
	b.add(NewLogarithmic("IALM_SL", LogTruncate))
	b.add(NewOperandTruncation("PPP", min(pppShift, width), width))
	b.add(NewOrAccumulate("LOA", width))
	b.add(NewDefective("Linearized", DefectLinearized, width))
	b.add(NewBitMask("EvoApprox", evoClear, width))
	if b.err != nil {
		return nil, b.err
	}

	return newCatalog(width, b.items)
}

// NewCustomCatalog returns a catalog holding items in the given order.
// Names must be unique ignoring case.
func NewCustomCatalog(width int, items ...Architecture) (*Catalog, error) {
	if err := validateWidth(width); err != nil {
		return nil, err
	}
	return newCatalog(width, items)
}

func newCatalog(width int, items []Architecture) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errEmptySelection
	}
	c := &Catalog{
		width:  width,
		items:  make([]Architecture, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for i, a := range items {
		if a == nil {
			return nil, fmt.Errorf("arch: catalog entry %d is nil", i)
		}
		key := strings.ToLower(a.Name())
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("arch: duplicate architecture name %q", a.Name())
		}
		c.byName[key] = i
		c.items[i] = a
	}
	return c, nil
}

// Width returns the operand width in bits.
func (c *Catalog) Width() int { return c.width }

// Len returns the number of architectures.
func (c *Catalog) Len() int { return len(c.items) }

// All returns a copy of the architectures in catalog order.
func (c *Catalog) All() []Architecture {
	return append([]Architecture(nil), c.items...)
}

// Names returns the architecture names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.items))
	for i, a := range c.items {
		names[i] = a.Name()
	}
	return names
}

// Lookup finds an architecture by name, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(name string) (Architecture, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

// Select returns a catalog restricted to the named architectures, kept in
// catalog order. Unknown names are an error.
func (c *Catalog) Select(names ...string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, errEmptySelection
	}
	keep := make([]bool, len(c.items))
	for _, name := range names {
		i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("arch: unknown architecture %q", name)
		}
		keep[i] = true
	}
	var items []Architecture
	for i, a := range c.items {
		if keep[i] {
			items = append(items, a)
		}
	}
	return newCatalog(c.width, items)
}

type builder struct {
	items []Architecture
	err   error
}

func (b *builder) add(a Architecture, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.items = append(b.items, a)
}
