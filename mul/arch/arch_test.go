package arch

import (
	"strings"
	"testing"
)

func mustCatalog(t *testing.T, width int) *Catalog {
	t.Helper()
	cat, err := NewCatalog(width)
	if err != nil {
		t.Fatalf("NewCatalog(%d): %v", width, err)
	}
	return cat
}

func mustLookup(t *testing.T, cat *Catalog, name string) Architecture {
	t.Helper()
	a, ok := cat.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) failed", name)
	}
	return a
}

func TestCatalogOrder(t *testing.T) {
	want := []string{
		"Underdesigned", "BrokenArray", "InaccurateCounter", "ETM", "SSM",
		"ApproxWallace", "Mitchell", "IterLog", "DRUM", "AlteredPP", "APP2",
		"TAM1", "TAM2", "ALM_SOA", "IALM_SL", "PPP", "LOA", "Linearized",
		"EvoApprox",
	}
	cat := mustCatalog(t, DefaultWordWidth)
	got := cat.Names()
	if len(got) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
	if cat.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", cat.Len(), len(want))
	}
}

func TestCatalogResultsInStorageRange(t *testing.T) {
	for width := MinWordWidth; width <= MaxWordWidth; width++ {
		cat := mustCatalog(t, width)
		size := uint32(1) << uint(width)
		for _, a := range cat.All() {
			for x := uint32(0); x < size; x++ {
				for y := uint32(0); y < size; y++ {
					if got := a.Multiply(x, y); got > 0xFFFF {
						t.Fatalf("width %d: %s(%d, %d) = %d exceeds 16 bits", width, a.Name(), x, y, got)
					}
				}
			}
		}
	}
}

func TestScenarios(t *testing.T) {
	cat := mustCatalog(t, DefaultWordWidth)
	tests := []struct {
		name string
		a, b uint32
		want uint32
	}{
		{"TAM2", 3, 3, 8},
		{"TAM1", 3, 3, 8},
		{"AlteredPP", 15, 15, 224},
		{"APP2", 255, 255, 65025 &^ 0x3FC},
		{"LOA", 3, 3, 7},
		{"LOA", 5, 3, 15},
		{"Underdesigned", 3, 3, 7},
		{"Underdesigned", 2, 3, 6},
		{"BrokenArray", 3, 0x13, 0x30},
		{"InaccurateCounter", 2, 2, 2},
		{"InaccurateCounter", 3, 3, 9},
		{"ETM", 0x12, 0x34, 0x0300},
		{"ETM", 0x02, 0x34, 8},
		{"SSM", 0x02, 0x34, 0},
		{"SSM", 0x02, 0x04, 8},
		{"ApproxWallace", 0x12, 0x34, 0x0300 + 8},
		{"Mitchell", 3, 3, 8},
		{"Mitchell", 4, 4, 16},
		{"IterLog", 3, 3, 9},
		{"ALM_SOA", 4, 4, 17},
		{"IALM_SL", 3, 5, 12},
		{"DRUM", 7, 7, 49},
		{"DRUM", 255, 255, 57600},
		{"DRUM", 16, 16, 324},
		{"PPP", 7, 7, 16},
		{"Linearized", 4, 4, 12},
		{"EvoApprox", 255, 255, 65025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustLookup(t, cat, tt.name)
			if got := a.Multiply(tt.a, tt.b); got != tt.want {
				t.Errorf("%s(%d, %d) = %d, want %d", tt.name, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLogarithmicZeroOperand(t *testing.T) {
	for _, r := range []LogRefinement{LogPlain, LogAndCorrection, LogSetLSB, LogTruncate} {
		l, err := NewLogarithmic("log", r)
		if err != nil {
			t.Fatal(err)
		}
		for x := uint32(0); x < 256; x++ {
			if got := l.Multiply(0, x); got != 0 {
				t.Fatalf("%v: Multiply(0, %d) = %d, want 0", r, x, got)
			}
			if got := l.Multiply(x, 0); got != 0 {
				t.Fatalf("%v: Multiply(%d, 0) = %d, want 0", r, x, got)
			}
		}
	}
}

func TestMitchellPowersOfTwoAreExact(t *testing.T) {
	l, err := NewLogarithmic("Mitchell", LogPlain)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			a, b := uint32(1)<<uint(i), uint32(1)<<uint(j)
			if got := l.Multiply(a, b); got != a*b {
				t.Errorf("Multiply(%d, %d) = %d, want %d", a, b, got, a*b)
			}
		}
	}
}

func TestOrAccumulateNeverExceedsExact(t *testing.T) {
	o, err := NewOrAccumulate("LOA", DefaultWordWidth)
	if err != nil {
		t.Fatal(err)
	}
	for a := uint32(0); a < 256; a++ {
		for b := uint32(0); b < 256; b++ {
			if got := o.Multiply(a, b); got > a*b {
				t.Fatalf("Multiply(%d, %d) = %d exceeds exact %d", a, b, got, a*b)
			}
		}
	}
}

func TestDynamicRangeExactForNarrowOperands(t *testing.T) {
	d, err := NewDynamicRange("DRUM", 4, DefaultWordWidth)
	if err != nil {
		t.Fatal(err)
	}
	for a := uint32(0); a < 8; a++ {
		for b := uint32(0); b < 256; b++ {
			if got := d.Multiply(a, b); got != a*b {
				t.Fatalf("Multiply(%d, %d) = %d, want %d", a, b, got, a*b)
			}
		}
	}
}

func TestCompensatedTruncation(t *testing.T) {
	m, err := NewCompensatedTruncation("TAM2C", 2, DefaultWordWidth)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Multiply(3, 3); got != 10 {
		t.Errorf("Multiply(3, 3) = %d, want 10", got)
	}
	if got := m.Multiply(0, 0); got != 2 {
		t.Errorf("Multiply(0, 0) = %d, want 2", got)
	}
}

func TestTruncationWidthValidation(t *testing.T) {
	tests := []struct {
		k, width int
		ok       bool
	}{
		{0, 8, true},
		{16, 8, true},
		{17, 8, false},
		{-1, 8, false},
		{4, 2, true},
		{5, 2, false},
		{2, 9, false},
		{2, 1, false},
	}
	for _, tt := range tests {
		_, err := NewTruncation("T", tt.k, tt.width)
		if (err == nil) != tt.ok {
			t.Errorf("NewTruncation(k=%d, width=%d) err = %v, want ok=%v", tt.k, tt.width, err, tt.ok)
		}
	}
	m, err := NewTruncation("T", 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	if m.Cleared() != 0xFFFF {
		t.Errorf("Cleared() = %#x, want 0xffff", m.Cleared())
	}
}

func TestBitMaskRestrictedToResultWidth(t *testing.T) {
	m, err := NewBitMask("wrap", ^uint32(0xFFFF), DefaultWordWidth)
	if err != nil {
		t.Fatal(err)
	}
	if m.Cleared() != 0 {
		t.Errorf("Cleared() = %#x, want 0", m.Cleared())
	}
	m, err = NewBitMask("wrap4", ^uint32(0), 4)
	if err != nil {
		t.Fatal(err)
	}
	if m.Cleared() != 0xFF {
		t.Errorf("Cleared() = %#x, want 0xff", m.Cleared())
	}
}

func TestConstructorErrors(t *testing.T) {
	if _, err := NewSegment("", SegmentDropCross, 8); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := NewSegment("S", SegmentPolicy(42), 8); err == nil {
		t.Error("expected error for invalid policy")
	}
	if _, err := NewLogarithmic("L", LogRefinement(-1)); err == nil {
		t.Error("expected error for invalid refinement")
	}
	if _, err := NewDefective("D", DefectKind(9), 8); err == nil {
		t.Error("expected error for invalid defect")
	}
	if _, err := NewDynamicRange("DRUM", 1, 8); err == nil {
		t.Error("expected error for k=1")
	}
	if _, err := NewOperandTruncation("PPP", 9, 8); err == nil {
		t.Error("expected error for shift > width")
	}
	if _, err := NewFunc("f", nil); err == nil {
		t.Error("expected error for nil function")
	}
	if _, err := NewCatalog(9); err == nil {
		t.Error("expected error for width 9")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{SegmentEitherNonzero.String(), "EitherNonzero"},
		{SegmentPolicy(7).String(), "SegmentPolicy(7)"},
		{LogAndCorrection.String(), "AndCorrection"},
		{LogRefinement(7).String(), "LogRefinement(7)"},
		{DefectLinearized.String(), "Linearized"},
		{DefectKind(7).String(), "DefectKind(7)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestCatalogLookupAndSelect(t *testing.T) {
	cat := mustCatalog(t, DefaultWordWidth)
	if _, ok := cat.Lookup(" mitchell "); !ok {
		t.Error("Lookup should ignore case and whitespace")
	}
	if _, ok := cat.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}

	sel, err := cat.Select("TAM2", "etm", "LOA")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(sel.Names(), ","); got != "ETM,TAM2,LOA" {
		t.Errorf("Select order = %s, want catalog order ETM,TAM2,LOA", got)
	}
	if _, err := cat.Select("TAM2", "bogus"); err == nil {
		t.Error("expected error for unknown name")
	}
	if _, err := cat.Select(); err == nil {
		t.Error("expected error for empty selection")
	}
}

func TestCatalogAllIsACopy(t *testing.T) {
	cat := mustCatalog(t, DefaultWordWidth)
	all := cat.All()
	all[0] = Exact()
	if cat.Names()[0] != "Underdesigned" {
		t.Error("mutating All() changed the catalog")
	}
}

func TestCustomCatalogRejectsDuplicates(t *testing.T) {
	f, err := NewFunc("exact", func(a, b uint32) uint32 { return a * b })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewCustomCatalog(8, Exact(), f); err == nil {
		t.Error("expected duplicate name error")
	}
	if _, err := NewCustomCatalog(8, Exact(), nil); err == nil {
		t.Error("expected nil entry error")
	}
}

func TestExact(t *testing.T) {
	e := Exact()
	for a := uint32(0); a < 256; a += 17 {
		for b := uint32(0); b < 256; b += 13 {
			if got := e.Multiply(a, b); got != a*b {
				t.Fatalf("Exact(%d, %d) = %d", a, b, got)
			}
		}
	}
}
