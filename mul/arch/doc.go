// Package arch provides approximate hardware multiplier architectures.
//
// Every architecture maps two unsigned N-bit operands to an approximate
// product through one uniform method, [Architecture.Multiply]. Strategy
// parameters (truncation width, segment width, refinement) are bound when
// the architecture is constructed, so callers never pass them per call.
//
// The package groups the architectures into strategy families:
//
//   - [Mask]: exact product with low-order bits cleared or biased
//   - [Segment]: nibble/segment splitting that drops partial products
//   - [Logarithmic]: Mitchell-style log-domain multiplication and refinements
//   - [DynamicRange]: DRUM leading-one truncation
//   - [OrAccumulate]: partial products summed with OR instead of addition
//   - [Defective]: deliberately broken baselines for contrast
//
// # Catalog
//
// [NewCatalog] returns the ordered, read-only list of named architectures
// for a given word width:
//
//	cat, err := arch.NewCatalog(8)
//	for _, a := range cat.All() {
//		fmt.Println(a.Name(), a.Multiply(3, 3))
//	}
//
// [Exact] is a calibration baseline that reproduces a*b and is not part of
// the default catalog.
package arch
