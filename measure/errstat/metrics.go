package errstat

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Metrics summarizes the error of a table against the exact product.
//
// MeanAbsError and MaxAbsError are the headline figures. The remaining
// fields are the usual companions in approximate-arithmetic literature.
type Metrics struct {
	// MeanAbsError is the mean of |approx - exact| over all cells (MAE).
	MeanAbsError float64
	// MaxAbsError is the largest |approx - exact| (worst-case error).
	MaxAbsError int

	// MeanError is the signed mean of approx - exact (bias).
	MeanError float64
	// RMSError is the root mean square of approx - exact.
	RMSError float64
	// ErrorRate is the fraction of cells that differ from the exact product.
	ErrorRate float64
	// MRED is the mean relative error distance |approx-exact|/exact over
	// cells with a nonzero exact product.
	MRED float64
	// NMED is MeanAbsError normalized by the largest exact product.
	NMED float64
}

// String formats the headline metrics.
func (m Metrics) String() string {
	return fmt.Sprintf("MAE=%.2f MaxAE=%d", m.MeanAbsError, m.MaxAbsError)
}

// ComputeErrorMetrics compares t against the exact product table. t must
// have been built for the engine's word width.
func (e *Engine) ComputeErrorMetrics(t *Table) (Metrics, error) {
	if t == nil {
		return Metrics{}, errNilTable
	}
	if t.width != e.width || len(t.data) != len(e.exact) {
		return Metrics{}, fmt.Errorf("errstat: table %s has width %d, engine width %d: %w",
			t.name, t.width, e.width, ErrShapeMismatch)
	}

	n := float64(len(e.exact))
	approx := t.Float64()

	// diff = approx - exact
	diff := make([]float64, len(approx))
	vecmath.AddBlock(diff, approx, e.negExact)

	var wrong, nonzero int
	var red float64
	abs := approx // approx is not read again; reuse it for |diff|
	for i, d := range diff {
		d = math.Abs(d)
		abs[i] = d
		if d != 0 {
			wrong++
		}
		if x := e.exact[i]; x != 0 {
			nonzero++
			red += d / x
		}
	}

	m := Metrics{
		MeanAbsError: vecmath.Sum(abs) / n,
		MaxAbsError:  int(vecmath.MaxAbs(diff)),
		MeanError:    vecmath.Sum(diff) / n,
		RMSError:     math.Sqrt(vecmath.DotProduct(diff, diff) / n),
		ErrorRate:    float64(wrong) / n,
	}
	if nonzero > 0 {
		m.MRED = red / float64(nonzero)
	}
	if e.maxProduct > 0 {
		m.NMED = m.MeanAbsError / e.maxProduct
	}

	return m, nil
}
