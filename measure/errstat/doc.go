// Package errstat builds exhaustive result tables for approximate
// multipliers and measures their error against the exact product.
//
// An [Engine] is configured once with the operand word width. For each
// architecture it evaluates every operand pair of the domain
// [0, 2^N) x [0, 2^N):
//
//	eng, err := errstat.NewEngine(errstat.WithWordWidth(8))
//	table, err := eng.BuildTable(a)
//	m, err := eng.ComputeErrorMetrics(table)
//	fmt.Printf("%.2f %d\n", m.MeanAbsError, m.MaxAbsError)
//
// Tables store unsigned 16-bit values. A result outside that range is a
// defect of the architecture and is reported as an [*OverflowError]
// instead of being wrapped.
//
// The exact reference table is computed once per engine and shared by all
// metric computations. Reductions run on the SIMD kernels of algo-vecmath.
package errstat
