// Package survey runs the multiplier catalog through the error engine and
// persists the resulting lookup tables.
package survey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cwbudde/algo-approxmul/internal/npy"
	"github.com/cwbudde/algo-approxmul/measure/errstat"
	"github.com/cwbudde/algo-approxmul/mul/arch"
)

// DefaultOutputDir is the directory LUT files are written to by default.
const DefaultOutputDir = "Approx_multipliers_lut"

var errNoOutputDir = errors.New("survey: output directory must not be empty when saving")

// Config controls one survey run.
type Config struct {
	// WordWidth is the operand width in bits.
	WordWidth int
	// OutputDir receives one <name>_lut.npy file per architecture.
	OutputDir string
	// Save enables LUT persistence.
	Save bool
	// Names restricts the run to these architectures. Empty means all.
	Names []string
	// Parallel is the number of architectures evaluated concurrently.
	// Values below 1 are treated as 1.
	Parallel int
}

// DefaultConfig returns the configuration of a plain invocation: the full
// 8-bit catalog, saved to [DefaultOutputDir].
func DefaultConfig() Config {
	return Config{
		WordWidth: arch.DefaultWordWidth,
		OutputDir: DefaultOutputDir,
		Save:      true,
		Parallel:  1,
	}
}

// Result is the outcome for one architecture.
type Result struct {
	Name    string
	Metrics errstat.Metrics
	// Path is the written LUT file, empty if nothing was saved.
	Path string
	// Err is set when the table could not be built or measured.
	Err error
	// SaveErr is set when the table was measured but not persisted.
	SaveErr error
}

// Failed reports whether any step for this architecture failed.
func (r Result) Failed() bool { return r.Err != nil || r.SaveErr != nil }

// Error returns the first failure of the result, or nil.
func (r Result) Error() error {
	if r.Err != nil {
		return r.Err
	}
	return r.SaveErr
}

// Summary holds the results of a run in catalog order.
type Summary struct {
	WordWidth int
	Results   []Result
}

// Failed returns the failed results in catalog order.
func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Saved returns the paths of all written files in catalog order.
func (s *Summary) Saved() []string {
	var out []string
	for _, r := range s.Results {
		if r.Path != "" {
			out = append(out, r.Path)
		}
	}
	return out
}

// FileName returns the LUT file name for an architecture.
func FileName(name string) string {
	return name + "_lut" + npy.Extension
}

// Run evaluates the configured catalog.
//
// Catalog-level problems (invalid width, unknown architecture names, empty
// output directory) are returned before any work starts. Failures of a
// single architecture are recorded on its Result and the run continues.
// If ctx is cancelled, no further architectures are started and the
// partial summary is returned together with ctx.Err().
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	cat, err := arch.NewCatalog(cfg.WordWidth)
	if err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	if len(cfg.Names) > 0 {
		if cat, err = cat.Select(cfg.Names...); err != nil {
			return nil, fmt.Errorf("survey: %w", err)
		}
	}
	return RunCatalog(ctx, cat, cfg)
}

// RunCatalog evaluates every architecture of cat. cfg.WordWidth and
// cfg.Names are ignored; the catalog width is used.
func RunCatalog(ctx context.Context, cat *arch.Catalog, cfg Config) (*Summary, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, errors.New("survey: empty catalog")
	}
	if cfg.Save && cfg.OutputDir == "" {
		return nil, errNoOutputDir
	}

	eng, err := errstat.NewEngine(errstat.WithWordWidth(cat.Width()))
	if err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}

	archs := cat.All()
	sum := &Summary{WordWidth: cat.Width(), Results: make([]Result, len(archs))}

	workers := cfg.Parallel
	if workers < 1 {
		workers = 1
	}
	if workers > len(archs) {
		workers = len(archs)
	}

	workCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				sum.Results[i] = evaluate(eng, archs[i], cfg)
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range archs {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case workCh <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		}
	}
	close(workCh)
	wg.Wait()

	if ctxErr != nil {
		done := sum.Results[:0]
		for _, r := range sum.Results {
			if r.Name != "" {
				done = append(done, r)
			}
		}
		sum.Results = done
		return sum, ctxErr
	}
	return sum, nil
}

func evaluate(eng *errstat.Engine, a arch.Architecture, cfg Config) Result {
	res := Result{Name: a.Name()}

	table, err := eng.BuildTable(a)
	if err != nil {
		res.Err = err
		return res
	}
	if res.Metrics, err = eng.ComputeErrorMetrics(table); err != nil {
		res.Err = err
		return res
	}

	if cfg.Save {
		path, err := save(cfg.OutputDir, table)
		if err != nil {
			res.SaveErr = err
			return res
		}
		res.Path = path
	}
	return res
}

// save writes table below dir. MkdirAll is idempotent, so concurrent
// workers may all call it.
func save(dir string, table *errstat.Table) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("survey: create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(table.Name()))
	rows, cols := table.Shape()
	if err := npy.WriteFile(path, table.Data(), rows, cols); err != nil {
		return "", fmt.Errorf("survey: save %s: %w", table.Name(), err)
	}
	return path, nil
}
