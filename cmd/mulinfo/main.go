// Command mulinfo characterizes the accuracy of approximate multipliers.
//
// Usage:
//
//	mulinfo [flags] [architecture ...]
//
// Without arguments it evaluates every architecture of the 8-bit catalog,
// prints MAE and MaxAE per architecture and saves each lookup table as
// <name>_lut.npy below the output directory.
//
// Examples:
//
//	mulinfo
//	mulinfo -v Mitchell IterLog DRUM
//	mulinfo -width 6 -no-save
//	mulinfo -out /tmp/luts -parallel 4
//	mulinfo -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-approxmul/internal/report"
	"github.com/cwbudde/algo-approxmul/internal/survey"
	"github.com/cwbudde/algo-approxmul/mul/arch"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	def := survey.DefaultConfig()

	fs := flag.NewFlagSet("mulinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", def.WordWidth, "operand word width in bits (2-8)")
	out := fs.String("out", def.OutputDir, "directory receiving <name>_lut.npy files")
	noSave := fs.Bool("no-save", false, "do not write lookup tables")
	list := fs.Bool("list", false, "list available architecture names")
	verbose := fs.Bool("v", false, "print bias, RMSE, error rate, MRED and NMED columns")
	parallel := fs.Int("parallel", def.Parallel, "number of architectures evaluated concurrently")
	generic := fs.Bool("generic", false, "force pure Go vector kernels")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mulinfo [flags] [architecture ...]\n\n")
		fmt.Fprintf(stderr, "Characterizes approximate multipliers over the full operand domain.\n")
		fmt.Fprintf(stderr, "Without arguments, evaluates and saves every architecture.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mulinfo\n")
		fmt.Fprintf(stderr, "  mulinfo -v Mitchell IterLog DRUM\n")
		fmt.Fprintf(stderr, "  mulinfo -width 6 -no-save\n")
		fmt.Fprintf(stderr, "  mulinfo -list\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *list {
		return printList(stdout, stderr, *width)
	}

	if *generic {
		cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true, Architecture: runtime.GOARCH})
	}
	if *verbose {
		fmt.Fprintf(stderr, "vector kernels: %s\n", kernelName(cpu.DetectFeatures()))
	}

	cfg := survey.Config{
		WordWidth: *width,
		OutputDir: *out,
		Save:      !*noSave,
		Names:     fs.Args(),
		Parallel:  *parallel,
	}

	sum, err := survey.Run(ctx, cfg)
	if sum == nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if rerr := report.Metrics(stdout, sum, report.Options{Verbose: *verbose}); rerr != nil {
		fmt.Fprintf(stderr, "error: %v\n", rerr)
		return exitFailed
	}
	if cfg.Save {
		if rerr := report.Saved(stdout, sum); rerr != nil {
			fmt.Fprintf(stderr, "error: %v\n", rerr)
			return exitFailed
		}
	}

	code := exitOK
	if err != nil {
		fmt.Fprintf(stderr, "error: run interrupted: %v\n", err)
		code = exitFailed
	}
	for _, r := range sum.Failed() {
		fmt.Fprintf(stderr, "error: %s: %v\n", r.Name, r.Error())
		code = exitFailed
	}
	return code
}

func printList(stdout, stderr io.Writer, width int) int {
	cat, err := arch.NewCatalog(width)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	names := cat.Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return exitOK
}

func kernelName(f cpu.Features) string {
	levels := []cpu.SIMDLevel{cpu.SIMDAVX2, cpu.SIMDSSE2, cpu.SIMDNEON}
	for _, l := range levels {
		if cpu.Supports(f, l) {
			return l.String()
		}
	}
	return cpu.SIMDNone.String()
}
