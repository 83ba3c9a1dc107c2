// Package report renders survey results as console tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-approxmul/internal/survey"
)

// Options controls the metrics table layout.
type Options struct {
	// Verbose adds bias, RMS, error rate, MRED and NMED columns.
	Verbose bool
}

var (
	basicHeader   = []string{"Architecture", "MAE", "MaxAE"}
	verboseHeader = []string{"Bias", "RMSE", "ER [%]", "MRED [%]", "NMED [%]"}
)

// Metrics writes one row per result in catalog order, preceded by a header
// and a separator line. MAE has two decimals and MaxAE is an integer.
func Metrics(w io.Writer, sum *survey.Summary, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := basicHeader
	if opts.Verbose {
		header = append(append([]string(nil), basicHeader...), verboseHeader...)
	}
	if err := writeRow(tw, header); err != nil {
		return err
	}
	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", len(h))
	}
	if err := writeRow(tw, sep); err != nil {
		return err
	}

	for _, r := range sum.Results {
		row := metricRow(r, opts.Verbose)
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// Saved lists the persisted LUT files and the architectures whose tables
// could not be written.
func Saved(w io.Writer, sum *survey.Summary) error {
	if _, err := fmt.Fprintln(w, "\nSaving LUTs:"); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for _, r := range sum.Results {
		var err error
		switch {
		case r.Path != "":
			_, err = fmt.Fprintf(w, "✔ Saved %s\n", r.Path)
		case r.SaveErr != nil:
			_, err = fmt.Fprintf(w, "✘ %s: %v\n", r.Name, r.SaveErr)
		}
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}

func metricRow(r survey.Result, verbose bool) []string {
	if r.Err != nil {
		return []string{r.Name, "error: " + r.Err.Error()}
	}
	m := r.Metrics
	row := []string{r.Name, fmt.Sprintf("%.2f", m.MeanAbsError), fmt.Sprintf("%d", m.MaxAbsError)}
	if verbose {
		row = append(row,
			fmt.Sprintf("%.2f", m.MeanError),
			fmt.Sprintf("%.2f", m.RMSError),
			fmt.Sprintf("%.2f", 100*m.ErrorRate),
			fmt.Sprintf("%.2f", 100*m.MRED),
			fmt.Sprintf("%.4f", 100*m.NMED),
		)
	}
	return row
}

func writeRow(w io.Writer, cells []string) error {
	if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
		return fmt.Errorf("report: write row: %w", err)
	}
	return nil
}
