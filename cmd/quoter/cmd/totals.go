package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
)

var totalsCheck bool

var totalsCmd = &cobra.Command{
	Use:   "totals [file]",
	Short: "Recompute the totals of a quotation",
	Long: `Recompute the totals of an exported quotation and compare them with the
totals stored in the file.

Examples:
  quoter totals quote.json
  quoter totals quote.json --check   # exit non-zero on a mismatch`,
	Args: cobra.ExactArgs(1),
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().BoolVar(&totalsCheck, "check", false, "Fail when stored totals differ from the recomputed ones")
}

// TotalsReport compares stored and recomputed totals
type TotalsReport struct {
	File       string        `json:"file" yaml:"file"`
	Totals     model.Totals  `json:"totals" yaml:"totals"`
	Stored     *model.Totals `json:"stored,omitempty" yaml:"stored,omitempty"`
	Consistent bool          `json:"consistent" yaml:"consistent"`
	Weeks      int64         `json:"weeks" yaml:"weeks"`
	Months     int64         `json:"months" yaml:"months"`
}

var errTotalsMismatch = errors.New("stored totals do not match the sections")

func runTotals(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	res := importer.ParseJSON(data)
	if !res.Success {
		return fmt.Errorf("%s: %s", path, strings.Join(res.Errors, "; "))
	}

	report := buildTotalsReport(path, data, res.Invoice)
	if !report.Consistent {
		logger.Warn("stored totals are stale", "file", path)
	}

	if err := writeTotals(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if totalsCheck && !report.Consistent {
		return errTotalsMismatch
	}
	return nil
}

// buildTotalsReport reads the stored totals straight from the document,
// since the importer always replaces them
func buildTotalsReport(path string, data []byte, inv *model.Invoice) *TotalsReport {
	report := &TotalsReport{
		File:       path,
		Totals:     inv.Totals,
		Consistent: true,
	}
	report.Weeks, report.Months = model.Duration(inv.Totals.SelectedHours)

	stored := gjson.GetBytes(data, "totals")
	if !stored.IsObject() {
		report.Consistent = false
		return report
	}

	report.Stored = &model.Totals{
		TotalHours:    stored.Get("totalHours").Int(),
		TotalPrice:    stored.Get("totalPrice").Int(),
		SelectedHours: stored.Get("selectedHours").Int(),
		SelectedPrice: stored.Get("selectedPrice").Int(),
	}
	report.Consistent = *report.Stored == inv.Totals
	return report
}

func writeTotals(w io.Writer, r *TotalsReport) error {
	if outputFormat != "table" {
		return writeData(w, outputFormat, r)
	}

	fmt.Fprintf(w, "File: %s\n", r.File)
	fmt.Fprintf(w, "  Selected Hours: %d\n", r.Totals.SelectedHours)
	fmt.Fprintf(w, "  Selected Price: %d\n", r.Totals.SelectedPrice)
	fmt.Fprintf(w, "  Total Hours:    %d\n", r.Totals.TotalHours)
	fmt.Fprintf(w, "  Total Price:    %d\n", r.Totals.TotalPrice)
	fmt.Fprintf(w, "  Duration:       %d weeks (%d months)\n", r.Weeks, r.Months)

	switch {
	case r.Stored == nil:
		fmt.Fprintln(w, "  ⚠ no stored totals")
	case !r.Consistent:
		fmt.Fprintln(w, "  ✗ stored totals differ:")
		for _, d := range totalsDiff(*r.Stored, r.Totals) {
			fmt.Fprintf(w, "      %s: stored %d, recomputed %d\n", d.field, d.stored, d.recomputed)
		}
	default:
		fmt.Fprintln(w, "  ✓ stored totals match")
	}
	return nil
}

type totalDiff struct {
	field              string
	stored, recomputed int64
}

// totalsDiff lists the fields where stored and recomputed totals disagree
func totalsDiff(stored, recomputed model.Totals) []totalDiff {
	fields := []totalDiff{
		{"selectedHours", stored.SelectedHours, recomputed.SelectedHours},
		{"selectedPrice", stored.SelectedPrice, recomputed.SelectedPrice},
		{"totalHours", stored.TotalHours, recomputed.TotalHours},
		{"totalPrice", stored.TotalPrice, recomputed.TotalPrice},
	}

	var diffs []totalDiff
	for _, f := range fields {
		if f.stored != f.recomputed {
			diffs = append(diffs, f)
		}
	}
	return diffs
}
