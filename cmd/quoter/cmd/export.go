package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/export"
	"github.com/rezonia/project-quoter/internal/importer"
)

var (
	exportKind            string
	exportAs              string
	exportIncludeOptional bool
	exportOutput          string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Render a quotation as a document",
	Long: `Render an exported quotation as a client-facing document.

Kinds:   invoice, quotation, commercial-offer, technical-scope, contract, maintenance
Formats: html, text, pdf, json, yaml, and contract (the contract HTML layout)

Only selected features are shown unless --include-optional is set, which
adds features that are neither selected nor required.

Examples:
  quoter export quote.json --kind quotation --as pdf -o quote.pdf
  quoter export quote.json --as contract -o contract.html
  quoter export quote.json --kind technical-scope --as text --include-optional`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportKind, "kind", string(export.KindQuotation), "Document kind")
	exportCmd.Flags().StringVar(&exportAs, "as", string(export.FormatHTML), "Output format: html, text, pdf, json, yaml, contract")
	exportCmd.Flags().BoolVar(&exportIncludeOptional, "include-optional", false, "Show optional features that are not selected")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	kind, err := export.ParseKind(exportKind)
	if err != nil {
		return err
	}

	as := exportAs
	if strings.EqualFold(as, string(export.KindContract)) {
		kind, as = export.KindContract, string(export.FormatHTML)
	}
	format, err := export.ParseFormat(as)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	res := importer.ParseJSON(data)
	if !res.Success {
		return fmt.Errorf("%s: %s", path, strings.Join(res.Errors, "; "))
	}
	for _, warning := range res.Warnings {
		printVerbose("  ⚠ %s\n", warning)
	}

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), exportOutput)
	if err != nil {
		return err
	}
	defer closeOutput()

	opts := export.Options{Kind: kind, IncludeOptional: exportIncludeOptional}
	if err := export.Render(w, res.Invoice, format, opts); err != nil {
		return err
	}

	if exportOutput != "" {
		printVerbose("Wrote %s %s to %s\n", kind, format, exportOutput)
	}
	return nil
}
