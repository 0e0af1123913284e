package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/processor"
)

var (
	importOutput  string
	importSource  string
	importTimeout time.Duration
)

var importSources = map[string]processor.Format{
	"auto": processor.FormatUnknown,
	"json": processor.FormatJSON,
	"pdf":  processor.FormatPDF,
	"docx": processor.FormatDOCX,
	"text": processor.FormatText,
}

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import quotation documents",
	Long: `Import one or more documents into the quotation model.

Supported inputs:
  - JSON: .json files exported by this tool
  - PDF:  text extracted from a PDF. Documents generated by this tool are
          parsed exactly; any other PDF is imported best-effort
  - DOCX: text extracted from a Word document (best-effort)
  - Text: .txt files (best-effort)

Binary PDF and DOCX files are rejected; extract their text first.
With an API key, sections found in foreign documents are filled with
suggested features that are flagged for review.

Examples:
  quoter import quote.json
  quoter import proposal.pdf --source pdf
  quoter import docs/ -f table
  quoter import *.json -o results.yaml -f yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output file (default: stdout)")
	importCmd.Flags().StringVar(&importSource, "source", "auto", "Force the parser: auto, json, pdf, docx, text")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

// ImportOutcome holds the result of importing a single file
type ImportOutcome struct {
	File   string           `json:"file" yaml:"file"`
	Result *importer.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	format, ok := importSources[strings.ToLower(importSource)]
	if !ok {
		return fmt.Errorf("unknown source %q (use auto, json, pdf, docx or text)", importSource)
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	printVerbose("Found %d files to import\n", len(files))

	pipeline := newPipeline()
	outcomes := make([]*ImportOutcome, 0, len(files))
	for _, file := range files {
		printVerbose("Importing: %s\n", file)

		outcome := importFile(cmd.Context(), pipeline, file, format)
		outcomes = append(outcomes, outcome)

		switch {
		case outcome.Error != "":
			printVerbose("  Error: %s\n", outcome.Error)
		case !outcome.Result.Success:
			printVerbose("  Failed: %s\n", strings.Join(outcome.Result.Errors, "; "))
		default:
			printVerbose("  Source: %s, Features: %d\n", outcome.Result.Source, outcome.Result.Invoice.FeatureCount())
		}
	}

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), importOutput)
	if err != nil {
		return err
	}
	defer closeOutput()

	if outputFormat == "table" {
		return outputImportTable(w, outcomes)
	}
	return writeData(w, outputFormat, outcomes)
}

func importFile(ctx context.Context, pipeline *processor.Pipeline, path string, format processor.Format) *ImportOutcome {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, importTimeout)
	defer cancel()

	outcome := &ImportOutcome{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Sprintf("failed to read file: %v", err)
		return outcome
	}

	if format == processor.FormatUnknown {
		outcome.Result = pipeline.Process(ctx, path, data)
	} else {
		outcome.Result = pipeline.ProcessAs(ctx, format, data)
	}
	return outcome
}

func outputImportTable(w io.Writer, outcomes []*ImportOutcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSOURCE\tPROJECT\tSECTIONS\tFEATURES\tHOURS\tPRICE\tWARNINGS")
	fmt.Fprintln(tw, "----\t------\t-------\t--------\t--------\t-----\t-----\t--------")

	for _, o := range outcomes {
		if o.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", o.File, o.Error)
			continue
		}
		r := o.Result
		if !r.Success {
			fmt.Fprintf(tw, "%s\t%s\tERROR: %s\t\t\t\t\t\n", o.File, r.Source, strings.Join(r.Errors, "; "))
			continue
		}

		inv := r.Invoice
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d %s\t%d\n",
			o.File,
			r.Source,
			inv.Metadata.ProjectName,
			len(inv.Sections),
			inv.FeatureCount(),
			inv.Totals.SelectedHours,
			inv.Totals.SelectedPrice,
			inv.Metadata.Currency,
			len(r.Warnings),
		)
	}

	return tw.Flush()
}
