package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/importer"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate exported quotation files",
	Long: `Validate one or more JSON quotation exports.

Checks performed:
  - metadata and sections are present
  - every section, category and feature has its required fields
  - hours and prices are numbers and not negative
  - flags are known values

Errors make a file invalid. Warnings list values that an import repairs.

Examples:
  quoter validate quote.json
  quoter validate exports/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult is the outcome of validating a single file
type ValidationResult struct {
	File     string   `json:"file" yaml:"file"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	results := make([]*ValidationResult, 0, len(files))
	allValid := true
	for _, file := range files {
		result := validateFile(file)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == "table" {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s: VALID\n", r.File)
			} else {
				fmt.Fprintf(out, "✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Fprintf(out, "  ⚠ %s\n", w)
			}
		}
	} else if err := writeData(out, outputFormat, results); err != nil {
		return err
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(path string) *ValidationResult {
	result := &ValidationResult{
		File:     path,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	res := importer.ParseJSON(data)
	result.Valid = res.Success
	result.Errors = append(result.Errors, res.Errors...)
	result.Warnings = append(result.Warnings, res.Warnings...)
	return result
}
