package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/processor"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about input files",
	Long: `Display information about input files without importing them.

Shows:
  - Detected format (JSON, PDF, DOCX, text)
  - Whether extracted text was generated by this tool
  - Page count and version of binary PDFs

Examples:
  quoter info quote.pdf
  quoter info docs/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	out := cmd.OutOrStdout()
	for _, file := range files {
		printFileInfo(out, file)
		fmt.Fprintln(out)
	}
	return nil
}

func printFileInfo(w io.Writer, path string) {
	fmt.Fprintf(w, "File: %s\n", path)

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "  Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "  Size: %d bytes\n", info.Size())
	fmt.Fprintf(w, "  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  Error reading file: %v\n", err)
		return
	}

	format := processor.DetectFormat(path, data)
	fmt.Fprintf(w, "  Format: %s\n", formatName(format))

	if processor.IsBinary(data) {
		fmt.Fprintln(w, "  Content: binary container, extract its text before importing")
		pdf, err := processor.InspectPDF(data)
		if err != nil {
			if !errors.Is(err, processor.ErrNotPDF) {
				fmt.Fprintf(w, "  PDF: %v\n", err)
			}
			return
		}
		fmt.Fprintf(w, "  PDF Version: %s\n", pdf.Version)
		fmt.Fprintf(w, "  Pages: %d\n", pdf.Pages)
		if pdf.Encrypted {
			fmt.Fprintln(w, "  Encrypted: yes")
		}
		return
	}

	if format == processor.FormatJSON {
		return
	}

	text := string(data)
	matches := importer.SignatureMatches(text)
	if importer.IsSystemText(text) {
		fmt.Fprintf(w, "  Layout: system document (%d markers)\n", matches)
	} else {
		fmt.Fprintf(w, "  Layout: external document (%d markers)\n", matches)
	}

	if preview := getPreview(text, 200); preview != "" {
		fmt.Fprintf(w, "  Preview: %s\n", preview)
	}
}

func formatName(f processor.Format) string {
	switch f {
	case processor.FormatJSON:
		return "JSON (quotation export)"
	case processor.FormatPDF:
		return "PDF"
	case processor.FormatDOCX:
		return "DOCX"
	case processor.FormatText:
		return "Text"
	default:
		return "Unknown"
	}
}

func getPreview(content string, maxLen int) string {
	content = strings.Join(strings.Fields(content), " ")

	runes := []rune(content)
	if len(runes) > maxLen {
		content = string(runes[:maxLen]) + "..."
	}
	return content
}
