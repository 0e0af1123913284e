package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
)

// missingDetail stands in for an empty detail so every feature keeps its
// three-line block
const missingDetail = "-"

// RenderText writes the plain text layout that the system text importer
// reads back. Each feature is a block of three lines:
//
//	☑ Description
//	Detail
//	18h 1,530
func RenderText(w io.Writer, inv *model.Invoice, opts Options) error {
	if opts.Kind == "" {
		opts.Kind = KindQuotation
	}

	bw := bufio.NewWriter(w)
	meta := inv.Metadata

	fmt.Fprintln(bw, meta.ProjectName)
	if meta.ClientName != "" {
		fmt.Fprintf(bw, "Client: %s\n", meta.ClientName)
	}
	fmt.Fprintf(bw, "Document: %s\n", opts.Kind.Title())
	fmt.Fprintf(bw, "Date: %s\n", meta.CreatedAt)
	if meta.ValidUntil != "" {
		fmt.Fprintf(bw, "Valid Until: %s\n", meta.ValidUntil)
	}
	fmt.Fprintf(bw, "Currency: %s\n", meta.Currency)

	for _, s := range VisibleSections(inv, opts) {
		fmt.Fprintf(bw, "\n%s\n", s.Title)
		for _, c := range s.Categories {
			fmt.Fprintf(bw, "Category: %s\n", c.Name)
			for _, f := range c.Features {
				glyph := importer.GlyphUnchecked
				if f.Selected {
					glyph = importer.GlyphChecked
				}
				detail := f.Detail
				if detail == "" {
					detail = missingDetail
				}
				fmt.Fprintf(bw, "%s %s\n%s\n%sh %s\n", glyph, f.Description, detail, formatHours(f.Hours), formatMoney(f.Price))
			}
		}
	}

	sum := Summarize(inv, opts)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Selected Items: %d\n", sum.Features)
	fmt.Fprintf(bw, "Total Hours: %d\n", sum.Hours)
	fmt.Fprintf(bw, "Total Price: %s %s\n", formatWhole(sum.Price), sum.Currency)
	fmt.Fprintf(bw, "Estimated Duration: %s (%d weeks)\n", plural(sum.Months, "month"), sum.Weeks)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render text: %w", err)
	}
	return nil
}
