package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	money "github.com/rezonia/project-quoter/internal/decimal"
	"github.com/rezonia/project-quoter/internal/model"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 5.0
)

// column widths in mm, summing to the A4 printable width
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"No.", 10, "L"},
	{"Description", 100, "L"},
	{"Hours", 20, "R"},
	{"Rate", 20, "R"},
	{"Total", 40, "R"},
}

type pdfRow struct {
	cells  []string
	detail string
}

// RenderPDF writes an A4 document listing the features visible with opts,
// followed by the totals and, for invoices and quotations, the payment schedule.
func RenderPDF(w io.Writer, inv *model.Invoice, opts Options) error {
	if opts.Kind == "" {
		opts.Kind = KindQuotation
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.Metadata.ProjectName, true)
	pdf.SetCreator("project-quoter", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeHeader(pdf, tr, inv, opts)

	sum := Summarize(inv, opts)
	currency := inv.Metadata.Currency

	var rows []pdfRow
	for _, s := range VisibleSections(inv, opts) {
		for _, c := range s.Categories {
			for _, f := range c.Features {
				mark := "[ ]"
				if f.Selected {
					mark = "[x]"
				}
				rows = append(rows, pdfRow{
					cells: []string{
						strconv.Itoa(len(rows) + 1),
						mark + " " + f.Description,
						formatHours(f.Hours) + "h",
						formatWhole(rate(f)),
						formatMoney(f.Price),
					},
					detail: fmt.Sprintf("%s\n%s - %s", f.Detail, s.Title, c.Name),
				})
			}
		}
	}

	if len(rows) > 0 {
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, 8, tr("PROJECT SERVICES"), "", 1, "L", false, 0, "")
		writeTable(pdf, tr, currency, rows)
	}

	pdf.Ln(4)
	pdf.SetFont(pdfFont, "", 10)
	writePair(pdf, tr, "Subtotal:", fmt.Sprintf("%s %s", formatWhole(sum.Price), currency))
	writePair(pdf, tr, "Tax (0%):", "0 "+currency)
	pdf.SetFont(pdfFont, "B", 11)
	writePair(pdf, tr, "TOTAL:", fmt.Sprintf("%s %s", formatWhole(sum.Price), currency))
	pdf.SetFont(pdfFont, "", 10)
	writePair(pdf, tr, "Estimated Duration:", fmt.Sprintf("%s (%d hours)", plural(sum.Months, "month"), sum.Hours))
	writePair(pdf, tr, "Average Hourly Rate:", fmt.Sprintf("%s %s/h", formatWhole(sum.AverageRate), currency))

	if opts.Kind == KindInvoice || opts.Kind == KindQuotation {
		pdf.Ln(6)
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, 8, "PAYMENT SCHEDULE", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 9)
		for _, m := range sum.Payments {
			pdf.CellFormat(15, 6, strconv.Itoa(m.Phase), "1", 0, "L", false, 0, "")
			pdf.CellFormat(110, 6, tr(m.Description), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d%%", m.Percent), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 6, formatWhole(m.Amount), "1", 1, "R", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, inv *model.Invoice, opts Options) {
	meta := inv.Metadata

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, tr(opts.Kind.Title()), "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(0, 6, tr(meta.ProjectName), "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 5, "Date: "+meta.CreatedAt, "", 1, "L", false, 0, "")
	if meta.ValidUntil != "" {
		pdf.CellFormat(0, 5, "Valid Until: "+meta.ValidUntil, "", 1, "L", false, 0, "")
	}
	client := meta.ClientName
	if client == "" {
		client = "_____________________________"
	}
	pdf.CellFormat(0, 5, tr("Client: "+client), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// writeTable draws the feature table, repeating the header row after page breaks
func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, currency string, rows []pdfRow) {
	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range pdfColumns {
			title := col.title
			if i == len(pdfColumns)-1 {
				title = fmt.Sprintf("Total (%s)", currency)
			}
			pdf.CellFormat(col.width, 7, tr(title), "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	header()
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for _, r := range rows {
		pdf.SetFont(pdfFont, "", 8)
		detail := pdf.SplitLines([]byte(tr(r.detail)), pdfColumns[1].width-2)
		height := pdfLineHeight * float64(len(detail)+1)

		if pdf.GetY()+height > pageH-bottom-15 {
			pdf.AddPage()
			header()
		}

		x, y := pdf.GetX(), pdf.GetY()
		pdf.SetFont(pdfFont, "", 9)
		for i, col := range pdfColumns {
			pdf.Rect(x, y, col.width, height, "D")
			if i == 1 {
				pdf.SetXY(x+1, y)
				pdf.SetFont(pdfFont, "B", 9)
				pdf.CellFormat(col.width-2, pdfLineHeight, tr(r.cells[i]), "", 2, "L", false, 0, "")
				pdf.SetFont(pdfFont, "", 8)
				pdf.SetTextColor(100, 100, 100)
				for _, line := range detail {
					pdf.CellFormat(col.width-2, pdfLineHeight, string(line), "", 2, "L", false, 0, "")
				}
				pdf.SetTextColor(0, 0, 0)
				pdf.SetFont(pdfFont, "", 9)
			} else {
				pdf.SetXY(x, y)
				pdf.CellFormat(col.width, pdfLineHeight, tr(r.cells[i]), "", 0, col.align, false, 0, "")
			}
			x += col.width
		}
		left, _, _, _ := pdf.GetMargins()
		pdf.SetXY(left, y+height)
	}
}

func writePair(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(130, 6, tr(label), "", 0, "R", false, 0, "")
	pdf.CellFormat(60, 6, tr(value), "", 1, "R", false, 0, "")
}

// rate is the effective hourly rate of a feature
func rate(f model.Feature) int64 {
	if f.Hours <= 0 {
		return 0
	}
	return money.RoundWhole(money.FromFloat(f.Price).Div(money.FromFloat(f.Hours)))
}
