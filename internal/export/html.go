package export

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rezonia/project-quoter/internal/model"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"hours":  formatHours,
	"money":  formatMoney,
	"whole":  formatWhole,
	"plural": plural,
}).ParseFS(templateFS, "templates/*.html.tmpl"))

type documentView struct {
	Title        string
	Invoice      *model.Invoice
	Sections     []model.Section
	Summary      Summary
	ShowPayments bool
}

// RenderHTML writes a printable HTML document of the features visible with opts
func RenderHTML(w io.Writer, inv *model.Invoice, opts Options) error {
	if opts.Kind == "" {
		opts.Kind = KindQuotation
	}
	view := documentView{
		Title:        opts.Kind.Title(),
		Invoice:      inv,
		Sections:     VisibleSections(inv, opts),
		Summary:      Summarize(inv, opts),
		ShowPayments: opts.Kind == KindInvoice || opts.Kind == KindQuotation,
	}
	if err := templates.ExecuteTemplate(w, "document.html.tmpl", view); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderContractHTML writes a contract covering the selected features
func RenderContractHTML(w io.Writer, inv *model.Invoice) error {
	opts := Options{Kind: KindContract}
	view := documentView{
		Title:    KindContract.Title(),
		Invoice:  inv,
		Sections: VisibleSections(inv, opts),
		Summary:  Summarize(inv, opts),
	}
	if err := templates.ExecuteTemplate(w, "contract.html.tmpl", view); err != nil {
		return fmt.Errorf("render contract: %w", err)
	}
	return nil
}
