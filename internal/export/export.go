// Package export renders invoices into client-facing documents.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	money "github.com/rezonia/project-quoter/internal/decimal"
	"github.com/rezonia/project-quoter/internal/model"
)

// Kind is the type of document being produced
type Kind string

const (
	KindInvoice         Kind = "invoice"
	KindQuotation       Kind = "quotation"
	KindCommercialOffer Kind = "commercial-offer"
	KindTechnicalScope  Kind = "technical-scope"
	KindContract        Kind = "contract"
	KindMaintenance     Kind = "maintenance"
)

// Kinds lists every document kind in display order
var Kinds = []Kind{
	KindInvoice,
	KindQuotation,
	KindCommercialOffer,
	KindTechnicalScope,
	KindContract,
	KindMaintenance,
}

var kindTitles = map[Kind]string{
	KindInvoice:         "INVOICE",
	KindQuotation:       "QUOTATION",
	KindCommercialOffer: "COMMERCIAL OFFER",
	KindTechnicalScope:  "TECHNICAL SCOPE OF WORK",
	KindContract:        "CONTRACT PROPOSAL",
	KindMaintenance:     "MAINTENANCE & SUPPORT AGREEMENT",
}

// Title returns the heading printed on the document
func (k Kind) Title() string {
	return kindTitles[k]
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	_, ok := kindTitles[k]
	return ok
}

// ParseKind parses a kind name, case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", model.NewValidationError("kind", s, "enum", "unknown document kind")
	}
	return k, nil
}

// Format is an output encoding
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension of the format, with the dot
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatYAML:
		return ".yaml"
	default:
		return "." + string(f)
	}
}

// ParseFormat parses an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatText, FormatPDF, FormatJSON, FormatYAML:
		return f, nil
	case "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", model.NewValidationError("format", s, "enum", "unknown output format")
	}
}

// Options control which features a document shows
type Options struct {
	Kind            Kind
	IncludeOptional bool
}

// Visible reports whether a feature appears in a document. Selected
// features always do; optional ones only when asked for.
func Visible(f model.Feature, opts Options) bool {
	return f.Selected || (opts.IncludeOptional && !f.Required)
}

// VisibleSections filters inv down to the features shown with opts.
// Categories and sections left without features are dropped.
func VisibleSections(inv *model.Invoice, opts Options) []model.Section {
	out := []model.Section{}
	for _, s := range inv.Sections {
		section := model.Section{Title: s.Title, Categories: []model.Category{}}
		for _, c := range s.Categories {
			category := model.Category{Name: c.Name, Features: []model.Feature{}}
			for _, f := range c.Features {
				if Visible(f, opts) {
					category.Features = append(category.Features, f)
				}
			}
			if len(category.Features) > 0 {
				section.Categories = append(section.Categories, category)
			}
		}
		if len(section.Categories) > 0 {
			out = append(out, section)
		}
	}
	return out
}

// Milestone is one installment of the payment schedule
type Milestone struct {
	Phase       int    `json:"phase" yaml:"phase"`
	Description string `json:"description" yaml:"description"`
	Percent     int64  `json:"percent" yaml:"percent"`
	Amount      int64  `json:"amount" yaml:"amount"`
}

var paymentPlan = []struct {
	description string
	percent     int64
}{
	{"Contract Signature", 30},
	{"Milestone 1 - Design & Core Development", 25},
	{"Milestone 2 - Feature Implementation", 25},
	{"Milestone 3 - Testing & Deployment", 15},
	{"Post-Launch Support (30 days)", 5},
}

// Summary is the footer of a rendered document
type Summary struct {
	Features    int         `json:"features" yaml:"features"`
	Hours       int64       `json:"hours" yaml:"hours"`
	Price       int64       `json:"price" yaml:"price"`
	Weeks       int64       `json:"weeks" yaml:"weeks"`
	Months      int64       `json:"months" yaml:"months"`
	AverageRate int64       `json:"averageRate" yaml:"averageRate"`
	Currency    string      `json:"currency" yaml:"currency"`
	Payments    []Milestone `json:"payments" yaml:"payments"`
}

// Summarize totals the features visible with opts
func Summarize(inv *model.Invoice, opts Options) Summary {
	sections := VisibleSections(inv, opts)
	totals := model.ComputeTotals(sections)
	weeks, months := model.Duration(totals.TotalHours)

	s := Summary{
		Hours:    totals.TotalHours,
		Price:    totals.TotalPrice,
		Weeks:    weeks,
		Months:   months,
		Currency: inv.Metadata.Currency,
		Payments: make([]Milestone, 0, len(paymentPlan)),
	}
	for _, sec := range sections {
		for _, c := range sec.Categories {
			s.Features += len(c.Features)
		}
	}
	if s.Hours > 0 {
		s.AverageRate = money.RoundWhole(money.FromInt(s.Price).Div(money.FromInt(s.Hours)))
	}

	price := money.FromInt(s.Price)
	hundred := decimal.NewFromInt(100)
	for i, p := range paymentPlan {
		s.Payments = append(s.Payments, Milestone{
			Phase:       i + 1,
			Description: p.description,
			Percent:     p.percent,
			Amount:      money.RoundWhole(price.Mul(money.FromInt(p.percent)).Div(hundred)),
		})
	}
	return s
}

// Render writes inv in the given format. Contracts have their own HTML layout.
func Render(w io.Writer, inv *model.Invoice, format Format, opts Options) error {
	switch format {
	case FormatHTML:
		if opts.Kind == KindContract {
			return RenderContractHTML(w, inv)
		}
		return RenderHTML(w, inv, opts)
	case FormatText:
		return RenderText(w, inv, opts)
	case FormatPDF:
		return RenderPDF(w, inv, opts)
	case FormatJSON:
		return RenderJSON(w, inv)
	case FormatYAML:
		return RenderYAML(w, inv)
	default:
		return model.NewValidationError("format", string(format), "enum", "unknown output format")
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return humanize.Commaf(v)
}

func formatWhole(v int64) string {
	return humanize.Comma(v)
}

func plural(n int64, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
