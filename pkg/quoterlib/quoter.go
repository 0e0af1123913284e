// Package quoterlib provides a public API for building, importing and
// rendering project quotations.
//
// Example usage:
//
//	q := quoterlib.NewDefaultQuoter()
//	res, err := q.Import(ctx, "quote.json", file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Success {
//	    fmt.Println(res.Invoice.Totals.SelectedPrice)
//	}
package quoterlib

import (
	"github.com/rezonia/project-quoter/internal/export"
	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/template"
)

// Re-export core types for public API
type (
	Invoice       = model.Invoice
	Metadata      = model.Metadata
	Section       = model.Section
	Category      = model.Category
	Feature       = model.Feature
	Totals        = model.Totals
	Flag          = model.Flag
	FeatureUpdate = model.FeatureUpdate
	ProjectConfig = template.ProjectConfig
	Result        = importer.Result
	Source        = importer.Source
	Kind          = export.Kind
	Format        = export.Format
	RenderOptions = export.Options
)

// Re-export feature flags
const (
	FlagNone        = model.FlagNone
	FlagNeedsReview = model.FlagNeedsReview
	FlagImported    = model.FlagImported
	FlagCustom      = model.FlagCustom
)

// Re-export import sources
const (
	SourceJSON        = importer.SourceJSON
	SourcePDFSystem   = importer.SourcePDFSystem
	SourcePDFExternal = importer.SourcePDFExternal
	SourceDOCX        = importer.SourceDOCX
)

// Re-export document kinds and formats
const (
	KindInvoice         = export.KindInvoice
	KindQuotation       = export.KindQuotation
	KindCommercialOffer = export.KindCommercialOffer
	KindTechnicalScope  = export.KindTechnicalScope
	KindContract        = export.KindContract
	KindMaintenance     = export.KindMaintenance

	FormatHTML = export.FormatHTML
	FormatText = export.FormatText
	FormatPDF  = export.FormatPDF
	FormatJSON = export.FormatJSON
	FormatYAML = export.FormatYAML
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
	IndexError      = model.IndexError
)

// ComputeTotals derives totals from sections
func ComputeTotals(sections []Section) Totals {
	return model.ComputeTotals(sections)
}
