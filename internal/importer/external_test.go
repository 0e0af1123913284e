package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
)

var externalWarnings = []string{
	"External PDF detected. Parsing is best-effort.",
	"Please review all extracted data carefully.",
}

func TestParsePDFText_SingleSignatureGoesExternal(t *testing.T) {
	res := fixedImporter().ParsePDFText("Meeting notes\nFrontend development was discussed")

	require.True(t, res.Success)
	assert.Equal(t, importer.SourcePDFExternal, res.Source)
	assert.Equal(t, externalWarnings, res.Warnings)
	assert.True(t, res.NeedsReview())

	inv := res.Invoice
	assert.Equal(t, "Meeting notes", inv.Metadata.ProjectName)
	require.Len(t, inv.Sections, 1)
	assert.Equal(t, "IMPORTED CONTENT", inv.Sections[0].Title)
	require.Len(t, inv.Sections[0].Categories, 1)
	assert.Equal(t, "Items", inv.Sections[0].Categories[0].Name)
	assert.Equal(t, []model.Feature{{
		Description: "Imported from external PDF",
		Detail:      "Content extracted from uploaded document. Please review and edit.",
		Hours:       0,
		Price:       0,
		Required:    false,
		Selected:    true,
		Flag:        model.FlagNeedsReview,
	}}, inv.Sections[0].Categories[0].Features)
	assert.Equal(t, model.Totals{}, inv.Totals)
}

func TestParseExternalText_Headers(t *testing.T) {
	text := `

  Acme Redesign Proposal
SCOPE OF WORK
We will rebuild the storefront.
ABC
TIMELINE & BUDGET
Twelve weeks, 40h 4000 estimated.
`
	res := fixedImporter().ParseExternalText(text, importer.SourcePDFExternal)

	require.True(t, res.Success)
	assert.False(t, res.NeedsReview())

	inv := res.Invoice
	assert.Equal(t, "Acme Redesign Proposal", inv.Metadata.ProjectName)
	assert.Equal(t, "USD", inv.Metadata.Currency)
	assert.Equal(t, "2026-03-02", inv.Metadata.CreatedAt)

	require.Len(t, inv.Sections, 2)
	assert.Equal(t, "SCOPE OF WORK", inv.Sections[0].Title)
	assert.Equal(t, "TIMELINE & BUDGET", inv.Sections[1].Title)
	for _, s := range inv.Sections {
		require.Len(t, s.Categories, 1)
		assert.Equal(t, "Extracted Items", s.Categories[0].Name)
		assert.NotNil(t, s.Categories[0].Features)
		assert.Empty(t, s.Categories[0].Features)
	}
	assert.Equal(t, model.Totals{}, inv.Totals)
}

func TestParseExternalText_Empty(t *testing.T) {
	res := fixedImporter().ParseExternalText("  \n\n", importer.SourcePDFExternal)

	require.True(t, res.Success)
	assert.Equal(t, "Imported External Document", res.Invoice.Metadata.ProjectName)
	assert.True(t, res.NeedsReview())
}

func TestParseDOCXText_SameAlgorithm(t *testing.T) {
	text := "Contract Draft\nDELIVERABLES\nA website.\n"

	pdf := fixedImporter().ParseExternalText(text, importer.SourcePDFExternal)
	docx := fixedImporter().ParseDOCXText(text)

	require.True(t, docx.Success)
	assert.Equal(t, importer.SourceDOCX, docx.Source)
	assert.Equal(t, pdf.Invoice, docx.Invoice)
	assert.Equal(t, pdf.Warnings, docx.Warnings)
}

func TestParseText_UsesExternalPath(t *testing.T) {
	// plain text uploads never go through signature detection
	res := fixedImporter().ParseText("FRONTEND DEVELOPMENT\nTotal Hours: 4\n")

	require.True(t, res.Success)
	assert.Equal(t, importer.SourcePDFExternal, res.Source)
	require.Len(t, res.Invoice.Sections, 1)
	assert.Equal(t, "Extracted Items", res.Invoice.Sections[0].Categories[0].Name)
}

func TestFailure(t *testing.T) {
	res := importer.Failure(importer.SourceDOCX, "Failed to parse DOCX: boom")

	assert.False(t, res.Success)
	assert.Nil(t, res.Invoice)
	assert.False(t, res.NeedsReview())
	assert.Equal(t, []string{"Failed to parse DOCX: boom"}, res.Errors)
}
