package processor_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/project-quoter/internal/export"
	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/llm"
	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/processor"
)

type fakeScope struct {
	items  map[string][]llm.ScopeItem
	err    error
	titles []string
	calls  int
}

func (f *fakeScope) ExtractScope(_ context.Context, _ string, titles []string) (map[string][]llm.ScopeItem, error) {
	f.calls++
	f.titles = titles
	return f.items, f.err
}

const externalDoc = "Acme Proposal\nSCOPE OF WORK\nA storefront with checkout.\nTIMELINE\nSix weeks.\n"

func TestNewPipeline(t *testing.T) {
	p := processor.NewPipeline()
	require.NotNil(t, p)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		expected processor.Format
	}{
		{"json extension", "quote.json", []byte(`{}`), processor.FormatJSON},
		{"upper case extension", "QUOTE.PDF", []byte("text"), processor.FormatPDF},
		{"text extension", "notes.txt", []byte("hello"), processor.FormatText},
		{"docx extension", "brief.docx", []byte("PK\x03\x04"), processor.FormatDOCX},
		{"extension wins over content", "data.txt", []byte(`{"a":1}`), processor.FormatText},
		{"sniffed pdf", "upload", []byte("%PDF-1.7\n"), processor.FormatPDF},
		{"sniffed zip", "", []byte("PK\x03\x04rest"), processor.FormatDOCX},
		{"sniffed json", "", []byte("  \n{\"metadata\":{}}"), processor.FormatJSON},
		{"unknown", "image.png", []byte{0x89, 0x50, 0x4E, 0x47}, processor.FormatUnknown},
		{"empty", "", []byte{}, processor.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processor.DetectFormat(tt.file, tt.data))
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   processor.Format
		expected string
	}{
		{processor.FormatJSON, "json"},
		{processor.FormatPDF, "pdf"},
		{processor.FormatText, "text"},
		{processor.FormatDOCX, "docx"},
		{processor.FormatUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, name := range []string{"a.json", "a.pdf", "a.txt", "a.docx", "A.DOCX"} {
		assert.True(t, processor.IsSupported(name), name)
	}
	for _, name := range []string{"a.doc", "a.png", "a", ""} {
		assert.False(t, processor.IsSupported(name), name)
	}
}

func TestProcess_Routes(t *testing.T) {
	ctx := context.Background()
	p := processor.NewPipeline()

	tests := []struct {
		file   string
		data   string
		source importer.Source
	}{
		{"quote.json", `{"metadata":{"projectName":"X","currency":"USD"},"sections":[]}`, importer.SourceJSON},
		{"quote.pdf", "FRONTEND DEVELOPMENT\nTotal Hours: 0\n", importer.SourcePDFSystem},
		{"other.pdf", externalDoc, importer.SourcePDFExternal},
		{"brief.docx", externalDoc, importer.SourceDOCX},
		{"notes.txt", externalDoc, importer.SourcePDFExternal},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res := p.Process(ctx, tt.file, []byte(tt.data))
			require.True(t, res.Success, "errors: %v", res.Errors)
			assert.Equal(t, tt.source, res.Source)
		})
	}
}

func TestProcess_BinaryContainers(t *testing.T) {
	ctx := context.Background()
	p := processor.NewPipeline()

	res := p.Process(ctx, "scan.pdf", []byte("%PDF-1.4\n%binary"))
	assert.False(t, res.Success)
	assert.Nil(t, res.Invoice)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Failed to parse PDF: binary PDF")

	res = p.Process(ctx, "brief.docx", []byte("PK\x03\x04zip"))
	assert.False(t, res.Success)
	assert.Equal(t, importer.SourceDOCX, res.Source)
	assert.Contains(t, res.Errors[0], "Failed to parse DOCX")
}

func TestProcess_Unsupported(t *testing.T) {
	res := processor.NewPipeline().Process(context.Background(), "photo.png", []byte{0x89, 0x50})

	assert.False(t, res.Success)
	assert.Contains(t, res.Errors[0], `Unsupported file type ".png"`)
}

func TestProcessAs(t *testing.T) {
	res := processor.NewPipeline().ProcessAs(context.Background(), processor.FormatDOCX, []byte(externalDoc))

	require.True(t, res.Success)
	assert.Equal(t, importer.SourceDOCX, res.Source)
}

func TestProcess_ScopeEnrichment(t *testing.T) {
	scope := &fakeScope{items: map[string][]llm.ScopeItem{
		"SCOPE OF WORK": {
			{Description: "Storefront", Detail: "Product pages"},
			{Description: "Checkout", Detail: "Card payments"},
		},
	}}
	p := processor.NewPipeline(processor.WithScopeExtractor(scope))

	res := p.Process(context.Background(), "proposal.pdf", []byte(externalDoc))

	require.True(t, res.Success)
	assert.Equal(t, 1, scope.calls)
	assert.Equal(t, []string{"SCOPE OF WORK", "TIMELINE"}, scope.titles)

	features := res.Invoice.Sections[0].Categories[0].Features
	require.Len(t, features, 2)
	for _, f := range features {
		assert.Equal(t, model.FlagNeedsReview, f.Flag)
		assert.Zero(t, f.Hours)
		assert.Zero(t, f.Price)
		assert.False(t, f.Required)
		assert.True(t, f.Selected)
	}
	assert.Empty(t, res.Invoice.Sections[1].Categories[0].Features)
	assert.Equal(t, model.Totals{}, res.Invoice.Totals)
	assert.Len(t, res.Warnings, 3)
	assert.Contains(t, res.Warnings[2], "2 suggested features")
}

func TestProcess_ScopeEnrichmentFailure(t *testing.T) {
	scope := &fakeScope{err: errors.New("timeout")}
	p := processor.NewPipeline(processor.WithScopeExtractor(scope))

	res := p.Process(context.Background(), "proposal.txt", []byte(externalDoc))

	require.True(t, res.Success)
	assert.Contains(t, res.Warnings, "Feature suggestions unavailable: timeout")
	assert.Zero(t, res.Invoice.FeatureCount())
}

func TestProcess_ScopeSkipsSystemAndPlaceholder(t *testing.T) {
	scope := &fakeScope{}
	p := processor.NewPipeline(processor.WithScopeExtractor(scope))
	ctx := context.Background()

	// system documents are parsed deterministically
	p.Process(ctx, "quote.pdf", []byte("FRONTEND DEVELOPMENT\nTotal Hours: 0\n"))
	// the placeholder section already holds a feature
	p.Process(ctx, "notes.txt", []byte("nothing structured here"))

	assert.Zero(t, scope.calls)
}

func TestInspectPDF(t *testing.T) {
	inv := &model.Invoice{
		Metadata: model.Metadata{ProjectName: "Inspect Me", Currency: "USD", CreatedAt: "2026-01-18"},
		Sections: []model.Section{{
			Title: "DESIGN",
			Categories: []model.Category{{
				Name:     "UI",
				Features: []model.Feature{{Description: "Mockups", Hours: 10, Price: 800, Selected: true}},
			}},
		}},
	}
	inv.Recalculate()

	var buf bytes.Buffer
	require.NoError(t, export.RenderPDF(&buf, inv, export.Options{Kind: export.KindQuotation}))

	info, err := processor.InspectPDF(buf.Bytes())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, info.Pages, 1)
	assert.False(t, info.Encrypted)
	assert.NotEmpty(t, info.Version)
}

func TestInspectPDF_Errors(t *testing.T) {
	_, err := processor.InspectPDF([]byte("plain text"))
	assert.ErrorIs(t, err, processor.ErrNotPDF)

	_, err = processor.InspectPDF([]byte("%PDF-1.4\ngarbage"))
	assert.Error(t, err)
}

func BenchmarkDetectFormat(b *testing.B) {
	data := []byte("%PDF-1.4\n%some content here")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		processor.DetectFormat("upload", data)
	}
}
