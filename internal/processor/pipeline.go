// Package processor routes uploaded files to the matching importer path.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/llm"
	"github.com/rezonia/project-quoter/internal/model"
)

// Format represents the detected upload format
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatPDF
	FormatText
	FormatDOCX
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatPDF:
		return "pdf"
	case FormatText:
		return "text"
	case FormatDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// Extensions accepted for upload
var extensions = map[string]Format{
	".json": FormatJSON,
	".pdf":  FormatPDF,
	".txt":  FormatText,
	".docx": FormatDOCX,
}

var (
	magicPDF = []byte("%PDF")
	magicZIP = []byte("PK\x03\x04")
)

// DetectFormat picks the format from the file extension. When the name has
// no accepted extension the content is sniffed instead.
func DetectFormat(name string, data []byte) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return FormatPDF
	case bytes.HasPrefix(data, magicZIP):
		return FormatDOCX
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// IsSupported reports whether name has an accepted upload extension
func IsSupported(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// IsBinary reports whether data is a PDF or DOCX container rather than
// extracted text
func IsBinary(data []byte) bool {
	return bytes.HasPrefix(data, magicPDF) || bytes.HasPrefix(data, magicZIP)
}

// ScopeExtractor proposes features for sections found in a foreign document
type ScopeExtractor interface {
	ExtractScope(ctx context.Context, text string, titles []string) (map[string][]llm.ScopeItem, error)
}

// Pipeline orchestrates format detection, import and optional enrichment
type Pipeline struct {
	importer *importer.Importer
	scope    ScopeExtractor
	logger   *slog.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithImporter sets the importer
func WithImporter(im *importer.Importer) Option {
	return func(p *Pipeline) {
		p.importer = im
	}
}

// WithScopeExtractor enables feature suggestions for external documents
func WithScopeExtractor(e ScopeExtractor) Option {
	return func(p *Pipeline) {
		p.scope = e
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.importer == nil {
		p.importer = importer.New(importer.WithLogger(p.logger))
	}
	return p
}

// Process imports an uploaded file
func (p *Pipeline) Process(ctx context.Context, name string, data []byte) *importer.Result {
	format := DetectFormat(name, data)
	p.logger.Debug("processing upload", "file", name, "format", format, "size", len(data))

	var res *importer.Result
	switch format {
	case FormatJSON:
		return p.importer.ParseJSON(data)
	case FormatPDF:
		if IsBinary(data) {
			return importer.Failure(importer.SourcePDFExternal, binaryError("PDF"))
		}
		res = p.importer.ParsePDFText(text(data))
	case FormatDOCX:
		if IsBinary(data) {
			return importer.Failure(importer.SourceDOCX, binaryError("DOCX"))
		}
		res = p.importer.ParseDOCXText(text(data))
	case FormatText:
		res = p.importer.ParseText(text(data))
	default:
		return importer.Failure(importer.SourcePDFExternal,
			fmt.Sprintf("Unsupported file type %q. Accepted: .json, .pdf, .txt, .docx", filepath.Ext(name)))
	}

	p.enrich(ctx, res, text(data))
	return res
}

// ProcessAs imports data with a forced format, ignoring the file name
func (p *Pipeline) ProcessAs(ctx context.Context, format Format, data []byte) *importer.Result {
	name := "upload"
	for ext, f := range extensions {
		if f == format {
			name += ext
		}
	}
	return p.Process(ctx, name, data)
}

// enrich asks the scope extractor to fill sections that the external
// parser left empty. Suggestions carry no hours or price.
func (p *Pipeline) enrich(ctx context.Context, res *importer.Result, text string) {
	if p.scope == nil || !res.Success || res.Source == importer.SourcePDFSystem {
		return
	}

	var titles []string
	for _, s := range res.Invoice.Sections {
		if sectionEmpty(s) {
			titles = append(titles, s.Title)
		}
	}
	if len(titles) == 0 {
		return
	}

	items, err := p.scope.ExtractScope(ctx, text, titles)
	if err != nil {
		p.logger.Warn("scope extraction failed", "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("Feature suggestions unavailable: %v", err))
		return
	}

	added := 0
	for i := range res.Invoice.Sections {
		s := &res.Invoice.Sections[i]
		if !sectionEmpty(*s) || len(s.Categories) == 0 {
			continue
		}
		for _, item := range items[s.Title] {
			s.Categories[0].Features = append(s.Categories[0].Features, model.Feature{
				Description: item.Description,
				Detail:      item.Detail,
				Selected:    true,
				Flag:        model.FlagNeedsReview,
			})
			added++
		}
	}
	res.Invoice.Recalculate()

	if added > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d suggested features added without hours or prices. Estimate them before sending.", added))
	}
	p.logger.Debug("enriched external import", "sections", len(titles), "features", added)
}

func sectionEmpty(s model.Section) bool {
	for _, c := range s.Categories {
		if len(c.Features) > 0 {
			return false
		}
	}
	return true
}

func binaryError(kind string) string {
	return fmt.Sprintf("Failed to parse %s: binary %s text extraction is not supported; upload extracted text", kind, kind)
}

// text converts an upload to a string, replacing invalid UTF-8
func text(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
