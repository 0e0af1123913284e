// Package importer reconstructs invoices from uploaded documents.
//
// Three paths share one output contract (Result):
//   - JSON exported by this tool, validated and repaired field by field
//   - text extracted from PDFs this tool rendered, parsed deterministically
//   - text extracted from any other PDF or DOCX, parsed best-effort
//
// No entry point panics or returns a raw error; every failure is folded
// into Result.Errors.
package importer

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/rezonia/project-quoter/internal/model"
)

// Importer holds the collaborators shared by all parse paths
type Importer struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option configures the importer
type Option func(*Importer)

// WithClock sets the clock used to default creation dates
func WithClock(clock clockwork.Clock) Option {
	return func(im *Importer) {
		im.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

// New creates an importer with the real clock and the default logger
func New(opts ...Option) *Importer {
	im := &Importer{
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

var defaultImporter = New()

// ParseJSON imports a JSON document using the default importer
func ParseJSON(data []byte) *Result {
	return defaultImporter.ParseJSON(data)
}

// ParsePDFText imports text extracted from a PDF using the default importer
func ParsePDFText(text string) *Result {
	return defaultImporter.ParsePDFText(text)
}

// ParseDOCXText imports text extracted from a DOCX using the default importer
func ParseDOCXText(text string) *Result {
	return defaultImporter.ParseDOCXText(text)
}

// ParseText imports a plain text upload using the default importer
func ParseText(text string) *Result {
	return defaultImporter.ParseText(text)
}

// ParsePDFText routes extracted PDF text to the system parser when the
// text carries this tool's signatures, and to the external parser otherwise.
func (im *Importer) ParsePDFText(text string) *Result {
	return im.guard(SourcePDFExternal, "PDF", func() *Result {
		if IsSystemText(text) {
			im.logger.Debug("pdf text matched system signatures")
			return im.parseSystem(text)
		}
		return im.parseExternal(text, SourcePDFExternal)
	})
}

// ParseSystemText parses text known to come from this tool's renderer
func (im *Importer) ParseSystemText(text string) *Result {
	return im.guard(SourcePDFSystem, "PDF", func() *Result {
		return im.parseSystem(text)
	})
}

// ParseExternalText parses text from a foreign document, tagged with source
func (im *Importer) ParseExternalText(text string, source Source) *Result {
	return im.guard(source, "document", func() *Result {
		return im.parseExternal(text, source)
	})
}

// ParseDOCXText runs the external algorithm over DOCX text
func (im *Importer) ParseDOCXText(text string) *Result {
	return im.guard(SourceDOCX, "DOCX", func() *Result {
		return im.parseExternal(text, SourceDOCX)
	})
}

// ParseText handles plain text uploads, which are treated as external documents
func (im *Importer) ParseText(text string) *Result {
	return im.guard(SourcePDFExternal, "text", func() *Result {
		return im.parseExternal(text, SourcePDFExternal)
	})
}

// guard converts a panic inside a parse path into a failed result
func (im *Importer) guard(source Source, kind string, parse func() *Result) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			im.logger.Error("import panicked", "source", source, "panic", r)
			res = Failure(source, fmt.Sprintf("Failed to parse %s: %v", kind, r))
		}
	}()
	return parse()
}

func (im *Importer) today() string {
	return im.clock.Now().Format(model.DateLayout)
}
