package quoterlib

import (
	"context"
	"io"
	"sync"

	"github.com/rezonia/project-quoter/internal/export"
	"github.com/rezonia/project-quoter/internal/llm"
	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/processor"
	"github.com/rezonia/project-quoter/internal/template"
)

// Options configures a Quoter
type Options struct {
	// LLM Configuration, used to suggest features for foreign documents
	LLMAPIKey  string // API key (env: LLM_API_KEY)
	LLMBaseURL string // Base URL (env: LLM_BASE_URL)
	LLMModel   string // Scope extraction model (env: LLM_MODEL)

	EnableLLM bool
}

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		EnableLLM:  true,
		LLMBaseURL: llm.DefaultBaseURL,
		LLMModel:   llm.ModelClaude35Sonnet,
	}
}

// Quoter wraps the import pipeline, the template generator and the renderers
type Quoter struct {
	pipeline *processor.Pipeline
}

// NewQuoter creates a quoter with the given options
func NewQuoter(opts Options) *Quoter {
	var pipelineOpts []processor.Option
	if opts.EnableLLM && opts.LLMAPIKey != "" {
		var clientOpts []llm.ClientOption
		if opts.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(opts.LLMBaseURL))
		}
		var extractorOpts []llm.ExtractorOption
		if opts.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(opts.LLMModel))
		}
		extractor := llm.NewExtractor(llm.NewClient(opts.LLMAPIKey, clientOpts...), extractorOpts...)
		pipelineOpts = append(pipelineOpts, processor.WithScopeExtractor(extractor))
	}

	return &Quoter{
		pipeline: processor.NewPipeline(pipelineOpts...),
	}
}

// NewDefaultQuoter creates a quoter with default options
func NewDefaultQuoter() *Quoter {
	return NewQuoter(DefaultOptions())
}

// Import reads r and imports it, choosing the parser from name and content.
// Parse failures are reported in the Result; only read errors are returned.
func (q *Quoter) Import(ctx context.Context, name string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(name, "input", "failed to read input", err)
	}
	return q.pipeline.Process(ctx, name, data), nil
}

// Input is a named document for ImportBatch
type Input struct {
	Name   string
	Reader io.Reader
}

// ImportBatch imports several documents concurrently. Results keep the
// order of inputs; the first read error is returned.
func (q *Quoter) ImportBatch(ctx context.Context, inputs []Input) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in Input) {
			defer wg.Done()
			results[idx], errs[idx] = q.Import(ctx, in.Name, in.Reader)
		}(i, input)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Generate builds a template invoice after validating cfg
func (q *Quoter) Generate(cfg ProjectConfig) (*Invoice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return template.Generate(cfg), nil
}

// Render writes inv as the given document kind and format
func (q *Quoter) Render(w io.Writer, inv *Invoice, format Format, opts RenderOptions) error {
	return export.Render(w, inv, format, opts)
}
