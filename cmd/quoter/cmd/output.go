package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rezonia/project-quoter/internal/llm"
	"github.com/rezonia/project-quoter/internal/processor"
)

// collectFiles expands globs and directories into the list of supported files
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && processor.IsSupported(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if info.IsDir() {
				continue
			}
			// an explicit single file is taken as is; glob hits are filtered
			if len(matches) == 1 || processor.IsSupported(match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}

// openOutput returns stdout for an empty path, otherwise a created file
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeData encodes v as JSON or YAML according to format
func writeData(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(v)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// newPipeline builds the import pipeline, with LLM scope suggestions when an
// API key is configured
func newPipeline() *processor.Pipeline {
	opts := []processor.Option{processor.WithLogger(logger)}

	if apiKey != "" {
		var clientOpts []llm.ClientOption
		if llmBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(llmBaseURL))
		}
		var extractorOpts []llm.ExtractorOption
		if llmModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(llmModel))
		}
		extractor := llm.NewExtractor(llm.NewClient(apiKey, clientOpts...), extractorOpts...)
		opts = append(opts, processor.WithScopeExtractor(extractor))
		printVerbose("LLM scope suggestions enabled (model: %s)\n", llmModel)
	}

	return processor.NewPipeline(opts...)
}
