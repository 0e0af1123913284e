package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDocumentChars caps how much document text is sent in one prompt
const MaxDocumentChars = 12000

// ChatCompleter is the part of Client the extractor needs
type ChatCompleter interface {
	ChatText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// ScopeItem is a deliverable proposed for a section
type ScopeItem struct {
	Description string `json:"desc"`
	Detail      string `json:"detail"`
}

type scopeResponse struct {
	Sections []struct {
		Title string      `json:"title"`
		Items []ScopeItem `json:"items"`
	} `json:"sections"`
}

// Extractor proposes feature lists for document sections
type Extractor struct {
	client ChatCompleter
	model  string
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithModel sets the model used for scope extraction
func WithModel(model string) ExtractorOption {
	return func(e *Extractor) {
		e.model = model
	}
}

// NewExtractor creates a scope extractor on top of a chat client
func NewExtractor(client ChatCompleter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractScope asks the model which deliverables of text belong under each
// title. Items for titles that were not asked for are discarded, as are
// items without a description.
func (e *Extractor) ExtractScope(ctx context.Context, text string, titles []string) (map[string][]ScopeItem, error) {
	if len(titles) == 0 {
		return map[string][]ScopeItem{}, nil
	}

	prompt := fmt.Sprintf(UserPromptScopeExtraction, strings.Join(titles, "\n"), truncate(text, MaxDocumentChars))

	resp, err := e.client.ChatText(ctx, e.model, SystemPromptScopeExtractor, prompt)
	if err != nil {
		return nil, fmt.Errorf("scope extraction failed: %w", err)
	}

	var parsed scopeResponse
	if err := json.Unmarshal([]byte(ExtractJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse scope response: %w", err)
	}

	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}

	out := make(map[string][]ScopeItem)
	for _, s := range parsed.Sections {
		title := strings.TrimSpace(s.Title)
		if !wanted[title] {
			continue
		}
		for _, item := range s.Items {
			item.Description = strings.TrimSpace(item.Description)
			item.Detail = strings.TrimSpace(item.Detail)
			if item.Description == "" {
				continue
			}
			out[title] = append(out[title], item)
		}
	}
	return out, nil
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
