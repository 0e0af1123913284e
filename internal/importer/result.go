package importer

import (
	"github.com/rezonia/project-quoter/internal/model"
)

// Source identifies which parser produced a result
type Source string

const (
	SourceJSON        Source = "json"
	SourcePDFSystem   Source = "pdf-system"
	SourcePDFExternal Source = "pdf-external"
	SourceDOCX        Source = "docx"
)

// Result is the shared output contract of every import path.
// Invoice is only set when Success is true.
type Result struct {
	Success  bool           `json:"success" yaml:"success"`
	Invoice  *model.Invoice `json:"invoice,omitempty" yaml:"invoice,omitempty"`
	Errors   []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Source   Source         `json:"source" yaml:"source"`
}

// NeedsReview reports whether any imported feature is flagged for review
func (r *Result) NeedsReview() bool {
	if r.Invoice == nil {
		return false
	}
	for _, f := range r.Invoice.Features() {
		if f.Flag == model.FlagNeedsReview {
			return true
		}
	}
	return false
}

// Failure builds an unsuccessful result with a single error
func Failure(source Source, message string) *Result {
	return &Result{
		Success: false,
		Errors:  []string{message},
		Source:  source,
	}
}

func success(source Source, inv *model.Invoice, warnings []string) *Result {
	return &Result{
		Success:  true,
		Invoice:  inv,
		Warnings: warnings,
		Source:   source,
	}
}
