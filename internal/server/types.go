package server

import (
	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/processor"
)

// OptionsResponse lists the values accepted by the template endpoint
type OptionsResponse struct {
	Domains      []string `json:"domains"`
	ProjectTypes []string `json:"projectTypes"`
	Complexities []string `json:"complexities"`
	ExportKinds  []string `json:"exportKinds"`
}

// TotalsResponse is the response for the totals endpoint
type TotalsResponse struct {
	Invoice *model.Invoice `json:"invoice"`
	// Consistent is false when the submitted totals did not match the sections
	Consistent bool `json:"consistent"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Format   string             `json:"format"`
	MimeType string             `json:"mime_type"`
	Size     int                `json:"size"`
	System   bool               `json:"system"`
	PDF      *processor.PDFInfo `json:"pdf,omitempty"`
	PDFError string             `json:"pdf_error,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
