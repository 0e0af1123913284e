package processor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned when inspected data is not a binary PDF
var ErrNotPDF = errors.New("not a PDF document")

// PDFInfo describes a binary PDF upload
type PDFInfo struct {
	Pages     int    `json:"pages"`
	Version   string `json:"version"`
	Encrypted bool   `json:"encrypted"`
}

// InspectPDF validates a binary PDF and reports its page count. The
// content itself is not parsed; users are asked to upload extracted text.
func InspectPDF(data []byte) (*PDFInfo, error) {
	if !bytes.HasPrefix(data, magicPDF) {
		return nil, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	return &PDFInfo{
		Pages:     ctx.PageCount,
		Version:   ctx.VersionString(),
		Encrypted: ctx.Encrypt != nil,
	}, nil
}
