package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/project-quoter/internal/export"
	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/processor"
	"github.com/rezonia/project-quoter/internal/template"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	kinds := make([]string, 0, len(export.Kinds))
	for _, k := range export.Kinds {
		kinds = append(kinds, string(k))
	}
	c.JSON(http.StatusOK, OptionsResponse{
		Domains:      template.Domains,
		ProjectTypes: template.ProjectTypes,
		Complexities: template.Complexities,
		ExportKinds:  kinds,
	})
}

func (s *Server) handleTemplate(c *gin.Context) {
	var cfg template.ProjectConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project config", Details: err.Error()})
		return
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project config", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.generator.Generate(cfg))
}

func (s *Server) handleImportJSON(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	s.respondResult(c, s.importer.ParseJSON(body))
}

func (s *Server) handleImportAs(format processor.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := s.readBody(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
		defer cancel()

		s.respondResult(c, s.pipeline.ProcessAs(ctx, format, body))
	}
}

func (s *Server) handleImportAuto(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	s.respondResult(c, s.pipeline.Process(ctx, c.Query("filename"), body))
}

func (s *Server) handleTotals(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice", Details: err.Error()})
		return
	}
	if inv.Sections == nil {
		inv.Sections = []model.Section{}
	}

	consistent := inv.Consistent()
	inv.Recalculate()

	c.JSON(http.StatusOK, TotalsResponse{Invoice: &inv, Consistent: consistent})
}

func (s *Server) handleExport(c *gin.Context) {
	kind, err := export.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown document kind", Details: err.Error()})
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatHTML)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown output format", Details: err.Error()})
		return
	}
	includeOptional := false
	if v := c.Query("includeOptional"); v != "" {
		if includeOptional, err = strconv.ParseBool(v); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "includeOptional must be a boolean"})
			return
		}
	}

	body, ok := s.readBody(c)
	if !ok {
		return
	}

	// the body goes through the JSON importer so stale totals are repaired
	res := s.importer.ParseJSON(body)
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	var buf bytes.Buffer
	opts := export.Options{Kind: kind, IncludeOptional: includeOptional}
	if err := export.Render(&buf, res.Invoice, format, opts); err != nil {
		s.logger.Error("render failed", keyRequestID, c.GetString(keyRequestID), "kind", kind, "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render document", Details: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(kind)+format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	resp := InfoResponse{
		Format:   processor.DetectFormat(c.Query("filename"), body).String(),
		MimeType: http.DetectContentType(body),
		Size:     len(body),
	}

	if processor.IsBinary(body) {
		info, err := processor.InspectPDF(body)
		switch {
		case err == nil:
			resp.PDF = info
		case !errors.Is(err, processor.ErrNotPDF):
			resp.PDFError = err.Error()
		}
	} else {
		resp.System = importer.IsSystemText(string(body))
	}

	c.JSON(http.StatusOK, resp)
}

// readBody reads the request body, writing a 400 when it is missing or unreadable
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body", Details: err.Error()})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) respondResult(c *gin.Context, res *importer.Result) {
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
