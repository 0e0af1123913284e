package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/llm"
	"github.com/rezonia/project-quoter/internal/processor"
	"github.com/rezonia/project-quoter/internal/template"
)

// maxBodyBytes caps uploads and invoice payloads
const maxBodyBytes = 10 << 20

// Config holds server configuration
type Config struct {
	Address      string
	APIKey       string
	LLMBaseURL   string
	LLMModel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// Logger defaults to slog.Default()
	Logger *slog.Logger
	// Clock drives date defaults; defaults to the real clock
	Clock clockwork.Clock
	// Scope overrides the LLM scope extractor built from APIKey
	Scope processor.ScopeExtractor
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	logger    *slog.Logger
	clock     clockwork.Clock
	importer  *importer.Importer
	pipeline  *processor.Pipeline
	generator *template.Generator
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	router := gin.New()
	router.Use(requestID(), requestLogger(logger), recovery(logger))

	im := importer.New(importer.WithClock(clock), importer.WithLogger(logger))

	scope := config.Scope
	if scope == nil && config.APIKey != "" {
		var clientOpts []llm.ClientOption
		if config.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(config.LLMBaseURL))
		}
		var extractorOpts []llm.ExtractorOption
		if config.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(config.LLMModel))
		}
		scope = llm.NewExtractor(llm.NewClient(config.APIKey, clientOpts...), extractorOpts...)
	}

	pipelineOpts := []processor.Option{
		processor.WithImporter(im),
		processor.WithLogger(logger),
	}
	if scope != nil {
		pipelineOpts = append(pipelineOpts, processor.WithScopeExtractor(scope))
	}

	s := &Server{
		config:    config,
		router:    router,
		logger:    logger,
		clock:     clock,
		importer:  im,
		pipeline:  processor.NewPipeline(pipelineOpts...),
		generator: template.NewGenerator(template.WithClock(clock)),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/options", s.handleOptions)
		v1.POST("/templates", s.handleTemplate)

		imports := v1.Group("/import")
		imports.POST("/json", s.handleImportJSON)
		imports.POST("/pdf", s.handleImportAs(processor.FormatPDF))
		imports.POST("/docx", s.handleImportAs(processor.FormatDOCX))
		imports.POST("/text", s.handleImportAs(processor.FormatText))
		imports.POST("/auto", s.handleImportAuto)

		v1.POST("/totals", s.handleTotals)
		v1.POST("/export/:kind", s.handleExport)
		v1.POST("/info", s.handleInfo)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}
