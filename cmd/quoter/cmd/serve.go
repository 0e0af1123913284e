package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for building, importing and exporting quotations.

The API provides endpoints for:
  - GET  /api/v1/options          - Domains, project types, complexities, kinds
  - POST /api/v1/templates        - Generate a template from a project config
  - POST /api/v1/import/json      - Import a JSON export
  - POST /api/v1/import/pdf       - Import PDF text
  - POST /api/v1/import/docx      - Import DOCX text
  - POST /api/v1/import/text      - Import plain text
  - POST /api/v1/import/auto      - Detect by ?filename= and content
  - POST /api/v1/totals           - Recompute totals
  - POST /api/v1/export/:kind     - Render (?format=html|text|pdf|json|yaml)
  - POST /api/v1/info             - Describe an upload
  - GET  /health                  - Health check

Examples:
  # Start server on default port
  quoter serve

  # Start on custom port with LLM scope suggestions
  quoter serve --address :9090 --api-key <key>`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address (env: QUOTER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("address") {
		if v := os.Getenv("QUOTER_ADDRESS"); v != "" {
			serverAddr = v
		}
	}

	config := &server.Config{
		Address:      serverAddr,
		APIKey:       apiKey,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       logger,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if apiKey != "" {
		logger.Info("LLM scope suggestions enabled", "model", llmModel)
	} else {
		logger.Info("LLM scope suggestions disabled (no API key)")
	}

	return server.NewServer(config).Run(ctx)
}
