package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/logging"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	logLevel     string
	apiKey       string
	llmBaseURL   string
	llmModel     string

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "quoter",
	Short: "Build, import and export project quotations",
	Long: `Quoter prices software projects as a tree of sections, categories and features.

It can:
  - generate a starting quotation from a domain, project type and complexity
  - import quotations from JSON exports, system-generated PDF text, or any
    other extracted document text (PDF, DOCX, plain text)
  - recompute totals and render quotations, invoices and contracts

Examples:
  # Generate a template
  quoter template --domain SaaS --type "Web App" --complexity Standard -o quote.json

  # Import a previously exported quotation
  quoter import quote.json

  # Render a PDF quotation
  quoter export quote.json --kind quotation --as pdf -o quote.pdf`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, yaml, table) (env: QUOTER_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for scope extraction (env: LLM_MODEL)")

	cobra.OnInitialize(initConfig)
}

// initConfig fills unset flags from the environment, after loading .env
func initConfig() {
	_ = godotenv.Load()

	if !rootCmd.PersistentFlags().Changed("format") {
		if v := os.Getenv("QUOTER_FORMAT"); v != "" {
			outputFormat = v
		}
	}
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}

	// stdout carries command output, so logs go to stderr
	logger = logging.Setup(os.Stderr, logLevel)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
