package cmd

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available LLM models from API",
	Long: `Fetch and list available LLM models from the configured API endpoint.

This command queries the /models endpoint of your LLM provider. It requires
LLM_API_KEY; LLM_BASE_URL defaults to OpenRouter.

To use a specific model for scope suggestions, set:
  LLM_MODEL=<model-id>

Or use the CLI flag:
  --llm-model <model-id>`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "----------------------")

	baseURL := llmBaseURL
	if baseURL == "" {
		baseURL = llm.DefaultBaseURL
	}
	currentModel := llmModel
	if currentModel == "" {
		currentModel = "(not set)"
	}
	apiKeyStatus := "Not set"
	if apiKey != "" {
		if len(apiKey) > 8 {
			apiKeyStatus = "Set (" + apiKey[:8] + "...)"
		} else {
			apiKeyStatus = "Set"
		}
	}

	fmt.Fprintf(out, "  LLM_BASE_URL: %s\n", baseURL)
	fmt.Fprintf(out, "  LLM_MODEL:    %s\n", currentModel)
	fmt.Fprintf(out, "  LLM_API_KEY:  %s\n", apiKeyStatus)
	fmt.Fprintln(out)

	if apiKey == "" {
		fmt.Fprintln(out, "⚠️  LLM_API_KEY is required. Set it via environment variable or --api-key flag.")
		return nil
	}

	fmt.Fprintf(out, "Fetching models from %s/models...\n\n", baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := llm.NewClient(apiKey, llm.WithBaseURL(baseURL))
	models, err := client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(out, "⚠️  Could not fetch models: %v\n\n", err)
		fmt.Fprintln(out, "Tip: Your API provider may not support the /models endpoint.")
		fmt.Fprintln(out, "     You can still use a model by setting LLM_MODEL directly.")
		return nil
	}

	if len(models) == 0 {
		fmt.Fprintln(out, "No models returned from API.")
		return nil
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})

	fmt.Fprintf(out, "Available Models (%d):\n", len(models))
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL ID\tOWNER\tCREATED")
	fmt.Fprintln(w, "--------\t-----\t-------")

	for _, m := range models {
		created := ""
		if m.Created > 0 {
			created = time.Unix(m.Created, 0).Format("2006-01-02")
		}
		owner := m.OwnedBy
		if owner == "" {
			owner = llm.InferProvider(m.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, owner, created)
	}
	return w.Flush()
}
