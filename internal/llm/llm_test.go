package llm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/project-quoter/internal/llm"
)

type fakeChat struct {
	response string
	err      error

	model  string
	system string
	user   string
}

func (f *fakeChat) ChatText(_ context.Context, model, systemPrompt, userPrompt string) (string, error) {
	f.model = model
	f.system = systemPrompt
	f.user = userPrompt
	return f.response, f.err
}

func TestNewClient(t *testing.T) {
	client := llm.NewClient("test-api-key")
	require.NotNil(t, client)
	assert.Equal(t, llm.ModelClaude35Sonnet, client.DefaultModel())
}

func TestNewClient_WithOptions(t *testing.T) {
	client := llm.NewClient("test-api-key",
		llm.WithBaseURL("https://custom.api.com/v1"),
		llm.WithDefaultModel(llm.ModelGPT4o),
	)
	require.NotNil(t, client)
	assert.Equal(t, llm.ModelGPT4o, client.DefaultModel())
}

func TestNewExtractor_WithModel(t *testing.T) {
	chat := &fakeChat{response: `{"sections":[]}`}
	extractor := llm.NewExtractor(chat, llm.WithModel(llm.ModelGPT4oMini))
	require.NotNil(t, extractor)

	_, err := extractor.ExtractScope(context.Background(), "text", []string{"SCOPE"})
	require.NoError(t, err)
	assert.Equal(t, llm.ModelGPT4oMini, chat.model)
}

func TestExtractScope(t *testing.T) {
	chat := &fakeChat{response: "Here you go:\n```json\n" + `{
		"sections": [
			{"title": "SCOPE OF WORK", "items": [
				{"desc": " Product catalog ", "detail": "Browse and search products"},
				{"desc": "", "detail": "dropped"}
			]},
			{"title": "NOT ASKED", "items": [{"desc": "Ignored"}]},
			{"title": "TIMELINE", "items": []}
		]
	}` + "\n```"}

	got, err := llm.NewExtractor(chat).ExtractScope(context.Background(),
		"We need a product catalog.", []string{"SCOPE OF WORK", "TIMELINE"})
	require.NoError(t, err)

	assert.Equal(t, map[string][]llm.ScopeItem{
		"SCOPE OF WORK": {{Description: "Product catalog", Detail: "Browse and search products"}},
	}, got)
	assert.Equal(t, llm.SystemPromptScopeExtractor, chat.system)
	assert.Contains(t, chat.user, "SCOPE OF WORK\nTIMELINE")
	assert.Contains(t, chat.user, "We need a product catalog.")
}

func TestExtractScope_NoTitles(t *testing.T) {
	chat := &fakeChat{err: errors.New("should not be called")}

	got, err := llm.NewExtractor(chat).ExtractScope(context.Background(), "text", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, chat.user)
}

func TestExtractScope_Errors(t *testing.T) {
	t.Run("chat failure", func(t *testing.T) {
		chat := &fakeChat{err: errors.New("rate limited")}
		_, err := llm.NewExtractor(chat).ExtractScope(context.Background(), "text", []string{"A B C D"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("not json", func(t *testing.T) {
		chat := &fakeChat{response: "I could not find anything."}
		_, err := llm.NewExtractor(chat).ExtractScope(context.Background(), "text", []string{"A B C D"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse scope response")
	})
}

func TestExtractScope_TruncatesDocument(t *testing.T) {
	tests := []struct {
		name  string
		runes int
		sent  int
	}{
		{"at limit", llm.MaxDocumentChars, llm.MaxDocumentChars},
		{"over limit", llm.MaxDocumentChars + 50, llm.MaxDocumentChars},
		{"short", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{response: `{"sections":[]}`}
			doc := strings.Repeat("é", tt.runes)

			_, err := llm.NewExtractor(chat).ExtractScope(context.Background(), doc, []string{"SCOPE"})
			require.NoError(t, err)
			assert.Equal(t, tt.sent, strings.Count(chat.user, "é"))
			assert.NotContains(t, chat.user, "\uFFFD")
		})
	}
}

func TestExtractJSON_CodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "Here is the scope:\n```json\n{\"sections\": []}\n```",
			expected: `{"sections": []}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"sections\": [1]}\n```",
			expected: `{"sections": [1]}`,
		},
		{
			name:     "raw json object",
			input:    `  {"sections": []}  `,
			expected: `{"sections": []}`,
		},
		{
			name:     "json with explanation",
			input:    "I found:\n```json\n{\"sections\": []}\n```\nThat is all.",
			expected: `{"sections": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, llm.ExtractJSON(tt.input))
		})
	}
}

func TestInferProvider(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{llm.ModelClaude3Haiku, "anthropic"},
		{llm.ModelGeminiFlash, "google"},
		{"gpt-4o", "openai"},
		{"claude-sonnet", "anthropic"},
		{"Llama-3-70b", "meta"},
		{"something-else", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.InferProvider(tt.id))
		})
	}
}

func TestPromptTemplates(t *testing.T) {
	assert.Contains(t, llm.SystemPromptScopeExtractor, "JSON")
	assert.Equal(t, 2, strings.Count(llm.UserPromptScopeExtraction, "%s"))
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, "https://openrouter.ai/api/v1", llm.DefaultBaseURL)
}

func BenchmarkExtractJSON(b *testing.B) {
	input := "Here is the data:\n```json\n{\"sections\": [{\"title\": \"SCOPE\"}]}\n```"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llm.ExtractJSON(input)
	}
}
