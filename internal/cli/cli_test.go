package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lovewall/internal/insight"
	"github.com/ppiankov/lovewall/internal/llm"
	"github.com/ppiankov/lovewall/internal/model"
	"github.com/ppiankov/lovewall/internal/wall"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix("LOVEWALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := decodeConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LOVEWALL_LLM_PROVIDER", "openai")
	t.Setenv("LOVEWALL_LLM_API_KEY", "sk-lovewall")
	t.Setenv("LOVEWALL_SERVER_ADDR", ":9999")
	t.Setenv("LOVEWALL_SEARCH_MEMO_TTL", "0")
	t.Setenv("OPENAI_API_KEY", "sk-ignored")

	cfg, err := decodeConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-lovewall", cfg.LLM.APIKey)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 0, cfg.Search.MemoTTL)
}

func TestDecodeConfig_ProviderDefaultModel(t *testing.T) {
	models := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		models <- req.Model

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: `{"summary":"Loved. Really.","highlights":["Fit","Support","Value"]}`,
				},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	defer server.Close()

	t.Setenv("LOVEWALL_LLM_PROVIDER", "openai")
	t.Setenv("LOVEWALL_LLM_MODEL", "")
	t.Setenv("LOVEWALL_LLM_API_KEY", "")
	t.Setenv("LOVEWALL_LLM_BASE_URL", server.URL)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := decodeConfig(newTestViper())
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.Model)

	provider, err := llm.NewProvider(context.Background(), llm.ConfigFromModel(cfg.LLM), nil)
	require.NoError(t, err)
	require.NotNil(t, provider)

	_, outcome := insight.NewFetcher(provider, nil, nil).Fetch(context.Background(), nil)

	assert.Equal(t, insight.OutcomeLive, outcome)
	select {
	case got := <-models:
		assert.Equal(t, openai.GPT4oMini, got)
	default:
		t.Error("provider was never called")
	}
}

func TestDecodeConfig_OllamaNeedsModel(t *testing.T) {
	t.Setenv("LOVEWALL_LLM_PROVIDER", "ollama")
	t.Setenv("LOVEWALL_LLM_MODEL", "")

	cfg, err := decodeConfig(newTestViper())
	require.NoError(t, err)

	provider, err := llm.NewProvider(context.Background(), llm.ConfigFromModel(cfg.LLM), nil)
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestDecodeConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: ollama\n  model: llama3.1\nserver:\n  rate_limit: 2.5\n"), 0644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.1", cfg.LLM.Model)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.RateBurst)
}

func TestResolveCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	tests := []struct {
		in      model.LLMConfig
		wantKey string
		wantURL string
	}{
		{model.LLMConfig{Provider: "gemini"}, "google-key", ""},
		{model.LLMConfig{Provider: "OpenAI"}, "openai-key", ""},
		{model.LLMConfig{Provider: "claude"}, "anthropic-key", ""},
		{model.LLMConfig{Provider: "anthropic", APIKey: "explicit"}, "explicit", ""},
		{model.LLMConfig{Provider: "ollama"}, "", "http://ollama:11434"},
		{model.LLMConfig{Provider: "ollama", BaseURL: "http://local"}, "", "http://local"},
		{model.LLMConfig{Provider: ""}, "", ""},
	}

	for _, tt := range tests {
		c := tt.in
		resolveCredentials(&c)
		assert.Equal(t, tt.wantKey, c.APIKey, "provider %q", tt.in.Provider)
		assert.Equal(t, tt.wantURL, c.BaseURL, "provider %q", tt.in.Provider)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lovewall", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Lovewall Configuration File"))

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, *model.DefaultConfig(), cfg)

	assert.Error(t, writeDefaultConfig(path), "existing file must not be overwritten")
}

func TestRedacted(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "secret"

	out := redacted(cfg)
	assert.Equal(t, "********", out.LLM.APIKey)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
}

func TestRenderResult(t *testing.T) {
	result := wall.Result{
		Items: []model.ProofItem{{
			ID:        "rv-1",
			Category:  model.CategoryReview,
			Author:    model.Author{Name: "Priya", Verified: true},
			Body:      "Perfect fit.",
			Rating:    4,
			Timestamp: "Mar 12, 2024",
			Tags:      []string{"size", "shipping"},
		}},
		Count: 1,
	}

	var buf bytes.Buffer
	renderResult(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "Priya ✓")
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "Perfect fit.")
	assert.Contains(t, out, "#size #shipping")
	assert.Contains(t, out, "1 item(s)")
}

func TestRenderResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, wall.Result{Items: []model.ProofItem{}, Empty: true, Message: wall.EmptyMessage})

	assert.Equal(t, wall.EmptyMessage+"\n", buf.String())
}

func TestRenderInsight(t *testing.T) {
	var buf bytes.Buffer
	renderInsight(&buf, insight.FallbackServiceError, insight.OutcomeServiceError)
	out := buf.String()

	assert.Contains(t, out, insight.FallbackServiceError.Summary)
	for _, h := range insight.FallbackServiceError.Highlights {
		assert.Contains(t, out, "• "+h)
	}
	assert.Contains(t, out, "(static summary)")

	buf.Reset()
	renderInsight(&buf, insight.FallbackServiceError, insight.OutcomeLive)
	assert.NotContains(t, buf.String(), "(static summary)")
}
