package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ppiankov/lovewall/internal/model"
	"github.com/ppiankov/lovewall/internal/util"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the Provider interface using Gemini structured output
type GeminiProvider struct {
	client *genai.Client
	config Config
	logger *zap.Logger
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config Config, logger *zap.Logger) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: util.NewHTTPClient(timeoutOf(config), config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(config.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable sends a minimal prompt to confirm the key and model work
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := p.client.Models.GenerateContent(ctx, p.config.model(Request{}, defaultGeminiModel), genai.Text("ping"), &genai.GenerateContentConfig{
		MaxOutputTokens: 10,
	})
	if err != nil {
		p.logger.Debug("Gemini ping failed", zap.Error(err))
		return false
	}
	return extractGeminiText(resp) != ""
}

// Generate requests a schema-constrained insight from Gemini
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := p.config.model(req, defaultGeminiModel)

	ctx, cancel := context.WithTimeout(ctx, timeoutOf(p.config))
	defer cancel()

	temperature := float32(0.4)
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   int32(p.config.maxTokens(req)),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    insightSchema(),
	}

	p.logger.Debug("Generating with Gemini", zap.String("model", modelName))

	resp, err := p.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractGeminiText(resp))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &Response{
		Text:       text,
		Model:      modelName,
		TokensUsed: tokens,
	}, nil
}

// insightSchema mirrors model.Insight
func insightSchema() *genai.Schema {
	count := int64(model.HighlightCount)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "2-sentence summary of community sentiment",
			},
			"highlights": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3 short punchy highlight phrases",
				MinItems:    &count,
				MaxItems:    &count,
			},
		},
		Required: []string{"summary", "highlights"},
	}
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}

func timeoutOf(config Config) time.Duration {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return timeout
}
