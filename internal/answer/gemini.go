package answer

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"infobot-backend/internal/errx"
)

// GeminiAnswerer answers through the Gemini API.
type GeminiAnswerer struct {
	spec    PromptSpec
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini API client. baseURL is only set in tests.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	return genai.NewClient(ctx, cfg)
}

func NewGeminiAnswerer(spec PromptSpec, client *genai.Client, model string) *GeminiAnswerer {
	return &GeminiAnswerer{spec: spec, client: client, model: model, timeout: 20 * time.Second}
}

func (g *GeminiAnswerer) Answer(ctx context.Context, query, _ string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.spec.temperature()),
		MaxOutputTokens: int32(g.spec.maxTokens()),
	}
	if g.spec.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(g.spec.System, genai.RoleUser)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), cfg)
	if err != nil {
		return "", errx.WrapRemote(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errx.WrapRemote(ErrEmptyAnswer)
	}
	return text, nil
}
