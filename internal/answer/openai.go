package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"infobot-backend/internal/errx"
)

// OpenAIAnswerer answers with a chat completion under the prompt spec's
// system instructions.
type OpenAIAnswerer struct {
	spec    PromptSpec
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIAnswerer(spec PromptSpec, client *openai.Client, model string) *OpenAIAnswerer {
	return &OpenAIAnswerer{spec: spec, client: client, model: model, timeout: 20 * time.Second}
}

// NewOpenAIClient builds a client, honouring a custom base URL for
// OpenAI-compatible gateways.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (a *OpenAIAnswerer) Answer(ctx context.Context, query, _ string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.spec.temperature(),
		MaxTokens:   a.spec.maxTokens(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.spec.System},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", errx.WrapRemote(err)
	}
	if len(resp.Choices) == 0 {
		return "", errx.WrapRemote(fmt.Errorf("no choices"))
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errx.WrapRemote(ErrEmptyAnswer)
	}
	return text, nil
}
