package suggest

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/secureai/secureai/finding"
)

type openaiProvider struct {
	client openai.Client
}

func newOpenAIProvider(apiKey string) *openaiProvider {
	return &openaiProvider{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (p *openaiProvider) Name() string { return "openai" }

func (p *openaiProvider) Suggest(ctx context.Context, f finding.Finding) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(remediationPrompt(f)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
