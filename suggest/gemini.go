package suggest

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/secureai/secureai/finding"
)

type geminiProvider struct {
	apiKey string
	model  string
}

func newGeminiProvider(apiKey string) *geminiProvider {
	return &geminiProvider{apiKey: apiKey, model: "gemini-2.5-flash"}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Suggest(ctx context.Context, f finding.Finding) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(remediationPrompt(f)), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
