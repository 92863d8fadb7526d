package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examsim/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type geminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider connects to the Gemini API. The model is asked for JSON
// output directly, so replies usually arrive without code fences.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (LLMProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel(modelName)
	m.SetTemperature(0.2)
	m.ResponseMIMEType = "application/json"

	log.Info().Str("model", modelName).Msg("Gemini provider ready")
	return &geminiProvider{client: client, model: m}, nil
}

func (p *geminiProvider) Name() model.Provider {
	return model.ProviderGemini
}

// Complete folds both prompts into a single text part; the system prompt
// leads, labelled, followed by the user prompt.
func (p *geminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	prompt := fmt.Sprintf("System: %s\n\nUser: %s", systemPrompt, userPrompt)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text parts")
	}
	return sb.String(), nil
}

func (p *geminiProvider) Close() error {
	return p.client.Close()
}
