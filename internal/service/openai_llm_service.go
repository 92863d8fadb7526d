package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/examsim/internal/model"
)

// Appended to system prompts that never mention JSON; the API refuses
// json_object mode otherwise.
const jsonModeHint = " You must output JSON."

// openAIClient is the shared HTTP plumbing for chat and transcription.
type openAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIClient(apiKey, baseURL string, timeout time.Duration) openAIClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return openAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c openAIClient) post(ctx context.Context, path, contentType string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("openai returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode openai response: %w", err)
	}
	return nil
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIProvider struct {
	openAIClient
	model string
}

// NewOpenAIProvider talks to an OpenAI-compatible /v1/chat/completions endpoint
// in JSON mode.
func NewOpenAIProvider(apiKey, baseURL, modelName string, timeout time.Duration) LLMProvider {
	return &openAIProvider{
		openAIClient: newOpenAIClient(apiKey, baseURL, timeout),
		model:        modelName,
	}
}

func (p *openAIProvider) Name() model.Provider {
	return model.ProviderOpenAI
}

func (p *openAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !strings.Contains(strings.ToLower(systemPrompt), "json") {
		systemPrompt += jsonModeHint
	}

	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var out chatResponse
	if err := p.post(ctx, "/v1/chat/completions", "application/json", payload, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (p *openAIProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

type openAITranscriber struct {
	openAIClient
	model    string
	language string
}

// NewOpenAITranscriber uploads audio to /v1/audio/transcriptions. language
// accepts either an ISO-639-1 code or a locale such as en-US.
func NewOpenAITranscriber(apiKey, baseURL, modelName, language string, timeout time.Duration) Transcriber {
	if i := strings.IndexByte(language, '-'); i > 0 {
		language = language[:i]
	}
	return &openAITranscriber{
		openAIClient: newOpenAIClient(apiKey, baseURL, timeout),
		model:        modelName,
		language:     strings.ToLower(language),
	}
}

func (t *openAITranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if t.language != "" {
		if err := writer.WriteField("language", t.language); err != nil {
			return "", fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := t.post(ctx, "/v1/audio/transcriptions", writer.FormDataContentType(), buf.Bytes(), &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Text), nil
}

func (t *openAITranscriber) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
