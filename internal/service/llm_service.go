package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/examsim/config"
	"github.com/lshigami/examsim/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	// TranscriptionFailed stands in for the answer when audio cannot be
	// transcribed; grading still goes ahead.
	TranscriptionFailed = "[Error: Could not transcribe audio]"

	mockTranscript = "This is a mock transcription of the user's voice answer."
)

// LLMService is the single entry point to language-model backends. With no
// providers configured it serves canned results so the API works offline.
type LLMService interface {
	GenerateBatch(ctx context.Context, req model.BatchRequest) (*model.QuestionBatch, error)
	Evaluate(ctx context.Context, req model.EvaluationRequest) (*model.Verdict, error)
	Transcribe(ctx context.Context, audioPayload string) string
	Close() error
}

type llmService struct {
	providers   map[model.Provider]LLMProvider
	transcriber Transcriber
}

func NewLLMService(providers []LLMProvider, transcriber Transcriber) LLMService {
	s := &llmService{
		providers:   make(map[model.Provider]LLMProvider, len(providers)),
		transcriber: transcriber,
	}
	for _, p := range providers {
		s.providers[p.Name()] = p
	}
	if len(s.providers) == 0 {
		log.Warn().Msg("No LLM provider credentials set. LLMService will serve mock responses.")
	}
	return s
}

// NewLLMServiceFromConfig builds every provider and the transcriber the
// configuration has credentials for. Without any provider credentials the
// whole service runs on mock responses, transcription included.
func NewLLMServiceFromConfig(ctx context.Context, cfg *config.Config) (LLMService, error) {
	if !cfg.HasProviderCredentials() {
		return NewLLMService(nil, nil), nil
	}

	var providers []LLMProvider
	if cfg.OpenAI.APIKey != "" {
		providers = append(providers, NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.LLMTimeout))
	}
	if cfg.Gemini.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	var transcriber Transcriber
	switch cfg.Speech.Transcriber {
	case "gcp":
		t, err := NewSpeechTranscriber(ctx, cfg.Speech.LanguageCode)
		if err != nil {
			return nil, err
		}
		transcriber = t
	case "openai", "":
		if cfg.OpenAI.APIKey != "" {
			transcriber = NewOpenAITranscriber(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.TranscribeModel, cfg.Speech.LanguageCode, cfg.LLMTimeout)
		}
	default:
		return nil, fmt.Errorf("unknown transcriber %q", cfg.Speech.Transcriber)
	}

	return NewLLMService(providers, transcriber), nil
}

func (s *llmService) offline() bool {
	return len(s.providers) == 0
}

func (s *llmService) GenerateBatch(ctx context.Context, req model.BatchRequest) (*model.QuestionBatch, error) {
	if s.offline() {
		return mockBatch(req), nil
	}

	user := fmt.Sprintf(batchUserPrompt,
		req.Count,
		req.Difficulty,
		strings.Join(req.Topics, ", "),
		strings.Join(req.Types, ", "),
		req.Difficulty,
	)

	var batch model.QuestionBatch
	if err := s.invoke(ctx, "generate_batch", req.Provider, batchSystemPrompt, user, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *llmService) Evaluate(ctx context.Context, req model.EvaluationRequest) (*model.Verdict, error) {
	if s.offline() {
		return &model.Verdict{
			IsCorrect:   true,
			Confidence:  0.9,
			Reason:      "Matches mock",
			Explanation: "This is a mock evaluation.",
		}, nil
	}

	options := "N/A"
	if len(req.Options) > 0 {
		options = strings.Join(req.Options, ", ")
	}
	constraints := "None"
	if req.Constraints != nil && *req.Constraints != "" {
		constraints = *req.Constraints
	}
	user := fmt.Sprintf(evaluationUserPrompt, req.Question, options, constraints, req.ReferenceAnswer, req.CandidateAnswer)

	var verdict model.Verdict
	if err := s.invoke(ctx, "evaluate", req.Provider, evaluationSystemPrompt, user, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// Transcribe never fails: anything that goes wrong is logged and the
// TranscriptionFailed sentinel is returned instead.
func (s *llmService) Transcribe(ctx context.Context, audioPayload string) string {
	if s.transcriber == nil {
		if s.offline() {
			return mockTranscript
		}
		log.Warn().Msg("Audio submitted but no transcriber is configured")
		return TranscriptionFailed
	}

	audio, err := decodeAudio(audioPayload)
	if err != nil {
		log.Warn().Err(err).Msg("Audio payload is not valid base64")
		return TranscriptionFailed
	}

	text, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		log.Error().Err(err).Int("bytes", len(audio)).Msg("Transcription failed")
		return TranscriptionFailed
	}
	return text
}

func (s *llmService) Close() error {
	var errs []error
	for _, p := range s.providers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s provider: %w", p.Name(), err))
		}
	}
	if s.transcriber != nil {
		if err := s.transcriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close transcriber: %w", err))
		}
	}
	return errors.Join(errs...)
}

// invoke sends both prompts to the selected provider and decodes the reply,
// with any code fence removed, into out.
func (s *llmService) invoke(ctx context.Context, op string, provider model.Provider, systemPrompt, userPrompt string, out any) error {
	if provider == "" {
		provider = model.ProviderOpenAI
	}
	p, ok := s.providers[provider]
	if !ok {
		return &ProviderError{Provider: provider, Op: op, Err: ErrProviderNotConfigured}
	}

	raw, err := p.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Error().Err(err).Str("provider", string(provider)).Str("op", op).Msg("LLM call failed")
		return &ProviderError{Provider: provider, Op: op, Err: err}
	}

	body := stripCodeFence(raw)
	if !strings.HasPrefix(body, "{") {
		log.Error().Str("provider", string(provider)).Str("op", op).Str("raw", truncate(raw, 200)).Msg("LLM reply is not a JSON object")
		return &ProviderError{Provider: provider, Op: op, Err: errors.New("reply is not a JSON object")}
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		log.Error().Err(err).Str("provider", string(provider)).Str("op", op).Str("raw", truncate(raw, 200)).Msg("Malformed JSON from LLM")
		return &ProviderError{Provider: provider, Op: op, Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	return nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// decodeAudio accepts plain base64 as well as a data URL.
func decodeAudio(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.IndexByte(payload, ','); i >= 0 {
			payload = payload[i+1:]
		}
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("empty audio payload")
	}
	return audio, nil
}

func mockBatch(req model.BatchRequest) *model.QuestionBatch {
	qType := "MCQ"
	if len(req.Types) > 0 {
		qType = req.Types[0]
	}
	batch := &model.QuestionBatch{Questions: make([]model.QuestionDraft, 0, req.Count)}
	for i := 0; i < req.Count; i++ {
		answer := "A"
		explanation := "Mock explanation"
		batch.Questions = append(batch.Questions, model.QuestionDraft{
			Question:      fmt.Sprintf("Mock Question %d", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: &answer,
			Concept:       "Mock",
			Difficulty:    req.Difficulty,
			Type:          qType,
			Explanation:   &explanation,
		})
	}
	return batch
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
