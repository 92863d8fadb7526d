package service

import (
	"context"

	"github.com/lshigami/examsim/internal/model"
)

// LLMProvider is one model backend. Complete sends a system and a user
// prompt and returns the raw text reply; JSON handling belongs to the caller.
type LLMProvider interface {
	Name() model.Provider
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Close() error
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Close() error
}
