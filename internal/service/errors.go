package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/examsim/internal/model"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidAnswer    = errors.New("answer text or audio data required")
	ErrSessionNotActive = errors.New("session is not in the exam loop")
	ErrAlreadyAnswered  = errors.New("current question has already been answered")

	// ErrUpstream matches every *ProviderError via errors.Is.
	ErrUpstream              = errors.New("language model provider failed")
	ErrProviderNotConfigured = errors.New("provider is not configured")
)

// ProviderError wraps a failed provider call: transport errors, non-2xx
// responses and malformed JSON all end up here.
type ProviderError struct {
	Provider model.Provider
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrUpstream
}
