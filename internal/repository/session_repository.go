package repository

import (
	"context"
	"errors"

	"github.com/lshigami/examsim/internal/model"
)

// ErrNotFound is returned when a session has no readable record. Corrupt
// records are reported the same way.
var ErrNotFound = errors.New("session record not found")

type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	ListSummaries(ctx context.Context) ([]model.SessionSummary, error) // newest first
}
