package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/examsim/internal/model"
	"github.com/rs/zerolog/log"
)

const sessionFileExt = ".json"

type fileSessionRepository struct {
	dir string
}

// NewFileSessionRepository stores one JSON document per session under dir.
func NewFileSessionRepository(dir string) (SessionRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session directory %s: %w", dir, err)
	}
	return &fileSessionRepository{dir: dir}, nil
}

func (r *fileSessionRepository) path(id string) (string, error) {
	// Only canonical UUIDs become file names, so an id can never escape dir.
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrNotFound
	}
	return filepath.Join(r.dir, parsed.String()+sessionFileExt), nil
}

// Save writes to a temp file in the same directory and renames it over the
// final path, so readers see either the old record or the new one.
func (r *fileSessionRepository) Save(_ context.Context, session *model.Session) error {
	path, err := r.path(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session id %q", session.ID)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	tmp, err := os.CreateTemp(r.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for session %s: %w", session.ID, err)
	}
	tmpPath := tmp.Name()

	writeErr := func() error {
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmpPath, path)
	}()
	if writeErr != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("tmp", tmpPath).Msg("Failed to remove temp session file")
		}
		log.Error().Err(writeErr).Str("sessionID", session.ID).Msg("Failed to save session")
		return fmt.Errorf("save session %s: %w", session.ID, writeErr)
	}
	return nil
}

func (r *fileSessionRepository) FindByID(_ context.Context, id string) (*model.Session, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	session, err := readSessionFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("sessionID", id).Msg("Could not load session record")
		}
		return nil, ErrNotFound
	}
	return session, nil
}

func (r *fileSessionRepository) ListSummaries(_ context.Context) ([]model.SessionSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.SessionSummary{}, nil
		}
		return nil, fmt.Errorf("read session directory: %w", err)
	}

	summaries := make([]model.SessionSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionFileExt) {
			continue
		}
		session, err := readSessionFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping unreadable session record")
			continue
		}
		summaries = append(summaries, session.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func readSessionFile(path string) (*model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("decode %s: missing id", filepath.Base(path))
	}
	return &session, nil
}
