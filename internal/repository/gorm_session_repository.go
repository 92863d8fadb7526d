package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/examsim/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRecord is the relational row behind a session. The full session is
// kept as a JSON document; the summary columns exist for history listings.
type SessionRecord struct {
	ID             string    `gorm:"primaryKey;size:36"`
	CandidateName  string    `gorm:"not null"`
	Phase          string    `gorm:"size:16;not null"`
	Score          int       `gorm:"not null;default:0"`
	TotalQuestions int       `gorm:"not null;default:0"`
	Document       string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (SessionRecord) TableName() string {
	return "exam_sessions"
}

type gormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func toRecord(session *model.Session) (*SessionRecord, error) {
	doc, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	return &SessionRecord{
		ID:             session.ID,
		CandidateName:  session.CandidateName,
		Phase:          string(session.Phase),
		Score:          session.CurrentScore,
		TotalQuestions: session.TotalQuestionsCount,
		Document:       string(doc),
		CreatedAt:      session.CreatedAt,
	}, nil
}

func fromRecord(rec *SessionRecord) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal([]byte(rec.Document), &session); err != nil {
		return nil, err
	}
	if session.ID != rec.ID {
		return nil, fmt.Errorf("document id %q does not match row id %q", session.ID, rec.ID)
	}
	return &session, nil
}

func summaryFromRecord(rec *SessionRecord) model.SessionSummary {
	return model.SessionSummary{
		ID:             rec.ID,
		CandidateName:  rec.CandidateName,
		Phase:          model.Phase(rec.Phase),
		CreatedAt:      rec.CreatedAt,
		Score:          rec.Score,
		TotalQuestions: rec.TotalQuestions,
	}
}

// Save upserts the whole row in one statement.
func (r *gormSessionRepository) Save(ctx context.Context, session *model.Session) error {
	rec, err := toRecord(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"candidate_name", "phase", "score", "total_questions", "document", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to save session row")
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var rec SessionRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session %s: %w", id, err)
	}
	session, err := fromRecord(&rec)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", id).Msg("Could not decode session document")
		return nil, ErrNotFound
	}
	return session, nil
}

func (r *gormSessionRepository) ListSummaries(ctx context.Context) ([]model.SessionSummary, error) {
	var recs []SessionRecord
	err := r.db.WithContext(ctx).
		Select("id", "candidate_name", "phase", "score", "total_questions", "created_at").
		Order("created_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	summaries := make([]model.SessionSummary, 0, len(recs))
	for i := range recs {
		summaries = append(summaries, summaryFromRecord(&recs[i]))
	}
	return summaries, nil
}
