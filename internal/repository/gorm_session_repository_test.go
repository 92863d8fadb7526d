package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/examsim/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRecordMapping(t *testing.T) {
	s := sampleSession("Grace", time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))

	rec, err := toRecord(s)
	if err != nil {
		t.Fatalf("toRecord: %v", err)
	}
	if rec.ID != s.ID || rec.Phase != string(model.PhaseExamLoop) || rec.Score != 1 || rec.TotalQuestions != 2 {
		t.Fatalf("unexpected record columns: %+v", rec)
	}

	back, err := fromRecord(rec)
	if err != nil {
		t.Fatalf("fromRecord: %v", err)
	}
	if back.ID != s.ID || len(back.Questions) != 2 || back.CurrentQuestionIndex != 1 {
		t.Fatalf("unexpected session: %+v", back)
	}

	sum := summaryFromRecord(rec)
	if sum != s.Summary() {
		t.Fatalf("summary: want=%+v got=%+v", s.Summary(), sum)
	}
}

func TestFromRecordRejectsCorruptDocument(t *testing.T) {
	if _, err := fromRecord(&SessionRecord{ID: "x", Document: "{"}); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := fromRecord(&SessionRecord{ID: "x", Document: `{"id":"y"}`}); err == nil {
		t.Fatal("expected id mismatch error")
	}
}

func newSQLiteRepository(t *testing.T) SessionRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return NewGormSessionRepository(db)
}

func TestGormRepositoryRoundTripAndUpsert(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	s := sampleSession("Grace", time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))

	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s.CurrentScore = 2
	s.Phase = model.PhaseCompleted
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.CurrentScore != 2 || got.Phase != model.PhaseCompleted || len(got.Questions) != 2 {
		t.Fatalf("upsert did not replace the document: %+v", got)
	}

	sums, err := repo.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d", len(sums))
	}
	if sums[0].Score != 2 || sums[0].Phase != model.PhaseCompleted {
		t.Fatalf("summary columns not updated: %+v", sums[0])
	}
}

func TestGormRepositoryMissingAndOrdering(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound got %v", err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := sampleSession("Older", base)
	newer := sampleSession("Newer", base.Add(time.Hour))
	for _, s := range []*model.Session{older, newer} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save %s: %v", s.CandidateName, err)
		}
	}

	sums, err := repo.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries: %v", err)
	}
	if len(sums) != 2 || sums[0].ID != newer.ID || sums[1].ID != older.ID {
		t.Fatalf("want newest first, got %+v", sums)
	}
}
