package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/examsim/internal/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func sampleSession(name string, createdAt time.Time) *model.Session {
	return &model.Session{
		ID:            uuid.NewString(),
		CandidateName: name,
		Phase:         model.PhaseExamLoop,
		CreatedAt:     createdAt,
		ExamConfig: model.ExamConfig{
			Difficulty:          "Intermediate",
			Topics:              []string{"SQL", "Kafka"},
			TotalQuestionsCount: 2,
			QuestionTypes:       []string{"MCQ", "CODING"},
			Provider:            model.ProviderOpenAI,
		},
		Questions: []model.Question{
			{
				ID:            uuid.NewString(),
				QuestionText:  "Which join keeps unmatched rows from both sides?",
				Difficulty:    "Intermediate",
				Type:          model.QuestionTypeMCQ,
				Options:       []string{"INNER", "LEFT", "RIGHT", "FULL OUTER"},
				CorrectAnswer: strPtr("FULL OUTER"),
				Concept:       strPtr("joins"),
				UserAnswer:    strPtr("FULL OUTER"),
				IsCorrect:     boolPtr(true),
				Feedback:      strPtr("Correct"),
				Explanation:   strPtr("Full outer join.\n\nConfidence: 0.9"),
			},
			{
				ID:           uuid.NewString(),
				QuestionText: "Write a Kafka consumer that commits offsets manually.",
				Difficulty:   "Intermediate",
				Type:         model.QuestionTypeCoding,
				Constraints:  strPtr("at-least-once"),
			},
		},
		CurrentQuestionIndex: 1,
		CurrentScore:         1,
	}
}

func newTestRepo(t *testing.T) (SessionRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewFileSessionRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSessionRepository: %v", err)
	}
	return repo, dir
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved := sampleSession("Ada", time.Now().UTC().Round(0))
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !loaded.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at: want=%v got=%v", saved.CreatedAt, loaded.CreatedAt)
	}
	loaded.CreatedAt = saved.CreatedAt
	if !reflect.DeepEqual(saved, loaded) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", saved, loaded)
	}
}

func TestFileRepositorySaveOverwrites(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	s := sampleSession("Ada", time.Now().UTC())
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Phase = model.PhaseCompleted
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	loaded, err := repo.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if loaded.Phase != model.PhaseCompleted {
		t.Fatalf("phase: want=%s got=%s", model.PhaseCompleted, loaded.Phase)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}
}

func TestFileRepositoryMissingAndCorrupt(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound got %v", err)
	}
	if _, err := repo.FindByID(ctx, "../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("traversal: want ErrNotFound got %v", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	if _, err := repo.FindByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt: want ErrNotFound got %v", err)
	}
}

func TestFileRepositoryListSummariesSortedAndSkipsCorrupt(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"first", "second", "third"}
	for i, name := range names {
		if err := repo.Save(ctx, sampleSession(name, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, uuid.NewString()+".json"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	summaries, err := repo.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("summaries: want=3 got=%d", len(summaries))
	}
	for i, want := range []string{"third", "second", "first"} {
		if summaries[i].CandidateName != want {
			t.Fatalf("summaries[%d]: want=%s got=%s", i, want, summaries[i].CandidateName)
		}
	}
	if summaries[0].TotalQuestions != 2 || summaries[0].Score != 1 {
		t.Fatalf("unexpected projection: %+v", summaries[0])
	}
}

func TestFileRepositorySaveFailureRemovesTemp(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	s := sampleSession("Ada", time.Now().UTC())
	// A directory at the final path makes the rename fail.
	if err := os.Mkdir(filepath.Join(dir, s.ID+".json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := repo.Save(ctx, s); err == nil {
		t.Fatal("expected save error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
