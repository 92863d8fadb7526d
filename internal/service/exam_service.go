package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/examsim/internal/dto"
	"github.com/lshigami/examsim/internal/lock"
	"github.com/lshigami/examsim/internal/model"
	"github.com/lshigami/examsim/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	// Sent as the reference answer for questions generated without one.
	fallbackReference = "Assessed by constraints"

	transcriptLabel = "\n\n[Audio Transcript]: "
)

// ExamService owns the session state machine: batch creation, answering the
// active question, and advancing through the sequence.
type ExamService interface {
	CreateSession(ctx context.Context, req dto.StartExamRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context) ([]dto.SessionSummaryResponse, error)
	SubmitAnswer(ctx context.Context, id string, req dto.SubmitAnswerRequest) (*dto.AnswerResultResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
}

type examService struct {
	sessionRepo repository.SessionRepository
	locker      lock.SessionLocker
	llm         LLMService

	now   func() time.Time
	newID func() string
}

func NewExamService(sessionRepo repository.SessionRepository, locker lock.SessionLocker, llm LLMService) ExamService {
	return &examService{
		sessionRepo: sessionRepo,
		locker:      locker,
		llm:         llm,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

func (s *examService) CreateSession(ctx context.Context, req dto.StartExamRequest) (*dto.SessionResponse, error) {
	provider, err := parseProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	if req.TotalQuestionsCount < 1 {
		return nil, fmt.Errorf("%w: total_questions_count must be at least 1", ErrInvalidRequest)
	}

	batch, err := s.llm.GenerateBatch(ctx, model.BatchRequest{
		Count:      req.TotalQuestionsCount,
		Difficulty: req.Difficulty,
		Topics:     req.Topics,
		Types:      req.QuestionTypes,
		Provider:   provider,
	})
	if err != nil {
		return nil, err
	}
	if len(batch.Questions) < req.TotalQuestionsCount {
		return nil, &ProviderError{
			Provider: provider,
			Op:       "generate_batch",
			Err:      fmt.Errorf("got %d questions, want %d", len(batch.Questions), req.TotalQuestionsCount),
		}
	}
	if len(batch.Questions) > req.TotalQuestionsCount {
		log.Warn().Int("got", len(batch.Questions)).Int("want", req.TotalQuestionsCount).Msg("Batch larger than requested, truncating")
		batch.Questions = batch.Questions[:req.TotalQuestionsCount]
	}

	questions := make([]model.Question, 0, len(batch.Questions))
	for _, d := range batch.Questions {
		questions = append(questions, s.questionFromDraft(d, req.Difficulty))
	}

	session := &model.Session{
		ID:            s.newID(),
		CandidateName: req.CandidateName,
		Phase:         model.PhaseExamLoop,
		CreatedAt:     s.now(),
		ExamConfig: model.ExamConfig{
			Difficulty:          req.Difficulty,
			Topics:              req.Topics,
			TotalQuestionsCount: req.TotalQuestionsCount,
			QuestionTypes:       req.QuestionTypes,
			Provider:            provider,
		},
		Questions: questions,
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to save new session")
		return nil, err
	}

	log.Info().
		Str("sessionID", session.ID).
		Str("candidate", session.CandidateName).
		Int("questions", len(questions)).
		Str("provider", string(provider)).
		Msg("Exam session created")
	return toSessionResponse(session)
}

func (s *examService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	id, err := sessionKey(id)
	if err != nil {
		return nil, err
	}
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session)
}

func (s *examService) ListSessions(ctx context.Context) ([]dto.SessionSummaryResponse, error) {
	summaries, err := s.sessionRepo.ListSummaries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sessions")
		return nil, err
	}

	resp := make([]dto.SessionSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		resp = append(resp, dto.SessionSummaryResponse{
			ID:            sum.ID,
			CandidateName: sum.CandidateName,
			Phase:         string(sum.Phase),
			CreatedAt:     sum.CreatedAt,
			Score:         sum.Score,
			Total:         sum.TotalQuestions,
		})
	}
	return resp, nil
}

// SubmitAnswer grades the active question. Outcome fields are written only
// after the evaluation call has succeeded, so a failed submission leaves the
// stored session untouched.
func (s *examService) SubmitAnswer(ctx context.Context, id string, req dto.SubmitAnswerRequest) (*dto.AnswerResultResponse, error) {
	text := req.Answer
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	if text == "" && strings.TrimSpace(req.AudioData) == "" {
		return nil, ErrInvalidAnswer
	}

	id, err := sessionKey(id)
	if err != nil {
		return nil, err
	}
	release, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseExamLoop {
		return nil, ErrSessionNotActive
	}
	q := session.ActiveQuestion()
	if q == nil {
		return nil, ErrSessionNotActive
	}
	if q.Answered() {
		return nil, ErrAlreadyAnswered
	}

	answer := text
	if strings.TrimSpace(req.AudioData) != "" {
		answer = mergeTranscript(text, s.llm.Transcribe(ctx, req.AudioData))
	}

	reference := fallbackReference
	if q.CorrectAnswer != nil && *q.CorrectAnswer != "" {
		reference = *q.CorrectAnswer
	}

	verdict, err := s.llm.Evaluate(ctx, model.EvaluationRequest{
		Question:        q.QuestionText,
		Options:         q.Options,
		Constraints:     q.Constraints,
		ReferenceAnswer: reference,
		CandidateAnswer: answer,
		Provider:        session.Provider,
	})
	if err != nil {
		log.Error().Err(err).Str("sessionID", id).Int("index", session.CurrentQuestionIndex).Msg("Answer evaluation failed")
		return nil, err
	}

	explanation := RenderExplanation(verdict)
	isCorrect := verdict.IsCorrect
	feedback := verdict.Reason

	q.UserAnswer = &answer
	q.IsCorrect = &isCorrect
	q.Feedback = &feedback
	q.Explanation = &explanation
	if isCorrect {
		session.CurrentScore++
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("sessionID", id).Msg("Failed to save answered session")
		return nil, err
	}

	log.Info().
		Str("sessionID", id).
		Int("index", session.CurrentQuestionIndex).
		Bool("correct", isCorrect).
		Int("score", session.CurrentScore).
		Msg("Answer evaluated")
	return &dto.AnswerResultResponse{IsCorrect: isCorrect, Explanation: explanation}, nil
}

// Advance reveals the next question or completes the session. Once
// COMPLETED it changes nothing but still saves and returns the session.
func (s *examService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	id, err := sessionKey(id)
	if err != nil {
		return nil, err
	}
	release, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseExamLoop && session.Phase != model.PhaseCompleted {
		return nil, ErrSessionNotActive
	}

	session.Advance()

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("sessionID", id).Msg("Failed to save advanced session")
		return nil, err
	}

	log.Info().
		Str("sessionID", id).
		Str("phase", string(session.Phase)).
		Int("index", session.CurrentQuestionIndex).
		Msg("Session advanced")
	return toSessionResponse(session)
}

// sessionKey returns the canonical form of a session id. Every spelling the
// store accepts for one session must map to the same lock key.
func sessionKey(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return parsed.String(), nil
}

func (s *examService) load(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Str("sessionID", id).Msg("Failed to load session")
		return nil, err
	}
	return session, nil
}

func (s *examService) questionFromDraft(d model.QuestionDraft, fallbackDifficulty string) model.Question {
	difficulty := d.Difficulty
	if difficulty == "" {
		difficulty = fallbackDifficulty
	}
	q := model.Question{
		ID:                   s.newID(),
		QuestionText:         d.Question,
		Difficulty:           difficulty,
		Type:                 model.ParseQuestionType(d.Type),
		Options:              d.Options,
		CorrectAnswer:        d.CorrectAnswer,
		Constraints:          d.Constraints,
		ReferenceExplanation: d.Explanation,
	}
	if d.Concept != "" {
		concept := d.Concept
		q.Concept = &concept
	}
	return q
}

func parseProvider(name string) (model.Provider, error) {
	switch p := model.Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return model.ProviderOpenAI, nil
	case model.ProviderOpenAI, model.ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidRequest, name)
	}
}

func mergeTranscript(text, transcript string) string {
	if text == "" {
		return transcript
	}
	return text + transcriptLabel + transcript
}

// toSessionResponse hides the reference answer of every question the
// candidate has not answered yet.
func toSessionResponse(session *model.Session) (*dto.SessionResponse, error) {
	var resp dto.SessionResponse
	if err := copier.Copy(&resp, session); err != nil {
		return nil, fmt.Errorf("failed to map session %s: %w", session.ID, err)
	}
	for i := range resp.Questions {
		if !session.Questions[i].Answered() {
			resp.Questions[i].CorrectAnswer = nil
			resp.Questions[i].ReferenceExplanation = nil
		}
	}
	return &resp, nil
}
