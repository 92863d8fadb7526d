package model

import "time"

// Phase is the coarse stage of a session. Only EXAM_LOOP -> COMPLETED is
// reachable; SETUP and PROJECT are reserved.
type Phase string

const (
	PhaseSetup     Phase = "SETUP"
	PhaseExamLoop  Phase = "EXAM_LOOP"
	PhaseProject   Phase = "PROJECT"
	PhaseCompleted Phase = "COMPLETED"
)

// Provider selects the language-model backend for a session.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ExamConfig is fixed at creation and never changes afterwards.
type ExamConfig struct {
	Difficulty          string   `json:"difficulty"`
	Topics              []string `json:"topics"`
	TotalQuestionsCount int      `json:"total_questions_count"`
	QuestionTypes       []string `json:"question_types"`
	Provider            Provider `json:"provider"`
}

// Session is one candidate's exam attempt.
type Session struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	Phase         Phase     `json:"phase"`
	CreatedAt     time.Time `json:"created_at"`
	ExamConfig

	Questions            []Question `json:"questions"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	CurrentScore         int        `json:"current_score"`
}

// ActiveQuestion returns the question at the current index, or nil when the
// session has no questions.
func (s *Session) ActiveQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// Advance moves to the next question, or completes the session when the
// current question is the last one. It is a no-op once COMPLETED and reports
// whether anything changed.
func (s *Session) Advance() bool {
	if s.Phase != PhaseExamLoop {
		return false
	}
	if s.CurrentQuestionIndex < len(s.Questions)-1 {
		s.CurrentQuestionIndex++
		return true
	}
	s.Phase = PhaseCompleted
	return true
}

// Summary projects the session onto its history-listing row.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:             s.ID,
		CandidateName:  s.CandidateName,
		Phase:          s.Phase,
		CreatedAt:      s.CreatedAt,
		Score:          s.CurrentScore,
		TotalQuestions: s.TotalQuestionsCount,
	}
}

// SessionSummary is one row of the session history.
type SessionSummary struct {
	ID             string    `json:"id"`
	CandidateName  string    `json:"candidate_name"`
	Phase          Phase     `json:"phase"`
	CreatedAt      time.Time `json:"created_at"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total"`
}
