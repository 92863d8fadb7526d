package dto

// StartExamRequest creates a session and generates its whole question batch.
type StartExamRequest struct {
	CandidateName       string   `json:"candidate_name" binding:"required"`
	Difficulty          string   `json:"difficulty" binding:"required"`
	Topics              []string `json:"topics" binding:"required,min=1,dive,required"`
	TotalQuestionsCount int      `json:"total_questions_count" binding:"required,min=1,max=50"`
	QuestionTypes       []string `json:"question_types" binding:"required,min=1,dive,required"`
	Provider            string   `json:"provider" binding:"omitempty,oneof=openai gemini"` // defaults to openai
}

// SubmitAnswerRequest needs at least one of Answer or AudioData.
type SubmitAnswerRequest struct {
	Answer    string `json:"answer"`
	AudioData string `json:"audio_data"` // base64 encoded recording
}
