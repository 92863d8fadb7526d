package model

// QuestionDraft is one item of a batch-generation response.
type QuestionDraft struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Concept       string   `json:"concept"`
	Difficulty    string   `json:"difficulty"`
	Type          string   `json:"type"`
	Explanation   *string  `json:"explanation,omitempty"`
	Constraints   *string  `json:"constraints,omitempty"`
}

// QuestionBatch is the structured object returned by batch generation.
type QuestionBatch struct {
	Questions []QuestionDraft `json:"questions"`
}

// Verdict is the grading result returned by the evaluation operation.
type Verdict struct {
	IsCorrect         bool     `json:"is_correct"`
	Confidence        float64  `json:"confidence"`
	Reason            string   `json:"reason"`
	Explanation       string   `json:"explanation"`
	CodeSnippet       *string  `json:"code_snippet,omitempty"`
	RelatedTopics     []string `json:"related_topics,omitempty"`
	LearningResources []string `json:"learning_resources,omitempty"`
}

// EvaluationRequest carries everything the grader needs for one answer.
type EvaluationRequest struct {
	Question        string
	Options         []string
	Constraints     *string
	ReferenceAnswer string
	CandidateAnswer string
	Provider        Provider
}

// BatchRequest describes one batch-generation call.
type BatchRequest struct {
	Count      int
	Difficulty string
	Topics     []string
	Types      []string
	Provider   Provider
}
