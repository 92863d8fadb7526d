package dto

import "time"

type QuestionResponse struct {
	ID                   string   `json:"id"`
	QuestionText         string   `json:"question_text"`
	Difficulty           string   `json:"difficulty"`
	Type                 string   `json:"type"`
	Options              []string `json:"options,omitempty"`
	Concept              *string  `json:"concept,omitempty"`
	Constraints          *string  `json:"constraints,omitempty"`
	CorrectAnswer        *string  `json:"correct_answer,omitempty"`         // only once answered
	ReferenceExplanation *string  `json:"reference_explanation,omitempty"` // only once answered

	UserAnswer  *string `json:"user_answer,omitempty"`
	IsCorrect   *bool   `json:"is_correct,omitempty"`
	Feedback    *string `json:"feedback,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

type SessionResponse struct {
	ID                   string             `json:"id"`
	CandidateName        string             `json:"candidate_name"`
	Phase                string             `json:"phase"`
	CreatedAt            time.Time          `json:"created_at"`
	Difficulty           string             `json:"difficulty"`
	Topics               []string           `json:"topics"`
	TotalQuestionsCount  int                `json:"total_questions_count"`
	QuestionTypes        []string           `json:"question_types"`
	Provider             string             `json:"provider"`
	Questions            []QuestionResponse `json:"questions"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	CurrentScore         int                `json:"current_score"`
}

type SessionSummaryResponse struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	Phase         string    `json:"phase"`
	CreatedAt     time.Time `json:"created_at"`
	Score         int       `json:"score"`
	Total         int       `json:"total"`
}

type AnswerResultResponse struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
