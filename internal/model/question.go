package model

import "strings"

// QuestionType is the closed set of exam item kinds.
type QuestionType string

const (
	QuestionTypeMCQ          QuestionType = "MCQ"
	QuestionTypeCoding       QuestionType = "CODING"
	QuestionTypeSQL          QuestionType = "SQL"
	QuestionTypeDebugging    QuestionType = "DEBUGGING"
	QuestionTypeShortAnswer  QuestionType = "SHORT_ANSWER"
	QuestionTypeScenario     QuestionType = "SCENARIO"
	QuestionTypeArchitecture QuestionType = "ARCHITECTURE"
	QuestionTypeDataModeling QuestionType = "DATA_MODELING"
	QuestionTypeOptimization QuestionType = "OPTIMIZATION"
	QuestionTypeDataQuality  QuestionType = "DATA_QUALITY"
	QuestionTypeCaseStudy    QuestionType = "CASE_STUDY"
	QuestionTypeProject      QuestionType = "PROJECT"
)

var questionTypes = map[QuestionType]struct{}{
	QuestionTypeMCQ:          {},
	QuestionTypeCoding:       {},
	QuestionTypeSQL:          {},
	QuestionTypeDebugging:    {},
	QuestionTypeShortAnswer:  {},
	QuestionTypeScenario:     {},
	QuestionTypeArchitecture: {},
	QuestionTypeDataModeling: {},
	QuestionTypeOptimization: {},
	QuestionTypeDataQuality:  {},
	QuestionTypeCaseStudy:    {},
	QuestionTypeProject:      {},
}

// ParseQuestionType maps a free-text type label from the generator onto the
// closed set. Matching is case-insensitive with spaces read as underscores;
// anything unrecognized becomes MCQ.
func ParseQuestionType(label string) QuestionType {
	key := QuestionType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(label), " ", "_")))
	if _, ok := questionTypes[key]; ok {
		return key
	}
	return QuestionTypeMCQ
}

// Question is one exam item. The outcome fields (UserAnswer, IsCorrect,
// Feedback, Explanation) stay nil until the question is answered.
type Question struct {
	ID                   string       `json:"id"`
	QuestionText         string       `json:"question_text"`
	Difficulty           string       `json:"difficulty"`
	Type                 QuestionType `json:"type"`
	Options              []string     `json:"options"`
	CorrectAnswer        *string      `json:"correct_answer,omitempty"`
	Constraints          *string      `json:"constraints,omitempty"`
	Concept              *string      `json:"concept,omitempty"`
	ReferenceExplanation *string      `json:"reference_explanation,omitempty"`

	UserAnswer  *string `json:"user_answer,omitempty"`
	IsCorrect   *bool   `json:"is_correct,omitempty"`
	Feedback    *string `json:"feedback,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

// Answered reports whether an evaluation outcome has been recorded.
func (q *Question) Answered() bool {
	return q.IsCorrect != nil
}
