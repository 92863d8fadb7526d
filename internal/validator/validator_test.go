package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Name  string   `json:"candidate_name" binding:"required"`
	Count int      `json:"total_questions_count" binding:"required,min=1,max=50"`
	Tags  []string `json:"topics" binding:"required,min=1"`
}

func TestDetailsTranslatesFieldErrors(t *testing.T) {
	Setup()

	err := binding.Validator.ValidateStruct(&sample{Count: 99, Tags: []string{"sql"}})
	if err == nil {
		t.Fatal("expected validation error")
	}

	details := Details(err)
	if len(details) != 2 {
		t.Fatalf("details: want=2 got=%d (%v)", len(details), details)
	}
	joined := strings.Join(details, "\n")
	if !strings.Contains(joined, "candidate_name is a required field") {
		t.Fatalf("missing translated required message: %v", details)
	}
	if !strings.Contains(joined, "total_questions_count must be 50 or less") {
		t.Fatalf("missing translated max message: %v", details)
	}
}

func TestDetailsPassesThroughOtherErrors(t *testing.T) {
	details := Details(errors.New("unexpected EOF"))
	if len(details) != 1 || details[0] != "unexpected EOF" {
		t.Fatalf("details: %v", details)
	}
}
