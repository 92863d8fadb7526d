package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examsim/internal/lock"
	"github.com/lshigami/examsim/internal/model"
	"github.com/lshigami/examsim/internal/service"
)

func TestErrorResponseMapping(t *testing.T) {
	upstream := &service.ProviderError{Provider: model.ProviderGemini, Op: "evaluate", Err: errors.New("secret upstream body")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"invalid answer", service.ErrInvalidAnswer, http.StatusBadRequest},
		{"invalid request", fmt.Errorf("%w: bad provider", service.ErrInvalidRequest), http.StatusBadRequest},
		{"not active", service.ErrSessionNotActive, http.StatusConflict},
		{"already answered", service.ErrAlreadyAnswered, http.StatusConflict},
		{"lock", errors.Join(lock.ErrNotAcquired, errors.New("deadline")), http.StatusConflict},
		{"upstream", fmt.Errorf("create: %w", upstream), http.StatusBadGateway},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resp := errorResponse(tt.err)
			if got != tt.want {
				t.Fatalf("status: want=%d got=%d", tt.want, got)
			}
			if resp.Message == "" {
				t.Fatal("empty message")
			}
		})
	}

	_, resp := errorResponse(upstream)
	if len(resp.Details) != 1 || resp.Details[0] != "gemini evaluate" {
		t.Fatalf("upstream details should name provider and op only, got %v", resp.Details)
	}
}

func TestSystemRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewController().RegisterRoutes(r)

	for _, path := range []string{"/", "/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: want=200 got=%d", path, w.Code)
		}
	}
}
