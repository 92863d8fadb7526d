package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examsim/internal/dto"
	"github.com/lshigami/examsim/internal/lock"
	"github.com/lshigami/examsim/internal/service"
	"github.com/rs/zerolog/log"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", ctrl.RootHandler)
	router.GET("/health", ctrl.HealthHandler)
}

func (ctrl *Controller) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Data Engineer Exam Simulator API is running"})
}

// HealthHandler is the liveness check. It does not touch storage or providers.
func (ctrl *Controller) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RespondError maps a service error onto a status code and a summary message.
// Internal details only reach the log.
func RespondError(c *gin.Context, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("Request rejected")
	}
	c.JSON(status, resp)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var perr *service.ProviderError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Message: "Session not found or corrupted"}
	case errors.Is(err, service.ErrInvalidAnswer):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "Answer or audio data required"}
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: []string{err.Error()}}
	case errors.Is(err, service.ErrSessionNotActive):
		return http.StatusConflict, dto.ErrorResponse{Message: "Session is not accepting this operation in its current phase"}
	case errors.Is(err, service.ErrAlreadyAnswered):
		return http.StatusConflict, dto.ErrorResponse{Message: "Current question has already been answered"}
	case errors.Is(err, lock.ErrNotAcquired):
		return http.StatusConflict, dto.ErrorResponse{Message: "Session is busy, try again"}
	case errors.As(err, &perr):
		resp := dto.ErrorResponse{Message: "Language model provider failed"}
		if perr.Provider != "" {
			resp.Details = []string{string(perr.Provider) + " " + perr.Op}
		}
		return http.StatusBadGateway, resp
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"}
	}
}
