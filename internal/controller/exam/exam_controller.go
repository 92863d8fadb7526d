package exam

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examsim/internal/controller"
	"github.com/lshigami/examsim/internal/dto"
	"github.com/lshigami/examsim/internal/service"
	"github.com/lshigami/examsim/internal/validator"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(es service.ExamService) *ExamController {
	return &ExamController{examService: es}
}

func (c *ExamController) RegisterRoutes(api *gin.RouterGroup) {
	exams := api.Group("/exams")
	exams.POST("/start", c.StartExam)
	exams.GET("", c.ListExams)
	exams.GET("/:exam_id", c.GetExam)
	exams.POST("/:exam_id/answer", c.SubmitAnswer)
	exams.POST("/:exam_id/next", c.NextQuestion)
}

// StartExam godoc
// @Summary Start a new exam session
// @Description Generates the whole question batch with the selected provider and returns the new session in EXAM_LOOP.
// @Tags exams
// @Accept json
// @Produce json
// @Param exam body dto.StartExamRequest true "Candidate and exam configuration"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 502 {object} dto.ErrorResponse "Question generation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/start [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	var req dto.StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartExam: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: validator.Details(err)})
		return
	}

	log.Info().Str("candidate", req.CandidateName).Int("count", req.TotalQuestionsCount).Msg("StartExam: Creating session")
	session, err := c.examService.CreateSession(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// ListExams godoc
// @Summary List exam sessions
// @Description Session history, newest first.
// @Tags exams
// @Produce json
// @Success 200 {array} dto.SessionSummaryResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	sessions, err := c.examService.ListSessions(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetExam godoc
// @Summary Get an exam session
// @Description Reference answers stay hidden until the question has been answered.
// @Tags exams
// @Produce json
// @Param exam_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found or corrupted"
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	session, err := c.examService.GetSession(ctx.Request.Context(), ctx.Param("exam_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SubmitAnswer godoc
// @Summary Answer the active question
// @Description Accepts typed text, base64 audio, or both. Audio is transcribed and appended to the text before grading.
// @Tags exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer text and/or audio"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} dto.ErrorResponse "Answer or audio data required"
// @Failure 404 {object} dto.ErrorResponse "Session not found or corrupted"
// @Failure 409 {object} dto.ErrorResponse "Session completed or question already answered"
// @Failure 502 {object} dto.ErrorResponse "Evaluation failed"
// @Router /exams/{exam_id}/answer [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: validator.Details(err)})
		return
	}

	result, err := c.examService.SubmitAnswer(ctx.Request.Context(), ctx.Param("exam_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// NextQuestion godoc
// @Summary Advance to the next question
// @Description Moves to the next question, or completes the session after the last one. Idempotent once completed.
// @Tags exams
// @Produce json
// @Param exam_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found or corrupted"
// @Router /exams/{exam_id}/next [post]
func (c *ExamController) NextQuestion(ctx *gin.Context) {
	session, err := c.examService.Advance(ctx.Request.Context(), ctx.Param("exam_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}
