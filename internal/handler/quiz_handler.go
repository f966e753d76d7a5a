package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
)

// QuizHandler handles quiz endpoints.
type QuizHandler struct {
	quizService  *service.QuizService
	statsService *service.StatsService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, statsService *service.StatsService) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		statsService: statsService,
	}
}

// ListQuizzes godoc
// GET /api/v1/quizzes
// Admins see all quizzes; everyone else the cached active list.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view := model.ViewPublic
	if p.IsAdmin {
		view = model.ViewAdmin
	}

	quizzes, err := h.quizService.List(c.Request.Context(), view)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// GetQuiz godoc
// GET /api/v1/quizzes/:quiz_id
// The public view omits correct answers and inactive questions.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.ParseInt(c.Param("quiz_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view := model.ViewPublic
	if p.IsAdmin {
		view = model.ViewAdmin
	}

	detail, err := h.quizService.GetDetail(c.Request.Context(), id, view)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": detail})
}

// GetQuizStats godoc
// GET /api/v1/admin/quizzes/:quiz_id/statistics
func (h *QuizHandler) GetQuizStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("quiz_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	stats, err := h.statsService.QuizStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}

// CreateQuiz godoc
// POST /api/v1/admin/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// UpdateQuiz godoc
// PATCH /api/v1/admin/quizzes/:quiz_id
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("quiz_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// DeleteQuiz godoc
// DELETE /api/v1/admin/quizzes/:quiz_id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("quiz_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "quiz deleted"})
}
