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

// SubmissionHandler handles submission endpoints.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmitQuiz godoc
// POST /api/v1/submissions
// Scores and persists the caller's answers in one transaction.
func (h *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	detail, err := h.submissionService.Submit(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": detail})
}

// ListSubmissions godoc
// GET /api/v1/submissions
// Admins see all submissions paginated; everyone else their own cached list.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if p.IsAdmin {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		subs, err := h.submissionService.ListAll(c.Request.Context(), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"submissions": subs})
		return
	}

	subs, err := h.submissionService.ListForUser(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

// GetSubmission godoc
// GET /api/v1/submissions/:submission_id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.ParseInt(c.Param("submission_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.submissionService.Get(c.Request.Context(), id, p)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": detail})
}
