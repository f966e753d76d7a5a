package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/response"
)

// respondError maps a domain error to an HTTP status and envelope code.
// Unavailable never reaches here on read paths (services degrade to the
// store); anything unrecognized is an internal error.
func respondError(c *gin.Context, err error) {
	detail := apperr.Detail(err)
	if detail == nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	switch detail.Kind {
	case apperr.KindNotFound:
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case apperr.KindInvalidState:
		response.Fail(c, http.StatusBadRequest, response.ErrNoActiveQuestions)
	case apperr.KindConflict:
		response.FailWithQuestions(c, http.StatusConflict, response.ErrDuplicateAnswer, detail.QuestionIDs)
	case apperr.KindInvalidInput:
		if len(detail.QuestionIDs) > 0 {
			response.FailWithQuestions(c, http.StatusBadRequest, response.ErrDuplicateInSubmit, detail.QuestionIDs)
			return
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, map[string]string{"detail": detail.Msg})
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
