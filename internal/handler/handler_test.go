package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runRespondError(err error) (*httptest.ResponseRecorder, response.Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, err)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   response.ErrCode
	}{
		{"not found", apperr.NotFound("quiz 1 not found"), http.StatusNotFound, response.ErrNotFound},
		{"invalid state", apperr.InvalidState("quiz 1 has no active questions"), http.StatusBadRequest, response.ErrNoActiveQuestions},
		{"conflict", apperr.Conflict("already answered", 3), http.StatusConflict, response.ErrDuplicateAnswer},
		{"duplicate in request", apperr.InvalidInput("duplicated", 5), http.StatusBadRequest, response.ErrDuplicateInSubmit},
		{"invalid input", apperr.InvalidInput("answers list must not be empty"), http.StatusBadRequest, response.ErrInvalidPayload},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, response.ErrInternal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, body := runRespondError(c.err)
			if w.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, c.wantStatus)
			}
			if body.Error == nil {
				t.Fatal("error body missing")
			}
			if body.Error.Code != c.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, c.wantCode)
			}
		})
	}
}

func TestRespondErrorCarriesQuestionIDs(t *testing.T) {
	_, body := runRespondError(apperr.Conflict("already answered", 3, 9))
	if body.Error == nil {
		t.Fatal("error body missing")
	}
	if len(body.Error.QuestionIDs) != 2 || body.Error.QuestionIDs[0] != 3 || body.Error.QuestionIDs[1] != 9 {
		t.Errorf("QuestionIDs = %v, want [3 9]", body.Error.QuestionIDs)
	}
}
