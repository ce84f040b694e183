package delete_answers_handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/ctxutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct{}

func (fakePurger) AdminDeleteAnswersForTest(_ context.Context, testID int, caller model.Caller) (int, error) {
	if !caller.IsAdmin() {
		return 0, apperr.Newf(apperr.Forbidden, "op", "not admin")
	}
	if testID != 1 {
		return 0, apperr.Newf(apperr.NotFound, "op", "no answers")
	}
	return 5, nil
}

func doDelete(caller model.Caller, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/api/answers", func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxutil.WithCaller(c.Request.Context(), caller))
	}, NewDeleteAnswersHandler(fakePurger{}).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
	return w
}

func TestDeleteAnswersHandler(t *testing.T) {
	admin := model.Caller{UserID: 1, Role: model.RoleAdmin}

	w := doDelete(admin, "/api/answers?test_id=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body DeleteAnswersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, DeleteAnswersResponse{TestID: 1, Deleted: 5}, body)

	assert.Equal(t, http.StatusNotFound, doDelete(admin, "/api/answers?test_id=2").Code)
	assert.Equal(t, http.StatusBadRequest, doDelete(admin, "/api/answers?test_id=abc").Code)
	assert.Equal(t, http.StatusBadRequest, doDelete(admin, "/api/answers").Code)
}

func TestDeleteAnswersHandlerForbidden(t *testing.T) {
	w := doDelete(model.Caller{UserID: 7, Role: model.RoleCommon}, "/api/answers?test_id=1")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
