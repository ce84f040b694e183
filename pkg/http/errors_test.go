package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.Newf(apperr.NotFound, "op", "missing"), http.StatusNotFound},
		{"inconsistent", apperr.Newf(apperr.Inconsistent, "op", "mismatch"), http.StatusConflict},
		{"forbidden", apperr.Newf(apperr.Forbidden, "op", "no"), http.StatusForbidden},
		{"no answers", apperr.Newf(apperr.NoAnswers, "op", "empty"), http.StatusInternalServerError},
		{"store unavailable", apperr.Newf(apperr.StoreUnavailable, "op", "down"), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondErrorHidesUnexpectedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Error.Message)
	assert.Equal(t, "unknown", body.Error.Code)
}

func TestRespondErrorStoreUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, apperr.Newf(apperr.StoreUnavailable, "op", "connection refused"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
