package health_handler

import (
	"context"
	"net/http"
	"time"

	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger проверяет доступность базы данных
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обработчик GET /health
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		httpError.ErrorResponse(c, http.StatusServiceUnavailable, "store_unavailable", "database is unavailable")
		return
	}
	httpError.RespondOK(c, gin.H{"status": "ok"})
}
