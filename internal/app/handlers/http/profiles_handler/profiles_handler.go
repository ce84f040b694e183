package profiles_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/request"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// ProfileReader возвращает профили пользователя
type ProfileReader interface {
	GetProfile(ctx context.Context, userID int64, testID int) (*model.Profile, error)
	ListProfiles(ctx context.Context, userID int64) ([]model.Profile, error)
}

// ProfilesHandler обработчики GET /api/profiles и GET /api/profiles/:test_id
type ProfilesHandler struct {
	profileService ProfileReader
}

// NewProfilesHandler создает новый экземпляр обработчика
func NewProfilesHandler(profileService ProfileReader) *ProfilesHandler {
	return &ProfilesHandler{profileService: profileService}
}

// List возвращает все профили вызывающего пользователя
func (h *ProfilesHandler) List(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), caller.UserID)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}

	httpError.RespondOK(c, gin.H{"profiles": profiles})
}

// Get возвращает профиль вызывающего пользователя по тесту
func (h *ProfilesHandler) Get(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	testID, ok := request.BindTestID(c, c.Param("test_id"))
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), caller.UserID, testID)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}

	httpError.RespondOK(c, profile)
}
