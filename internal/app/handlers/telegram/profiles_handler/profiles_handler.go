package profiles_handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// ProfileLister возвращает профили пользователя
type ProfileLister interface {
	ListProfiles(ctx context.Context, userID int64) ([]model.Profile, error)
}

// TestLister возвращает тесты для подписи профилей
type TestLister interface {
	ListTests(ctx context.Context) ([]model.Test, error)
}

// ProfilesHandler обработчик команды /profiles
type ProfilesHandler struct {
	profileService ProfileLister
	testService    TestLister
	messageService tgutil.Formatter
	log            *logger.Logger
}

func NewProfilesHandler(profileService ProfileLister, testService TestLister, messageService tgutil.Formatter, baseLog *logger.Logger) *ProfilesHandler {
	return &ProfilesHandler{
		profileService: profileService,
		testService:    testService,
		messageService: messageService,
		log:            baseLog.With("handler", "ProfilesHandler"),
	}
}

func (h *ProfilesHandler) Handle(c telebot.Context) error {
	ctx, cancel := tgutil.Context()
	defer cancel()

	userID := c.Sender().ID
	profiles, err := h.profileService.ListProfiles(ctx, userID)
	if err != nil {
		h.log.Error("failed to list profiles", "user_id", userID, "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}

	if len(profiles) == 0 {
		return c.Send(h.messageService.Format(ctx, model.NoProfilesMessageKey))
	}

	tests, err := h.testService.ListTests(ctx)
	if err != nil {
		h.log.Error("failed to list tests", "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}
	names := make(map[int]string, len(tests))
	for _, test := range tests {
		names[test.ID] = test.Name
	}

	lines := make([]string, 0, len(profiles))
	for i := range profiles {
		name, ok := names[profiles[i].TestID]
		if !ok {
			name = fmt.Sprintf("#%d", profiles[i].TestID)
		}
		lines = append(lines, tgutil.ProfileText(ctx, h.messageService, name, &profiles[i]))
	}

	return c.Send(strings.Join(lines, "\n"), tgutil.HTMLOptions(nil))
}

func (h *ProfilesHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
