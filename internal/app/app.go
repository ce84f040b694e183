package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/delete_answers_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/edit_answer_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/list_answers_handler"
	httpProfiles "github.com/IT-Nick/vocational-profile/internal/app/handlers/http/profiles_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/submit_answer_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/answer_handler"
	tgProfiles "github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/profiles_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/purge_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/select_test_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	"github.com/IT-Nick/vocational-profile/internal/app/middleware"
	answersRepo "github.com/IT-Nick/vocational-profile/internal/domain/answers/repository"
	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	msgRepo "github.com/IT-Nick/vocational-profile/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/vocational-profile/internal/domain/messages/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/domain/profiles/aggregator"
	profilesRepo "github.com/IT-Nick/vocational-profile/internal/domain/profiles/repository"
	profilesService "github.com/IT-Nick/vocational-profile/internal/domain/profiles/service"
	testsRepo "github.com/IT-Nick/vocational-profile/internal/domain/tests/repository"
	testsService "github.com/IT-Nick/vocational-profile/internal/domain/tests/service"
	"github.com/IT-Nick/vocational-profile/internal/infra/config"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/IT-Nick/vocational-profile/internal/infra/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v4"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	testService    *testsService.TestService
	answerService  *answersService.AnswerService
	profileService *profilesService.ProfileService
	messageService *msgService.MessageService
}

type App struct {
	config *config.Config
	log    *logger.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	Services
}

func NewApp(ctx context.Context, configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	log, err := logger.New(configImpl.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}

	db, err := InitDatabase(ctx, configImpl, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		config: configImpl,
		log:    log,
		db:     db,
	}

	app.initServices()

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	// Инициализация репозиториев
	testRepo := testsRepo.NewTestRepository(app.db, app.log)
	answerRepo := answersRepo.NewAnswerRepository(app.db, app.log)
	profileRepo := profilesRepo.NewProfileRepository(app.db, app.log)
	messageRepo := msgRepo.NewMessageRepository(app.db)

	// Инициализация сервисов
	app.testService = testsService.NewTestService(testRepo)
	app.answerService = answersService.NewAnswerService(
		testRepo,
		answerRepo,
		profileRepo,
		aggregator.NewAggregator(testRepo),
		postgres.NewTransactor(app.db),
		app.log,
	)
	app.profileService = profilesService.NewProfileService(profileRepo)
	app.messageService = msgService.NewMessageService(messageRepo, app.log)
}

// Migrate применяет миграции схемы базы данных
func (app *App) Migrate(ctx context.Context) error {
	applied, err := postgres.Migrate(ctx, app.db)
	if err != nil {
		return err
	}
	app.log.Info("migrations applied", "files", applied)
	return nil
}

// ListenAndServeTelegram запускает Telegram бота и останавливает его при отмене ctx
func (app *App) ListenAndServeTelegram(ctx context.Context) error {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: &telebot.LongPoller{Timeout: app.config.TelegramBot.PollTimeout},
		OnError: func(err error, c telebot.Context) {
			fields := []interface{}{"error", err}
			if c != nil && c.Sender() != nil {
				fields = append(fields, "user_id", c.Sender().ID)
			}
			app.log.Error("telegram handler failed", fields...)
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bot.Use(middleware.TelegramRecover(app.log), middleware.TelegramLogger(app.log))
	app.bootstrapHandlersTelegram()

	go func() {
		<-ctx.Done()
		app.bot.Stop()
	}()

	app.log.Info("telegram bot started", "username", bot.Me.Username)
	app.bot.Start()
	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Handle("/start", start_handler.NewStartHandler(app.testService, app.messageService, app.log).GetHandlerFunc())
	app.bot.Handle("/profiles", tgProfiles.NewProfilesHandler(app.profileService, app.testService, app.messageService, app.log).GetHandlerFunc())
	app.bot.Handle("/purge", purge_handler.NewPurgeHandler(app.answerService, app.messageService, app.config, app.log).GetHandlerFunc())

	selectTestHandler := select_test_handler.NewSelectTestHandler(app.answerService, app.testService, app.profileService, app.messageService, app.log)
	answerHandler := answer_handler.NewAnswerHandler(app.answerService, app.testService, app.messageService, app.config, app.log)

	// Кнопки тестов и вариантов ответа создаются динамически, поэтому маршрутизируем по префиксу данных
	app.bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := tgutil.CleanCallbackData(c.Callback().Data)

		switch {
		case strings.HasPrefix(data, model.SelectTestPrefix):
			return selectTestHandler.Handle(c)
		case strings.HasPrefix(data, model.AnswerPrefix):
			return answerHandler.Handle(c)
		}

		return c.Respond()
	})
}

// Router собирает HTTP маршруты
func (app *App) Router() *gin.Engine {
	if app.config.Log.Mode == "production" || app.config.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(app.log))

	r.GET("/health", health_handler.NewHealthHandler(app.db).Handle)

	auth := middleware.NewAuthMiddleware(app.config.Auth.JWTSecret, app.log)
	api := r.Group("/api", auth.RequireAuth())

	api.POST("/answers", submit_answer_handler.NewSubmitAnswerHandler(app.answerService).Handle)
	api.PUT("/answers", edit_answer_handler.NewEditAnswerHandler(app.answerService).Handle)
	api.DELETE("/answers", delete_answers_handler.NewDeleteAnswersHandler(app.answerService).Handle)
	api.GET("/answers", list_answers_handler.NewListAnswersHandler(app.answerService).Handle)

	profilesHandler := httpProfiles.NewProfilesHandler(app.profileService)
	api.GET("/profiles", profilesHandler.List)
	api.GET("/profiles/:test_id", profilesHandler.Get)

	return r
}

// ListenAndServeHTTP запускает HTTP сервер и корректно останавливает его при отмене ctx
func (app *App) ListenAndServeHTTP(ctx context.Context) error {
	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("http server started", "addr", app.server.Addr)
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	}
}

// ListenAndServe запускает оба сервера (Telegram и HTTP). Ошибка одного из них останавливает оба.
func (app *App) ListenAndServe(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if app.config.TelegramBot.Enabled {
		g.Go(func() error {
			if err := app.ListenAndServeTelegram(ctx); err != nil {
				return fmt.Errorf("failed to start Telegram bot: %w", err)
			}
			return nil
		})
	} else {
		app.log.Info("telegram bot disabled")
	}

	g.Go(func() error {
		if err := app.ListenAndServeHTTP(ctx); err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close освобождает пул соединений и сбрасывает буфер логгера
func (app *App) Close() {
	app.db.Close()
	app.log.Sync()
}
