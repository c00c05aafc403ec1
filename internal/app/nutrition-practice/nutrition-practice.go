package nutritionpractice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/nutrition-practice/internal/aicontent"
	"github.com/magabrotheeeer/nutrition-practice/internal/cache"
	"github.com/magabrotheeeer/nutrition-practice/internal/config"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/jwt"
	"github.com/magabrotheeeer/nutrition-practice/internal/migrations"
	authservice "github.com/magabrotheeeer/nutrition-practice/internal/services/auth"
	billingservice "github.com/magabrotheeeer/nutrition-practice/internal/services/billingestimate"
	patientservice "github.com/magabrotheeeer/nutrition-practice/internal/services/patient"
	"github.com/magabrotheeeer/nutrition-practice/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: хранилище, миграции, кеш, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	patientService := patientservice.NewPatientService(db, cacheRedis, logger)
	billingService := billingservice.NewBillingEstimateService(db, logger)
	aiClient := aicontent.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, patientService, billingService, aiClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
