// Package nutritionpractice предоставляет маршруты для основного приложения.
package nutritionpractice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/nutrition-practice/internal/aicontent"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/aicontent/generate"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/billing/estimate"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/health"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/patient/grant"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/patient/list"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/patient/read"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/handlers/patient/revoke"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/nutrition-practice/internal/services/auth"
	billingservice "github.com/magabrotheeeer/nutrition-practice/internal/services/billingestimate"
	patientservice "github.com/magabrotheeeer/nutrition-practice/internal/services/patient"
	"github.com/magabrotheeeer/nutrition-practice/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService, patientService *patientservice.PatientService,
	billingService *billingservice.BillingEstimateService, aiClient *aicontent.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/patients", grant.New(logger, patientService).ServeHTTP)
			r.Get("/patients", list.New(logger, patientService).ServeHTTP)
			r.Get("/patients/{uid}", read.New(logger, patientService).ServeHTTP)
			r.Delete("/patients/{uid}", revoke.New(logger, patientService).ServeHTTP)
			r.Get("/billing/estimate", estimate.New(logger, billingService).ServeHTTP)
			r.Post("/ai/generate", generate.New(logger, aiClient).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
