// Package grant реализует HTTP-обработчик предоставления доступа пациенту.
//
// Handler принимает JSON-запрос с данными пациента, валидирует их, извлекает UID
// нутрициолога из контекста, вызывает бизнес-логику предоставления доступа
// и возвращает UID созданной записи в JSON-формате.
package grant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nutrition-practice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// Handler управляет HTTP-запросами на предоставление доступа пациентам.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики доступа пациентов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики предоставления доступа.
type Service interface {
	Grant(ctx context.Context, nutritionistUID string, req models.DummyPatientAccess, now time.Time) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Предоставить доступ пациенту
// @Description Создает запись доступа пациента для текущего нутрициолога. Возвращает UID записи.
// @Tags Patients
// @Accept  json
// @Produce  json
// @Param request body models.DummyPatientAccess true "Данные пациента"
// @Success 200 {object} map[string]any "Доступ предоставлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /patients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.patient.grant"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPatientAccess
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	nutritionistUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || nutritionistUID == "" {
		log.Error("nutritionist uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	uid, err := h.service.Grant(r.Context(), nutritionistUID, req, time.Now().UTC())
	if err != nil {
		log.Error("failed to grant patient access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not grant patient access"))
		return
	}

	log.Info("success to grant patient access", slog.String("uid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid": uid,
	}))
}
