// Package read реализует HTTP-обработчик получения записи доступа пациента по UID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// Handler обрабатывает запросы на получение записи доступа по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики доступа пациентов
}

// Service описывает интерфейс бизнес-логики чтения записи доступа.
type Service interface {
	Read(ctx context.Context, uid string) (*models.PatientAccess, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить запись доступа пациента
// @Tags Patients
// @Produce  json
// @Param uid path string true "UID записи доступа"
// @Success 200 {object} map[string]any "Запись доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /patients/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.patient.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("failed to decode uid from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode uid from url"))
		return
	}

	res, err := h.service.Read(r.Context(), uid)
	if err != nil {
		log.Error("failed to read patient access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read patient access"))
		return
	}

	log.Info("success to read patient access", slog.String("uid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"patient": res,
	}))
}
