// Package revoke реализует HTTP-обработчик отзыва доступа пациента.
//
// Запись не удаляется: статус становится INACTIVE, дата отзыва сохраняется
// и продолжает учитываться в расчётах стоимости.
package revoke

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/nutrition-practice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
)

// Handler обрабатывает запросы на отзыв доступа пациента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отзыва доступа.
type Service interface {
	Revoke(ctx context.Context, uid, nutritionistUID string, now time.Time) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отозвать доступ пациента
// @Description Переводит запись доступа в статус INACTIVE с текущей датой отзыва.
// @Tags Patients
// @Produce  json
// @Param uid path string true "UID записи доступа"
// @Success 200 {object} map[string]any "Количество отозванных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /patients/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.patient.revoke"

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

	nutritionistUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || nutritionistUID == "" {
		log.Error("nutritionist uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.Revoke(r.Context(), uid, nutritionistUID, time.Now().UTC())
	if err != nil {
		log.Error("failed to revoke patient access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not revoke patient access"))
		return
	}

	log.Info("success to revoke patient access", slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"revoked": count,
	}))
}
