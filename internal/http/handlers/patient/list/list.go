// Package list реализует HTTP-обработчик получения списка записей доступа
// пациентов текущего нутрициолога с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nutrition-practice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// Handler обрабатывает запросы на получение списка записей доступа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка записей.
type Service interface {
	List(ctx context.Context, nutritionistUID string, limit, offset int) ([]*models.PatientAccess, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список записей доступа пациентов
// @Description Возвращает записи доступа текущего нутрициолога с пагинацией.
// @Tags Patients
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /patients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.patient.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nutritionistUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || nutritionistUID == "" {
		log.Error("nutritionist uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error("invalid limit query param", slog.String("limit", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit query param"))
			return
		}
		limit = parsed
	}
	offset := defaultOffset
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			log.Error("invalid offset query param", slog.String("offset", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset query param"))
			return
		}
		offset = parsed
	}

	res, err := h.service.List(r.Context(), nutritionistUID, limit, offset)
	if err != nil {
		log.Error("failed to list patient access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list patient access"))
		return
	}

	log.Info("success to list patient access", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"patients": res,
		"count":    len(res),
	}))
}
