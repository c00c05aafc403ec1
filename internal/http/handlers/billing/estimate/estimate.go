// Package estimate реализует HTTP-обработчик оценки стоимости текущего месяца.
//
// Оценка считается на момент запроса: опорное время фиксируется один раз
// и передаётся в бизнес-логику, повторный запрос в тот же момент времени
// даёт тот же результат.
package estimate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nutrition-practice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/billing"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
)

// Handler обрабатывает запросы на оценку стоимости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта оценки.
type Service interface {
	Estimate(ctx context.Context, nutritionistUID string, ref time.Time) (*billing.Estimate, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оценка стоимости текущего месяца
// @Description Возвращает оценку стоимости доступа пациентов текущего нутрициолога
// @Description за календарный месяц, содержащий момент запроса: дневную ставку,
// @Description строки по пациентам и общую сумму.
// @Tags Billing
// @Produce  json
// @Success 200 {object} map[string]any "Оценка стоимости"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/estimate [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.estimate"

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

	res, err := h.service.Estimate(r.Context(), nutritionistUID, time.Now().UTC())
	if err != nil {
		log.Error("failed to calculate estimate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate estimate"))
		return
	}

	log.Info("success to calculate estimate", slog.Float64("total", res.Total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"estimate": res,
	}))
}
