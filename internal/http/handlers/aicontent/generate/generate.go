// Package generate реализует HTTP-обработчик генерации контента для пациентов.
package generate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nutrition-practice/internal/aicontent"
	"github.com/magabrotheeeer/nutrition-practice/internal/http/response"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
)

// Request — входные данные для генерации контента.
type Request struct {
	Kind   string `json:"kind" validate:"required,oneof=analysis plan chat profile"`
	Prompt string `json:"prompt" validate:"required,min=3,max=2000"`
}

// Handler обрабатывает запросы генерации контента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс клиента генерации контента.
type Service interface {
	Generate(ctx context.Context, kind aicontent.Kind, prompt string) (string, error)
}

// New создает новый Handler с переданными логгером и клиентом генерации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать контент для пациента
// @Description Генерирует анализ, план питания, ответ в чате или профиль пациента по промпту.
// @Tags AIContent
// @Accept  json
// @Produce  json
// @Param request body Request true "Вид контента и промпт"
// @Success 200 {object} map[string]any "Сгенерированный контент"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка генерации"
// @Router /ai/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.aicontent.generate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("kind", req.Kind))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	content, err := h.service.Generate(r.Context(), aicontent.Kind(req.Kind), req.Prompt)
	if err != nil {
		log.Error("failed to generate content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate content"))
		return
	}

	log.Info("success to generate content", slog.String("kind", req.Kind))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"kind":    req.Kind,
		"content": content,
	}))
}
