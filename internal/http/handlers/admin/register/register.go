// Package register реализует HTTP-обработчик регистрации администраторов.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Handler обрабатывает HTTP-запросы регистрации администраторов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service определяет методы бизнес-логики для регистрации администраторов.
type Service interface {
	RegisterAdmin(ctx context.Context, dummy models.DummyAdmin) (string, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового администратора
// @Description Создает нового администратора по email и паролю. Роль всегда ADMIN
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyAdmin true "Данные нового администратора"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /admin/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAdmin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	adminUID, err := h.service.RegisterAdmin(r.Context(), req)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register admin"))
		return
	}

	log.Info("admin register success", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "admin created successfully",
		"uid":     adminUID,
		"email":   req.Email,
	}))
}
