// Package register реализует HTTP-обработчик для регистрации новых пользователей.
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

// Handler обрабатывает HTTP-запросы регистрации пользователей.
//
// Включает логгер для записи операций, сервис аутентификации
// и валидатор для проверки входящих данных.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service определяет методы бизнес-логики для регистрации пользователей.
type Service interface {
	RegisterUser(ctx context.Context, dummy models.DummyUser) (string, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
//
// Инициализирует валидатор для проверки входных данных запросов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового пользователя
// @Description Создает нового заёмщика по имени, email и паролю. Роль всегда USER, стартовый рейтинг CIBIL 700
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
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

	userUID, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("register success", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user created successfully",
		"uid":     userUID,
		"email":   req.Email,
	}))
}
