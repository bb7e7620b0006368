// Package cibil реализует HTTP-обработчик изменения кредитного рейтинга пользователя.
package cibil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
)

// Request — входные данные для изменения рейтинга
type Request struct {
	CibilScore int `json:"cibil_score" validate:"required,gte=300,lte=900"`
}

// Handler обрабатывает HTTP-запросы изменения рейтинга CIBIL.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service определяет методы бизнес-логики изменения рейтинга.
type Service interface {
	UpdateCibilScore(ctx context.Context, userUID string, score int) (int, error)
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
// @Summary Изменить кредитный рейтинг пользователя
// @Description Устанавливает новый рейтинг CIBIL (300-900) пользователю по его UID
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Param request body Request true "Новый рейтинг"
// @Success 200 {object} map[string]any "Рейтинг обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Рейтинг вне диапазона"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{uid}/cibil [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.cibil"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")

	var req Request
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

	count, err := h.service.UpdateCibilScore(r.Context(), userUID, req.CibilScore)
	if err != nil {
		log.Error("failed to update cibil score", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update cibil score"))
		return
	}
	if count == 0 {
		log.Error("user not found", slog.String("uid", userUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	log.Info("cibil score updated", slog.String("uid", userUID), slog.Int("score", req.CibilScore))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
		"cibil_score":   req.CibilScore,
	}))
}
