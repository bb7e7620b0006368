// Package cibil реализует HTTP-обработчик просмотра собственного кредитного рейтинга.
package cibil

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы чтения рейтинга CIBIL.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики чтения рейтинга.
type Service interface {
	CibilScore(ctx context.Context, email string) (int, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Кредитный рейтинг текущего пользователя
// @Description Возвращает рейтинг CIBIL пользователя, определённого по JWT
// @Tags Users
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]any "Рейтинг CIBIL"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /cibil [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.cibil"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email missing in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	score, err := h.service.CibilScore(r.Context(), email)
	if err != nil {
		log.Error("failed to read cibil score", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read cibil score"))
		return
	}

	log.Info("cibil score read", slog.String("email", email), slog.Int("score", score))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cibil_score": score,
	}))
}
