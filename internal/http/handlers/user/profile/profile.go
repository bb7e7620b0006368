// Package profile реализует HTTP-обработчик просмотра собственного профиля.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Handler обрабатывает HTTP-запросы просмотра профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики чтения профиля.
type Service interface {
	Profile(ctx context.Context, email string) (*models.User, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль пользователя, определённого по JWT. Хэш пароля не раскрывается
// @Tags Users
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

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

	user, err := h.service.Profile(r.Context(), email)
	if err != nil {
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read profile"))
		return
	}

	log.Info("profile read", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":         user.UID,
		"full_name":   user.FullName,
		"email":       user.Email,
		"role":        user.Role,
		"cibil_score": user.CibilScore,
		"aadhar":      user.Aadhar,
		"pan":         user.PAN,
		"created_at":  user.CreatedAt,
	}))
}
