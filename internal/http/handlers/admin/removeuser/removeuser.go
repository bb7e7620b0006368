// Package removeuser реализует HTTP-обработчик удаления пользователя администратором.
//
// Заявки и документы пользователя удаляются каскадно на уровне базы данных.
package removeuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы удаления пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики удаления пользователя.
type Service interface {
	Delete(ctx context.Context, userUID string) (int, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить пользователя
// @Description Удаляет пользователя по UID вместе с его заявками и документами
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Пользователь удалён"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.removeuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")

	count, err := h.service.Delete(r.Context(), userUID)
	if err != nil {
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete user"))
		return
	}
	if count == 0 {
		log.Error("user not found", slog.String("uid", userUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	log.Info("user deleted", slog.String("uid", userUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": count,
	}))
}
