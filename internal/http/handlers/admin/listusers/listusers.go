// Package listusers реализует HTTP-обработчик списка пользователей для администратора.
package listusers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Handler обрабатывает HTTP-запросы списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики списка пользователей.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех пользователей
// @Description Возвращает список пользователей с пагинацией (query-параметры limit и offset)
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := 10
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	users, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	items := make([]map[string]any, 0, len(users))
	for _, u := range users {
		items = append(items, map[string]any{
			"uid":         u.UID,
			"full_name":   u.FullName,
			"email":       u.Email,
			"cibil_score": u.CibilScore,
			"created_at":  u.CreatedAt,
		})
	}

	log.Info("users listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(items),
		"users":      items,
	}))
}
