// Package listloans реализует HTTP-обработчик списка заявок для администратора.
package listloans

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

// Handler обрабатывает HTTP-запросы списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики списка заявок.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.Loan, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заявок на займы
// @Description Возвращает список заявок с пагинацией (query-параметры limit и offset)
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/loans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listloans"

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

	loans, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list loans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list loans"))
		return
	}

	log.Info("loans listed", slog.Int("count", len(loans)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(loans),
		"loans":      loans,
	}))
}
