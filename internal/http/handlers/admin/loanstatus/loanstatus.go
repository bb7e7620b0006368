// Package loanstatus реализует HTTP-обработчик решения администратора по заявке.
//
// Принимаются только конечные решения APPROVED и REJECTED; вернуть заявку
// в PENDING нельзя.
package loanstatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Request — входные данные решения по заявке
type Request struct {
	Status string `json:"status"`
}

// Handler обрабатывает HTTP-запросы решения по заявке.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет методы бизнес-логики смены статуса заявки.
type Service interface {
	UpdateStatus(ctx context.Context, id int, decision string) (int, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Решение по заявке на заём
// @Description Переводит заявку в статус APPROVED или REJECTED и отправляет уведомление заявителю
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Param request body Request true "Новый статус"
// @Success 200 {object} map[string]any "Статус обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или статус"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/loans/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.loanstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	count, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("loan not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("loan not found"))
			return
		}
		if errors.Is(err, models.ErrUnknownDecision) {
			log.Error("invalid decision", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("status must be APPROVED or REJECTED"))
			return
		}
		log.Error("failed to update loan status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update loan status"))
		return
	}

	log.Info("loan status updated", slog.Int("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
		"status":        req.Status,
	}))
}
