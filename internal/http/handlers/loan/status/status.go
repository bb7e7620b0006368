// Package status реализует HTTP-обработчик проверки статуса заявки.
//
// Пользователь может смотреть только собственные заявки: принадлежность
// проверяется по UID заявителя из профиля.
package status

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Handler обрабатывает HTTP-запросы статуса заявки.
type Handler struct {
	log   *slog.Logger
	loans LoanService
	users UserService
}

// LoanService определяет методы бизнес-логики чтения заявки.
type LoanService interface {
	Status(ctx context.Context, id int) (*models.Loan, error)
}

// UserService определяет интерфейс для поиска профиля запрашивающего.
type UserService interface {
	Profile(ctx context.Context, email string) (*models.User, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисами.
func New(log *slog.Logger, loans LoanService, users UserService) *Handler {
	return &Handler{
		log:   log,
		loans: loans,
		users: users,
	}
}

// ServeHTTP godoc
// @Summary Статус заявки на заём
// @Description Возвращает заявку по её идентификатору. Доступ только к собственным заявкам
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Success 200 {object} map[string]any "Данные заявки"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 403 {object} response.ErrorResponse "Чужая заявка"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.status"

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

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	loan, err := h.loans.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("loan not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("loan not found"))
			return
		}
		log.Error("failed to read loan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read loan"))
		return
	}

	user, err := h.users.Profile(r.Context(), email)
	if err != nil {
		log.Error("failed to find requester", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read loan"))
		return
	}
	if loan.UserUID != user.UID {
		log.Error("loan belongs to another user", slog.Int("id", id))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	log.Info("loan status read", slog.Int("id", id), slog.String("status", loan.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"loan_id":    loan.ID,
		"amount":     loan.Amount,
		"type":       loan.Type,
		"duration":   loan.DurationMonths,
		"status":     loan.Status,
		"applied_at": loan.AppliedAt,
	}))
}
