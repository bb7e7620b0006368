// Package apply реализует HTTP-обработчик подачи заявки на заём.
//
// Запрос приходит multipart-формой: числовые поля заявки плюс
// опциональные файлы документов aadhar и pan.
package apply

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/models"
)

// Лимит на размер multipart-формы вместе с файлами документов.
const maxUploadSize = 10 << 20

// Handler обрабатывает HTTP-запросы подачи заявки на заём.
type Handler struct {
	log      *slog.Logger
	loans    LoanService
	users    UserService
	validate *validator.Validate
}

// LoanService определяет методы бизнес-логики подачи заявки.
type LoanService interface {
	Apply(ctx context.Context, userUID string, req models.DummyLoan, aadhar, pan io.Reader) (int, error)
}

// UserService определяет интерфейс для поиска профиля заявителя.
type UserService interface {
	Profile(ctx context.Context, email string) (*models.User, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисами.
func New(log *slog.Logger, loans LoanService, users UserService) *Handler {
	return &Handler{
		log:      log,
		loans:    loans,
		users:    users,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подать заявку на заём
// @Description Создает заявку в статусе PENDING. Поля формы: amount, type, duration; файлы: aadhar, pan
// @Tags Loans
// @Accept  multipart/form-data
// @Produce  json
// @Param amount formData number true "Сумма займа (минимум 1000)"
// @Param type formData string true "Тип займа"
// @Param duration formData int true "Срок займа в месяцах"
// @Param aadhar formData file false "Скан документа Aadhar"
// @Param pan formData file false "Скан документа PAN"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /loans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.apply"

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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		log.Error("invalid amount", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid amount"))
		return
	}
	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil {
		log.Error("invalid duration", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid duration"))
		return
	}

	req := models.DummyLoan{
		Amount:         amount,
		Type:           r.FormValue("type"),
		DurationMonths: duration,
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var aadhar, pan io.Reader
	if file, _, err := r.FormFile("aadhar"); err == nil {
		defer file.Close()
		aadhar = file
	}
	if file, _, err := r.FormFile("pan"); err == nil {
		defer file.Close()
		pan = file
	}

	user, err := h.users.Profile(r.Context(), email)
	if err != nil {
		log.Error("failed to find applicant", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to apply for loan"))
		return
	}

	id, err := h.loans.Apply(r.Context(), user.UID, req, aadhar, pan)
	if err != nil {
		log.Error("failed to create loan application", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to apply for loan"))
		return
	}

	log.Info("loan application created", slog.Int("id", id), slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"loan_id": id,
		"status":  models.StatusPending,
	}))
}
