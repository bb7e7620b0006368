package models

import (
	"errors"
	"fmt"
	"time"
)

// Статусы займа. Новая заявка всегда создаётся в StatusPending,
// администратор переводит её в StatusApproved или StatusRejected.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ErrUnknownDecision возвращается, когда решение по заявке не является
// ни APPROVED, ни REJECTED.
var ErrUnknownDecision = errors.New("unknown loan decision")

// ParseDecision проверяет, что строка является допустимым решением
// администратора по заявке. PENDING намеренно не принимается:
// вернуть заявку в исходное состояние нельзя.
func ParseDecision(s string) (string, error) {
	switch s {
	case StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// Loan представляет заявку на заём.
type Loan struct {
	ID             int       `json:"id"`         // Идентификатор заявки
	UserUID        string    `json:"user_uid"`   // Пользователь, подавший заявку
	Amount         float64   `json:"amount"`     // Сумма займа
	Type           string    `json:"type"`       // Тип займа (personal, home и т.д.)
	DurationMonths int       `json:"duration"`   // Срок займа в месяцах
	Status         string    `json:"status"`     // Текущий статус: PENDING, APPROVED, REJECTED
	AppliedAt      time.Time `json:"applied_at"` // Дата подачи заявки
}

// DummyLoan используется для приёма полей multipart-формы заявки,
// прежде чем конвертировать их в Loan. Файлы документов (aadhar, pan)
// передаются отдельными частями формы.
type DummyLoan struct {
	Amount         float64 `json:"amount" validate:"required,gte=1000"` // Сумма (минимум 1000)
	Type           string  `json:"type" validate:"required"`            // Тип займа
	DurationMonths int     `json:"duration" validate:"required,gte=1"`  // Срок в месяцах (минимум 1)
}

// LoanDecisionEvent — событие о решении по заявке, публикуемое
// в очередь уведомлений после смены статуса администратором.
type LoanDecisionEvent struct {
	LoanID   int     `json:"loan_id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}
