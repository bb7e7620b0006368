package repository

import (
	"context"
	"fmt"

	"github.com/microlend/microloan/internal/models"
)

// CreateLoan добавляет новую заявку на заём и возвращает её ID.
func (s *Storage) CreateLoan(ctx context.Context, loan models.Loan) (int, error) {
	const op = "storage.CreateLoan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO loans (user_uid, amount, type, duration_months, status, applied_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		loan.UserUID, loan.Amount, loan.Type, loan.DurationMonths,
		loan.Status, loan.AppliedAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetLoan возвращает заявку по её ID.
func (s *Storage) GetLoan(ctx context.Context, id int) (*models.Loan, error) {
	const op = "storage.GetLoan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, type, duration_months, status, applied_at
			  FROM loans
			  WHERE id = $1`
	l := &models.Loan{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&l.ID, &l.UserUID, &l.Amount, &l.Type,
		&l.DurationMonths, &l.Status, &l.AppliedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// ListLoans возвращает список всех заявок с пагинацией.
func (s *Storage) ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	const op = "storage.ListLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, type, duration_months, status, applied_at
			  FROM loans
			  ORDER BY applied_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Loan
	for rows.Next() {
		l := &models.Loan{}
		if err = rows.Scan(&l.ID, &l.UserUID, &l.Amount, &l.Type,
			&l.DurationMonths, &l.Status, &l.AppliedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLoanStatus обновляет статус заявки одним атомарным statement
// и возвращает число затронутых записей.
func (s *Storage) UpdateLoanStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateLoanStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE loans
			  SET status = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}
