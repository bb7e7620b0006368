package repository

import (
	"context"
	"fmt"

	"github.com/microlend/microloan/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (full_name, email, password_hash, role, cibil_score, aadhar, pan)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.Role.String(),
		user.CibilScore, user.Aadhar, user.PAN).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email (точное совпадение).
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, password_hash, role, cibil_score, aadhar, pan, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, password_hash, role, cibil_score, aadhar, pan, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// ListUsers возвращает список всех пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, password_hash, role, cibil_score, aadhar, pan, created_at
			  FROM users
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var role string
		if err = rows.Scan(&u.UID, &u.FullName, &u.Email, &u.PasswordHash,
			&role, &u.CibilScore, &u.Aadhar, &u.PAN, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Role = models.Role(role)
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCibilScore обновляет кредитный рейтинг пользователя
// одним атомарным statement и возвращает число затронутых записей.
func (s *Storage) UpdateCibilScore(ctx context.Context, userUID string, score int) (int, error) {
	const op = "storage.UpdateCibilScore"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET cibil_score = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, score, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// DeleteUser удаляет пользователя и возвращает число удалённых записей.
// Связанные займы и документы удаляются каскадно на уровне схемы.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	res, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(row rowScanner, op string) (*models.User, error) {
	u := &models.User{}
	var role string
	if err := row.Scan(&u.UID, &u.FullName, &u.Email, &u.PasswordHash,
		&role, &u.CibilScore, &u.Aadhar, &u.PAN, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = models.Role(role)
	return u, nil
}
