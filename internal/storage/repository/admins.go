package repository

import (
	"context"
	"fmt"

	"github.com/microlend/microloan/internal/models"
)

// RegisterAdmin сохраняет нового администратора и возвращает его UID.
func (s *Storage) RegisterAdmin(ctx context.Context, admin models.Admin) (string, error) {
	const op = "storage.RegisterAdmin"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO admins (email, password_hash, role)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		admin.Email, admin.PasswordHash, admin.Role.String()).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAdminByEmail возвращает администратора по его email (точное совпадение).
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role
			  FROM admins
			  WHERE email = $1`
	a := &models.Admin{}
	var role string
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&a.UID, &a.Email, &a.PasswordHash, &role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Role = models.Role(role)
	return a, nil
}
