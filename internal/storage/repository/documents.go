package repository

import (
	"context"
	"fmt"

	"github.com/microlend/microloan/internal/models"
)

// CreateDocument сохраняет запись о загруженных документах и возвращает её ID.
func (s *Storage) CreateDocument(ctx context.Context, doc models.Document) (int, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO documents (user_uid, aadhar_key, pan_key, uploaded_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		doc.UserUID, doc.AadharKey, doc.PANKey, doc.UploadedAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetDocumentByUser возвращает запись о документах пользователя.
func (s *Storage) GetDocumentByUser(ctx context.Context, userUID string) (*models.Document, error) {
	const op = "storage.GetDocumentByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, aadhar_key, pan_key, uploaded_at
			  FROM documents
			  WHERE user_uid = $1
			  ORDER BY uploaded_at DESC
			  LIMIT 1`
	d := &models.Document{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&d.ID, &d.UserUID, &d.AadharKey, &d.PANKey, &d.UploadedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}
