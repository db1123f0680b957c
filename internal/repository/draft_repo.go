package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailmind/internal/model"
)

type DraftRepository struct {
	db *pgxpool.Pool
}

func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

// Insert persists a generated draft.
func (r *DraftRepository) Insert(ctx context.Context, d *model.Draft) error {
	query := `
        INSERT INTO drafts (email_id, subject, body, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, d.EmailID, d.Subject, d.Body, d.Status).Scan(&d.ID)
}

// ListByEmail returns drafts for one email.
func (r *DraftRepository) ListByEmail(ctx context.Context, emailID string) ([]model.Draft, error) {
	query := `
        SELECT id, email_id, subject, body, status
        FROM drafts
        WHERE email_id = $1
        ORDER BY id DESC
    `
	rows, err := r.db.Query(ctx, query, emailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := []model.Draft{}
	for rows.Next() {
		var d model.Draft
		if err := rows.Scan(&d.ID, &d.EmailID, &d.Subject, &d.Body, &d.Status); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// CountByStatus 用于 dashboard 统计
func (r *DraftRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drafts WHERE status = $1`, status).Scan(&n)
	return n, err
}
