package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailmind/internal/model"
)

var ErrFollowUpNotFound = errors.New("follow-up not found")

type FollowUpRepository struct {
	db *pgxpool.Pool
}

func NewFollowUpRepository(db *pgxpool.Pool) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

// InsertTx appends one extracted commitment inside the analysis transaction.
func (r *FollowUpRepository) InsertTx(ctx context.Context, tx pgx.Tx, f *model.FollowUp) error {
	query := `
        INSERT INTO followups (email_id, commitment, committed_by, due_date, status, created_at)
        VALUES ($1, $2, $3, $4, 'pending', NOW())
        RETURNING id, created_at
    `
	return tx.QueryRow(ctx, query, f.EmailID, f.Commitment, f.CommittedBy, f.DueDate).
		Scan(&f.ID, &f.CreatedAt)
}

// List returns every follow-up, newest first.
func (r *FollowUpRepository) List(ctx context.Context) ([]model.FollowUp, error) {
	query := `
        SELECT id, email_id, commitment, committed_by, due_date, status, created_at
        FROM followups
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followups := []model.FollowUp{}
	for rows.Next() {
		var f model.FollowUp
		if err := rows.Scan(&f.ID, &f.EmailID, &f.Commitment, &f.CommittedBy, &f.DueDate, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		followups = append(followups, f)
	}
	return followups, rows.Err()
}

// UpdateStatus sets a follow-up's status. The overdue transition only ever
// arrives here from an explicit client call, never from a background sweep.
func (r *FollowUpRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.FollowUp, error) {
	query := `
        UPDATE followups
        SET status = $1
        WHERE id = $2
        RETURNING id, email_id, commitment, committed_by, due_date, status, created_at
    `
	var f model.FollowUp
	err := r.db.QueryRow(ctx, query, status, id).
		Scan(&f.ID, &f.EmailID, &f.Commitment, &f.CommittedBy, &f.DueDate, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFollowUpNotFound
		}
		return nil, err
	}
	return &f, nil
}
