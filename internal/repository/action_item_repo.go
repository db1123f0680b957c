package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailmind/internal/model"
)

var ErrActionItemNotFound = errors.New("action item not found")

type ActionItemRepository struct {
	db *pgxpool.Pool
}

func NewActionItemRepository(db *pgxpool.Pool) *ActionItemRepository {
	return &ActionItemRepository{db: db}
}

// InsertTx appends one extracted action item inside the analysis transaction.
func (r *ActionItemRepository) InsertTx(ctx context.Context, tx pgx.Tx, item *model.ActionItem) error {
	query := `
        INSERT INTO action_items (email_id, description, deadline, status)
        VALUES ($1, $2, $3, 'pending')
        RETURNING id
    `
	return tx.QueryRow(ctx, query, item.EmailID, item.Description, item.Deadline).Scan(&item.ID)
}

// ListByEmail returns action items for one email.
func (r *ActionItemRepository) ListByEmail(ctx context.Context, emailID string) ([]model.ActionItem, error) {
	query := `
        SELECT id, email_id, description, deadline, status
        FROM action_items
        WHERE email_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, emailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.ActionItem{}
	for rows.Next() {
		var it model.ActionItem
		if err := rows.Scan(&it.ID, &it.EmailID, &it.Description, &it.Deadline, &it.Status); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus sets an item's status; the lifecycle is client-managed.
func (r *ActionItemRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.ActionItem, error) {
	query := `
        UPDATE action_items
        SET status = $1
        WHERE id = $2
        RETURNING id, email_id, description, deadline, status
    `
	var it model.ActionItem
	err := r.db.QueryRow(ctx, query, status, id).Scan(&it.ID, &it.EmailID, &it.Description, &it.Deadline, &it.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActionItemNotFound
		}
		return nil, err
	}
	return &it, nil
}
