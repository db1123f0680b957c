package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailmind/internal/model"
)

// ErrEmailNotFound 邮件不存在
var ErrEmailNotFound = errors.New("email not found")

type EmailRepository struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{db: db}
}

// Pool exposes the underlying pool so callers can open their own
// transactions for multi-table writes.
func (r *EmailRepository) Pool() *pgxpool.Pool {
	return r.db
}

const emailColumns = `
        id, sender, subject, body, received_at, is_read,
        category, sentiment, emotion, urgency_score,
        deadline_at, deadline_text,
        has_dark_patterns, dark_patterns, dark_pattern_severity,
        confidence_score, processing_seconds
`

// Create inserts a new email with analysis fields at their defaults.
func (r *EmailRepository) Create(ctx context.Context, e *model.Email) error {
	query := `
        INSERT INTO emails (id, sender, subject, body, received_at, is_read, category, sentiment, emotion, urgency_score)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 'neutral', 'neutral', 5)
    `
	_, err := r.db.Exec(ctx, query,
		e.ID, e.Sender, e.Subject, e.Body, e.ReceivedAt, e.IsRead, model.CategoryPending,
	)
	return err
}

// GetByID returns one email by id.
func (r *EmailRepository) GetByID(ctx context.Context, id string) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`

	e, err := scanEmail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns a page of emails, newest first.
func (r *EmailRepository) List(ctx context.Context, offset, limit int) ([]model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails ORDER BY received_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

// ListAll returns every stored email. Used by the relationship graph builder
// and the analytics aggregator; acceptable only because inbox volume is small.
func (r *EmailRepository) ListAll(ctx context.Context) ([]model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails ORDER BY received_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

// Delete removes an email. Action items, follow-ups and drafts go with it
// via ON DELETE CASCADE.
func (r *EmailRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM emails WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailNotFound
	}
	return nil
}

// Count returns the number of stored emails.
func (r *EmailRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM emails`).Scan(&n)
	return n, err
}

// CountAnalyzed returns the number of emails a pass has terminated on.
func (r *EmailRepository) CountAnalyzed(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM emails WHERE category <> $1`, model.CategoryPending,
	).Scan(&n)
	return n, err
}

// AvgConfidence returns the mean confidence over analyzed emails, 0 when none.
func (r *EmailRepository) AvgConfidence(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT AVG(confidence_score) FROM emails WHERE confidence_score > 0`,
	).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// CategoryCounts returns emails-per-category for the dashboard.
func (r *EmailRepository) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM emails GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// ApplyAnalysisTx writes every analysis-derived field in the caller's
// transaction, so scalar fields and the child rows commit as one unit.
func (r *EmailRepository) ApplyAnalysisTx(ctx context.Context, tx pgx.Tx, e *model.Email) error {
	patterns, err := json.Marshal(e.DarkPatterns)
	if err != nil {
		return fmt.Errorf("failed to encode dark patterns: %w", err)
	}

	query := `
        UPDATE emails
        SET category = $1,
            sentiment = $2,
            emotion = $3,
            urgency_score = $4,
            deadline_at = $5,
            deadline_text = $6,
            has_dark_patterns = $7,
            dark_patterns = $8,
            dark_pattern_severity = $9,
            confidence_score = $10,
            processing_seconds = $11
        WHERE id = $12
    `
	_, err = tx.Exec(ctx, query,
		e.Category,
		e.Sentiment,
		e.Emotion,
		e.UrgencyScore,
		e.DeadlineAt,
		e.DeadlineText,
		e.HasDarkPatterns,
		patterns,
		e.DarkPatternSeverity,
		e.ConfidenceScore,
		e.ProcessingSeconds,
		e.ID,
	)
	return err
}

// MarkRead flips the read flag.
func (r *EmailRepository) MarkRead(ctx context.Context, id string, read bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE emails SET is_read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailNotFound
	}
	return nil
}

// SetUrgency is used by the flag-urgent quick action.
func (r *EmailRepository) SetUrgency(ctx context.Context, id string, score int) error {
	tag, err := r.db.Exec(ctx, `UPDATE emails SET urgency_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (*model.Email, error) {
	var e model.Email
	var patterns []byte

	err := row.Scan(
		&e.ID,
		&e.Sender,
		&e.Subject,
		&e.Body,
		&e.ReceivedAt,
		&e.IsRead,
		&e.Category,
		&e.Sentiment,
		&e.Emotion,
		&e.UrgencyScore,
		&e.DeadlineAt,
		&e.DeadlineText,
		&e.HasDarkPatterns,
		&patterns,
		&e.DarkPatternSeverity,
		&e.ConfidenceScore,
		&e.ProcessingSeconds,
	)
	if err != nil {
		return nil, err
	}

	if len(patterns) > 0 {
		if err := json.Unmarshal(patterns, &e.DarkPatterns); err != nil {
			// 脏数据不应让整行查询失败
			e.DarkPatterns = nil
		}
	}
	return &e, nil
}

func collectEmails(rows pgx.Rows) ([]model.Email, error) {
	emails := []model.Email{}
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *e)
	}
	return emails, rows.Err()
}
