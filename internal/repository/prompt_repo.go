package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailmind/internal/model"
)

var ErrPromptNotFound = errors.New("prompt not found")

type PromptRepository struct {
	db *pgxpool.Pool
}

func NewPromptRepository(db *pgxpool.Pool) *PromptRepository {
	return &PromptRepository{db: db}
}

// GetByType returns the first template of the given prompt type.
func (r *PromptRepository) GetByType(ctx context.Context, promptType string) (*model.Prompt, error) {
	query := `
        SELECT id, name, template, prompt_type
        FROM prompts
        WHERE prompt_type = $1
        ORDER BY id ASC
        LIMIT 1
    `
	var p model.Prompt
	err := r.db.QueryRow(ctx, query, promptType).Scan(&p.ID, &p.Name, &p.Template, &p.PromptType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all prompt templates.
func (r *PromptRepository) List(ctx context.Context) ([]model.Prompt, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, template, prompt_type FROM prompts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prompts := []model.Prompt{}
	for rows.Next() {
		var p model.Prompt
		if err := rows.Scan(&p.ID, &p.Name, &p.Template, &p.PromptType); err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// Create inserts a new prompt template.
func (r *PromptRepository) Create(ctx context.Context, p *model.Prompt) error {
	query := `
        INSERT INTO prompts (name, template, prompt_type)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, p.Name, p.Template, p.PromptType).Scan(&p.ID)
}

// Update replaces an existing template.
func (r *PromptRepository) Update(ctx context.Context, p *model.Prompt) error {
	query := `
        UPDATE prompts
        SET name = $1, template = $2, prompt_type = $3
        WHERE id = $4
    `
	tag, err := r.db.Exec(ctx, query, p.Name, p.Template, p.PromptType, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// Count 用于种子数据加载时的空表检查
func (r *PromptRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM prompts`).Scan(&n)
	return n, err
}
