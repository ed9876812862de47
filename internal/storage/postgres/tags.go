package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandevgo/saori/internal/core"
)

type TagRepo struct {
	pool *pgxpool.Pool
}

func NewTagRepo(pool *pgxpool.Pool) *TagRepo {
	return &TagRepo{pool: pool}
}

func (r *TagRepo) GetTagByName(ctx context.Context, name string) (*core.TagRecord, error) {
	query := `SELECT id, name, description, tone, style, depth FROM tags WHERE lower(name) = lower($1)`

	var t core.TagRecord
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.Description, &t.Tone, &t.Style, &t.Depth)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tag %q: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

func (r *TagRepo) SearchTags(ctx context.Context, lowerText string, limit int) ([]core.TagRecord, error) {
	query := `
		SELECT id, name, description, tone, style, depth
		FROM tags
		WHERE position(lower(name) in $1) > 0
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, lowerText, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.TagRecord, error) {
		var t core.TagRecord
		err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Tone, &t.Style, &t.Depth)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}
