package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/saori/internal/core"
)

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) GetTagByName(ctx context.Context, name string) (*core.TagRecord, error) {
	query := `SELECT id, name, description, tone, style, depth FROM tags WHERE name = ? COLLATE NOCASE`

	var t core.TagRecord
	err := r.db.QueryRowContext(ctx, query, name).Scan(&t.ID, &t.Name, &t.Description, &t.Tone, &t.Style, &t.Depth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %q: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

// SearchTags matches tags whose lowercased name occurs in lowerText.
func (r *TagRepo) SearchTags(ctx context.Context, lowerText string, limit int) ([]core.TagRecord, error) {
	query := `
		SELECT id, name, description, tone, style, depth
		FROM tags
		WHERE instr(?, lower(name)) > 0
		ORDER BY id
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, lowerText, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tags: %w", err)
	}
	defer rows.Close()

	var tags []core.TagRecord
	for rows.Next() {
		var t core.TagRecord
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Tone, &t.Style, &t.Depth); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
