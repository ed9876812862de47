package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/saori/internal/core"
)

type LearnedRepo struct {
	db *sql.DB
}

func NewLearnedRepo(db *sql.DB) *LearnedRepo {
	return &LearnedRepo{db: db}
}

// SaveEntry inserts an entry. A duplicate id is ignored so entries are
// never rewritten.
func (r *LearnedRepo) SaveEntry(ctx context.Context, e core.StoredLearnedEntry) error {
	query := `
		INSERT INTO learned_responses
			(id, user_id, emotion_keywords, response_patterns, key_phrases, confidence_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.EmotionKeywords, e.ResponsePatterns, e.KeyPhrases, e.ConfidenceScore, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert learned response: %w", err)
	}
	return nil
}

func (r *LearnedRepo) TopEntries(ctx context.Context, userID string, minConfidence float64, limit int) ([]core.StoredLearnedEntry, error) {
	query := `
		SELECT seq, id, user_id, emotion_keywords, response_patterns, key_phrases, confidence_score, created_at
		FROM learned_responses
		WHERE user_id = ? AND confidence_score >= ?
		ORDER BY confidence_score DESC, seq ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, minConfidence, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned responses: %w", err)
	}
	defer rows.Close()

	var entries []core.StoredLearnedEntry
	for rows.Next() {
		var e core.StoredLearnedEntry
		if err := rows.Scan(
			&e.Seq, &e.ID, &e.UserID, &e.EmotionKeywords, &e.ResponsePatterns, &e.KeyPhrases, &e.ConfidenceScore, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
