package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandevgo/saori/internal/core"
)

type LearnedRepo struct {
	pool *pgxpool.Pool
}

func NewLearnedRepo(pool *pgxpool.Pool) *LearnedRepo {
	return &LearnedRepo{pool: pool}
}

func (r *LearnedRepo) SaveEntry(ctx context.Context, e core.StoredLearnedEntry) error {
	query := `
		INSERT INTO learned_responses
			(id, user_id, emotion_keywords, response_patterns, key_phrases, confidence_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, query,
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
		WHERE user_id = $1 AND confidence_score >= $2
		ORDER BY confidence_score DESC, seq ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, minConfidence, limit)
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
