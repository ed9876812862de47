package core

import (
	"context"
	"time"
)

type LearnedRepository interface {
	// SaveEntry inserts a new entry. Entries are never updated in place.
	SaveEntry(ctx context.Context, entry StoredLearnedEntry) error
	// TopEntries returns entries of userID with confidence >= minConfidence,
	// highest confidence first, ties in insertion order.
	TopEntries(ctx context.Context, userID string, minConfidence float64, limit int) ([]StoredLearnedEntry, error)
}

type TagRepository interface {
	GetTagByName(ctx context.Context, name string) (*TagRecord, error)
	// SearchTags returns tags whose name is contained in lowerText.
	SearchTags(ctx context.Context, lowerText string, limit int) ([]TagRecord, error)
}

// StoredLearnedEntry keeps the JSON columns raw so a corrupt row can be
// skipped by the reader instead of failing the whole query.
type StoredLearnedEntry struct {
	Seq              int64     `json:"seq"`
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EmotionKeywords  string    `json:"emotion_keywords"`
	ResponsePatterns string    `json:"response_patterns"`
	KeyPhrases       string    `json:"key_phrases"`
	ConfidenceScore  float64   `json:"confidence_score"`
	CreatedAt        time.Time `json:"created_at"`
}
