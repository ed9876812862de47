package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/metrics"
	"github.com/sandevgo/saori/pkg/log"
)

const defaultWriteTimeout = 10 * time.Second

// Analysis is what one AI reply teaches about a user message.
type Analysis struct {
	Emotions   Emotions
	Patterns   map[string]bool
	Phrases    []string
	Confidence float64
}

func Analyze(message, reply string) Analysis {
	a := Analysis{
		Emotions: DetectEmotions(message),
		Patterns: DetectPatterns(reply),
		Phrases:  KeyPhrases(reply),
	}
	a.Confidence = Confidence(len(a.Emotions), countTrue(a.Patterns), len(a.Phrases))
	return a
}

// Extractor turns AI replies into learned entries. Writes submitted through
// Submit run detached from the request; Shutdown waits for them, and
// submissions after Shutdown are dropped.
type Extractor struct {
	repo         core.LearnedRepository
	metrics      *metrics.Metrics
	WriteTimeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
	now     func() time.Time
	newID   func() string
}

func NewExtractor(repo core.LearnedRepository, m *metrics.Metrics) *Extractor {
	return &Extractor{
		repo:         repo,
		metrics:      m,
		WriteTimeout: defaultWriteTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
}

func (e *Extractor) Start(ctx context.Context) error {
	return nil
}

// Shutdown blocks until pending writes finish or ctx expires.
func (e *Extractor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pending learned writes: %w", ctx.Err())
	}
}

// Submit stores what reply teaches in the background. The write outlives
// the request context but keeps its logger; failures are logged and dropped.
func (e *Extractor) Submit(ctx context.Context, scope, message, reply string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		log.FromCtx(ctx).Warn().Str("scope", scope).Msg("extractor stopped, learned response dropped")
		return
	}
	e.pending.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.pending.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.WriteTimeout)
		defer cancel()

		err := e.Learn(writeCtx, scope, message, reply)
		e.metrics.LearningWrite(err)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("scope", scope).Msg("failed to store learned response")
		}
	}()
}

// Learn analyzes reply and inserts a new entry under scope.
func (e *Extractor) Learn(ctx context.Context, scope, message, reply string) error {
	entry, err := e.Build(scope, message, reply)
	if err != nil {
		return err
	}

	log.FromCtx(ctx).Debug().
		Str("id", entry.ID).
		Float64("confidence", entry.ConfidenceScore).
		Msg("learning response")

	if err := e.repo.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("save learned entry: %w", err)
	}
	return nil
}

func (e *Extractor) Build(scope, message, reply string) (core.StoredLearnedEntry, error) {
	a := Analyze(message, reply)

	emotions, err := json.Marshal(a.Emotions)
	if err != nil {
		return core.StoredLearnedEntry{}, fmt.Errorf("encode emotions: %w", err)
	}
	patterns, err := json.Marshal(a.Patterns)
	if err != nil {
		return core.StoredLearnedEntry{}, fmt.Errorf("encode patterns: %w", err)
	}
	phrases, err := json.Marshal(a.Phrases)
	if err != nil {
		return core.StoredLearnedEntry{}, fmt.Errorf("encode phrases: %w", err)
	}

	return core.StoredLearnedEntry{
		ID:               e.newID(),
		UserID:           scope,
		EmotionKeywords:  string(emotions),
		ResponsePatterns: string(patterns),
		KeyPhrases:       string(phrases),
		ConfidenceScore:  a.Confidence,
		CreatedAt:        e.now(),
	}, nil
}

// ParseEntry decodes the JSON columns of a stored entry. Emotions and
// phrases must decode; unreadable pattern flags are tolerated since nothing
// reads them back.
func ParseEntry(s core.StoredLearnedEntry) (core.LearnedEntry, error) {
	entry := core.LearnedEntry{
		ID:              s.ID,
		UserID:          s.UserID,
		ConfidenceScore: s.ConfidenceScore,
		CreatedAt:       s.CreatedAt,
	}

	if err := json.Unmarshal([]byte(s.EmotionKeywords), &entry.EmotionKeywords); err != nil {
		return entry, fmt.Errorf("entry %s: emotion keywords: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(s.KeyPhrases), &entry.KeyPhrases); err != nil {
		return entry, fmt.Errorf("entry %s: key phrases: %w", s.ID, err)
	}
	_ = json.Unmarshal([]byte(s.ResponsePatterns), &entry.ResponsePatterns)

	return entry, nil
}
