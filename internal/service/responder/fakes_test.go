package responder

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/saori/internal/core"
)

type fakeConfig struct {
	isolation bool
	timeout   time.Duration
	persona   string
}

func (c fakeConfig) GetRuntimePath() string              { return "" }
func (c fakeConfig) GetDatabasePath() string             { return "" }
func (c fakeConfig) GetPersonaPath() string              { return c.persona }
func (c fakeConfig) GetCacheTTL() time.Duration          { return time.Minute }
func (c fakeConfig) GetCompletionTimeout() time.Duration { return c.timeout }
func (c fakeConfig) IsUserIsolation() bool               { return c.isolation }

type fakeAI struct {
	mu    sync.Mutex
	calls []core.CompletionRequest
	reply string
	err   error
	block bool
}

func (f *fakeAI) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeLearned struct {
	mu      sync.Mutex
	entries []core.StoredLearnedEntry
	err     error
	scopes  []string
}

func (f *fakeLearned) SaveEntry(ctx context.Context, e core.StoredLearnedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

// TopEntries returns entries of userID without filtering on confidence so
// tests can check the responder's own floor.
func (f *fakeLearned) TopEntries(ctx context.Context, userID string, minConfidence float64, limit int) ([]core.StoredLearnedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, userID)
	if f.err != nil {
		return nil, f.err
	}
	var out []core.StoredLearnedEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLearned) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scopes)
}

type fakeTags struct {
	mu       sync.Mutex
	byName   map[string]core.TagRecord
	search   []core.TagRecord
	err      error
	gotNames []string
}

func (f *fakeTags) GetTagByName(ctx context.Context, name string) (*core.TagRecord, error) {
	f.mu.Lock()
	f.gotNames = append(f.gotNames, name)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byName[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTags) SearchTags(ctx context.Context, lowerText string, limit int) ([]core.TagRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

type submission struct {
	scope, message, reply string
}

type fakeLearner struct {
	mu   sync.Mutex
	subs []submission
}

func (f *fakeLearner) Submit(ctx context.Context, scope, message, reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, submission{scope, message, reply})
}

func (f *fakeLearner) submissions() []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submission(nil), f.subs...)
}

// slowTags delays lookups past the prompt wait.
type slowTags struct {
	*fakeTags
	delay time.Duration
}

func (s *slowTags) SearchTags(ctx context.Context, lowerText string, limit int) ([]core.TagRecord, error) {
	time.Sleep(s.delay)
	return s.fakeTags.SearchTags(ctx, lowerText, limit)
}
