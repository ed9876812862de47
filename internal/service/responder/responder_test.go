package responder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/providers/cache"
	"github.com/sandevgo/saori/internal/service/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	ai      *fakeAI
	learned *fakeLearned
	tags    *fakeTags
	learner *fakeLearner
	r       *Responder
}

func newHarness(cfg fakeConfig) *harness {
	h := &harness{
		ai:      &fakeAI{reply: "I hear you. That sounds really heavy to carry today."},
		learned: &fakeLearned{},
		tags:    &fakeTags{byName: map[string]core.TagRecord{"plain": {ID: 1, Name: "plain", Tone: "clear"}}},
		learner: &fakeLearner{},
	}
	h.r = New(cfg, Deps{
		Cache:   cache.NewMemoryCache(time.Minute),
		Learned: h.learned,
		Tags:    h.tags,
		AI:      h.ai,
		Learner: h.learner,
	})
	return h
}

func isolated() fakeConfig {
	return fakeConfig{isolation: true, timeout: time.Second}
}

func storedEntry(id, user string, score float64, emotions, phrases string) core.StoredLearnedEntry {
	return core.StoredLearnedEntry{
		ID:               id,
		UserID:           user,
		EmotionKeywords:  emotions,
		ResponsePatterns: `{}`,
		KeyPhrases:       phrases,
		ConfidenceScore:  score,
	}
}

func TestRespond_QuickGrief(t *testing.T) {
	h := newHarness(isolated())

	got, err := h.r.Respond(context.Background(), core.Request{Message: "I feel such grief today", Mode: core.ModeQuick})
	require.NoError(t, err)

	assert.Equal(t, quickTable[0].reply, got.Reply)
	assert.Equal(t, core.MethodQuick, got.Log.Method)
	assert.False(t, got.Log.CacheUsed)
	assert.NotEmpty(t, got.Log.ProcessingTime)
	assert.NotNil(t, got.ParsedGlyphs)
	assert.NotNil(t, got.UpsertedGlyphs)
	assert.Zero(t, h.ai.callCount())
}

func TestRespond_QuickTieBreak(t *testing.T) {
	tests := []struct {
		message string
		emotion string
	}{
		{message: "so much joy after all this grief", emotion: "grief"},
		{message: "anger and anxiety all day", emotion: "anxiety"},
		{message: "vulnerable but healing", emotion: "healing"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				h := newHarness(isolated())
				got, err := h.r.Respond(context.Background(), core.Request{Message: tt.message, Mode: core.ModeQuick})
				require.NoError(t, err)
				assert.Equal(t, []string{tt.emotion}, got.Log.EmotionsDetected)
			}
		})
	}
}

func TestRespond_QuickTableOnlyInQuickMode(t *testing.T) {
	h := newHarness(isolated())

	got, err := h.r.Respond(context.Background(), core.Request{Message: "I feel such grief today", Mode: core.ModeHybrid})
	require.NoError(t, err)

	assert.Equal(t, core.MethodAI, got.Log.Method)
	assert.Equal(t, 1, h.ai.callCount())
}

func TestRespond_CacheDeterminism(t *testing.T) {
	h := newHarness(isolated())
	ctx := context.Background()
	req := core.Request{Message: "tell me something", Mode: core.ModeHybrid, UserID: "u1"}

	first, err := h.r.Respond(ctx, req)
	require.NoError(t, err)
	second, err := h.r.Respond(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Reply, second.Reply)
	assert.Equal(t, first.Log.Method, second.Log.Method)
	assert.False(t, first.Log.CacheUsed)
	assert.True(t, second.Log.CacheUsed)
	assert.Equal(t, 1, h.ai.callCount())
}

func TestRespond_CacheIsolatedPerUser(t *testing.T) {
	h := newHarness(isolated())
	ctx := context.Background()

	_, err := h.r.Respond(ctx, core.Request{Message: "hi again", Mode: core.ModeHybrid, UserID: "a"})
	require.NoError(t, err)
	got, err := h.r.Respond(ctx, core.Request{Message: "hi again", Mode: core.ModeHybrid, UserID: "b"})
	require.NoError(t, err)

	assert.False(t, got.Log.CacheUsed)
	assert.Equal(t, 2, h.ai.callCount())
}

func TestRespond_LearnedGating(t *testing.T) {
	h := newHarness(isolated())
	h.learned.entries = []core.StoredLearnedEntry{
		storedEntry("low", "u1", 0.69, `{"anxiety":["anxious"]}`, `["Below the floor phrase"]`),
		storedEntry("edge", "u1", 0.70, `{"anxiety":["worried"]}`, `["Breathe with me for a moment", "Second phrase"]`),
	}

	got, err := h.r.Respond(context.Background(), core.Request{Message: "I'm so anxious", Mode: core.ModeHybrid, UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, core.MethodLearned, got.Log.Method)
	assert.Equal(t, "Breathe with me for a moment", got.Reply)
	assert.Equal(t, []string{"anxiety"}, got.Log.EmotionsDetected)
	assert.Zero(t, h.ai.callCount())
}

func TestRespond_LearnedSkipsUnusableEntries(t *testing.T) {
	h := newHarness(isolated())
	h.learned.entries = []core.StoredLearnedEntry{
		storedEntry("corrupt", "u1", 0.95, `{not json`, `["Corrupt phrase"]`),
		storedEntry("other-emotion", "u1", 0.9, `{"joy":["happy"]}`, `["Joy phrase"]`),
		storedEntry("no-phrases", "u1", 0.85, `{"grief":["loss"]}`, `[]`),
		storedEntry("match", "u1", 0.8, `{"grief":["grief"]}`, `["You are held in this loss"]`),
	}

	got, err := h.r.Respond(context.Background(), core.Request{Message: "the loss is heavy", Mode: core.ModeHybrid, UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, core.MethodLearned, got.Log.Method)
	assert.Equal(t, "You are held in this loss", got.Reply)
}

func TestRespond_LearnedScopedToUser(t *testing.T) {
	h := newHarness(isolated())
	h.learned.entries = []core.StoredLearnedEntry{
		storedEntry("mine", "alice", 0.9, `{"grief":["grief"]}`, `["Alice only phrase here"]`),
	}

	got, err := h.r.Respond(context.Background(), core.Request{Message: "grief again", Mode: core.ModeHybrid, UserID: "bob"})
	require.NoError(t, err)

	assert.NotEqual(t, "Alice only phrase here", got.Reply)
	assert.Equal(t, []string{"bob"}, h.learned.scopes)
}

func TestRespond_NoEmotionSkipsStore(t *testing.T) {
	h := newHarness(isolated())

	_, err := h.r.Respond(context.Background(), core.Request{Message: "what time is it", Mode: core.ModeHybrid, UserID: "u1"})
	require.NoError(t, err)

	assert.Zero(t, h.learned.reads())
}

func TestRespond_NoUserSkipsStoreAndLearning(t *testing.T) {
	h := newHarness(isolated())

	got, err := h.r.Respond(context.Background(), core.Request{Message: "grief", Mode: core.ModeHybrid})
	require.NoError(t, err)

	assert.Equal(t, core.MethodAI, got.Log.Method)
	assert.Zero(t, h.learned.reads())
	assert.Empty(t, h.learner.submissions())
}

func TestRespond_SharedScopeWithoutIsolation(t *testing.T) {
	h := newHarness(fakeConfig{timeout: time.Second})
	h.learned.entries = []core.StoredLearnedEntry{
		storedEntry("shared", "", 0.9, `{"joy":["happy"]}`, `["That is wonderful news to hear"]`),
	}

	got, err := h.r.Respond(context.Background(), core.Request{Message: "so happy", Mode: core.ModeHybrid, UserID: "anyone"})
	require.NoError(t, err)

	assert.Equal(t, core.MethodLearned, got.Log.Method)
	assert.Equal(t, []string{""}, h.learned.scopes)
}

func TestRespond_AIReplySubmitsLearning(t *testing.T) {
	h := newHarness(isolated())

	got, err := h.r.Respond(context.Background(), core.Request{Message: "I miss them", Mode: core.ModeAIPreferred, UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, core.MethodAI, got.Log.Method)
	assert.Equal(t, h.ai.reply, got.Reply)

	subs := h.learner.submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, submission{scope: "u1", message: "I miss them", reply: h.ai.reply}, subs[0])

	require.Len(t, h.ai.calls, 1)
	call := h.ai.calls[0]
	assert.Equal(t, int64(200), call.MaxTokens)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, "I miss them", call.User)
	assert.Contains(t, call.System, "Saori")
}

func TestRespond_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		ai   *fakeAI
		mode string
	}{
		{name: "completion error", ai: &fakeAI{err: errors.New("upstream down")}, mode: core.ModeHybrid},
		{name: "completion timeout", ai: &fakeAI{block: true}, mode: core.ModeHybrid},
		{name: "local mode", ai: &fakeAI{reply: "unused"}, mode: core.ModeLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := isolated()
			cfg.timeout = 20 * time.Millisecond
			h := newHarness(cfg)
			h.r.ai = tt.ai

			var replies []string
			for i := 0; i < 3; i++ {
				// fresh cache per call so the fallback is recomputed
				h.r.cache = cache.NewMemoryCache(time.Minute)
				got, err := h.r.Respond(context.Background(), core.Request{Message: "asdkjasjd", Mode: tt.mode, UserID: "u1"})
				require.NoError(t, err)
				assert.Equal(t, core.MethodFallback, got.Log.Method)
				replies = append(replies, got.Reply)
			}

			assert.True(t, slices.Contains(fallbackReplies, replies[0]))
			assert.Equal(t, replies[0], replies[1])
			assert.Equal(t, replies[0], replies[2])
			assert.Empty(t, h.learner.submissions())
		})
	}

	t.Run("local mode never calls completion", func(t *testing.T) {
		h := newHarness(isolated())
		_, err := h.r.Respond(context.Background(), core.Request{Message: "asdkjasjd", Mode: core.ModeLocal})
		require.NoError(t, err)
		assert.Zero(t, h.ai.callCount())
	})
}

func TestRespond_TagLookup(t *testing.T) {
	t.Run("plain intent", func(t *testing.T) {
		h := newHarness(isolated())
		got, err := h.r.Respond(context.Background(), core.Request{Message: "explain it in simple words", Mode: core.ModeHybrid})
		require.NoError(t, err)

		require.NotNil(t, got.Glyph)
		assert.Equal(t, "plain", got.Glyph.Name)
		assert.Equal(t, []string{"plain"}, h.tags.gotNames)
		assert.Contains(t, h.ai.calls[0].System, plainStyle)
		assert.Contains(t, h.ai.calls[0].System, "Keep a clear tone.")
	})

	t.Run("tag flavors prompt", func(t *testing.T) {
		h := newHarness(isolated())
		h.tags.search = []core.TagRecord{{ID: 2, Name: "grief", Tone: "tender", Style: "Acknowledge the loss first."}}
		got, err := h.r.Respond(context.Background(), core.Request{Message: "my grief is heavy", Mode: core.ModeHybrid})
		require.NoError(t, err)

		require.NotNil(t, got.Glyph)
		require.Len(t, h.ai.calls, 1)
		system := h.ai.calls[0].System
		assert.True(t, strings.HasPrefix(system, DefaultPersona))
		assert.Contains(t, system, "Keep a tender tone.")
		assert.Contains(t, system, "Acknowledge the loss first.")
	})

	t.Run("slow tag falls back to default prompt", func(t *testing.T) {
		h := newHarness(isolated())
		slow := &slowTags{fakeTags: h.tags, delay: 2 * tagWait}
		slow.search = []core.TagRecord{{ID: 2, Name: "grief", Tone: "tender"}}
		h.r.tags = slow
		got, err := h.r.Respond(context.Background(), core.Request{Message: "my grief is heavy", Mode: core.ModeHybrid})
		require.NoError(t, err)

		require.NotNil(t, got.Glyph, "tag still reaches the reply")
		assert.Equal(t, DefaultPersona, h.ai.calls[0].System)
	})

	t.Run("search", func(t *testing.T) {
		h := newHarness(isolated())
		h.tags.search = []core.TagRecord{{ID: 4, Name: "lonely"}}
		got, err := h.r.Respond(context.Background(), core.Request{Message: "so lonely", Mode: core.ModeHybrid})
		require.NoError(t, err)

		require.NotNil(t, got.Glyph)
		assert.Equal(t, "lonely", got.Glyph.Name)
		assert.Empty(t, h.tags.gotNames)
	})

	t.Run("failure isolated from completion", func(t *testing.T) {
		h := newHarness(isolated())
		h.tags.err = errors.New("store down")
		got, err := h.r.Respond(context.Background(), core.Request{Message: "so lonely", Mode: core.ModeHybrid})
		require.NoError(t, err)

		assert.Nil(t, got.Glyph)
		assert.Equal(t, core.MethodAI, got.Log.Method)
	})
}

func TestRespond_ComplexEmotionGlyph(t *testing.T) {
	long := "There is a deep and tangled feeling in my chest that I cannot name yet"

	tests := []struct {
		name    string
		message string
		mode    string
		want    int
	}{
		{name: "long intense hybrid", message: long, mode: core.ModeHybrid, want: 1},
		{name: "quick mode", message: long, mode: core.ModeQuick, want: 0},
		{name: "short", message: "deep feeling", mode: core.ModeHybrid, want: 0},
		{name: "no intensity word", message: strings.Repeat("nothing special here ", 4), mode: core.ModeHybrid, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(isolated())
			got, err := h.r.Respond(context.Background(), core.Request{Message: tt.message, Mode: tt.mode})
			require.NoError(t, err)
			require.Len(t, got.ParsedGlyphs, tt.want)
			if tt.want == 1 {
				assert.Equal(t, complexEmotion, got.ParsedGlyphs[0])
			}
			assert.Empty(t, got.UpsertedGlyphs)
		})
	}
}

func TestRespond_ConfigurationMissing(t *testing.T) {
	r := New(isolated(), Deps{
		Cache:     cache.NewMemoryCache(time.Minute),
		ConfigErr: core.ErrConfigurationMissing,
	})

	_, err := r.Respond(context.Background(), core.Request{Message: "hi", Mode: core.ModeQuick})
	assert.True(t, errors.Is(err, core.ErrConfigurationMissing))
}

// slowRepo delays writes so the test can observe the reply returning first.
type slowRepo struct {
	fakeLearned
	delay time.Duration
	once  sync.Once
	done  chan struct{}
}

func (s *slowRepo) SaveEntry(ctx context.Context, e core.StoredLearnedEntry) error {
	time.Sleep(s.delay)
	err := s.fakeLearned.SaveEntry(ctx, e)
	s.once.Do(func() { close(s.done) })
	return err
}

func TestRespond_LearningDoesNotDelayReply(t *testing.T) {
	repo := &slowRepo{delay: 300 * time.Millisecond, done: make(chan struct{})}
	extractor := learning.NewExtractor(repo, nil)
	ai := &fakeAI{reply: "I'm so sorry. You do not have to carry this alone."}

	r := New(isolated(), Deps{
		Cache:   cache.NewMemoryCache(time.Minute),
		Learned: repo,
		AI:      ai,
		Learner: extractor,
	})

	start := time.Now()
	got, err := r.Respond(context.Background(), core.Request{Message: "grieving tonight", Mode: core.ModeHybrid, UserID: "u1"})
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Equal(t, core.MethodAI, got.Log.Method)
	assert.Less(t, elapsed, repo.delay)
	select {
	case <-repo.done:
		t.Fatal("learning write finished before the reply was returned")
	default:
	}

	require.NoError(t, extractor.Shutdown(context.Background()))
	assert.Len(t, repo.entries, 1)
	assert.Equal(t, "u1", repo.entries[0].UserID)
}

func TestSysPrompt_Tag(t *testing.T) {
	p := NewSysPrompt(nil)

	tests := []struct {
		name  string
		plain bool
		tag   *core.TagRecord
		want  string
	}{
		{name: "no tag", want: DefaultPersona},
		{name: "empty metadata", tag: &core.TagRecord{Name: "x"}, want: DefaultPersona},
		{
			name: "tone and style",
			tag:  &core.TagRecord{Tone: "safe", Style: "Keep the tone soft."},
			want: DefaultPersona + "\nKeep a safe tone.\nKeep the tone soft.",
		},
		{
			name:  "plain with tone",
			plain: true,
			tag:   &core.TagRecord{Tone: "clear"},
			want:  DefaultPersona + "\n" + plainStyle + "\nKeep a clear tone.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Build(tt.plain, tt.tag))
		})
	}
}

func TestSysPrompt_PersonaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PERSONA.md")
	require.NoError(t, os.WriteFile(path, []byte("You are a calm night-sky companion.\n"), 0o644))

	p := NewSysPrompt(fakeConfig{persona: path})
	assert.Equal(t, "You are a calm night-sky companion.", p.Build(false, nil))
	assert.Equal(t, "You are a calm night-sky companion.\n"+plainStyle, p.Build(true, nil))

	missing := NewSysPrompt(fakeConfig{persona: filepath.Join(t.TempDir(), "none.md")})
	assert.Equal(t, DefaultPersona, missing.Build(false, nil))
}
