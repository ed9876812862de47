package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/learning"
	"github.com/sandevgo/saori/internal/service/metrics"
	"github.com/sandevgo/saori/pkg/log"
)

const (
	learnedMinConfidence = 0.7
	learnedLimit         = 10
)

// Learner receives AI replies worth remembering. Submit must not block.
type Learner interface {
	Submit(ctx context.Context, scope, message, reply string)
}

// Responder selects a reply in stages: cache, quick table, learned phrases,
// then generation. Every stage degrades instead of failing.
type Responder struct {
	cfg     core.AppConfig
	cache   core.ResponseCache
	learned core.LearnedRepository
	tags    core.TagRepository
	ai      core.AIProvider
	learner Learner
	prompt  *SysPrompt
	metrics *metrics.Metrics

	configErr error
	now       func() time.Time
}

type Deps struct {
	Cache   core.ResponseCache
	Learned core.LearnedRepository
	Tags    core.TagRepository
	AI      core.AIProvider
	Learner Learner
	Metrics *metrics.Metrics
	// ConfigErr is returned for every request when set.
	ConfigErr error
}

func New(cfg core.AppConfig, deps Deps) *Responder {
	return &Responder{
		cfg:       cfg,
		cache:     deps.Cache,
		learned:   deps.Learned,
		tags:      deps.Tags,
		ai:        deps.AI,
		learner:   deps.Learner,
		prompt:    NewSysPrompt(cfg),
		metrics:   deps.Metrics,
		configErr: deps.ConfigErr,
		now:       time.Now,
	}
}

// Respond runs the pipeline for one normalized request. The only errors
// are configuration errors; upstream failures produce a fallback reply.
func (r *Responder) Respond(ctx context.Context, req core.Request) (core.Reply, error) {
	if r.configErr != nil {
		return core.Reply{}, fmt.Errorf("responder: %w", r.configErr)
	}

	start := r.now()
	scope, hasUser := r.scope(req)
	ctx = log.WithFields(ctx, map[string]any{"mode": req.Mode, "scope": scope})

	key := cacheKey(r.keyScope(req), req.Message, req.Mode)
	if cached, ok := r.cache.Get(ctx, key); ok {
		cached.Log.CacheUsed = true
		r.metrics.ObserveResponse(cached.Log.Method, true, r.now().Sub(start))
		log.FromCtx(ctx).Debug().Str("method", cached.Log.Method).Msg("cache hit")
		return cached, nil
	}

	reply := r.selectReply(ctx, req, scope, hasUser)
	reply.Log.ProcessingTime = formatElapsed(r.now().Sub(start))

	r.cache.Set(ctx, key, reply)
	r.metrics.ObserveResponse(reply.Log.Method, false, r.now().Sub(start))
	return reply, nil
}

func (r *Responder) selectReply(ctx context.Context, req core.Request, scope string, hasUser bool) core.Reply {
	lower := strings.ToLower(req.Message)

	if req.Mode == core.ModeQuick {
		if q, ok := matchQuick(lower); ok {
			return newReply(q.reply, core.MethodQuick, []string{q.emotion})
		}
	}

	emotions := learning.DetectEmotions(req.Message)
	if phrase, ok := r.matchLearned(ctx, emotions, scope, hasUser); ok {
		return newReply(phrase, core.MethodLearned, emotions.Names())
	}

	return r.generate(ctx, req, emotions, scope, hasUser)
}

// matchLearned returns the first key phrase of the first stored entry that
// shares an emotion with the message. Emotionless messages never hit the
// store.
func (r *Responder) matchLearned(ctx context.Context, emotions learning.Emotions, scope string, hasUser bool) (string, bool) {
	if len(emotions) == 0 || !hasUser || r.learned == nil {
		return "", false
	}

	logger := log.FromCtx(ctx)
	entries, err := r.learned.TopEntries(ctx, scope, learnedMinConfidence, learnedLimit)
	if err != nil {
		r.metrics.UpstreamFailure("store")
		logger.Warn().Err(err).Msg("learned lookup failed")
		return "", false
	}

	for _, stored := range entries {
		if stored.ConfidenceScore < learnedMinConfidence {
			continue
		}
		entry, err := learning.ParseEntry(stored)
		if err != nil {
			logger.Debug().Err(err).Msg("skipping corrupt learned entry")
			continue
		}
		if emotions.Intersects(entry.EmotionKeywords) && len(entry.KeyPhrases) > 0 {
			return entry.KeyPhrases[0], true
		}
	}
	return "", false
}

// scope is the learned-entry owner for req. With isolation off every
// request shares the empty scope.
func (r *Responder) scope(req core.Request) (string, bool) {
	if r.cfg == nil || !r.cfg.IsUserIsolation() {
		return "", true
	}
	return req.UserID, req.UserID != ""
}

func (r *Responder) keyScope(req core.Request) string {
	if r.cfg == nil || !r.cfg.IsUserIsolation() {
		return ""
	}
	return req.UserID
}

func newReply(text, method string, emotions []string) core.Reply {
	return core.Reply{
		Reply:          text,
		ParsedGlyphs:   []core.Glyph{},
		UpsertedGlyphs: []core.Glyph{},
		Log: core.ResponseLog{
			Method:           method,
			EmotionsDetected: emotions,
		},
	}
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
