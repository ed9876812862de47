package responder

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/learning"
	"github.com/sandevgo/saori/pkg/log"
)

const (
	maxCompletionTokens   = 200
	completionTemperature = 0.7

	glyphMinLength = 50

	// tagWait caps how long the completion holds its prompt for the tag.
	tagWait = 250 * time.Millisecond
)

var (
	plainIntent     = regexp.MustCompile(`(?i)\b(plain|simple|simply|simpler|eli5|layman'?s?|in other words|explain like)\b`)
	intensityIntent = regexp.MustCompile(`(?i)(feeling|emotion|heart|soul|deep|profound|sacred|intense)`)

	complexEmotion = core.Glyph{Name: "complex_emotion", Description: "Layered emotional expression", Depth: 3}

	errCompletionDisabled = errors.New("completion disabled")
)

var fallbackReplies = []string{
	"I'm here with you. Tell me a little more about what's on your mind.",
	"Thank you for sharing that with me. How are you feeling right now?",
	"I'm listening. Take your time, there's no rush here.",
	"That sounds like a lot to hold. What would feel most supportive right now?",
	"You don't have to figure this out alone. I'm right here.",
}

// fallbackReply picks a sentence by the sum of the message's code points,
// so the same text always gets the same sentence.
func fallbackReply(message string) string {
	var sum uint64
	for _, r := range message {
		sum += uint64(r)
	}
	return fallbackReplies[sum%uint64(len(fallbackReplies))]
}

// generate looks up a tag and asks for a completion at the same time. The
// completion waits up to tagWait for the tag to flavor its prompt and goes
// on with the default prompt after that. A failure on one side never
// cancels the other.
func (r *Responder) generate(ctx context.Context, req core.Request, emotions learning.Emotions, scope string, hasUser bool) core.Reply {
	plain := plainIntent.MatchString(req.Message)

	var (
		wg         sync.WaitGroup
		tag        *core.TagRecord
		tagDone    = make(chan struct{})
		completion string
		err        error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(tagDone)
		tag = r.lookupTag(ctx, req.Message, plain)
	}()
	go func() {
		defer wg.Done()
		completion, err = r.complete(ctx, req, plain, func() *core.TagRecord {
			timer := time.NewTimer(tagWait)
			defer timer.Stop()
			select {
			case <-tagDone:
				return tag
			case <-timer.C:
			case <-ctx.Done():
			}
			return nil
		})
	}()
	wg.Wait()

	var reply core.Reply
	if err != nil {
		if !errors.Is(err, errCompletionDisabled) {
			r.metrics.UpstreamFailure("completion")
			log.FromCtx(ctx).Warn().Err(err).Msg("completion failed, using fallback")
		}
		reply = newReply(fallbackReply(req.Message), core.MethodFallback, emotions.Names())
	} else {
		reply = newReply(completion, core.MethodAI, emotions.Names())
		if hasUser && r.learner != nil {
			r.learner.Submit(ctx, scope, req.Message, completion)
		}
	}
	reply.Glyph = tag

	if utf8.RuneCountInString(req.Message) > glyphMinLength &&
		req.Mode != core.ModeQuick &&
		intensityIntent.MatchString(req.Message) {
		reply.ParsedGlyphs = []core.Glyph{complexEmotion}
	}

	return reply
}

// lookupTag returns nil on any failure.
func (r *Responder) lookupTag(ctx context.Context, message string, plain bool) *core.TagRecord {
	if r.tags == nil {
		return nil
	}

	if plain {
		tag, err := r.tags.GetTagByName(ctx, "plain")
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				r.metrics.UpstreamFailure("store")
				log.FromCtx(ctx).Warn().Err(err).Msg("tag lookup failed")
			}
			return nil
		}
		return tag
	}

	tags, err := r.tags.SearchTags(ctx, strings.ToLower(message), 1)
	if err != nil {
		r.metrics.UpstreamFailure("store")
		log.FromCtx(ctx).Warn().Err(err).Msg("tag search failed")
		return nil
	}
	if len(tags) == 0 {
		return nil
	}
	return &tags[0]
}

// complete calls awaitTag only when a completion will actually be made.
func (r *Responder) complete(ctx context.Context, req core.Request, plain bool, awaitTag func() *core.TagRecord) (string, error) {
	if req.Mode == core.ModeLocal || r.ai == nil {
		return "", errCompletionDisabled
	}
	system := r.prompt.Build(plain, awaitTag())

	if r.cfg != nil && r.cfg.GetCompletionTimeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.GetCompletionTimeout())
		defer cancel()
	}

	return r.ai.Complete(ctx, core.CompletionRequest{
		System:      system,
		User:        req.Message,
		MaxTokens:   maxCompletionTokens,
		Temperature: completionTemperature,
	})
}
