package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/pkg/log"
)

type responder interface {
	Respond(ctx context.Context, req core.Request) (core.Reply, error)
}

type modes interface {
	Mode(sessionID string) string
}

// Chat serves interactive channels. Slash commands go to the command
// router, everything else to the responder with the session's mode.
type Chat struct {
	commands  core.CmdRouter
	responder responder
	sessions  modes
}

func New(commands core.CmdRouter, r responder, sessions modes) *Chat {
	return &Chat{
		commands:  commands,
		responder: r,
		sessions:  sessions,
	}
}

// Handle returns Markdown for one chat line. The session ID doubles as
// the user ID.
func (c *Chat) Handle(ctx context.Context, sessionID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	if out, ok := c.commands.Execute(ctx, sessionID, text); ok {
		return out, nil
	}

	reply, err := c.responder.Respond(ctx, core.Request{
		Message: text,
		Mode:    c.sessions.Mode(sessionID),
		UserID:  sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("respond: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Str("session", sessionID).
		Str("method", reply.Log.Method).
		Bool("cache_used", reply.Log.CacheUsed).
		Str("processing_time", reply.Log.ProcessingTime).
		Msg("reply ready")

	return Format(reply), nil
}

// Format renders a reply with its glyph annotations as Markdown.
func Format(reply core.Reply) string {
	var sb strings.Builder
	sb.WriteString(reply.Reply)

	if reply.Glyph != nil {
		fmt.Fprintf(&sb, "\n\n_%s_", reply.Glyph.Name)
	}
	for _, g := range reply.ParsedGlyphs {
		fmt.Fprintf(&sb, "\n_%s: %s_", g.Name, g.Description)
	}
	return sb.String()
}
