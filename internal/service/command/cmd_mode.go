package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/saori/internal/service/state"
)

type ModeCommand struct {
	sessions  *state.Sessions
	formatter *ResponseFormatter
}

func NewModeCommand(sessions *state.Sessions) *ModeCommand {
	return &ModeCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Show or change the response mode"
}

func (c *ModeCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Response Mode"),
			c.formatter.Label("Current", c.sessions.Mode(sessionID)),
			c.formatter.Usage("/mode [mode]"),
			c.formatter.Examples(prefixAll("/mode ", c.sessions.Modes())),
		), nil
	}

	if err := c.sessions.SetMode(sessionID, args[0]); err != nil {
		return "", fmt.Errorf("unknown mode %q, use one of: %s", args[0], strings.Join(c.sessions.Modes(), ", "))
	}

	return c.formatter.Success(fmt.Sprintf("Mode changed to: `%s`", c.sessions.Mode(sessionID))), nil
}

func prefixAll(prefix string, items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = prefix + item
	}
	return out
}
