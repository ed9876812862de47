package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/saori/internal/core"
)

type lister interface {
	ListCommands() []core.Command
}

type HelpCommand struct {
	router    lister
	formatter *ResponseFormatter
}

func NewHelpCommand(router lister) *HelpCommand {
	return &HelpCommand{
		router:    router,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	cmds := c.router.ListCommands()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("anything that does not start with / goes to "+core.SaoriName),
	), nil
}
