package command

import (
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/state"
)

func NewCommands(
	cfg core.AppConfig,
	sessions *state.Sessions,
	learned core.LearnedRepository,
) []core.Command {
	return []core.Command{
		NewModeCommand(sessions),
		NewLearnedCommand(cfg, learned),
	}
}
