package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/saori/internal/config"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return next
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	channel := state.EnvVars[keyChannel]
	state.EnvVars[keyEnableTelegram] = boolEnv(channel == "telegram" && state.EnvVars[keyTelegramToken] != "")
	state.EnvVars[keyEnableCLI] = boolEnv(channel == "cli")

	if state.EnvVars[keyStoreDriver] == "" {
		state.EnvVars[keyStoreDriver] = config.StoreSQLite
	}
	if state.EnvVars[keyDebug] == "" {
		state.EnvVars[keyDebug] = "0"
	}

	// Only used as intermediate state
	delete(state.EnvVars, keyChannel)
}

func boolEnv(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
