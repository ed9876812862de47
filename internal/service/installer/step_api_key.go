package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/saori/internal/config"
)

// APIKeyStep collects the key for the selected provider. Ollama needs none.
type APIKeyStep struct {
	input      textinput.Model
	provider   string
	envKey     string
	title      string
	isOptional bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return next
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.EnvVars[keyProvider]

	placeholder := "sk-..."
	switch s.provider {
	case config.ProviderOpenAI:
		s.envKey = "SAORI_OPENAI_API_KEY"
		s.title = "OpenAI API Key"
	case config.ProviderOpenRouter:
		s.envKey = "SAORI_OPENROUTER_API_KEY"
		s.title = "OpenRouter API Key"
		placeholder = "sk-or-v1-..."
	case config.ProviderAnthropic:
		s.envKey = "SAORI_ANTHROPIC_API_KEY"
		s.title = "Anthropic API Key"
		placeholder = "sk-ant-..."
	case config.ProviderCustom:
		s.envKey = "SAORI_CUSTOM_OPENAI_API_KEY"
		s.title = "API Key for the custom endpoint"
		s.isOptional = true
	default:
		return false
	}

	s.input = newInput(placeholder, true)
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.envKey == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.isOptional {
			return s, cmd
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.envKey == "" {
		return "Loading...\n"
	}

	optionalHint := ""
	if s.isOptional {
		optionalHint = " (optional, press enter to skip)"
	}

	return fmt.Sprintf("Enter your %s%s:\n\n%s\n\n(press enter to confirm)\n",
		s.title, optionalHint, s.input.View())
}
