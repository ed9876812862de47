package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/saori/internal/config"
)

type choice struct {
	id    string
	label string
}

// ChoiceStep stores the id of the selected choice under key.
type ChoiceStep struct {
	title   string
	key     string
	choices []choice
	cursor  int
}

func NewProviderStep() Step {
	return &ChoiceStep{
		title: "Select your AI Provider:",
		key:   keyProvider,
		choices: []choice{
			{config.ProviderOpenAI, "OpenAI"},
			{config.ProviderOpenRouter, "OpenRouter"},
			{config.ProviderAnthropic, "Anthropic"},
			{config.ProviderOllama, "Ollama (local)"},
			{config.ProviderCustom, "Custom OpenAI-compatible endpoint"},
		},
	}
}

func NewStoreStep() Step {
	return &ChoiceStep{
		title: "Where should learned replies be stored?",
		key:   keyStoreDriver,
		choices: []choice{
			{config.StoreSQLite, "SQLite file in the runtime directory"},
			{config.StorePostgres, "PostgreSQL"},
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		title: "Select your Chat Channel (the HTTP API is always on):",
		key:   keyChannel,
		choices: []choice{
			{"http", "HTTP API only"},
			{"telegram", "Telegram"},
			{"cli", "Terminal"},
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[s.key] = s.choices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
