package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/saori/internal/providers/llm"
)

const customModelID = "__custom__"

// ModelStep offers the suggested models of the selected provider and falls
// back to free text for custom endpoints or when "Other" is picked.
type ModelStep struct {
	list     list.Model
	input    textinput.Model
	ready    bool
	freeText bool
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:  l,
		input: newInput("model name", false),
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return next
}

func (s *ModelStep) load(state *InstallState) {
	s.ready = true

	models := llm.SuggestedModels(state.EnvVars[keyProvider])
	if len(models) == 0 {
		s.freeText = true
		return
	}

	items := make([]list.Item, 0, len(models)+1)
	for i, id := range models {
		desc := "suggested"
		if i == 0 {
			desc = "default"
		}
		items = append(items, item{id: id, title: id, desc: desc})
	}
	items = append(items, item{id: customModelID, title: "Other", desc: "type a model name"})
	s.list.SetItems(items)
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		s.load(state)
	}
	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	var cmd tea.Cmd
	if s.freeText {
		s.input, cmd = s.input.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
			if val := strings.TrimSpace(s.input.Value()); val != "" {
				state.EnvVars[keyModel] = val
				return nil, nil
			}
		}
		return s, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		wasFiltering := s.list.FilterState() == list.Filtering
		s.list, cmd = s.list.Update(msg)
		if wasFiltering || s.list.FilterState() == list.Filtering {
			return s, cmd
		}

		if i, ok := s.list.SelectedItem().(item); ok {
			if i.id == customModelID {
				s.freeText = true
				return s, textinput.Blink
			}
			state.EnvVars[keyModel] = i.id
			return nil, nil
		}
		return s, cmd
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.freeText {
		return fmt.Sprintf("Enter the model name:\n\n%s\n\n(press enter to confirm)\n", s.input.View())
	}
	return s.list.View()
}
