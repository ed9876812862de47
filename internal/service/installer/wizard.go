package installer

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/saori/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var ErrInterrupted = errors.New("installation interrupted")

// Step is one screen of the wizard. Update returns nil when the step is
// finished; steps that do not apply to earlier answers finish on their
// first Update, so their Init returns next to get one.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewCustomURLStep(),
		NewOllamaURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewStoreStep(),
		NewPostgresDSNStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewPersonaStep(),
	}
}

// item is a bubbles list entry.
type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type errMsg error
type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

// summaryKeys are echoed above the current step once answered.
var summaryKeys = []struct{ key, label string }{
	{keyProvider, "provider"},
	{keyModel, "model"},
	{keyStoreDriver, "store"},
	{keyChannel, "channel"},
}

type wizard struct {
	steps    []Step
	pos      int
	state    *InstallState
	quitting bool
	err      error
	width    int
	height   int
}

func newWizard(steps []Step) wizard {
	return wizard{
		steps: steps,
		state: NewInstallState(),
	}
}

func (w wizard) done() bool {
	return w.pos >= len(w.steps)
}

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return tea.Quit
	}
	return w.steps[0].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
	case errMsg:
		w.err = msg
		return w, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.quitting = true
			return w, tea.Quit
		}
	}

	if w.quitting || w.done() {
		return w, tea.Quit
	}

	step, cmd := w.steps[w.pos].Update(msg, w.state, w.width, w.height)
	if step != nil {
		w.steps[w.pos] = step
		return w, cmd
	}

	w.pos++
	if w.done() {
		return w, tea.Quit
	}
	return w, w.steps[w.pos].Init()
}

func (w wizard) View() string {
	switch {
	case w.quitting:
		return "Installation cancelled.\n"
	case w.err != nil:
		return errorStyle.Render(fmt.Sprintf("Error: %v", w.err)) + "\n\n(press ctrl+c to quit)\n"
	case w.done():
		return "Configuration complete!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Setting up "+core.SaoriName) + "\n")
	for _, s := range summaryKeys {
		if v := w.state.EnvVars[s.key]; v != "" {
			b.WriteString(doneStyle.Render(fmt.Sprintf("  %s: %s", s.label, v)) + "\n")
		}
	}
	b.WriteString("\n" + w.steps[w.pos].View(w.state))
	return b.String()
}

// RunWizard starts the TUI and returns the collected answers.
func RunWizard() (*InstallState, error) {
	m, err := tea.NewProgram(newWizard(getSteps()), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	final := m.(wizard)
	if final.quitting {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(core.SaoriName), ErrInterrupted)
	}
	if final.err != nil {
		return nil, final.err
	}
	return final.state, nil
}
