package prompt

import (
	"context"
	"fmt"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/aniongithub/devcontainer-tools/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func newTextInputModel(prompt, placeholder string, secret bool) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.SetWidth(60)
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	ti.Focus()
	return textInputModel{textInput: ti, prompt: prompt}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", styles.PromptStyle.Render(m.prompt), m.textInput.View())
}

// TextInput shows a text input prompt on stderr and returns the user's input.
func TextInput(ctx context.Context, prompt, placeholder string, secret bool) (TextInputResult, error) {
	model := newTextInputModel(prompt, placeholder, secret)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     m.textInput.Value(),
		Cancelled: m.cancelled,
	}, nil
}

// TUI prompts with an interactive text input.
type TUI struct{}

func (TUI) Prompt(ctx context.Context, req Request) (string, error) {
	res, err := TextInput(ctx, req.Message, req.Name, req.Secret)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", ErrCancelled
	}
	return res.Value, nil
}
