package prompt

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/aniongithub/devcontainer-tools/internal/ui/styles"
)

type confirmModel struct {
	question   string
	defaultYes bool
	answer     bool
	answered   bool
	cancelled  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer, m.answered = true, true
	case "n", "N":
		m.answer, m.answered = false, true
	case "enter":
		m.answer, m.answered = m.defaultYes, true
	case "ctrl+c", "esc", "q":
		m.cancelled = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m confirmModel) render() string {
	if m.answered || m.cancelled {
		return ""
	}
	hint := "[y/N]"
	if m.defaultYes {
		hint = "[Y/n]"
	}
	return fmt.Sprintf("%s %s ", m.question, styles.MutedStyle.Render(hint))
}

// Confirm asks a yes/no question on stderr. Enter picks defaultYes.
// Returns ErrCancelled when the user aborts.
func Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question, defaultYes: defaultYes},
		tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}
