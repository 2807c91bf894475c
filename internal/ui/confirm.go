// pattern: Imperative Shell

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a single-key yes/no prompt.
type confirmModel struct {
	question string
	styles   *Styles
	answered bool
	accepted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answered = true
		m.accepted = true
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c":
		m.answered = true
		m.accepted = false
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return fmt.Sprintf("%s %s\n",
		m.styles.Warning().Render(m.question),
		m.styles.Muted().Render("[y/n]"),
	)
}

// Confirm asks a yes/no question and blocks until the user answers.
// Any abort key (n, q, esc, ctrl+c) counts as no.
func Confirm(styles *Styles, question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question, styles: styles})
	out, err := p.Run()
	if err != nil {
		return false, err
	}
	return out.(confirmModel).accepted, nil
}
