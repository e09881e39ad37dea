package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/driverjars/pkg/artifact"
	"github.com/matzehuels/driverjars/pkg/errors"
)

// Keep policies for the --keep flag.
const (
	keepAsk    = "ask"
	keepAlways = "always"
	keepNever  = "never"
)

// confirmPolicy maps a --keep flag value to a confirmation function for
// the pre-clean step. "always" deletes existing artifacts without asking,
// "never" keeps them, and "ask" prompts interactively. On a non-TTY
// stdin, "ask" degrades to keeping existing files so that scripted runs
// never block on input.
func confirmPolicy(name string) (artifact.ConfirmFunc, error) {
	switch name {
	case keepAlways:
		return artifact.ConfirmAlways, nil
	case keepNever:
		return artifact.ConfirmNever, nil
	case keepAsk:
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return artifact.ConfirmNever, nil
		}
		return askConfirm, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"invalid --keep value %q (use %s, %s, or %s)", name, keepAsk, keepAlways, keepNever)
	}
}

// askConfirm runs an interactive yes/no prompt and reports the answer.
// Declining is the default: enter, escape, and ctrl+c all answer no.
func askConfirm(ctx context.Context, prompt string) (bool, error) {
	m, err := tea.NewProgram(newConfirmModel(prompt), tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}
	return m.(confirmModel).confirmed, nil
}

// confirmModel is the bubbletea model for the yes/no prompt.
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter", "esc", "q", "ctrl+c":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s ",
		StyleWarning.Render(m.prompt),
		StyleDim.Render("[y/N]"))
}
