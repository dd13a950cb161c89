package prompt

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/ptable/internal/ui/styles"
)

// Answer is the outcome of a yes/no prompt.
type Answer struct {
	Yes       bool
	Cancelled bool
}

type overwriteModel struct {
	path      string
	yes       bool
	done      bool
	cancelled bool
}

func (m overwriteModel) Init() tea.Cmd {
	return nil
}

func (m overwriteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.yes, m.done = true, true
		return m, tea.Quit
	case "n", "N", "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "q", "esc":
		m.cancelled, m.done = true, true
		return m, tea.Quit
	}
	return m, nil
}

func (m overwriteModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s already exists. Overwrite? [y/N] ", styles.AccentStyle.Render(m.path)))
}

// Overwrite asks whether the existing file at path may be replaced.
// Enter answers no.
func Overwrite(path string) (Answer, error) {
	p := tea.NewProgram(overwriteModel{path: path},
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	final, err := p.Run()
	if err != nil {
		return Answer{}, err
	}
	m := final.(overwriteModel)
	return Answer{Yes: m.yes, Cancelled: m.cancelled}, nil
}
