package people

import (
	"errors"
	"io"

	"github.com/bnema/ppl/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type listModel struct {
	persons []domain.Person
	opts    RenderOptions
	styles  styles
	output  string
}

func newListModel(persons []domain.Person, opts RenderOptions) listModel {
	return listModel{
		persons: persons,
		opts:    opts,
		styles:  newStyles(),
	}
}

func (m listModel) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderList(m.persons, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m listModel) View() string {
	return m.output
}

// Render draws a static person list, as printed by non-interactive commands.
func Render(persons []domain.Person, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newListModel(persons, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(listModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
