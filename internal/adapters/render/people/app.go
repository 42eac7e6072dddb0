package people

import (
	"context"

	"github.com/bnema/ppl/internal/application"
	"github.com/bnema/ppl/internal/domain"
	"github.com/bnema/ppl/internal/live"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the state the interactive program observes and drives.
type Controller interface {
	Login(email, password string)
	UpdateSearch(text string)
	Retry() bool
	Authenticated() live.Observable[bool]
	FilteredPersons() live.Observable[[]domain.Person]
	Status() live.Observable[domain.FetchStatus]
}

var _ Controller = (*application.Controller)(nil)

type focusTarget int

const (
	focusEmail focusTarget = iota
	focusPassword
	focusSubmit
	focusTargets
)

const (
	personLines     = 4
	reservedLines   = 8
	emailCharLimit  = 320
	searchCharLimit = 128
)

type Model struct {
	controller Controller
	bridge     *bridge
	form       *application.LoginForm
	styles     styles

	email    textinput.Model
	password textinput.Model
	search   textinput.Model
	spinner  spinner.Model
	focus    focusTarget

	authenticated bool
	searchText    string
	persons       []domain.Person
	status        domain.FetchStatus
	height        int
	offset        int
}

// NewModel subscribes to the controller right away; call Detach once the
// program has exited.
func NewModel(controller Controller) Model {
	s := newStyles()

	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "you@example.com"
	email.CharLimit = emailCharLimit

	password := textinput.New()
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "name"
	search.CharLimit = searchCharLimit

	form := application.NewLoginForm()
	form.Email.FocusChanged(true)
	email.Focus()

	return Model{
		controller: controller,
		bridge:     attach(controller),
		form:       form,
		styles:     s,
		email:      email,
		password:   password,
		search:     search,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.spinner),
		),
		focus:  focusEmail,
		status: domain.FetchStatusLoading,
	}
}

func (m Model) Detach() {
	m.bridge.detach()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.bridge.next())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clampOffset()
		return m, nil
	case authenticatedMsg:
		var cmd tea.Cmd
		if bool(msg) && !m.authenticated {
			m.authenticated = true
			m.email.Blur()
			m.password.Blur()
			cmd = m.search.Focus()
		}
		return m, tea.Batch(cmd, m.bridge.next())
	case personsMsg:
		m.persons = msg
		m.clampOffset()
		return m, m.bridge.next()
	case statusMsg:
		m.status = domain.FetchStatus(msg)
		return m, m.bridge.next()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.authenticated {
			return m.updateSearchScreen(msg)
		}
		return m.updateLoginScreen(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateLoginScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "enter":
		// A disabled button ignores presses.
		if !m.form.LoginEnabled() {
			return m, nil
		}
		if email, password, ok := m.form.Submit(); ok {
			m.controller.Login(email, password)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateSearchScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		if m.status == domain.FetchStatusError {
			m.controller.Retry()
		}
		return m, nil
	case "up":
		m.offset--
		m.clampOffset()
		return m, nil
	case "down":
		m.offset++
		m.clampOffset()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.authenticated {
		m.search, cmd = m.search.Update(msg)
		if value := m.search.Value(); value != m.searchText {
			m.searchText = value
			m.offset = 0
			m.controller.UpdateSearch(value)
		}
		return m, cmd
	}

	switch m.focus {
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		m.form.Email.SetValue(m.email.Value())
	case focusPassword:
		m.password, cmd = m.password.Update(msg)
		m.form.Password.SetValue(m.password.Value())
	}

	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := focusTarget((int(m.focus) + delta + int(focusTargets)) % int(focusTargets))
	m.setFocus(m.focus, false)
	m.focus = next
	return m.setFocus(next, true)
}

func (m *Model) setFocus(target focusTarget, focused bool) tea.Cmd {
	switch target {
	case focusEmail:
		m.form.Email.FocusChanged(focused)
		if focused {
			return m.email.Focus()
		}
		m.email.Blur()
	case focusPassword:
		m.form.Password.FocusChanged(focused)
		if focused {
			return m.password.Focus()
		}
		m.password.Blur()
	}

	return nil
}

func (m *Model) visiblePersons() int {
	if m.height <= 0 {
		return len(m.persons)
	}
	return max(1, (m.height-reservedLines)/personLines)
}

func (m *Model) clampOffset() {
	limit := max(0, len(m.persons)-m.visiblePersons())
	m.offset = min(max(m.offset, 0), limit)
}

func (m Model) View() string {
	if m.authenticated {
		return m.searchView()
	}
	return m.loginView()
}

func (m Model) loginView() string {
	s := m.styles

	button := s.button
	switch {
	case !m.form.LoginEnabled():
		button = s.buttonOff
	case m.focus == focusSubmit:
		button = s.buttonFocus
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.title.Render("Log in"),
		"",
		s.label.Render("Email"),
		m.email.View(),
		fieldErrorLine(m.form.Email.ShowError(), emailErrorText, s),
		s.label.Render("Password"),
		m.password.View(),
		fieldErrorLine(m.form.Password.ShowError(), passwordErrorText, s),
		button.Render("[ Log in ]"),
		"",
		s.help.Render("tab: next field • enter: log in • esc: quit"),
	)
}

func fieldErrorLine(show bool, text string, s styles) string {
	if !show {
		return ""
	}
	return s.fieldError.Render(text)
}

func (m Model) searchView() string {
	s := m.styles
	lines := []string{
		s.title.Render("Search persons"),
		m.search.View(),
	}

	end := min(len(m.persons), m.offset+m.visiblePersons())
	for _, person := range m.persons[m.offset:end] {
		lines = append(lines, s.section.Render(renderPerson(person, s)))
	}

	if line := statusLine(m.status, len(m.persons) == 0, m.spinner.View(), s); line != "" {
		lines = append(lines, s.section.Render(line))
	}

	help := "↑/↓: scroll • esc: quit"
	if m.status == domain.FetchStatusError {
		help = "ctrl+r: retry • " + help
	}
	lines = append(lines, "", s.help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run drives the interactive login and search screens until the user quits
// or ctx is canceled.
func Run(ctx context.Context, controller Controller, opts ...tea.ProgramOption) error {
	model := NewModel(controller)
	defer model.Detach()

	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(model, programOpts...).Run()
	return err
}
