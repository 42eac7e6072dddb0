package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/ppl/internal/domain"
	"github.com/bnema/ppl/internal/live"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fetchProgressSource is the part of the controller the progress line
// watches.
type fetchProgressSource interface {
	FilteredPersons() live.Observable[[]domain.Person]
	Wait(ctx context.Context) error
}

type personsLoadedMsg struct {
	matched  int
	received int
}

type sequenceEndedMsg struct {
	err error
}

type fetchProgressModel struct {
	spinner  spinner.Model
	updates  <-chan personsLoadedMsg
	stop     <-chan struct{}
	wait     tea.Cmd
	search   string
	matched  int
	received int
	err      error
	done     bool
}

func newFetchProgressModel(search string, updates <-chan personsLoadedMsg, stop <-chan struct{}, wait tea.Cmd) fetchProgressModel {
	return fetchProgressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		updates: updates,
		stop:    stop,
		wait:    wait,
		search:  search,
	}
}

func (m fetchProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait, m.nextUpdate())
}

// nextUpdate blocks until the controller publishes another list. It returns
// nil once stop is closed.
func (m fetchProgressModel) nextUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return msg
		case <-m.stop:
			return nil
		}
	}
}

func (m fetchProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case personsLoadedMsg:
		m.matched = msg.matched
		m.received = msg.received
		return m, m.nextUpdate()
	case sequenceEndedMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m fetchProgressModel) View() string {
	if m.done {
		return ""
	}

	switch {
	case m.received == 0:
		return fmt.Sprintf("%s Loading persons...", m.spinner.View())
	case m.search == "":
		return fmt.Sprintf("%s Loaded %d persons...", m.spinner.View(), m.matched)
	default:
		return fmt.Sprintf("%s Loaded %d persons matching %q...", m.spinner.View(), m.matched, m.search)
	}
}

// runFetchProgress calls start once it watches source, then shows how many
// persons the fetch sequence has published until the sequence ends.
func runFetchProgress(ctx context.Context, output io.Writer, source fetchProgressSource, search string, start func()) error {
	updates := make(chan personsLoadedMsg, 1)
	stop := make(chan struct{})
	defer close(stop)

	received := 0
	sub := source.FilteredPersons().OnChange(func(persons []domain.Person) {
		received++
		msg := personsLoadedMsg{matched: len(persons), received: received}
		// Only the latest count matters; replace a pending one.
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- msg:
		default:
		}
	})
	defer sub.Unsubscribe()

	start()
	waitCmd := func() tea.Msg {
		return sequenceEndedMsg{err: source.Wait(ctx)}
	}

	p := tea.NewProgram(
		newFetchProgressModel(search, updates, stop, waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(fetchProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
