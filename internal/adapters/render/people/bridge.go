package people

import (
	"sync"

	"github.com/bnema/ppl/internal/domain"
	"github.com/bnema/ppl/internal/live"
	tea "github.com/charmbracelet/bubbletea"
)

const bridgeBuffer = 64

type authenticatedMsg bool

type personsMsg []domain.Person

type statusMsg domain.FetchStatus

// bridge turns controller publications into bubbletea messages. Callbacks
// run on whichever goroutine publishes; the program reads them back through
// next.
type bridge struct {
	updates chan tea.Msg
	done    chan struct{}
	subs    []live.Subscription
	once    sync.Once
}

func attach(controller Controller) *bridge {
	b := &bridge{
		updates: make(chan tea.Msg, bridgeBuffer),
		done:    make(chan struct{}),
	}

	b.subs = append(b.subs,
		controller.Authenticated().Subscribe(func(v bool) {
			b.forward(authenticatedMsg(v))
		}),
		controller.FilteredPersons().Subscribe(func(v []domain.Person) {
			b.forward(personsMsg(v))
		}),
		controller.Status().Subscribe(func(v domain.FetchStatus) {
			b.forward(statusMsg(v))
		}),
	)

	return b
}

func (b *bridge) forward(msg tea.Msg) {
	select {
	case b.updates <- msg:
	case <-b.done:
	}
}

func (b *bridge) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.updates:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) detach() {
	b.once.Do(func() {
		close(b.done)
		for _, sub := range b.subs {
			sub.Unsubscribe()
		}
	})
}
