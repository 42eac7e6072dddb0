package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bnema/ppl/internal/domain"
	"github.com/bnema/ppl/internal/live"
	"github.com/bnema/ppl/internal/metrics"
	"github.com/bnema/ppl/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultPages        = 3
	DefaultFetchTimeout = 15 * time.Second
)

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithClock(clock ports.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithPages sets how many pages one fetch sequence requests.
func WithPages(pages int) Option {
	return func(c *Controller) {
		if pages > 0 {
			c.pages = pages
		}
	}
}

// WithFetchTimeout bounds each page request; zero disables the bound.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout >= 0 {
			c.fetchTimeout = timeout
		}
	}
}

// Controller owns the state behind the login and search screens.
//
// State is published through live cells and may be read from any goroutine.
// A fetch sequence runs in the background and stops publishing once the
// controller is closed.
type Controller struct {
	fetcher      ports.PersonFetcher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	clock        ports.Clock
	pages        int
	fetchTimeout time.Duration

	authenticated *live.Cell[bool]
	search        *live.Cell[string]
	persons       *live.Cell[[]domain.Person]
	status        *live.Cell[domain.FetchStatus]
	filtered      *live.Merger2[string, []domain.Person, []domain.Person]

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	loggedIn   bool
	closed     bool
	running    bool
	done       chan struct{}
	lastStatus domain.FetchStatus
	lastErr    error
}

func NewController(fetcher ports.PersonFetcher, opts ...Option) (*Controller, error) {
	if fetcher == nil {
		return nil, errors.New("person fetcher is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		fetcher:       fetcher,
		logger:        slog.New(slog.DiscardHandler),
		clock:         ports.SystemClock{},
		pages:         DefaultPages,
		fetchTimeout:  DefaultFetchTimeout,
		authenticated: live.NewCellOf(false),
		search:        live.NewCellOf(""),
		persons:       live.NewCell[[]domain.Person](),
		status:        live.NewCellOf(domain.FetchStatusLoading),
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.filtered = live.Merge2[string, []domain.Person, []domain.Person](c.search, c.persons, func(search string, persons []domain.Person) []domain.Person {
		return domain.FilterByName(persons, search)
	})

	return c, nil
}

func (c *Controller) Authenticated() live.Observable[bool] {
	return c.authenticated
}

func (c *Controller) Search() live.Observable[string] {
	return c.search
}

// FilteredPersons publishes the fetched persons whose name contains the
// search text, ignoring case.
func (c *Controller) FilteredPersons() live.Observable[[]domain.Person] {
	return c.filtered
}

func (c *Controller) Status() live.Observable[domain.FetchStatus] {
	return c.status
}

// Login marks the session authenticated and starts fetching persons. It only
// checks that both credentials are present; shape validation belongs to
// LoginForm. Calls after the first successful one are ignored.
func (c *Controller) Login(email, password string) {
	if email == "" || password == "" {
		c.logger.Debug("login ignored, credentials missing")
		return
	}

	c.mu.Lock()
	if c.closed || c.loggedIn {
		c.mu.Unlock()
		return
	}
	c.loggedIn = true
	done := c.beginSequenceLocked()
	c.mu.Unlock()

	c.logger.Debug("logged in")
	c.publish(func() { c.authenticated.Set(true) })

	go c.runSequence(done)
}

// Retry starts a new fetch sequence after the previous one failed.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	if c.closed || !c.loggedIn || c.running || c.lastStatus != domain.FetchStatusError {
		c.mu.Unlock()
		return false
	}
	done := c.beginSequenceLocked()
	c.mu.Unlock()

	go c.runSequence(done)
	return true
}

func (c *Controller) UpdateSearch(text string) {
	c.search.Set(text)
}

// Err returns the cause of the last failed fetch sequence.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until the running fetch sequence, if any, has finished.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the running fetch sequence and waits for it to return.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	done := c.done
	c.mu.Unlock()

	c.cancel()
	if done != nil {
		<-done
	}
}

func (c *Controller) beginSequenceLocked() chan struct{} {
	c.running = true
	c.lastStatus = domain.FetchStatusLoading
	c.lastErr = nil
	c.done = make(chan struct{})
	return c.done
}

func (c *Controller) runSequence(done chan struct{}) {
	logger := c.logger.With("sequence_id", uuid.NewString())
	started := c.clock.Now()
	if c.metrics != nil {
		c.metrics.IncrementSequencesStarted()
	}

	c.publish(func() { c.status.Set(domain.FetchStatusLoading) })
	logger.Debug("fetch sequence started", "pages", c.pages)

	status := domain.FetchStatusDone
	err := c.fetchPages(logger)
	if err != nil {
		status = domain.FetchStatusError
		if c.ctx.Err() != nil {
			logger.Debug("fetch sequence canceled", "error", err)
		} else {
			logger.Error("fetch sequence failed", "error", err)
		}
		c.publish(func() { c.persons.Set([]domain.Person{}) })
		if c.metrics != nil {
			c.metrics.SetPersonsLoaded(0)
		}
	}
	c.publish(func() { c.status.Set(status) })

	elapsed := c.clock.Now().Sub(started)
	if c.metrics != nil {
		c.metrics.ObserveSequenceFinished(status.String(), elapsed.Seconds())
	}
	logger.Info("fetch sequence finished", "status", status, "elapsed", elapsed)

	c.mu.Lock()
	c.running = false
	c.lastStatus = status
	c.lastErr = err
	c.mu.Unlock()
	close(done)
}

func (c *Controller) fetchPages(logger *slog.Logger) error {
	var accumulated []domain.Person
	for page := 1; page <= c.pages; page++ {
		fetched, err := c.fetchPage()
		if err != nil {
			return fmt.Errorf("fetch page %d of %d: %w", page, c.pages, err)
		}

		accumulated = append(accumulated, fetched...)
		logger.Debug("page fetched", "page", page, "persons", len(fetched), "total", len(accumulated))
		if c.metrics != nil {
			c.metrics.IncrementPagesFetched()
			c.metrics.SetPersonsLoaded(len(accumulated))
		}

		snapshot := slices.Clone(accumulated)
		if snapshot == nil {
			snapshot = []domain.Person{}
		}
		c.publish(func() { c.persons.Set(snapshot) })
	}

	return nil
}

func (c *Controller) fetchPage() ([]domain.Person, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, err
	}

	ctx := c.ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	return c.fetcher.FetchPersons(ctx)
}

// publish drops the update once the controller is closed.
func (c *Controller) publish(set func()) {
	if c.ctx.Err() != nil {
		return
	}
	set()
}
