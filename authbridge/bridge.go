package authbridge

import (
	"context"
	"sync"

	glog "github.com/goliatone/go-logger/glog"
)

type Outcome uint8

const (
	OutcomeGranted Outcome = iota + 1
	OutcomeDenied
	OutcomeSuperseded
	OutcomeCancelled
	OutcomeDismissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeDenied:
		return "denied"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

type Decision struct {
	Outcome Outcome
}

// Authorized maps the outcome to the facade result. Superseded and cancelled
// requests are not authorized and carry no error.
func (d Decision) Authorized() (bool, error) {
	switch d.Outcome {
	case OutcomeGranted:
		return true, nil
	case OutcomeDismissed:
		return false, dismissedError()
	default:
		return false, nil
	}
}

// Presenter shows the permission surface for req. It must return once the
// surface is triggered and report the result later through ticket.
type Presenter[R any] interface {
	Present(ctx context.Context, ticket *Ticket, req R) error
}

type PresenterFunc[R any] func(ctx context.Context, ticket *Ticket, req R) error

func (fn PresenterFunc[R]) Present(ctx context.Context, ticket *Ticket, req R) error {
	return fn(ctx, ticket, req)
}

type waiter struct {
	id     uint64
	result chan Decision
	done   chan struct{}
}

type Bridge[R any] struct {
	mu        sync.Mutex
	pending   *waiter
	nextID    uint64
	presenter Presenter[R]
	logger    glog.Logger
}

type Option[R any] func(*Bridge[R])

func WithLogger[R any](logger glog.Logger) Option[R] {
	return func(b *Bridge[R]) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func New[R any](presenter Presenter[R], opts ...Option[R]) *Bridge[R] {
	bridge := &Bridge[R]{presenter: presenter, logger: glog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(bridge)
		}
	}
	return bridge
}

// Request presents req and waits for its outcome. A pending request is
// resolved as superseded first. Cancelling ctx resolves the caller as
// cancelled and drops any later result reported for this request.
func (b *Bridge[R]) Request(ctx context.Context, req R) (Decision, error) {
	if b == nil || b.presenter == nil {
		return Decision{}, presenterError(errPresenterMissing)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return Decision{Outcome: OutcomeCancelled}, nil
	}

	current := b.install()
	ticket := &Ticket{id: current.id, done: current.done, resolve: func(outcome Outcome) bool {
		return b.resolve(current, outcome)
	}}

	if err := b.presenter.Present(ctx, ticket, req); err != nil {
		b.resolve(current, OutcomeCancelled)
		b.logger.Warn("authbridge: presenter failed", "request_id", current.id, "error", err)
		return Decision{}, presenterError(err)
	}

	select {
	case decision := <-current.result:
		return decision, nil
	case <-ctx.Done():
		if b.resolve(current, OutcomeCancelled) {
			b.logger.Debug("authbridge: request cancelled", "request_id", current.id)
		}
		return <-current.result, nil
	}
}

// Pending reports whether a request is waiting for the surface.
func (b *Bridge[R]) Pending() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending != nil
}

func (b *Bridge[R]) install() *waiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	next := &waiter{id: b.nextID, result: make(chan Decision, 1), done: make(chan struct{})}
	if previous := b.pending; previous != nil {
		b.deliver(previous, OutcomeSuperseded)
		b.logger.Debug("authbridge: request superseded", "request_id", previous.id, "by", next.id)
	}
	b.pending = next
	return next
}

// resolve delivers outcome when w is still the stored waiter.
func (b *Bridge[R]) resolve(w *waiter, outcome Outcome) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != w {
		return false
	}
	b.pending = nil
	b.deliver(w, outcome)
	return true
}

func (b *Bridge[R]) deliver(w *waiter, outcome Outcome) {
	w.result <- Decision{Outcome: outcome}
	close(w.done)
}
