package authbridge

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type request struct {
	name string
}

type ticketPresenter struct {
	tickets chan *Ticket
}

func newTicketPresenter() *ticketPresenter {
	return &ticketPresenter{tickets: make(chan *Ticket, 4)}
}

func (p *ticketPresenter) Present(_ context.Context, ticket *Ticket, _ request) error {
	p.tickets <- ticket
	return nil
}

func (p *ticketPresenter) next(t *testing.T) *Ticket {
	t.Helper()
	select {
	case ticket := <-p.tickets:
		return ticket
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for presenter")
		return nil
	}
}

type result struct {
	decision Decision
	err      error
}

func requestAsync(ctx context.Context, bridge *Bridge[request], req request) <-chan result {
	out := make(chan result, 1)
	go func() {
		decision, err := bridge.Request(ctx, req)
		out <- result{decision: decision, err: err}
	}()
	return out
}

func await(t *testing.T, ch <-chan result) result {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for decision")
		return result{}
	}
}

func textCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}

func TestBridge_ResolveGranted(t *testing.T) {
	presenter := newTicketPresenter()
	bridge := New[request](presenter)

	pending := requestAsync(context.Background(), bridge, request{name: "a"})
	ticket := presenter.next(t)
	if !ticket.Resolve(true) {
		t.Fatalf("expected resolve to deliver")
	}
	res := await(t, pending)
	if res.err != nil {
		t.Fatalf("request: %v", res.err)
	}
	granted, err := res.decision.Authorized()
	if err != nil || !granted {
		t.Fatalf("expected granted, got %v %v", granted, err)
	}
	if ticket.Resolve(false) {
		t.Fatalf("expected second resolve to be ignored")
	}
	if bridge.Pending() {
		t.Fatalf("expected slot to be cleared")
	}
}

func TestBridge_NewRequestSupersedesPending(t *testing.T) {
	presenter := newTicketPresenter()
	bridge := New[request](presenter)

	first := requestAsync(context.Background(), bridge, request{name: "a"})
	ticketA := presenter.next(t)
	second := requestAsync(context.Background(), bridge, request{name: "b"})
	ticketB := presenter.next(t)

	resA := await(t, first)
	if resA.err != nil || resA.decision.Outcome != OutcomeSuperseded {
		t.Fatalf("expected first request superseded, got %+v", resA)
	}
	if granted, err := resA.decision.Authorized(); granted || err != nil {
		t.Fatalf("expected superseded to map to not authorized without error, got %v %v", granted, err)
	}
	select {
	case <-ticketA.Done():
	default:
		t.Fatalf("expected superseded ticket to be done")
	}
	if ticketA.Resolve(true) {
		t.Fatalf("expected late callback for superseded ticket to be dropped")
	}

	if !ticketB.Resolve(false) {
		t.Fatalf("expected second ticket to deliver")
	}
	resB := await(t, second)
	if resB.decision.Outcome != OutcomeDenied {
		t.Fatalf("expected second request denied, got %v", resB.decision.Outcome)
	}
}

func TestBridge_DismissReturnsAuthorizationError(t *testing.T) {
	presenter := newTicketPresenter()
	bridge := New[request](presenter)

	pending := requestAsync(context.Background(), bridge, request{})
	if !presenter.next(t).Dismiss() {
		t.Fatalf("expected dismiss to deliver")
	}
	res := await(t, pending)
	if res.decision.Outcome != OutcomeDismissed {
		t.Fatalf("expected dismissed, got %v", res.decision.Outcome)
	}
	granted, err := res.decision.Authorized()
	if granted || err == nil {
		t.Fatalf("expected authorization error, got %v %v", granted, err)
	}
	if textCode(err) != ErrorUnauthorized {
		t.Fatalf("expected %s, got %q", ErrorUnauthorized, textCode(err))
	}
}

func TestBridge_CancelSuppressesLateCallback(t *testing.T) {
	presenter := newTicketPresenter()
	bridge := New[request](presenter)

	ctx, cancel := context.WithCancel(context.Background())
	pending := requestAsync(ctx, bridge, request{})
	ticket := presenter.next(t)
	cancel()

	res := await(t, pending)
	if res.err != nil || res.decision.Outcome != OutcomeCancelled {
		t.Fatalf("expected cancelled without error, got %+v", res)
	}
	if ticket.Resolve(true) {
		t.Fatalf("expected late callback to be suppressed")
	}
	if bridge.Pending() {
		t.Fatalf("expected slot to be released on cancel")
	}
}

func TestBridge_CancelledContextSkipsPresenter(t *testing.T) {
	presenter := newTicketPresenter()
	bridge := New[request](presenter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	decision, err := bridge.Request(ctx, request{})
	if err != nil || decision.Outcome != OutcomeCancelled {
		t.Fatalf("expected cancelled, got %v %v", decision.Outcome, err)
	}
	if len(presenter.tickets) != 0 {
		t.Fatalf("expected presenter not to be invoked")
	}
}

func TestBridge_PresenterFailureIsTransportError(t *testing.T) {
	bridge := New[request](PresenterFunc[request](func(context.Context, *Ticket, request) error {
		return errors.New("activity detached")
	}))

	_, err := bridge.Request(context.Background(), request{})
	if err == nil {
		t.Fatalf("expected presenter error")
	}
	if textCode(err) != ErrorTransport {
		t.Fatalf("expected %s, got %q", ErrorTransport, textCode(err))
	}
	if bridge.Pending() {
		t.Fatalf("expected slot to be released after presenter failure")
	}
}

func TestBridge_SynchronousResolveInsidePresent(t *testing.T) {
	bridge := New[request](PresenterFunc[request](func(_ context.Context, ticket *Ticket, _ request) error {
		ticket.Resolve(true)
		return nil
	}))

	decision, err := bridge.Request(context.Background(), request{})
	if err != nil || decision.Outcome != OutcomeGranted {
		t.Fatalf("expected granted, got %v %v", decision.Outcome, err)
	}
}

func TestBridge_NilPresenter(t *testing.T) {
	var bridge *Bridge[request]
	if _, err := bridge.Request(context.Background(), request{}); textCode(err) != ErrorTransport {
		t.Fatalf("expected transport error for nil bridge, got %v", err)
	}
}
