package authbridge

import "errors"

var errPresenterMissing = errors.New("authbridge: presenter is required")

// Ticket is the presenter's handle on one request. Only the first call to
// Resolve or Dismiss on the still-pending request has any effect.
type Ticket struct {
	id      uint64
	done    chan struct{}
	resolve func(Outcome) bool
}

func (t *Ticket) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Resolve reports the surface result and whether it was delivered.
func (t *Ticket) Resolve(granted bool) bool {
	if t == nil || t.resolve == nil {
		return false
	}
	if granted {
		return t.resolve(OutcomeGranted)
	}
	return t.resolve(OutcomeDenied)
}

// Dismiss reports that the surface was torn down without a result.
func (t *Ticket) Dismiss() bool {
	if t == nil || t.resolve == nil {
		return false
	}
	return t.resolve(OutcomeDismissed)
}

// Done is closed once the request is resolved in any way.
func (t *Ticket) Done() <-chan struct{} {
	if t == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.done
}
