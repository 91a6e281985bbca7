package window

import (
	"context"
	"sync"
	"time"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// FutureState names a Future's lifecycle position.
type FutureState int

const (
	StatePending FutureState = iota
	StateCompleted
	StateFailed
	StateCancelled
	StateTimedOut
)

// String implements fmt.Stringer for logging.
func (s FutureState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Future is a one-shot completion handle for a single outstanding request.
// It is safe to Wait on
// from multiple goroutines; exactly one terminal transition ever succeeds.
type Future struct {
	Sequence  uint32
	Request   pdu.PDU
	CreatedAt time.Time
	Timeout   time.Duration

	owner *Window

	mu          sync.Mutex
	state       FutureState
	completedAt time.Time
	response    pdu.PDU
	err         error
	done        chan struct{}
}

func newFuture(owner *Window, seq uint32, req pdu.PDU, timeout time.Duration) *Future {
	return &Future{
		Sequence:  seq,
		Request:   req,
		CreatedAt: time.Now(),
		Timeout:   timeout,
		owner:     owner,
		done:      make(chan struct{}),
	}
}

// State reports the future's current lifecycle position.
func (f *Future) State() FutureState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CompletedAt reports when a terminal transition occurred; the zero Time
// while still Pending.
func (f *Future) CompletedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completedAt
}

// transition moves f to a terminal state exactly once. Returns false if f
// was already terminal.
func (f *Future) transition(state FutureState, resp pdu.PDU, err error) bool {
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return false
	}
	f.state = state
	f.response = resp
	f.err = err
	f.completedAt = time.Now()
	f.mu.Unlock()
	close(f.done)
	return true
}

// Wait blocks until f reaches a terminal state or ctx is cancelled,
// returning the response (nil for a non-Completed terminal state) and the
// terminal error, if any.
func (f *Future) Wait(ctx context.Context) (pdu.PDU, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.response, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed once f reaches a terminal state, for
// callers that want to select on it directly.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Cancel transitions f to Cancelled and removes its pending entry from the
// owning Window. Cancellation never un-sends bytes already written to
// the wire.
func (f *Future) Cancel() bool {
	if _, ok := f.owner.takeFuture(f.Sequence); !ok {
		return false
	}
	return f.transition(StateCancelled, nil, ErrCancelled)
}

// isExpired reports whether f is still Pending and has outlived its
// per-request timeout as of now.
func (f *Future) isExpired(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StatePending && now.Sub(f.CreatedAt) >= f.Timeout
}
