// Package window implements the sliding-window request/response
// multiplexer: it assigns sequence numbers, bounds
// in-flight requests, correlates responses back to their WindowFuture,
// and expires requests that outlive their timeout.
package window

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// Defaults applied by New for zero-valued configuration.
const (
	DefaultSize           = 512
	DefaultRequestTimeout = 30 * time.Second
)

// Errors surfaced to callers.
var (
	ErrWindowFull      = errors.New("window: no free slot before wait_timeout")
	ErrWindowClosed    = errors.New("window: closed")
	ErrRequestTimedOut = errors.New("window: request timed out")
	ErrCancelled       = errors.New("window: future cancelled")
	ErrSessionClosed   = errors.New("window: session closed")
)

// maxSequence is the highest sequence number SMPP allows; the generator
// wraps to 1 after reaching it; 0 is never issued.
const maxSequence = 0x7FFFFFFF

// Window bounds outstanding requests for one session, correlating
// responses by sequence number. All exported methods are safe for
// concurrent use.
type Window struct {
	size           int
	requestTimeout time.Duration

	seq uint32 // atomic; see nextSequence

	mu      sync.Mutex
	pending map[uint32]*Future
	closed  bool

	sem chan struct{}
}

// New builds a Window with the given capacity and per-request timeout,
// falling back to the package defaults for non-positive values.
func New(size int, requestTimeout time.Duration) *Window {
	if size <= 0 {
		size = DefaultSize
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Window{
		size:           size,
		requestTimeout: requestTimeout,
		pending:        make(map[uint32]*Future),
		sem:            make(chan struct{}, size),
	}
}

// nextSequence assigns the next sequence number via a lock-free CAS loop,
// wrapping to 1 after maxSequence so 0 never appears on the wire.
func (w *Window) nextSequence() uint32 {
	for {
		cur := atomic.LoadUint32(&w.seq)
		next := cur + 1
		if next > maxSequence {
			next = 1
		}
		if atomic.CompareAndSwapUint32(&w.seq, cur, next) {
			return next
		}
	}
}

// Offer blocks until a slot is free (up to waitTimeout or ctx
// cancellation), assigns req a sequence number, and registers a pending
// Future for it. req's Head().Sequence is overwritten with the
// assigned value.
func (w *Window) Offer(ctx context.Context, req pdu.PDU, waitTimeout time.Duration) (*Future, error) {
	timer := time.NewTimer(waitTimeout)
	defer timer.Stop()
	select {
	case w.sem <- struct{}{}:
	case <-timer.C:
		return nil, ErrWindowFull
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return w.register(req)
}

// TryOffer is the non-blocking variant of Offer: it fails immediately if
// no slot is free.
func (w *Window) TryOffer(req pdu.PDU) (*Future, bool) {
	select {
	case w.sem <- struct{}{}:
	default:
		return nil, false
	}
	f, err := w.register(req)
	if err != nil {
		<-w.sem
		return nil, false
	}
	return f, true
}

// register assumes the caller already reserved a semaphore slot.
func (w *Window) register(req pdu.PDU) (*Future, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.sem
		return nil, ErrWindowClosed
	}
	seq := w.nextSequence()
	req.Head().Sequence = seq
	f := newFuture(w, seq, req, w.requestTimeout)
	w.pending[seq] = f
	w.mu.Unlock()
	return f, nil
}

// takeFuture removes and returns the pending entry for seq, releasing its
// semaphore slot. The caller is responsible for the Future's terminal
// transition; every removal path (Complete/Fail/Cancel/expire/Close)
// releases exactly one slot per entry, preserving size()+available()==W.
func (w *Window) takeFuture(seq uint32) (*Future, bool) {
	w.mu.Lock()
	f, ok := w.pending[seq]
	if ok {
		delete(w.pending, seq)
	}
	w.mu.Unlock()
	if ok {
		<-w.sem
	}
	return f, ok
}

// Complete resolves the pending request for seq with resp. Returns false
// if no such pending entry exists; an unmatched response is the caller's
// cue to treat it as unsolicited.
func (w *Window) Complete(seq uint32, resp pdu.PDU) bool {
	f, ok := w.takeFuture(seq)
	if !ok {
		return false
	}
	return f.transition(StateCompleted, resp, nil)
}

// Fail resolves the pending request for seq with err.
func (w *Window) Fail(seq uint32, err error) bool {
	f, ok := w.takeFuture(seq)
	if !ok {
		return false
	}
	return f.transition(StateFailed, nil, err)
}

// ExpireOldRequests scans the pending map for entries older than their
// timeout, transitions each to TimedOut, and returns how many expired.
// Callers normally drive this from a ticker at
// request_timeout/4 via RunExpiryLoop.
func (w *Window) ExpireOldRequests() int {
	now := time.Now()
	w.mu.Lock()
	var expired []*Future
	for seq, f := range w.pending {
		if f.isExpired(now) {
			expired = append(expired, f)
			delete(w.pending, seq)
		}
	}
	w.mu.Unlock()

	for range expired {
		<-w.sem
	}
	count := 0
	for _, f := range expired {
		if f.transition(StateTimedOut, nil, ErrRequestTimedOut) {
			count++
		}
	}
	return count
}

// RunExpiryLoop ticks at requestTimeout/4 calling ExpireOldRequests until
// ctx is cancelled. It is meant to run
// in its own goroutine, owned by the session dispatcher.
func (w *Window) RunExpiryLoop(ctx context.Context) {
	interval := w.requestTimeout / 4
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ExpireOldRequests()
		}
	}
}

// Close fails every pending request with err (defaulting to
// ErrSessionClosed) and rejects further Offer/TryOffer calls.
func (w *Window) Close(err error) {
	if err == nil {
		err = ErrSessionClosed
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	pending := w.pending
	w.pending = make(map[uint32]*Future)
	w.mu.Unlock()

	for range pending {
		<-w.sem
	}
	for _, f := range pending {
		f.transition(StateFailed, nil, err)
	}
}

// Size reports the number of currently pending requests.
func (w *Window) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// AvailableSlots reports how many more requests may be offered before the
// window is full.
func (w *Window) AvailableSlots() int {
	return w.size - w.Size()
}

// IsFull reports whether the window has no free slots.
func (w *Window) IsFull() bool {
	return w.AvailableSlots() <= 0
}
