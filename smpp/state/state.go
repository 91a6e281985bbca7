// Package state implements the five-state session lifecycle shared by
// ESME and SMSC sides of a connection: CLOSED, OPEN,
// and the three BOUND_* states. Transitions are serialized; reading the
// current state is lock-free.
package state

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// State names one of the five session states.
type State int32

const (
	Closed State = iota
	Open
	BoundTX
	BoundRX
	BoundTRX
)

// String implements fmt.Stringer for logging.
func (s State) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case BoundTX:
		return "BOUND_TX"
	case BoundRX:
		return "BOUND_RX"
	case BoundTRX:
		return "BOUND_TRX"
	default:
		return "UNKNOWN"
	}
}

// CanTransmit reports whether a session in state s may send submit_sm /
// data_sm.
func (s State) CanTransmit() bool {
	return s == BoundTX || s == BoundTRX
}

// CanReceive reports whether a session in state s may accept inbound
// deliver_sm / data_sm.
func (s State) CanReceive() bool {
	return s == BoundRX || s == BoundTRX
}

// FromBindType maps a negotiated bind type to the state it produces
// from OPEN.
func FromBindType(bt pdu.BindType) State {
	switch bt {
	case pdu.BindTypeTransmitter:
		return BoundTX
	case pdu.BindTypeReceiver:
		return BoundRX
	case pdu.BindTypeTransceiver:
		return BoundTRX
	default:
		return Closed
	}
}

// ErrInvalidTransition is returned by a Machine method attempted from a
// state that does not permit it.
var ErrInvalidTransition = errors.New("state: invalid transition")

// Machine guards the session's current state behind a mutex for
// transitions, while exposing a lock-free atomic read.
type Machine struct {
	mu      sync.Mutex
	current atomic.Int32
}

// New returns a Machine starting in CLOSED.
func New() *Machine {
	return &Machine{}
}

// Current returns the state as of the most recent completed transition.
func (m *Machine) Current() State {
	return State(m.current.Load())
}

// OnConnect transitions CLOSED -> OPEN.
func (m *Machine) OnConnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Current() != Closed {
		return ErrInvalidTransition
	}
	m.current.Store(int32(Open))
	return nil
}

// OnBind transitions OPEN -> the BOUND_* state named by bt.
func (m *Machine) OnBind(bt pdu.BindType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Current() != Open {
		return ErrInvalidTransition
	}
	m.current.Store(int32(FromBindType(bt)))
	return nil
}

// OnUnbind transitions any BOUND_* state -> CLOSED.
func (m *Machine) OnUnbind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.Current() {
	case BoundTX, BoundRX, BoundTRX:
		m.current.Store(int32(Closed))
		return nil
	default:
		return ErrInvalidTransition
	}
}

// OnClose always succeeds and sets CLOSED. It is the transport-disconnect
// path and is legal from any state.
func (m *Machine) OnClose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Store(int32(Closed))
}

// ValidateCanTransmit gates an outbound submit_sm/data_sm/submit_multi.
func (m *Machine) ValidateCanTransmit() error {
	if !m.Current().CanTransmit() {
		return ErrInvalidTransition
	}
	return nil
}

// ValidateCanReceive gates accepting an inbound deliver_sm/data_sm.
func (m *Machine) ValidateCanReceive() error {
	if !m.Current().CanReceive() {
		return ErrInvalidTransition
	}
	return nil
}
