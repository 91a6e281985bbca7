package session

import (
	"errors"
	"fmt"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// Sentinel errors a Session can return.
var (
	ErrClosed       = errors.New("session: closed")
	ErrNotBound     = errors.New("session: not bound for this operation")
	ErrAlreadyBound = errors.New("session: already bound")
	ErrWrongPeer    = errors.New("session: response arrived with unexpected type")
)

// StatusError pairs a command_status with a human message, letting a
// RequestHandler fail a request with the exact PDU status the dispatcher
// should put on the wire instead of a generic SYSTEM_ERR.
type StatusError struct {
	Status pdu.CommandStatus
	Msg    string
	err    error
}

// NewStatusError builds a StatusError, optionally wrapping a lower-level
// cause for logging (the cause is never put on the wire).
func NewStatusError(status pdu.CommandStatus, msg string, cause error) *StatusError {
	return &StatusError{Status: status, Msg: msg, err: cause}
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("session: status 0x%08X", uint32(e.Status))
	}
	return fmt.Sprintf("session: %s (status 0x%08X)", e.Msg, uint32(e.Status))
}

func (e *StatusError) Unwrap() error { return e.err }

// statusOf extracts the command_status a StatusError names, defaulting to
// SYSTEM_ERR for any other error a handler returns; a handler panic or
// plain error never leaks detail onto the wire.
func statusOf(err error) pdu.CommandStatus {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return pdu.StatusSystemError
}
