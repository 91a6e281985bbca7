// Package frame implements the length-prefixed SMPP stream framing: it
// turns an arbitrary byte stream into a sequence of whole PDU byte blocks
// and serializes PDU writes back onto the wire.
package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// DefaultMaxPDUSize caps a frame's declared command_length at 64 KiB.
const DefaultMaxPDUSize = 65536

// ErrInvalidFrame is returned when command_length falls outside
// [HeaderLen, maxPDUSize]; the caller must treat the stream as corrupt
// and close the connection.
var ErrInvalidFrame = errors.New("frame: command_length out of bounds")

// Reader reassembles a cumulative byte stream into whole PDU frames. Bytes
// may arrive in arbitrary chunks; ReadFrame blocks until one complete
// block (4-byte length prefix plus the declared remainder) is available,
// relying on bufio.Reader to hold back partial reads rather than hand-
// rolling a mark/reset buffer.
type Reader struct {
	br         *bufio.Reader
	maxPDUSize uint32
}

// NewReader wraps r with the default 64 KiB frame-size cap.
func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, DefaultMaxPDUSize)
}

// NewReaderSize wraps r, rejecting any frame whose declared command_length
// exceeds maxPDUSize. A zero maxPDUSize falls back to DefaultMaxPDUSize.
func NewReaderSize(r io.Reader, maxPDUSize uint32) *Reader {
	if maxPDUSize == 0 {
		maxPDUSize = DefaultMaxPDUSize
	}
	return &Reader{br: bufio.NewReaderSize(r, int(DefaultMaxPDUSize)), maxPDUSize: maxPDUSize}
}

// ReadFrame returns exactly one complete frame, header included, ready for
// pdu.Unmarshal. It returns the underlying read error (commonly io.EOF)
// unchanged when the stream ends between frames.
func (fr *Reader) ReadFrame() ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(fr.br, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length < pdu.HeaderLen || length > fr.maxPDUSize {
		return nil, ErrInvalidFrame
	}
	block := make([]byte, length)
	copy(block, lenBuf[:])
	if _, err := io.ReadFull(fr.br, block[4:]); err != nil {
		return nil, err
	}
	return block, nil
}
