package frame

import (
	"io"
	"sync"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// Writer serializes PDU writes onto the underlying transport one at a
// time, so concurrent senders on one session still produce outbound bytes
// in the order each call to WritePDU was made.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w for serialized PDU writes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WritePDU marshals p and writes the resulting frame as a single
// io.Writer.Write call under the writer's lock.
func (fw *Writer) WritePDU(p pdu.PDU) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return pdu.Marshal(fw.w, p)
}
