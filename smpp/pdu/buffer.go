package pdu

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// bodyWriter accumulates the mandatory fields and TLVs of a PDU body ahead
// of the header being patched in by Marshal.
type bodyWriter struct {
	buf bytes.Buffer
}

func (w *bodyWriter) WriteByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *bodyWriter) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteCString writes s followed by a single NUL terminator. limit is the
// maximum length of s excluding the terminator; callers are expected to
// have validated this already, but WriteCString truncates defensively
// rather than producing an unparseable frame.
func (w *bodyWriter) WriteCString(s string, limit int) {
	if len(s) > limit {
		s = s[:limit]
	}
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// WriteOctets writes raw, unterminated bytes (short_message / TLV values).
func (w *bodyWriter) WriteOctets(b []byte) {
	w.buf.Write(b)
}

func (w *bodyWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// bodyReader consumes the mandatory fields and TLVs of a decoded PDU body.
type bodyReader struct {
	buf *bytes.Buffer
}

func newBodyReader(b []byte) *bodyReader {
	return &bodyReader{buf: bytes.NewBuffer(b)}
}

func (r *bodyReader) Len() int {
	return r.buf.Len()
}

func (r *bodyReader) ReadByte() (byte, error) {
	return r.buf.ReadByte()
}

func (r *bodyReader) ReadUint32() (uint32, error) {
	var b [4]byte
	if _, err := readFull(r.buf, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadCString reads bytes up to and including a NUL terminator, returning
// the bytes before it. limit bounds the octets read before the terminator
// (the terminator itself is not counted), matching the per-field maximums
// in SMPP v3.4; exceeding it is a malformed PDU.
func (r *bodyReader) ReadCString(limit int) (string, error) {
	var out []byte
	for i := 0; ; i++ {
		b, err := r.buf.ReadByte()
		if err != nil {
			return "", ErrUnmarshalPDUFailed
		}
		if b == 0 {
			return string(out), nil
		}
		if i >= limit {
			return "", errors.New("pdu: c-octet string exceeds field limit")
		}
		out = append(out, b)
	}
}

// ReadOctets reads exactly n raw bytes.
func (r *bodyReader) ReadOctets(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	if _, err := readFull(r.buf, out); err != nil {
		return nil, ErrUnmarshalPDUFailed
	}
	return out, nil
}

// Remaining returns (and consumes) whatever bytes are left.
func (r *bodyReader) Remaining() []byte {
	return r.buf.Next(r.buf.Len())
}

func readFull(buf *bytes.Buffer, out []byte) (int, error) {
	n, err := buf.Read(out)
	if err == nil && n < len(out) {
		err = errors.New("pdu: short read")
	}
	return n, err
}
