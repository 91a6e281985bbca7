package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

func TestWriterThenReaderRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	req := &pdu.EnquireLink{}
	req.Header.Sequence = 7
	_, err := w.WritePDU(req)
	require.NoError(t, err)

	r := NewReader(&buf)
	raw, err := r.ReadFrame()
	require.NoError(t, err)

	p, err := pdu.Unmarshal(raw)
	require.NoError(t, err)
	require.Equal(t, pdu.EnquireLinkID, p.CommandID())
	require.Equal(t, uint32(7), p.Head().Sequence)
}

// fragmentedReader dribbles its bytes out a few at a time, exercising the
// partial-read reassembly ReadFrame must handle.
type fragmentedReader struct {
	data  []byte
	chunk int
}

func (f *fragmentedReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := f.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(f.data) {
		n = len(f.data)
	}
	copy(p, f.data[:n])
	f.data = f.data[n:]
	return n, nil
}

func TestReaderReassemblesFragmentedStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	req := &pdu.SubmitSM{}
	req.Header.Sequence = 99
	req.ServiceType = "abc"
	_, err := w.WritePDU(req)
	require.NoError(t, err)

	r := NewReader(&fragmentedReader{data: buf.Bytes(), chunk: 3})
	raw, err := r.ReadFrame()
	require.NoError(t, err)

	p, err := pdu.Unmarshal(raw)
	require.NoError(t, err)
	got, ok := p.(*pdu.SubmitSM)
	require.True(t, ok)
	require.Equal(t, "abc", got.ServiceType)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var lenPrefix [4]byte
	lenPrefix[0] = 0xFF
	lenPrefix[1] = 0xFF
	lenPrefix[2] = 0xFF
	lenPrefix[3] = 0xFF
	r := NewReaderSize(bytes.NewReader(lenPrefix[:]), 1024)
	_, err := r.ReadFrame()
	require.ErrorIs(t, err, ErrInvalidFrame)
}

func TestReadFrameRejectsLengthBelowHeader(t *testing.T) {
	var lenPrefix [4]byte
	lenPrefix[3] = 4 // shorter than HeaderLen (16)
	r := NewReader(bytes.NewReader(lenPrefix[:]))
	_, err := r.ReadFrame()
	require.ErrorIs(t, err, ErrInvalidFrame)
}

func TestMultipleFramesOnOneStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := uint32(1); i <= 3; i++ {
		req := &pdu.EnquireLink{}
		req.Header.Sequence = i
		_, err := w.WritePDU(req)
		require.NoError(t, err)
	}

	r := NewReader(&buf)
	for i := uint32(1); i <= 3; i++ {
		raw, err := r.ReadFrame()
		require.NoError(t, err)
		p, err := pdu.Unmarshal(raw)
		require.NoError(t, err)
		require.Equal(t, i, p.Head().Sequence)
	}
}
