package pdu

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PDU is the closed tagged-union every request and response body
// implements. Its marshal/unmarshal methods are unexported: only this
// package can add variants, matching the design note that PDU dispatch
// is a closed enum-of-structs, not an open interface hierarchy.
type PDU interface {
	CommandID() CommandID
	Head() *Header
	marshalBody(w *bodyWriter) error
	unmarshalBody(r *bodyReader) error
}

// Responsable is implemented by every PDU that has a corresponding
// response type. Resp builds that response, copying the sequence number
// and defaulting to ESME_ROK; callers mutate fields and status afterward.
type Responsable interface {
	PDU
	Resp() PDU
}

// Marshal encodes p to w as one complete frame: 4-byte length prefix,
// 12-byte command_id/status/sequence, mandatory fields, then TLVs.
// command_length is computed fresh from the bytes actually produced,
// not trusted from p.Head().CommandLength.
func Marshal(w io.Writer, p PDU) (int, error) {
	bw := &bodyWriter{}
	if err := p.marshalBody(bw); err != nil {
		return 0, err
	}
	body := bw.Bytes()
	total := HeaderLen + len(body)

	buf := make([]byte, total)
	binary.BigEndian.PutUint32(buf[0:4], uint32(total))
	binary.BigEndian.PutUint32(buf[4:8], uint32(p.CommandID()))
	binary.BigEndian.PutUint32(buf[8:12], uint32(p.Head().Status))
	binary.BigEndian.PutUint32(buf[12:16], p.Head().Sequence)
	copy(buf[16:], body)

	return w.Write(buf)
}

// Unmarshal decodes one complete frame (as already extracted by the frame
// reader) into its concrete PDU type. An unrecognized command_id yields
// ErrUnknownCommandID; callers are expected to respond with generic_nack.
func Unmarshal(frame []byte) (PDU, error) {
	if len(frame) < HeaderLen {
		return nil, ErrShortFrame
	}
	length := binary.BigEndian.Uint32(frame[0:4])
	if int(length) != len(frame) {
		return nil, ErrFrameLengthMismatch
	}
	id := CommandID(binary.BigEndian.Uint32(frame[4:8]))
	status := CommandStatus(binary.BigEndian.Uint32(frame[8:12]))
	seq := binary.BigEndian.Uint32(frame[12:16])

	p, ok := newPDU(id)
	if !ok {
		return nil, ErrUnknownCommandID
	}
	*p.Head() = Header{CommandLength: length, CommandID: id, Status: status, Sequence: seq}

	if len(frame) > HeaderLen {
		if err := p.unmarshalBody(newBodyReader(frame[HeaderLen:])); err != nil {
			return nil, fmt.Errorf("pdu: decoding %s: %w", id, err)
		}
	}
	return p, nil
}

// PeekHeader parses just the fixed 16-byte header without touching the
// body, so a caller whose Unmarshal failed partway through the body can
// still learn the sequence number and build a generic_nack reply.
func PeekHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderLen {
		return Header{}, ErrShortFrame
	}
	return Header{
		CommandLength: binary.BigEndian.Uint32(frame[0:4]),
		CommandID:     CommandID(binary.BigEndian.Uint32(frame[4:8])),
		Status:        CommandStatus(binary.BigEndian.Uint32(frame[8:12])),
		Sequence:      binary.BigEndian.Uint32(frame[12:16]),
	}, nil
}

// newPDU allocates the zero-value concrete type for a CommandID.
func newPDU(id CommandID) (PDU, bool) {
	switch id {
	case GenericNackID:
		return &GenericNack{}, true
	case BindReceiverID:
		return &BindReceiver{}, true
	case BindReceiverRespID:
		return &BindReceiverResp{}, true
	case BindTransmitterID:
		return &BindTransmitter{}, true
	case BindTransmitterRespID:
		return &BindTransmitterResp{}, true
	case BindTransceiverID:
		return &BindTransceiver{}, true
	case BindTransceiverRespID:
		return &BindTransceiverResp{}, true
	case EnquireLinkID:
		return &EnquireLink{}, true
	case EnquireLinkRespID:
		return &EnquireLinkResp{}, true
	case UnbindID:
		return &Unbind{}, true
	case UnbindRespID:
		return &UnbindResp{}, true
	case SubmitSmID:
		return &SubmitSM{}, true
	case SubmitSmRespID:
		return &SubmitSMResp{}, true
	case DeliverSmID:
		return &DeliverSM{}, true
	case DeliverSmRespID:
		return &DeliverSMResp{}, true
	case DataSmID:
		return &DataSM{}, true
	case DataSmRespID:
		return &DataSMResp{}, true
	case QuerySmID:
		return &QuerySM{}, true
	case QuerySmRespID:
		return &QuerySMResp{}, true
	case CancelSmID:
		return &CancelSM{}, true
	case CancelSmRespID:
		return &CancelSMResp{}, true
	case ReplaceSmID:
		return &ReplaceSM{}, true
	case ReplaceSmRespID:
		return &ReplaceSMResp{}, true
	case SubmitMultiID:
		return &SubmitMulti{}, true
	case SubmitMultiRespID:
		return &SubmitMultiResp{}, true
	case AlertNotificationID:
		return &AlertNotification{}, true
	case OutbindID:
		return &Outbind{}, true
	}
	return nil, false
}

// IsRequest reports whether id names a request PDU (as opposed to a
// response or generic_nack).
func IsRequest(id CommandID) bool {
	if id == GenericNackID {
		return false
	}
	return !id.IsResponse()
}
