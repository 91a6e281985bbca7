package pdu

// Field length limits for the bind family (SMPP v3.4 section 4.1).
const (
	MaxSystemIDLen     = 15
	MaxPasswordLen     = 8
	MaxSystemTypeLen   = 12
	MaxAddressRangeLen = 40
)

// bindBody holds the fields shared by bind_transmitter, bind_receiver, and
// bind_transceiver -- the request bodies differ only by CommandID.
type bindBody struct {
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion uint8
	AddrTON          uint8
	AddrNPI          uint8
	AddressRange     string
	TLVs             TLVList
}

func (b *bindBody) marshalBody(w *bodyWriter) error {
	w.WriteCString(b.SystemID, MaxSystemIDLen)
	w.WriteCString(b.Password, MaxPasswordLen)
	w.WriteCString(b.SystemType, MaxSystemTypeLen)
	w.WriteByte(b.InterfaceVersion)
	w.WriteByte(b.AddrTON)
	w.WriteByte(b.AddrNPI)
	w.WriteCString(b.AddressRange, MaxAddressRangeLen)
	return b.TLVs.marshal(w)
}

func (b *bindBody) unmarshalBody(r *bodyReader) error {
	var err error
	if b.SystemID, err = r.ReadCString(MaxSystemIDLen); err != nil {
		return err
	}
	if b.Password, err = r.ReadCString(MaxPasswordLen); err != nil {
		return err
	}
	if b.SystemType, err = r.ReadCString(MaxSystemTypeLen); err != nil {
		return err
	}
	if b.InterfaceVersion, err = r.ReadByte(); err != nil {
		return err
	}
	if b.AddrTON, err = r.ReadByte(); err != nil {
		return err
	}
	if b.AddrNPI, err = r.ReadByte(); err != nil {
		return err
	}
	if b.AddressRange, err = r.ReadCString(MaxAddressRangeLen); err != nil {
		return err
	}
	b.TLVs, err = readTLVList(r)
	return err
}

// BindResponse is implemented by the three bind_*_resp bodies, letting
// callers outside this package (the session dispatcher, naming the
// negotiated system_id after authentication) set it without a type switch
// over the three concrete response types.
type BindResponse interface {
	PDU
	SetSystemID(string)
}

// bindRespBody holds the fields shared by the three bind_*_resp PDUs.
type bindRespBody struct {
	SystemID string
	TLVs     TLVList
}

// SetSystemID implements BindResponse.
func (b *bindRespBody) SetSystemID(id string) { b.SystemID = id }

func (b *bindRespBody) marshalBody(w *bodyWriter) error {
	w.WriteCString(b.SystemID, MaxSystemIDLen)
	return b.TLVs.marshal(w)
}

func (b *bindRespBody) unmarshalBody(r *bodyReader) error {
	var err error
	if b.SystemID, err = r.ReadCString(MaxSystemIDLen); err != nil {
		return err
	}
	b.TLVs, err = readTLVList(r)
	return err
}

// BindTransmitter is a bind_transmitter request: the ESME asks to send
// (submit_sm/data_sm) only.
type BindTransmitter struct {
	Header Header
	bindBody
}

func (p *BindTransmitter) CommandID() CommandID { return BindTransmitterID }
func (p *BindTransmitter) Head() *Header        { return &p.Header }

// Resp builds the paired bind_transmitter_resp, copying the sequence
// number and defaulting to ESME_ROK.
func (p *BindTransmitter) Resp() PDU {
	return &BindTransmitterResp{Header: Header{Sequence: p.Header.Sequence}}
}

// BindTransmitterResp is the bind_transmitter response.
type BindTransmitterResp struct {
	Header Header
	bindRespBody
}

func (p *BindTransmitterResp) CommandID() CommandID { return BindTransmitterRespID }
func (p *BindTransmitterResp) Head() *Header        { return &p.Header }

// BindReceiver is a bind_receiver request: the ESME asks to receive
// (deliver_sm/data_sm) only.
type BindReceiver struct {
	Header Header
	bindBody
}

func (p *BindReceiver) CommandID() CommandID { return BindReceiverID }
func (p *BindReceiver) Head() *Header        { return &p.Header }

func (p *BindReceiver) Resp() PDU {
	return &BindReceiverResp{Header: Header{Sequence: p.Header.Sequence}}
}

// BindReceiverResp is the bind_receiver response.
type BindReceiverResp struct {
	Header Header
	bindRespBody
}

func (p *BindReceiverResp) CommandID() CommandID { return BindReceiverRespID }
func (p *BindReceiverResp) Head() *Header        { return &p.Header }

// BindTransceiver is a bind_transceiver request: the ESME asks for both
// directions over one session.
type BindTransceiver struct {
	Header Header
	bindBody
}

func (p *BindTransceiver) CommandID() CommandID { return BindTransceiverID }
func (p *BindTransceiver) Head() *Header        { return &p.Header }

func (p *BindTransceiver) Resp() PDU {
	return &BindTransceiverResp{Header: Header{Sequence: p.Header.Sequence}}
}

// BindTransceiverResp is the bind_transceiver response.
type BindTransceiverResp struct {
	Header Header
	bindRespBody
}

func (p *BindTransceiverResp) CommandID() CommandID { return BindTransceiverRespID }
func (p *BindTransceiverResp) Head() *Header        { return &p.Header }

// BindTypeOf reports which bind flavor a bind request names, used by the
// state machine and dispatcher to pick the right transition/response.
func BindTypeOf(p PDU) (BindType, bool) {
	switch p.(type) {
	case *BindTransmitter:
		return BindTypeTransmitter, true
	case *BindReceiver:
		return BindTypeReceiver, true
	case *BindTransceiver:
		return BindTypeTransceiver, true
	}
	return 0, false
}

// Outbind is the SMSC-initiated connection request. Only the framing is
// implemented; acting on an outbind is up to the caller. It has no
// response.
type Outbind struct {
	Header   Header
	SystemID string
	Password string
}

func (p *Outbind) CommandID() CommandID { return OutbindID }
func (p *Outbind) Head() *Header        { return &p.Header }

func (p *Outbind) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.SystemID, MaxSystemIDLen)
	w.WriteCString(p.Password, MaxPasswordLen)
	return nil
}

func (p *Outbind) unmarshalBody(r *bodyReader) error {
	var err error
	if p.SystemID, err = r.ReadCString(MaxSystemIDLen); err != nil {
		return err
	}
	p.Password, err = r.ReadCString(MaxPasswordLen)
	return err
}
