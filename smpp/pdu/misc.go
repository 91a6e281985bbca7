package pdu

// EnquireLink is the session keep-alive ping. It has no mandatory body
// fields.
type EnquireLink struct {
	Header Header
}

func (p *EnquireLink) CommandID() CommandID          { return EnquireLinkID }
func (p *EnquireLink) Head() *Header                 { return &p.Header }
func (p *EnquireLink) marshalBody(*bodyWriter) error { return nil }
func (p *EnquireLink) unmarshalBody(*bodyReader) error {
	return nil
}

func (p *EnquireLink) Resp() PDU {
	return &EnquireLinkResp{Header: Header{Sequence: p.Header.Sequence}}
}

// EnquireLinkResp is the enquire_link response.
type EnquireLinkResp struct {
	Header Header
}

func (p *EnquireLinkResp) CommandID() CommandID            { return EnquireLinkRespID }
func (p *EnquireLinkResp) Head() *Header                   { return &p.Header }
func (p *EnquireLinkResp) marshalBody(*bodyWriter) error   { return nil }
func (p *EnquireLinkResp) unmarshalBody(*bodyReader) error { return nil }

// Unbind requests an orderly session shutdown (BOUND_* -> CLOSED). It has
// no mandatory body fields.
type Unbind struct {
	Header Header
}

func (p *Unbind) CommandID() CommandID          { return UnbindID }
func (p *Unbind) Head() *Header                 { return &p.Header }
func (p *Unbind) marshalBody(*bodyWriter) error { return nil }
func (p *Unbind) unmarshalBody(*bodyReader) error {
	return nil
}

func (p *Unbind) Resp() PDU {
	return &UnbindResp{Header: Header{Sequence: p.Header.Sequence}}
}

// UnbindResp is the unbind response.
type UnbindResp struct {
	Header Header
}

func (p *UnbindResp) CommandID() CommandID            { return UnbindRespID }
func (p *UnbindResp) Head() *Header                   { return &p.Header }
func (p *UnbindResp) marshalBody(*bodyWriter) error   { return nil }
func (p *UnbindResp) unmarshalBody(*bodyReader) error { return nil }

// GenericNack is returned for a PDU the receiver could not parse or did not
// recognize. It carries no mandatory body fields of its
// own; command_status on the header names the failure.
type GenericNack struct {
	Header Header
}

func (p *GenericNack) CommandID() CommandID            { return GenericNackID }
func (p *GenericNack) Head() *Header                   { return &p.Header }
func (p *GenericNack) marshalBody(*bodyWriter) error   { return nil }
func (p *GenericNack) unmarshalBody(*bodyReader) error { return nil }

// NewGenericNack builds a generic_nack reply to sequence with the given
// failure status.
func NewGenericNack(sequence uint32, status CommandStatus) *GenericNack {
	return &GenericNack{Header: Header{Status: status, Sequence: sequence}}
}

// AlertNotification is an SMSC-to-ESME notice that a previously
// inaccessible mobile subscriber has become available (SMPP v3.4/v5.0).
// It has no response.
type AlertNotification struct {
	Header     Header
	SourceAddr Address
	EsmeAddr   Address
	TLVs       TLVList
}

func (p *AlertNotification) CommandID() CommandID { return AlertNotificationID }
func (p *AlertNotification) Head() *Header        { return &p.Header }

func (p *AlertNotification) marshalBody(w *bodyWriter) error {
	p.SourceAddr.marshal(w)
	p.EsmeAddr.marshal(w)
	return p.TLVs.marshal(w)
}

func (p *AlertNotification) unmarshalBody(r *bodyReader) error {
	var err error
	if p.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	if p.EsmeAddr, err = r.readAddress(); err != nil {
		return err
	}
	p.TLVs, err = readTLVList(r)
	return err
}
