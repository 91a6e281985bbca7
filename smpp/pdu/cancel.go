package pdu

// CancelSM cancels a previously submitted message that has not yet been
// delivered.
type CancelSM struct {
	Header      Header
	ServiceType string
	MessageID   string
	SourceAddr  Address
	DestAddr    Address
}

func (p *CancelSM) CommandID() CommandID { return CancelSmID }
func (p *CancelSM) Head() *Header        { return &p.Header }

func (p *CancelSM) Resp() PDU {
	return &CancelSMResp{Header: Header{Sequence: p.Header.Sequence}}
}

func (p *CancelSM) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.ServiceType, MaxServiceTypeLen)
	w.WriteCString(p.MessageID, MaxMessageIDLen)
	p.SourceAddr.marshal(w)
	p.DestAddr.marshal(w)
	return nil
}

func (p *CancelSM) unmarshalBody(r *bodyReader) error {
	var err error
	if p.ServiceType, err = r.ReadCString(MaxServiceTypeLen); err != nil {
		return err
	}
	if p.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	if p.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	p.DestAddr, err = r.readAddress()
	return err
}

// CancelSMResp is the cancel_sm response; it carries no mandatory body
// fields.
type CancelSMResp struct {
	Header Header
}

func (p *CancelSMResp) CommandID() CommandID            { return CancelSmRespID }
func (p *CancelSMResp) Head() *Header                   { return &p.Header }
func (p *CancelSMResp) marshalBody(*bodyWriter) error   { return nil }
func (p *CancelSMResp) unmarshalBody(*bodyReader) error { return nil }
