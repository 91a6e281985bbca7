package pdu

// ReplaceSM replaces the content of a previously submitted message that
// has not yet reached a final state.
type ReplaceSM struct {
	Header               Header
	MessageID            string
	SourceAddr           Address
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   RegisteredDelivery
	SmDefaultMsgID       uint8
	Message              ShortMessage
}

func (p *ReplaceSM) CommandID() CommandID { return ReplaceSmID }
func (p *ReplaceSM) Head() *Header        { return &p.Header }

func (p *ReplaceSM) Resp() PDU {
	return &ReplaceSMResp{Header: Header{Sequence: p.Header.Sequence}}
}

func (p *ReplaceSM) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.MessageID, MaxMessageIDLen)
	p.SourceAddr.marshal(w)
	w.WriteCString(p.ScheduleDeliveryTime, timeFieldLen)
	w.WriteCString(p.ValidityPeriod, timeFieldLen)
	w.WriteByte(p.RegisteredDelivery.Byte())
	w.WriteByte(p.SmDefaultMsgID)
	msg := p.Message.Bytes()
	if len(msg) > MaxShortMessageLen {
		return ErrShortMessageTooLarge
	}
	w.WriteByte(uint8(len(msg)))
	w.WriteOctets(msg)
	return nil
}

func (p *ReplaceSM) unmarshalBody(r *bodyReader) error {
	var err error
	if p.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	if p.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	if p.ScheduleDeliveryTime, err = r.ReadCString(timeFieldLen); err != nil {
		return err
	}
	if p.ValidityPeriod, err = r.ReadCString(timeFieldLen); err != nil {
		return err
	}
	rd, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.RegisteredDelivery = ParseRegisteredDelivery(rd)
	if p.SmDefaultMsgID, err = r.ReadByte(); err != nil {
		return err
	}
	smLen, err := r.ReadByte()
	if err != nil {
		return err
	}
	msg, err := r.ReadOctets(int(smLen))
	if err != nil {
		return err
	}
	p.Message = NewShortMessage(msg)
	return nil
}

// ReplaceSMResp is the replace_sm response; it carries no mandatory body
// fields.
type ReplaceSMResp struct {
	Header Header
}

func (p *ReplaceSMResp) CommandID() CommandID            { return ReplaceSmRespID }
func (p *ReplaceSMResp) Head() *Header                   { return &p.Header }
func (p *ReplaceSMResp) marshalBody(*bodyWriter) error   { return nil }
func (p *ReplaceSMResp) unmarshalBody(*bodyReader) error { return nil }
