package pdu

// Field length limits for submit_sm / deliver_sm (SMPP v3.4 section 4.4).
const (
	MaxServiceTypeLen = 5
	MaxMessageIDLen   = 64
	timeFieldLen      = 16
)

// smBody holds the fields shared by submit_sm and deliver_sm; the two
// commands differ only in CommandID and in who originates them.
type smBody struct {
	ServiceType          string
	SourceAddr           Address
	DestAddr             Address
	ESMClass             EsmClass
	ProtocolID           uint8
	PriorityFlag         uint8
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   RegisteredDelivery
	ReplaceIfPresent     uint8
	DataCoding           DataCoding
	SmDefaultMsgID       uint8
	Message              ShortMessage
	TLVs                 TLVList
}

func (b *smBody) marshalBody(w *bodyWriter) error {
	w.WriteCString(b.ServiceType, MaxServiceTypeLen)
	b.SourceAddr.marshal(w)
	b.DestAddr.marshal(w)
	w.WriteByte(b.ESMClass.Byte())
	w.WriteByte(b.ProtocolID)
	w.WriteByte(b.PriorityFlag)
	w.WriteCString(b.ScheduleDeliveryTime, timeFieldLen)
	w.WriteCString(b.ValidityPeriod, timeFieldLen)
	w.WriteByte(b.RegisteredDelivery.Byte())
	w.WriteByte(b.ReplaceIfPresent)
	w.WriteByte(uint8(b.DataCoding))
	w.WriteByte(b.SmDefaultMsgID)
	msg := b.Message.Bytes()
	if len(msg) > MaxShortMessageLen {
		return ErrShortMessageTooLarge
	}
	w.WriteByte(uint8(len(msg)))
	w.WriteOctets(msg)
	return b.TLVs.marshal(w)
}

func (b *smBody) unmarshalBody(r *bodyReader) error {
	var err error
	if b.ServiceType, err = r.ReadCString(MaxServiceTypeLen); err != nil {
		return err
	}
	if b.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	if b.DestAddr, err = r.readAddress(); err != nil {
		return err
	}
	esm, err := r.ReadByte()
	if err != nil {
		return err
	}
	b.ESMClass = ParseEsmClass(esm)
	if b.ProtocolID, err = r.ReadByte(); err != nil {
		return err
	}
	if b.PriorityFlag, err = r.ReadByte(); err != nil {
		return err
	}
	if b.ScheduleDeliveryTime, err = r.ReadCString(timeFieldLen); err != nil {
		return err
	}
	if b.ValidityPeriod, err = r.ReadCString(timeFieldLen); err != nil {
		return err
	}
	rd, err := r.ReadByte()
	if err != nil {
		return err
	}
	b.RegisteredDelivery = ParseRegisteredDelivery(rd)
	if b.ReplaceIfPresent, err = r.ReadByte(); err != nil {
		return err
	}
	dc, err := r.ReadByte()
	if err != nil {
		return err
	}
	b.DataCoding = DataCoding(dc)
	if b.SmDefaultMsgID, err = r.ReadByte(); err != nil {
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
	b.Message = NewShortMessage(msg)
	b.TLVs, err = readTLVList(r)
	return err
}

// smRespBody holds the fields shared by submit_sm_resp and deliver_sm_resp.
type smRespBody struct {
	MessageID string
	TLVs      TLVList
}

func (b *smRespBody) marshalBody(w *bodyWriter) error {
	w.WriteCString(b.MessageID, MaxMessageIDLen)
	return b.TLVs.marshal(w)
}

func (b *smRespBody) unmarshalBody(r *bodyReader) error {
	var err error
	if b.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	b.TLVs, err = readTLVList(r)
	return err
}

// SubmitSM submits a short message from an ESME to the SMSC for onward
// delivery. message_id on the response side is treated as opaque bytes,
// never interpreted.
type SubmitSM struct {
	Header Header
	smBody
}

func (p *SubmitSM) CommandID() CommandID { return SubmitSmID }
func (p *SubmitSM) Head() *Header        { return &p.Header }

func (p *SubmitSM) Resp() PDU {
	return &SubmitSMResp{Header: Header{Sequence: p.Header.Sequence}}
}

// SubmitSMResp is the submit_sm response.
type SubmitSMResp struct {
	Header Header
	smRespBody
}

func (p *SubmitSMResp) CommandID() CommandID { return SubmitSmRespID }
func (p *SubmitSMResp) Head() *Header        { return &p.Header }

// MessagePayload extracts the message_payload TLV if present. When both
// message_payload and short_message are present, message_payload takes
// precedence for interpretation, but both remain on the wire untouched.
func (b *smBody) MessagePayload() ([]byte, bool) {
	t, ok := b.TLVs.Get(TagMessagePayload)
	if !ok || len(t.Value) == 0 {
		return nil, false
	}
	return t.Value, true
}

// EffectiveMessage returns message_payload when present and non-empty,
// otherwise the short_message field.
func (b *smBody) EffectiveMessage() []byte {
	if payload, ok := b.MessagePayload(); ok {
		return payload
	}
	return b.Message.Bytes()
}
