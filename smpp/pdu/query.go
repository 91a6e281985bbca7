package pdu

// MessageState names the final_state / message_state values used by
// query_sm_resp and the message_state TLV on delivery receipts.
type MessageState uint8

// Defined message_state values (SMPP v3.4 section 5.2.28).
const (
	MessageStateEnroute       MessageState = 1
	MessageStateDelivered     MessageState = 2
	MessageStateExpired       MessageState = 3
	MessageStateDeleted       MessageState = 4
	MessageStateUndeliverable MessageState = 5
	MessageStateAccepted      MessageState = 6
	MessageStateUnknown       MessageState = 7
	MessageStateRejected      MessageState = 8
)

// QuerySM asks the SMSC for the current state of a previously submitted
// message.
type QuerySM struct {
	Header     Header
	MessageID  string
	SourceAddr Address
}

func (p *QuerySM) CommandID() CommandID { return QuerySmID }
func (p *QuerySM) Head() *Header        { return &p.Header }

func (p *QuerySM) Resp() PDU {
	return &QuerySMResp{Header: Header{Sequence: p.Header.Sequence}}
}

func (p *QuerySM) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.MessageID, MaxMessageIDLen)
	p.SourceAddr.marshal(w)
	return nil
}

func (p *QuerySM) unmarshalBody(r *bodyReader) error {
	var err error
	if p.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	p.SourceAddr, err = r.readAddress()
	return err
}

// QuerySMResp is the query_sm response.
type QuerySMResp struct {
	Header       Header
	MessageID    string
	FinalDate    string
	MessageState MessageState
	ErrorCode    uint8
}

func (p *QuerySMResp) CommandID() CommandID { return QuerySmRespID }
func (p *QuerySMResp) Head() *Header        { return &p.Header }

func (p *QuerySMResp) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.MessageID, MaxMessageIDLen)
	w.WriteCString(p.FinalDate, timeFieldLen)
	w.WriteByte(uint8(p.MessageState))
	w.WriteByte(p.ErrorCode)
	return nil
}

func (p *QuerySMResp) unmarshalBody(r *bodyReader) error {
	var err error
	if p.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	if p.FinalDate, err = r.ReadCString(timeFieldLen); err != nil {
		return err
	}
	state, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.MessageState = MessageState(state)
	p.ErrorCode, err = r.ReadByte()
	return err
}
