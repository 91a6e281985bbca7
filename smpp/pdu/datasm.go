package pdu

// DataSM carries an interactive-mode short message; unlike
// submit_sm/deliver_sm its payload normally travels in the message_payload
// TLV rather than a mandatory short_message field.
type DataSM struct {
	Header             Header
	ServiceType        string
	SourceAddr         Address
	DestAddr           Address
	ESMClass           EsmClass
	RegisteredDelivery RegisteredDelivery
	DataCoding         DataCoding
	TLVs               TLVList
}

func (p *DataSM) CommandID() CommandID { return DataSmID }
func (p *DataSM) Head() *Header        { return &p.Header }

func (p *DataSM) Resp() PDU {
	return &DataSMResp{Header: Header{Sequence: p.Header.Sequence}}
}

func (p *DataSM) marshalBody(w *bodyWriter) error {
	w.WriteCString(p.ServiceType, MaxServiceTypeLen)
	p.SourceAddr.marshal(w)
	p.DestAddr.marshal(w)
	w.WriteByte(p.ESMClass.Byte())
	w.WriteByte(p.RegisteredDelivery.Byte())
	w.WriteByte(uint8(p.DataCoding))
	return p.TLVs.marshal(w)
}

func (p *DataSM) unmarshalBody(r *bodyReader) error {
	var err error
	if p.ServiceType, err = r.ReadCString(MaxServiceTypeLen); err != nil {
		return err
	}
	if p.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	if p.DestAddr, err = r.readAddress(); err != nil {
		return err
	}
	esm, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.ESMClass = ParseEsmClass(esm)
	rd, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.RegisteredDelivery = ParseRegisteredDelivery(rd)
	dc, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.DataCoding = DataCoding(dc)
	p.TLVs, err = readTLVList(r)
	return err
}

// MessagePayload extracts the message_payload TLV, the usual home for a
// data_sm's content.
func (p *DataSM) MessagePayload() ([]byte, bool) {
	t, ok := p.TLVs.Get(TagMessagePayload)
	if !ok {
		return nil, false
	}
	return t.Value, true
}

// DataSMResp is the data_sm response.
type DataSMResp struct {
	Header Header
	smRespBody
}

func (p *DataSMResp) CommandID() CommandID { return DataSmRespID }
func (p *DataSMResp) Head() *Header        { return &p.Header }
