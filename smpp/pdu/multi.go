package pdu

import "errors"

// Destination flag values distinguishing an SME address from a
// distribution list name in a submit_multi destination entry.
const (
	DestFlagSME uint8 = 1
	DestFlagDL  uint8 = 2
)

// MaxDLNameLen bounds a distribution list name.
const MaxDLNameLen = 21

// MaxDestinations is the largest number_of_dests submit_multi allows.
const MaxDestinations = 254

// Destination is one entry of a submit_multi destination list: either an
// SME address or a distribution list name, never both.
type Destination struct {
	Flag   uint8
	Addr   Address
	DLName string
}

func (d Destination) marshal(w *bodyWriter) error {
	w.WriteByte(d.Flag)
	switch d.Flag {
	case DestFlagSME:
		d.Addr.marshal(w)
	case DestFlagDL:
		w.WriteCString(d.DLName, MaxDLNameLen)
	default:
		return errors.New("pdu: unknown submit_multi destination flag")
	}
	return nil
}

func readDestination(r *bodyReader) (Destination, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return Destination{}, err
	}
	d := Destination{Flag: flag}
	switch flag {
	case DestFlagSME:
		d.Addr, err = r.readAddress()
	case DestFlagDL:
		d.DLName, err = r.ReadCString(MaxDLNameLen)
	default:
		return Destination{}, errors.New("pdu: unknown submit_multi destination flag")
	}
	return d, err
}

// UnsuccessfulSME reports one destination submit_multi_resp could not
// deliver to.
type UnsuccessfulSME struct {
	Addr        Address
	ErrorStatus CommandStatus
}

func (u UnsuccessfulSME) marshal(w *bodyWriter) {
	u.Addr.marshal(w)
	w.WriteUint32(uint32(u.ErrorStatus))
}

func readUnsuccessfulSME(r *bodyReader) (UnsuccessfulSME, error) {
	addr, err := r.readAddress()
	if err != nil {
		return UnsuccessfulSME{}, err
	}
	status, err := r.ReadUint32()
	if err != nil {
		return UnsuccessfulSME{}, err
	}
	return UnsuccessfulSME{Addr: addr, ErrorStatus: CommandStatus(status)}, nil
}

// SubmitMulti submits one short message for delivery to multiple
// destinations or a distribution list in a single request.
type SubmitMulti struct {
	Header               Header
	ServiceType          string
	SourceAddr           Address
	Destinations         []Destination
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

func (p *SubmitMulti) CommandID() CommandID { return SubmitMultiID }
func (p *SubmitMulti) Head() *Header        { return &p.Header }

func (p *SubmitMulti) Resp() PDU {
	return &SubmitMultiResp{Header: Header{Sequence: p.Header.Sequence}}
}

func (p *SubmitMulti) marshalBody(w *bodyWriter) error {
	if len(p.Destinations) > MaxDestinations {
		return ErrItemTooMany
	}
	w.WriteCString(p.ServiceType, MaxServiceTypeLen)
	p.SourceAddr.marshal(w)
	w.WriteByte(uint8(len(p.Destinations)))
	for _, d := range p.Destinations {
		if err := d.marshal(w); err != nil {
			return err
		}
	}
	w.WriteByte(p.ESMClass.Byte())
	w.WriteByte(p.ProtocolID)
	w.WriteByte(p.PriorityFlag)
	w.WriteCString(p.ScheduleDeliveryTime, timeFieldLen)
	w.WriteCString(p.ValidityPeriod, timeFieldLen)
	w.WriteByte(p.RegisteredDelivery.Byte())
	w.WriteByte(p.ReplaceIfPresent)
	w.WriteByte(uint8(p.DataCoding))
	w.WriteByte(p.SmDefaultMsgID)
	msg := p.Message.Bytes()
	if len(msg) > MaxShortMessageLen {
		return ErrShortMessageTooLarge
	}
	w.WriteByte(uint8(len(msg)))
	w.WriteOctets(msg)
	return p.TLVs.marshal(w)
}

func (p *SubmitMulti) unmarshalBody(r *bodyReader) error {
	var err error
	if p.ServiceType, err = r.ReadCString(MaxServiceTypeLen); err != nil {
		return err
	}
	if p.SourceAddr, err = r.readAddress(); err != nil {
		return err
	}
	n, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.Destinations = make([]Destination, 0, n)
	for i := 0; i < int(n); i++ {
		d, err := readDestination(r)
		if err != nil {
			return err
		}
		p.Destinations = append(p.Destinations, d)
	}
	esm, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.ESMClass = ParseEsmClass(esm)
	if p.ProtocolID, err = r.ReadByte(); err != nil {
		return err
	}
	if p.PriorityFlag, err = r.ReadByte(); err != nil {
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
	if p.ReplaceIfPresent, err = r.ReadByte(); err != nil {
		return err
	}
	dc, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.DataCoding = DataCoding(dc)
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
	p.TLVs, err = readTLVList(r)
	return err
}

// SubmitMultiResp is the submit_multi response, naming every destination
// the SMSC failed to accept.
type SubmitMultiResp struct {
	Header       Header
	MessageID    string
	Unsuccessful []UnsuccessfulSME
	TLVs         TLVList
}

func (p *SubmitMultiResp) CommandID() CommandID { return SubmitMultiRespID }
func (p *SubmitMultiResp) Head() *Header        { return &p.Header }

func (p *SubmitMultiResp) marshalBody(w *bodyWriter) error {
	if len(p.Unsuccessful) > MaxDestinations {
		return ErrItemTooMany
	}
	w.WriteCString(p.MessageID, MaxMessageIDLen)
	w.WriteByte(uint8(len(p.Unsuccessful)))
	for _, u := range p.Unsuccessful {
		u.marshal(w)
	}
	return p.TLVs.marshal(w)
}

func (p *SubmitMultiResp) unmarshalBody(r *bodyReader) error {
	var err error
	if p.MessageID, err = r.ReadCString(MaxMessageIDLen); err != nil {
		return err
	}
	n, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.Unsuccessful = make([]UnsuccessfulSME, 0, n)
	for i := 0; i < int(n); i++ {
		u, err := readUnsuccessfulSME(r)
		if err != nil {
			return err
		}
		p.Unsuccessful = append(p.Unsuccessful, u)
	}
	p.TLVs, err = readTLVList(r)
	return err
}
