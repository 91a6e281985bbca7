package pdu

// DeliverSM delivers a short message from the SMSC to a bound ESME, or
// carries a delivery receipt (esm_class message type delivery_receipt).
// It shares the submit_sm body layout.
type DeliverSM struct {
	Header Header
	smBody
}

func (p *DeliverSM) CommandID() CommandID { return DeliverSmID }
func (p *DeliverSM) Head() *Header        { return &p.Header }

func (p *DeliverSM) Resp() PDU {
	return &DeliverSMResp{Header: Header{Sequence: p.Header.Sequence}}
}

// DeliverSMResp is the deliver_sm response.
type DeliverSMResp struct {
	Header Header
	smRespBody
}

func (p *DeliverSMResp) CommandID() CommandID { return DeliverSmRespID }
func (p *DeliverSMResp) Head() *Header        { return &p.Header }

// IsDeliveryReceipt reports whether the deliver_sm carries a delivery
// receipt rather than a mobile-originated message.
func (p *DeliverSM) IsDeliveryReceipt() bool {
	return p.ESMClass.MessageType == EsmTypeDeliveryReceipt
}
