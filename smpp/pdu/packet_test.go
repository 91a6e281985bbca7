package pdu

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// roundTrip marshals p, decodes the result back, and returns the decoded
// PDU alongside the encoded frame for hand-checking.
func roundTrip(t *testing.T, p PDU) (PDU, []byte) {
	t.Helper()
	var buf bytes.Buffer
	n, err := Marshal(&buf, p)
	require.NoError(t, err)
	require.Equal(t, buf.Len(), n)

	got, err := Unmarshal(buf.Bytes())
	require.NoError(t, err)
	return got, buf.Bytes()
}

func TestMarshalUnmarshalEnquireLink(t *testing.T) {
	p := &EnquireLink{Header: Header{Sequence: 7}}
	got, frame := roundTrip(t, p)

	// enquire_link is header-only: command_length=16, command_id=0x15.
	require.Equal(t, "00000010000000150000000000000007", hex.EncodeToString(frame))
	el, ok := got.(*EnquireLink)
	require.True(t, ok)
	require.Equal(t, uint32(7), el.Header.Sequence)
	require.Equal(t, uint32(16), el.Header.CommandLength)
}

func TestMarshalUnmarshalUnbind(t *testing.T) {
	p := &Unbind{Header: Header{Sequence: 42}}
	got, frame := roundTrip(t, p)
	require.Equal(t, "0000001000000006000000000000002a", hex.EncodeToString(frame))
	require.IsType(t, &Unbind{}, got)
}

func TestMarshalUnmarshalGenericNack(t *testing.T) {
	p := NewGenericNack(5, StatusInvCmdID)
	got, frame := roundTrip(t, p)
	require.Equal(t, "00000010800000000000000300000005", hex.EncodeToString(frame))
	nack, ok := got.(*GenericNack)
	require.True(t, ok)
	require.Equal(t, StatusInvCmdID, nack.Header.Status)
	require.Equal(t, uint32(5), nack.Header.Sequence)
}

func TestMarshalUnmarshalBindTransceiver(t *testing.T) {
	p := &BindTransceiver{
		Header: Header{Sequence: 1},
		bindBody: bindBody{
			SystemID:         "port-1",
			Password:         "managed",
			SystemType:       "",
			InterfaceVersion: 0x34,
			AddrTON:          TONInternational,
			AddrNPI:          NPIISDN,
			AddressRange:     "",
		},
	}
	got, _ := roundTrip(t, p)
	bt, ok := got.(*BindTransceiver)
	require.True(t, ok)
	require.Equal(t, "port-1", bt.SystemID)
	require.Equal(t, "managed", bt.Password)
	require.Equal(t, uint8(0x34), bt.InterfaceVersion)
	require.Equal(t, TONInternational, bt.AddrTON)

	resp := p.Resp().(*BindTransceiverResp)
	resp.SystemID = "port-1"
	gotResp, _ := roundTrip(t, resp)
	br, ok := gotResp.(*BindTransceiverResp)
	require.True(t, ok)
	require.Equal(t, "port-1", br.SystemID)
	require.Equal(t, BindTransceiverRespID, br.CommandID())
}

func TestBindTypeOf(t *testing.T) {
	bt, ok := BindTypeOf(&BindTransmitter{})
	require.True(t, ok)
	require.Equal(t, BindTypeTransmitter, bt)

	br, ok := BindTypeOf(&BindReceiver{})
	require.True(t, ok)
	require.Equal(t, BindTypeReceiver, br)

	_, ok = BindTypeOf(&EnquireLink{})
	require.False(t, ok)
}

func TestMarshalUnmarshalSubmitSM(t *testing.T) {
	src, err := NewAddress(TONInternational, NPIISDN, "15551230000")
	require.NoError(t, err)
	dst, err := NewAddress(TONInternational, NPIISDN, "15559876543")
	require.NoError(t, err)

	p := &SubmitSM{
		Header: Header{Sequence: 99},
		smBody: smBody{
			ServiceType: "",
			SourceAddr:  src,
			DestAddr:    dst,
			ESMClass:    EsmClass{MessageMode: EsmModeDefault, MessageType: EsmTypeDefault},
			DataCoding:  DataCodingDefault,
			Message:     NewShortMessage([]byte("hello world")),
		},
	}
	got, _ := roundTrip(t, p)
	sm, ok := got.(*SubmitSM)
	require.True(t, ok)
	require.Equal(t, "15551230000", sm.SourceAddr.No)
	require.Equal(t, "15559876543", sm.DestAddr.No)
	require.Equal(t, []byte("hello world"), sm.Message.Bytes())
	require.Equal(t, 11, sm.Message.Len())

	resp := p.Resp()
	resp.(*SubmitSMResp).MessageID = "msg-1"
	gotResp, _ := roundTrip(t, resp)
	sr, ok := gotResp.(*SubmitSMResp)
	require.True(t, ok)
	require.Equal(t, "msg-1", sr.MessageID)
}

func TestSubmitSMWithTLV(t *testing.T) {
	p := &SubmitSM{
		Header: Header{Sequence: 1},
		smBody: smBody{
			Message: NewShortMessage(nil),
			TLVs:    TLVList{}.Set(TagMessagePayload, []byte("payload bytes")),
		},
	}
	got, _ := roundTrip(t, p)
	sm := got.(*SubmitSM)
	payload, ok := sm.MessagePayload()
	require.True(t, ok)
	require.Equal(t, []byte("payload bytes"), payload)
	require.Equal(t, []byte("payload bytes"), sm.EffectiveMessage())
}

func TestMarshalUnmarshalDeliverSM(t *testing.T) {
	p := &DeliverSM{
		Header: Header{Sequence: 3},
		smBody: smBody{
			ESMClass: EsmClass{MessageType: EsmTypeDeliveryReceipt},
			Message:  NewShortMessage([]byte("id:1 stat:DELIVRD")),
		},
	}
	got, _ := roundTrip(t, p)
	dm := got.(*DeliverSM)
	require.Equal(t, uint8(EsmTypeDeliveryReceipt), dm.ESMClass.MessageType)
	require.Equal(t, "id:1 stat:DELIVRD", string(dm.Message.Bytes()))
}

func TestMarshalUnmarshalDataSM(t *testing.T) {
	p := &DataSM{
		Header:     Header{Sequence: 8},
		DataCoding: DataCodingUCS2,
		TLVs:       TLVList{}.Set(TagMessagePayload, []byte{0x00, 0x68}),
	}
	got, _ := roundTrip(t, p)
	ds := got.(*DataSM)
	require.Equal(t, DataCodingUCS2, ds.DataCoding)
	payload, ok := ds.MessagePayload()
	require.True(t, ok)
	require.Equal(t, []byte{0x00, 0x68}, payload)
}

func TestMarshalUnmarshalQuerySM(t *testing.T) {
	src, _ := NewAddress(TONInternational, NPIISDN, "15551230000")
	p := &QuerySM{
		Header:     Header{Sequence: 4},
		MessageID:  "abc123",
		SourceAddr: src,
	}
	got, _ := roundTrip(t, p)
	q := got.(*QuerySM)
	require.Equal(t, "abc123", q.MessageID)

	resp := &QuerySMResp{
		Header:       Header{Sequence: 4},
		MessageID:    "abc123",
		MessageState: MessageStateDelivered,
	}
	gotResp, _ := roundTrip(t, resp)
	qr := gotResp.(*QuerySMResp)
	require.Equal(t, MessageStateDelivered, qr.MessageState)
}

func TestMarshalUnmarshalCancelSM(t *testing.T) {
	src, _ := NewAddress(TONInternational, NPIISDN, "15551230000")
	dst, _ := NewAddress(TONInternational, NPIISDN, "15559876543")
	p := &CancelSM{
		Header:     Header{Sequence: 5},
		MessageID:  "xyz789",
		SourceAddr: src,
		DestAddr:   dst,
	}
	got, _ := roundTrip(t, p)
	c := got.(*CancelSM)
	require.Equal(t, "xyz789", c.MessageID)
}

func TestMarshalUnmarshalReplaceSM(t *testing.T) {
	src, _ := NewAddress(TONInternational, NPIISDN, "15551230000")
	p := &ReplaceSM{
		Header:     Header{Sequence: 6},
		MessageID:  "rep001",
		SourceAddr: src,
		Message:    NewShortMessage([]byte("updated text")),
	}
	got, _ := roundTrip(t, p)
	r := got.(*ReplaceSM)
	require.Equal(t, "updated text", string(r.Message.Bytes()))
}

func TestMarshalUnmarshalSubmitMulti(t *testing.T) {
	src, _ := NewAddress(TONInternational, NPIISDN, "15551230000")
	d1, _ := NewAddress(TONInternational, NPIISDN, "15559876543")
	d2, _ := NewAddress(TONInternational, NPIISDN, "15559876544")

	p := &SubmitMulti{
		Header:       Header{Sequence: 10},
		SourceAddr:   src,
		Destinations: []Destination{
			{Flag: DestFlagSME, Addr: d1},
			{Flag: DestFlagSME, Addr: d2},
			{Flag: DestFlagDL, DLName: "mylist"},
		},
		Message: NewShortMessage([]byte("broadcast")),
	}
	got, _ := roundTrip(t, p)
	sm := got.(*SubmitMulti)
	require.Len(t, sm.Destinations, 3)
	require.Equal(t, "15559876543", sm.Destinations[0].Addr.No)
	require.Equal(t, "mylist", sm.Destinations[2].DLName)

	resp := &SubmitMultiResp{
		Header:    Header{Sequence: 10},
		MessageID: "multi-1",
		Unsuccessful: []UnsuccessfulSME{
			{Addr: d2, ErrorStatus: StatusSubmitFail},
		},
	}
	gotResp, _ := roundTrip(t, resp)
	sr := gotResp.(*SubmitMultiResp)
	require.Len(t, sr.Unsuccessful, 1)
	require.Equal(t, StatusSubmitFail, sr.Unsuccessful[0].ErrorStatus)
}

func TestMarshalUnmarshalAlertNotification(t *testing.T) {
	src, _ := NewAddress(TONInternational, NPIISDN, "15551230000")
	esme, _ := NewAddress(TONInternational, NPIISDN, "15559876543")
	p := &AlertNotification{
		Header:     Header{Sequence: 11},
		SourceAddr: src,
		EsmeAddr:   esme,
	}
	got, _ := roundTrip(t, p)
	an := got.(*AlertNotification)
	require.Equal(t, "15559876543", an.EsmeAddr.No)
}

func TestUnmarshalRejectsShortFrame(t *testing.T) {
	_, err := Unmarshal([]byte{0, 0, 0, 1})
	require.ErrorIs(t, err, ErrShortFrame)
}

func TestUnmarshalRejectsLengthMismatch(t *testing.T) {
	frame := make([]byte, HeaderLen)
	frame[3] = 99 // declares a length that disagrees with len(frame)
	_, err := Unmarshal(frame)
	require.ErrorIs(t, err, ErrFrameLengthMismatch)
}

func TestUnmarshalRejectsUnknownCommandID(t *testing.T) {
	frame := make([]byte, HeaderLen)
	frame[3] = HeaderLen
	frame[4], frame[5], frame[6], frame[7] = 0xFF, 0xFF, 0xFF, 0xFF
	_, err := Unmarshal(frame)
	require.ErrorIs(t, err, ErrUnknownCommandID)
}

func TestCommandIDString(t *testing.T) {
	require.Equal(t, "submit_sm", SubmitSmID.String())
	require.Equal(t, "bind_transceiver_resp", BindTransceiverRespID.String())
	require.Contains(t, CommandID(0xDEADBEEF).String(), "0xDEADBEEF")
}

func TestEsmClassRoundTrip(t *testing.T) {
	e := EsmClass{MessageMode: EsmModeDatagram, MessageType: EsmTypeDeliveryAck, UDHIndicator: true, ReplyPath: true}
	got := ParseEsmClass(e.Byte())
	require.Equal(t, e, got)
}

func TestRegisteredDeliveryRoundTrip(t *testing.T) {
	r := RegisteredDelivery{Receipt: ReceiptOnFailure, SMEAck: 0x2, IntermediateNotif: true}
	got := ParseRegisteredDelivery(r.Byte())
	require.Equal(t, r, got)
}

func TestTLVListGetSet(t *testing.T) {
	var l TLVList
	l = l.Set(TagUserMessageReference, []byte{0x00, 0x01})
	l = l.Set(TagReceiptedMessageID, []byte("abc"))
	l = l.Set(TagUserMessageReference, []byte{0x00, 0x02})

	v, ok := l.Get(TagUserMessageReference)
	require.True(t, ok)
	require.Equal(t, []byte{0x00, 0x02}, v.Value)
	require.Len(t, l, 2)
}
