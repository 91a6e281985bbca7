// Package pdu implements bit-exact encoding and decoding of SMPP protocol
// data units: the fixed header, the mandatory body fields of every command,
// and the trailing TLV (tag-length-value) optional parameter list.
package pdu

import "fmt"

// CommandID identifies the kind of PDU. The high bit distinguishes a
// response from its request.
type CommandID uint32

// SMPP command set (SMPP v3.4 section 5.1.2.1, plus v5.0 additions).
const (
	GenericNackID         CommandID = 0x80000000
	BindReceiverID        CommandID = 0x00000001
	BindReceiverRespID    CommandID = 0x80000001
	BindTransmitterID     CommandID = 0x00000002
	BindTransmitterRespID CommandID = 0x80000002
	QuerySmID             CommandID = 0x00000003
	QuerySmRespID         CommandID = 0x80000003
	SubmitSmID            CommandID = 0x00000004
	SubmitSmRespID        CommandID = 0x80000004
	DeliverSmID           CommandID = 0x00000005
	DeliverSmRespID       CommandID = 0x80000005
	UnbindID              CommandID = 0x00000006
	UnbindRespID          CommandID = 0x80000006
	ReplaceSmID           CommandID = 0x00000007
	ReplaceSmRespID       CommandID = 0x80000007
	CancelSmID            CommandID = 0x00000008
	CancelSmRespID        CommandID = 0x80000008
	BindTransceiverID     CommandID = 0x00000009
	BindTransceiverRespID CommandID = 0x80000009
	OutbindID             CommandID = 0x0000000B
	EnquireLinkID         CommandID = 0x00000015
	EnquireLinkRespID     CommandID = 0x80000015
	SubmitMultiID         CommandID = 0x00000021
	SubmitMultiRespID     CommandID = 0x80000021
	AlertNotificationID   CommandID = 0x00000102
	DataSmID              CommandID = 0x00000103
	DataSmRespID          CommandID = 0x80000103
)

// responseBit, when set, marks a CommandID as the response half of a pair.
const responseBit CommandID = 0x80000000

// IsResponse reports whether id is the response half of a request/response
// pair; a response command_id always has the high bit set.
func (id CommandID) IsResponse() bool {
	return id&responseBit != 0
}

// ToResponse ORs in the response bit, deriving the paired response
// CommandID from a request CommandID.
func (id CommandID) ToResponse() CommandID {
	return id | responseBit
}

// ToRequest clears the response bit, deriving the paired request
// CommandID from a response CommandID. GenericNack has no request
// counterpart and is returned unchanged.
func (id CommandID) ToRequest() CommandID {
	if id == GenericNackID {
		return id
	}
	return id &^ responseBit
}

var commandIDNames = map[CommandID]string{
	GenericNackID:         "generic_nack",
	BindReceiverID:        "bind_receiver",
	BindReceiverRespID:    "bind_receiver_resp",
	BindTransmitterID:     "bind_transmitter",
	BindTransmitterRespID: "bind_transmitter_resp",
	QuerySmID:             "query_sm",
	QuerySmRespID:         "query_sm_resp",
	SubmitSmID:            "submit_sm",
	SubmitSmRespID:        "submit_sm_resp",
	DeliverSmID:           "deliver_sm",
	DeliverSmRespID:       "deliver_sm_resp",
	UnbindID:              "unbind",
	UnbindRespID:          "unbind_resp",
	ReplaceSmID:           "replace_sm",
	ReplaceSmRespID:       "replace_sm_resp",
	CancelSmID:            "cancel_sm",
	CancelSmRespID:        "cancel_sm_resp",
	BindTransceiverID:     "bind_transceiver",
	BindTransceiverRespID: "bind_transceiver_resp",
	OutbindID:             "outbind",
	EnquireLinkID:         "enquire_link",
	EnquireLinkRespID:     "enquire_link_resp",
	SubmitMultiID:         "submit_multi",
	SubmitMultiRespID:     "submit_multi_resp",
	AlertNotificationID:   "alert_notification",
	DataSmID:              "data_sm",
	DataSmRespID:          "data_sm_resp",
}

// String implements fmt.Stringer for readable logging.
func (id CommandID) String() string {
	if name, ok := commandIDNames[id]; ok {
		return name
	}
	return fmt.Sprintf("command_id(0x%08X)", uint32(id))
}

// CommandIDFromCode maps a raw wire value to a known CommandID. The second
// return value is false for codes the engine doesn't recognize. The
// engine never rejects a command code outright on that basis alone --
// callers decide what to do with an unknown ID.
func CommandIDFromCode(code uint32) (CommandID, bool) {
	id := CommandID(code)
	_, known := commandIDNames[id]
	return id, known
}

// CommandStatus is the 32-bit PDU result code. Zero means success. The
// engine compares statuses purely by numeric code and never by symbolic
// name.
type CommandStatus uint32

// IsSuccess reports whether the status indicates ESME_ROK (0).
func (s CommandStatus) IsSuccess() bool {
	return s == StatusOK
}

// Defined SMPP command_status codes (SMPP v3.4 section 5.1.3).
const (
	StatusOK              CommandStatus = 0x00000000
	StatusInvMsgLen       CommandStatus = 0x00000001
	StatusInvCmdLen       CommandStatus = 0x00000002
	StatusInvCmdID        CommandStatus = 0x00000003
	StatusInvBindStatus   CommandStatus = 0x00000004
	StatusAlreadyBound    CommandStatus = 0x00000005
	StatusInvPriorityFlag CommandStatus = 0x00000006
	StatusInvRegDlvFlag   CommandStatus = 0x00000007
	StatusSystemError     CommandStatus = 0x00000008
	StatusInvSrcAddr      CommandStatus = 0x0000000A
	StatusInvDstAddr      CommandStatus = 0x0000000B
	StatusInvMsgID        CommandStatus = 0x0000000C
	StatusBindFail        CommandStatus = 0x0000000D
	StatusInvPassword     CommandStatus = 0x0000000E
	StatusInvSystemID     CommandStatus = 0x0000000F
	StatusCancelFail      CommandStatus = 0x00000011
	StatusReplaceFail     CommandStatus = 0x00000013
	StatusMsgQueueFull    CommandStatus = 0x00000014
	StatusInvServiceType  CommandStatus = 0x00000015
	StatusInvNumDests     CommandStatus = 0x00000033
	StatusInvDistListName CommandStatus = 0x00000034
	StatusInvDestFlag     CommandStatus = 0x00000040
	StatusInvSubmitRepeat CommandStatus = 0x00000042
	StatusInvEsmClass     CommandStatus = 0x00000043
	StatusCannotSubmitDL  CommandStatus = 0x00000044
	StatusSubmitFail      CommandStatus = 0x00000045
	StatusInvSrcTON       CommandStatus = 0x00000048
	StatusInvSrcNPI       CommandStatus = 0x00000049
	StatusInvDstTON       CommandStatus = 0x00000050
	StatusInvDstNPI       CommandStatus = 0x00000051
	StatusInvSystemType   CommandStatus = 0x00000053
	StatusInvReplaceFlag  CommandStatus = 0x00000054
	StatusInvNumMsgs      CommandStatus = 0x00000055
	StatusThrottled       CommandStatus = 0x00000058
	StatusInvSchedTime    CommandStatus = 0x00000061
	StatusInvExpiryTime   CommandStatus = 0x00000062
	StatusInvDftMsgID     CommandStatus = 0x00000063
	StatusTempAppError    CommandStatus = 0x00000064
	StatusPermAppError    CommandStatus = 0x00000065
	StatusRejectAppError  CommandStatus = 0x00000066
	StatusQueryFail       CommandStatus = 0x00000067
	StatusInvOptParams    CommandStatus = 0x000000C0
	StatusOptParamNotAllw CommandStatus = 0x000000C1
	StatusInvParamLen     CommandStatus = 0x000000C2
	StatusMissingOptParam CommandStatus = 0x000000C3
	StatusInvOptParamVal  CommandStatus = 0x000000C4
	StatusDeliveryFailure CommandStatus = 0x000000FE
	StatusUnknownError    CommandStatus = 0x000000FF
)

// HeaderLen is the fixed size, in bytes, of every PDU header.
const HeaderLen = 16

// Header is the 16-byte fixed header shared by every PDU.
// CommandLength and CommandID are re-derived by Marshal from the concrete
// PDU type on encode; Status and Sequence are caller-controlled.
type Header struct {
	CommandLength uint32
	CommandID     CommandID
	Status        CommandStatus
	Sequence      uint32
}
