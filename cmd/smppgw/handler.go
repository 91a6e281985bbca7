package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sagostin/smpp-engine/smpp/pdu"
	"github.com/sagostin/smpp-engine/smpp/session"
)

// echoHandler accepts any bind and answers submit_sm/data_sm with a
// generated message_id, enough traffic to exercise the engine end to
// end without a real routing layer behind it.
type echoHandler struct {
	session.BaseHandler
	logger *logrus.Entry
}

func (h *echoHandler) HandleBind(_ context.Context, _ *session.Session, systemID, _, _ string, bindType pdu.BindType) (string, pdu.CommandStatus, error) {
	h.logger.WithFields(logrus.Fields{
		"system_id": systemID,
		"bind_type": bindType.String(),
	}).Info("smppgw: bind accepted")
	return "smppgw", pdu.StatusOK, nil
}

func (h *echoHandler) HandleSubmitSM(_ context.Context, _ *session.Session, req *pdu.SubmitSM) (*pdu.SubmitSMResp, error) {
	resp := req.Resp().(*pdu.SubmitSMResp)
	resp.MessageID = uuid.NewString()
	return resp, nil
}

func (h *echoHandler) HandleDataSM(_ context.Context, _ *session.Session, req *pdu.DataSM) (*pdu.DataSMResp, error) {
	resp := req.Resp().(*pdu.DataSMResp)
	resp.MessageID = uuid.NewString()
	return resp, nil
}
