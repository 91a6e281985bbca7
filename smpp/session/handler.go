package session

import (
	"context"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// RequestHandler receives the PDUs a Session cannot answer by itself.
// Every method runs on the dispatcher's
// bounded goroutine pool, never on the read loop goroutine.
//
// A method returning a non-nil response and a nil error has that
// response written back with ESME_ROK unless the response's own Status
// field was set by the handler. A nil response with a non-nil error
// causes the dispatcher to build the PDU's own Resp() and stamp it with
// the error's status (SYSTEM_ERR unless the error is a *StatusError).
type RequestHandler interface {
	// HandleBind authenticates an inbound bind request (server side
	// only) and names the system_id to echo back on the response.
	HandleBind(ctx context.Context, s *Session, systemID, password, systemType string, bindType pdu.BindType) (respSystemID string, status pdu.CommandStatus, err error)

	HandleSubmitSM(ctx context.Context, s *Session, req *pdu.SubmitSM) (*pdu.SubmitSMResp, error)
	HandleDeliverSM(ctx context.Context, s *Session, req *pdu.DeliverSM) (*pdu.DeliverSMResp, error)
	HandleDataSM(ctx context.Context, s *Session, req *pdu.DataSM) (*pdu.DataSMResp, error)
	HandleQuerySM(ctx context.Context, s *Session, req *pdu.QuerySM) (*pdu.QuerySMResp, error)
	HandleCancelSM(ctx context.Context, s *Session, req *pdu.CancelSM) (*pdu.CancelSMResp, error)
	HandleReplaceSM(ctx context.Context, s *Session, req *pdu.ReplaceSM) (*pdu.ReplaceSMResp, error)
	HandleSubmitMulti(ctx context.Context, s *Session, req *pdu.SubmitMulti) (*pdu.SubmitMultiResp, error)

	// HandleAlertNotification and HandleUnbind are one-way notices;
	// neither produces a wire response of its own.
	HandleAlertNotification(ctx context.Context, s *Session, req *pdu.AlertNotification)
	HandleUnbind(ctx context.Context, s *Session)
}

// BaseHandler implements RequestHandler with safe stub defaults so a
// caller only needs to override the methods its side of the engine
// actually uses (an ESME client never needs HandleBind; a pure SMSC
// core never needs HandleDeliverSM, etc).
type BaseHandler struct{}

// HandleBind rejects every bind by default -- a real server must
// override this to authenticate against its own client registry.
func (BaseHandler) HandleBind(context.Context, *Session, string, string, string, pdu.BindType) (string, pdu.CommandStatus, error) {
	return "", pdu.StatusBindFail, nil
}

func (BaseHandler) HandleSubmitSM(_ context.Context, _ *Session, req *pdu.SubmitSM) (*pdu.SubmitSMResp, error) {
	resp := req.Resp().(*pdu.SubmitSMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleDeliverSM(_ context.Context, _ *Session, req *pdu.DeliverSM) (*pdu.DeliverSMResp, error) {
	resp := req.Resp().(*pdu.DeliverSMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleDataSM(_ context.Context, _ *Session, req *pdu.DataSM) (*pdu.DataSMResp, error) {
	resp := req.Resp().(*pdu.DataSMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleQuerySM(_ context.Context, _ *Session, req *pdu.QuerySM) (*pdu.QuerySMResp, error) {
	resp := req.Resp().(*pdu.QuerySMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleCancelSM(_ context.Context, _ *Session, req *pdu.CancelSM) (*pdu.CancelSMResp, error) {
	resp := req.Resp().(*pdu.CancelSMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleReplaceSM(_ context.Context, _ *Session, req *pdu.ReplaceSM) (*pdu.ReplaceSMResp, error) {
	resp := req.Resp().(*pdu.ReplaceSMResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleSubmitMulti(_ context.Context, _ *Session, req *pdu.SubmitMulti) (*pdu.SubmitMultiResp, error) {
	resp := req.Resp().(*pdu.SubmitMultiResp)
	resp.Head().Status = pdu.StatusSystemError
	return resp, nil
}

func (BaseHandler) HandleAlertNotification(context.Context, *Session, *pdu.AlertNotification) {}

func (BaseHandler) HandleUnbind(context.Context, *Session) {}
