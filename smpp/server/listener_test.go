package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagostin/smpp-engine/smpp/client"
	"github.com/sagostin/smpp-engine/smpp/pdu"
	"github.com/sagostin/smpp-engine/smpp/session"
)

type echoHandler struct {
	session.BaseHandler
}

func (echoHandler) HandleBind(_ context.Context, _ *session.Session, systemID, password, _ string, _ pdu.BindType) (string, pdu.CommandStatus, error) {
	if password != "secret" {
		return "", pdu.StatusInvPassword, nil
	}
	return "test-smsc", pdu.StatusOK, nil
}

func (echoHandler) HandleSubmitSM(_ context.Context, _ *session.Session, req *pdu.SubmitSM) (*pdu.SubmitSMResp, error) {
	resp := req.Resp().(*pdu.SubmitSMResp)
	resp.MessageID = "server-generated-id"
	return resp, nil
}

// TestClientServerBindAndSubmit covers the engine end to end over a real
// TCP loopback connection: listen, dial, bind, submit, response.
func TestClientServerBindAndSubmit(t *testing.T) {
	srv, err := New(Config{
		Addr:          "127.0.0.1:0",
		SessionConfig: session.Config{Handler: echoHandler{}, RequestTimeout: time.Second},
	})
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer dialCancel()

	c, err := client.Dial(dialCtx, client.Config{
		Addr:       srv.Addr().String(),
		BindType:   pdu.BindTypeTransceiver,
		SystemID:   "esme-01",
		Password:   "secret",
		SessionConfig: session.Config{RequestTimeout: time.Second},
	})
	require.NoError(t, err)
	defer c.Close(context.Background())

	require.Equal(t, "test-smsc", c.Session.PeerSystemID())

	req := &pdu.SubmitSM{}
	f, err := c.Session.SendRequest(dialCtx, req)
	require.NoError(t, err)

	resp, err := f.Wait(dialCtx)
	require.NoError(t, err)
	submitResp := resp.(*pdu.SubmitSMResp)
	require.Equal(t, "server-generated-id", submitResp.MessageID)
}

// TestClientDialRejectsBadPassword exercises the auth-reject path.
func TestClientDialRejectsBadPassword(t *testing.T) {
	srv, err := New(Config{
		Addr:          "127.0.0.1:0",
		SessionConfig: session.Config{Handler: echoHandler{}, RequestTimeout: time.Second},
	})
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer dialCancel()

	_, err = client.Dial(dialCtx, client.Config{
		Addr:          srv.Addr().String(),
		BindType:      pdu.BindTypeTransceiver,
		SystemID:      "esme-01",
		Password:      "wrong",
		SessionConfig: session.Config{RequestTimeout: time.Second},
	})
	require.Error(t, err)
}
