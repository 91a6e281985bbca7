package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

func TestLifecycleHappyPath(t *testing.T) {
	m := New()
	require.Equal(t, Closed, m.Current())

	require.NoError(t, m.OnConnect())
	require.Equal(t, Open, m.Current())

	require.NoError(t, m.OnBind(pdu.BindTypeTransceiver))
	require.Equal(t, BoundTRX, m.Current())
	require.True(t, m.Current().CanTransmit())
	require.True(t, m.Current().CanReceive())

	require.NoError(t, m.OnUnbind())
	require.Equal(t, Closed, m.Current())

	require.NoError(t, m.OnConnect())
	require.NoError(t, m.OnBind(pdu.BindTypeReceiver))
	require.Equal(t, BoundRX, m.Current())
	require.False(t, m.Current().CanTransmit())
	require.True(t, m.Current().CanReceive())
}

func TestOnConnectRejectsNonClosed(t *testing.T) {
	m := New()
	require.NoError(t, m.OnConnect())
	require.ErrorIs(t, m.OnConnect(), ErrInvalidTransition)
}

func TestOnBindRequiresOpen(t *testing.T) {
	m := New()
	require.ErrorIs(t, m.OnBind(pdu.BindTypeTransmitter), ErrInvalidTransition)
}

func TestOnUnbindRequiresBound(t *testing.T) {
	m := New()
	require.NoError(t, m.OnConnect())
	require.ErrorIs(t, m.OnUnbind(), ErrInvalidTransition)
}

func TestOnCloseAlwaysSucceeds(t *testing.T) {
	m := New()
	m.OnClose()
	require.Equal(t, Closed, m.Current())

	require.NoError(t, m.OnConnect())
	require.NoError(t, m.OnBind(pdu.BindTypeTransmitter))
	m.OnClose()
	require.Equal(t, Closed, m.Current())
}

func TestBoundTXCannotReceive(t *testing.T) {
	m := New()
	require.NoError(t, m.OnConnect())
	require.NoError(t, m.OnBind(pdu.BindTypeTransmitter))
	require.NoError(t, m.ValidateCanTransmit())
	require.ErrorIs(t, m.ValidateCanReceive(), ErrInvalidTransition)
}
