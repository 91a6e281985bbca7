// Package client implements the ESME side of a connection: dialing an
// SMSC and running the resulting session. Reconnection orchestration and
// TLS policy are a caller concern.
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/sagostin/smpp-engine/smpp/pdu"
	"github.com/sagostin/smpp-engine/smpp/session"
)

// Config bundles everything needed to dial and bind one ESME session.
type Config struct {
	Addr          string
	TLS           *tls.Config // nil for a plaintext connection
	DialTimeout   time.Duration
	BindType      pdu.BindType
	SystemID      string
	Password      string
	SystemType    string
	SessionConfig session.Config // Direction is forced to DirectionOutbound
}

// Client is a dialed, bound ESME session plus the background goroutine
// running its read loop.
type Client struct {
	Session *session.Session
	done    chan error
}

// Dial connects to cfg.Addr, performs the bind named by cfg.BindType, and
// starts the session's read loop in the background. The returned Client
// is ready for SendRequest/Bind-derived helpers immediately.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}

	var conn net.Conn
	var err error
	if cfg.TLS != nil {
		conn, err = tls.DialWithDialer(dialer, "tcp", cfg.Addr, cfg.TLS)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", cfg.Addr)
	}
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", cfg.Addr, err)
	}

	sessCfg := cfg.SessionConfig
	sessCfg.Direction = session.DirectionOutbound
	sess := session.New(conn, sessCfg)

	done := make(chan error, 1)
	go func() { done <- sess.Serve(context.Background()) }()

	if err := sess.Bind(ctx, cfg.BindType, cfg.SystemID, cfg.Password, cfg.SystemType); err != nil {
		sess.Close()
		return nil, fmt.Errorf("client: bind %s: %w", cfg.SystemID, err)
	}

	return &Client{Session: sess, done: done}, nil
}

// Wait blocks until the session's read loop returns, which happens once
// the connection fails or the session is closed.
func (c *Client) Wait() error { return <-c.done }

// Close unbinds (best-effort) and closes the underlying connection.
func (c *Client) Close(ctx context.Context) error {
	_ = c.Session.Unbind(ctx)
	return c.Session.Close()
}
