// Package server implements the SMSC side of a connection: a TCP (or
// TLS) listener that spawns one session per accepted connection. PROXY
// protocol support wraps the listener exactly once before the accept
// loop starts.
package server

import (
	"context"
	"crypto/tls"
	"net"
	"sync"

	"github.com/pires/go-proxyproto"
	"github.com/sirupsen/logrus"

	"github.com/sagostin/smpp-engine/smpp/session"
)

// Config controls the listener and the sessions it spawns.
type Config struct {
	Addr          string
	TLS           *tls.Config    // nil for a plaintext listener
	ProxyProtocol bool           // accept HAProxy PROXY protocol v1/v2 headers
	SessionConfig session.Config // Direction is forced to DirectionInbound
	Logger        *logrus.Entry
	Metrics       *session.Registry // optional; tracked sessions are scraped via Describe/Collect
}

// Server accepts SMSC connections and runs one Session per connection
// until Close is called.
type Server struct {
	cfg      Config
	listener net.Listener
	logger   *logrus.Entry

	mu       sync.Mutex
	sessions map[string]*session.Session
	closed   bool
}

// New builds a Server bound to cfg.Addr. Callers drive accepting with
// Serve.
func New(cfg Config) (*Server, error) {
	var l net.Listener
	var err error
	if cfg.TLS != nil {
		l, err = tls.Listen("tcp", cfg.Addr, cfg.TLS)
	} else {
		l, err = net.Listen("tcp", cfg.Addr)
	}
	if err != nil {
		return nil, err
	}
	if cfg.ProxyProtocol {
		l = &proxyproto.Listener{Listener: l}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		cfg:      cfg,
		listener: l,
		logger:   logger,
		sessions: make(map[string]*session.Session),
	}, nil
}

// Addr returns the listener's bound address.
func (srv *Server) Addr() net.Addr { return srv.listener.Addr() }

// Serve accepts connections until the listener is closed, running each
// session's Serve loop on its own goroutine. It returns nil once Close has
// been called, and otherwise the Accept error that ended the loop.
func (srv *Server) Serve(ctx context.Context) error {
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			srv.mu.Lock()
			closed := srv.closed
			srv.mu.Unlock()
			if closed {
				return nil
			}
			return err
		}
		go srv.handle(ctx, conn)
	}
}

func (srv *Server) handle(ctx context.Context, conn net.Conn) {
	sessCfg := srv.cfg.SessionConfig
	sessCfg.Direction = session.DirectionInbound
	sess := session.New(conn, sessCfg)

	srv.mu.Lock()
	srv.sessions[sess.ID()] = sess
	srv.mu.Unlock()
	if srv.cfg.Metrics != nil {
		srv.cfg.Metrics.Track(sess)
	}

	srv.logger.WithFields(logrus.Fields{
		"session_id": sess.ID(),
		"remote":     conn.RemoteAddr().String(),
	}).Info("server: accepted connection")

	err := sess.Serve(ctx)

	srv.mu.Lock()
	delete(srv.sessions, sess.ID())
	srv.mu.Unlock()
	if srv.cfg.Metrics != nil {
		srv.cfg.Metrics.Untrack(sess.ID())
	}

	logf := srv.logger.WithField("session_id", sess.ID())
	if err != nil {
		logf.WithError(err).Info("server: session ended")
	} else {
		logf.Info("server: session ended")
	}
}

// Close stops accepting new connections and closes every live session.
func (srv *Server) Close() error {
	srv.mu.Lock()
	srv.closed = true
	sessions := make([]*session.Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.Unlock()

	err := srv.listener.Close()
	for _, s := range sessions {
		s.Close()
	}
	return err
}
