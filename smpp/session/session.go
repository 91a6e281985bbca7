// Package session implements the SMPP session dispatcher: the glue
// between frame reassembly, the PDU codec, the state machine and the
// window multiplexer. A Session owns one net.Conn and
// runs its read loop on the caller's goroutine while handler callbacks
// run on a separate bounded pool, so a slow RequestHandler never stalls
// the wire.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sagostin/smpp-engine/smpp/frame"
	"github.com/sagostin/smpp-engine/smpp/pdu"
	"github.com/sagostin/smpp-engine/smpp/state"
	"github.com/sagostin/smpp-engine/smpp/window"
)

// Direction distinguishes the ESME-client side of a connection from the
// SMSC-server side; only the server side ever receives and authenticates
// bind requests.
type Direction int

const (
	DirectionOutbound Direction = iota // ESME / client
	DirectionInbound                   // SMSC / server
)

// Config controls one Session's behavior. Zero values are replaced by
// sane defaults in New.
type Config struct {
	Direction           Direction
	Handler             RequestHandler
	WindowSize          int
	RequestTimeout      time.Duration
	MaxPDUSize          uint32
	EnquireLinkInterval time.Duration // 0 disables the keep-alive loop
	EnquireLinkTimeout  time.Duration
	IdleTimeout         time.Duration // 0 disables the idle monitor
	HandlerPoolSize     int
	Logger              *logrus.Entry
}

func (c Config) withDefaults() Config {
	if c.WindowSize <= 0 {
		c.WindowSize = window.DefaultSize
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = window.DefaultRequestTimeout
	}
	if c.MaxPDUSize == 0 {
		c.MaxPDUSize = frame.DefaultMaxPDUSize
	}
	if c.HandlerPoolSize <= 0 {
		c.HandlerPoolSize = 32
	}
	if c.EnquireLinkTimeout <= 0 {
		c.EnquireLinkTimeout = 5 * time.Second
	}
	if c.Handler == nil {
		c.Handler = BaseHandler{}
	}
	if c.Logger == nil {
		c.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return c
}

// Counters is a point-in-time snapshot of a Session's traffic counters.
type Counters struct {
	Sent          int64
	Received      int64
	HandlerErrors int64
	TimedOut      int64
}

// Session is one bound or binding SMPP connection, either ESME or SMSC
// side. All exported methods are safe for concurrent use.
type Session struct {
	id     string
	conn   net.Conn
	reader *frame.Reader
	writer *frame.Writer
	state  *state.Machine
	window *window.Window
	cfg    Config
	logger *logrus.Entry

	peerSystemID atomic.Value // string
	bindTypeVal  atomic.Int32

	sent, received, handlerErrors, timedOut atomic.Int64

	sem chan struct{}

	lastActivity atomic.Value // time.Time

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
	cancel    context.CancelFunc
}

// New wraps conn as a Session. Callers must invoke Serve to start the
// read loop and ancillary goroutines.
func New(conn net.Conn, cfg Config) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		id:     uuid.NewString(),
		conn:   conn,
		reader: frame.NewReaderSize(conn, cfg.MaxPDUSize),
		writer: frame.NewWriter(conn),
		state:  state.New(),
		window: window.New(cfg.WindowSize, cfg.RequestTimeout),
		cfg:    cfg,
		sem:    make(chan struct{}, cfg.HandlerPoolSize),
		closed: make(chan struct{}),
	}
	s.peerSystemID.Store("")
	s.lastActivity.Store(time.Now())
	s.logger = cfg.Logger.WithField("session_id", s.id)
	return s
}

// ID returns the session's locally generated identifier.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle state.
func (s *Session) State() state.State { return s.state.Current() }

// PeerSystemID returns the negotiated system_id, empty before a
// successful bind.
func (s *Session) PeerSystemID() string {
	v, _ := s.peerSystemID.Load().(string)
	return v
}

func (s *Session) setPeerSystemID(id string) { s.peerSystemID.Store(id) }

// BindType returns the bind flavor negotiated at bind time. Its value is
// meaningful only once State() reports a BOUND_* state.
func (s *Session) BindType() pdu.BindType { return pdu.BindType(s.bindTypeVal.Load()) }

// Counters returns a snapshot of the session's traffic counters.
func (s *Session) Counters() Counters {
	return Counters{
		Sent:          s.sent.Load(),
		Received:      s.received.Load(),
		HandlerErrors: s.handlerErrors.Load(),
		TimedOut:      s.timedOut.Load(),
	}
}

// RemoteAddr exposes the underlying connection's peer address.
func (s *Session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// Done returns a channel closed once the session has been closed.
func (s *Session) Done() <-chan struct{} { return s.closed }

func (s *Session) touch() { s.lastActivity.Store(time.Now()) }

func (s *Session) idleSince() time.Duration {
	t, _ := s.lastActivity.Load().(time.Time)
	return time.Since(t)
}

// Serve runs the session's read loop until the connection fails, the
// peer unbinds and the session closes, or ctx is cancelled. It always
// closes the session before returning.
func (s *Session) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	if err := s.state.OnConnect(); err != nil {
		return err
	}
	s.touch()

	go s.window.RunExpiryLoop(ctx)
	if s.cfg.EnquireLinkInterval > 0 {
		go s.keepAliveLoop(ctx)
	}
	if s.cfg.IdleTimeout > 0 {
		go s.idleMonitor(ctx)
	}

	err := s.readLoop(ctx)
	s.Close()
	return err
}

func (s *Session) readLoop(ctx context.Context) error {
	for {
		raw, err := s.reader.ReadFrame()
		if err != nil {
			return err
		}
		s.touch()
		s.dispatchFrame(ctx, raw)
	}
}

// dispatchFrame decodes one frame and routes it, replying with
// generic_nack when decoding fails; malformed PDUs are NACKed, never
// silently dropped.
func (s *Session) dispatchFrame(ctx context.Context, raw []byte) {
	p, err := pdu.Unmarshal(raw)
	if err != nil {
		status := pdu.StatusInvMsgLen
		if errors.Is(err, pdu.ErrUnknownCommandID) {
			status = pdu.StatusInvCmdID
		}
		seq := uint32(0)
		if hdr, peekErr := pdu.PeekHeader(raw); peekErr == nil {
			seq = hdr.Sequence
		}
		s.logger.WithError(err).Warn("session: dropping malformed pdu")
		s.writePDU(pdu.NewGenericNack(seq, status))
		return
	}
	s.received.Add(1)
	s.dispatch(ctx, p)
}

func (s *Session) dispatch(ctx context.Context, p pdu.PDU) {
	id := p.CommandID()
	switch {
	case id == pdu.GenericNackID:
		gn := p.(*pdu.GenericNack)
		s.window.Fail(gn.Head().Sequence, NewStatusError(gn.Head().Status, "peer generic_nack", nil))

	case id == pdu.UnbindRespID:
		// unbind_resp ends the session for the initiator too: complete
		// the pending unbind first so its Wait observes the response,
		// then tear the transport down.
		if !s.window.Complete(p.Head().Sequence, p) {
			s.logger.WithField("sequence", p.Head().Sequence).Debug("session: unsolicited unbind_resp")
		}
		s.state.OnUnbind()
		s.Close()

	case id.IsResponse():
		if !s.window.Complete(p.Head().Sequence, p) {
			s.logger.WithField("sequence", p.Head().Sequence).Debug("session: unsolicited response, dropping")
		}

	case id == pdu.EnquireLinkID:
		s.writePDU(p.(*pdu.EnquireLink).Resp())

	case id == pdu.UnbindID:
		s.handleUnbindRequest(ctx, p.(*pdu.Unbind))

	case id == pdu.BindTransmitterID, id == pdu.BindReceiverID, id == pdu.BindTransceiverID:
		if s.cfg.Direction != DirectionInbound {
			s.writePDU(pdu.NewGenericNack(p.Head().Sequence, pdu.StatusInvBindStatus))
			return
		}
		s.submitHandlerTask(ctx, func() { s.handleBindRequest(ctx, p) })

	case id == pdu.AlertNotificationID:
		an := p.(*pdu.AlertNotification)
		s.submitHandlerTask(ctx, func() { s.cfg.Handler.HandleAlertNotification(ctx, s, an) })

	case id == pdu.SubmitSmID, id == pdu.DeliverSmID, id == pdu.DataSmID,
		id == pdu.QuerySmID, id == pdu.CancelSmID, id == pdu.ReplaceSmID, id == pdu.SubmitMultiID:
		s.submitHandlerTask(ctx, func() { s.handleUserRequest(ctx, p) })

	default:
		s.logger.WithField("command_id", id.String()).Warn("session: unhandled pdu")
	}
}

func bindCredentials(p pdu.PDU) (systemID, password, systemType string) {
	switch v := p.(type) {
	case *pdu.BindTransmitter:
		return v.SystemID, v.Password, v.SystemType
	case *pdu.BindReceiver:
		return v.SystemID, v.Password, v.SystemType
	case *pdu.BindTransceiver:
		return v.SystemID, v.Password, v.SystemType
	}
	return "", "", ""
}

func (s *Session) handleBindRequest(ctx context.Context, p pdu.PDU) {
	bindType, _ := pdu.BindTypeOf(p)
	systemID, password, systemType := bindCredentials(p)

	respSystemID, status, err := s.cfg.Handler.HandleBind(ctx, s, systemID, password, systemType, bindType)
	if err != nil {
		status = statusOf(err)
		s.handlerErrors.Add(1)
	}

	resp := p.(pdu.Responsable).Resp()
	resp.Head().Status = status
	if status.IsSuccess() {
		if err := s.state.OnBind(bindType); err != nil {
			resp.Head().Status = pdu.StatusInvBindStatus
		} else {
			s.bindTypeVal.Store(int32(bindType))
			s.setPeerSystemID(respSystemID)
			if br, ok := resp.(pdu.BindResponse); ok {
				br.SetSystemID(respSystemID)
			}
		}
	}
	s.writePDU(resp)
}

func (s *Session) handleUnbindRequest(ctx context.Context, p *pdu.Unbind) {
	s.writePDU(p.Resp())
	s.state.OnUnbind()
	s.submitHandlerTask(ctx, func() {
		s.cfg.Handler.HandleUnbind(ctx, s)
		s.Close()
	})
}

// capableOf reports whether the session's current state permits request
// p to flow in either direction, per the symmetric rule that a BOUND_TX
// session carries submit-class traffic and a BOUND_RX session carries
// deliver-class traffic regardless of which side originates it.
func (s *Session) capableOf(p pdu.PDU) bool {
	cur := s.state.Current()
	switch p.(type) {
	case *pdu.SubmitSM, *pdu.SubmitMulti, *pdu.QuerySM, *pdu.CancelSM, *pdu.ReplaceSM:
		return cur.CanTransmit()
	case *pdu.DeliverSM:
		return cur.CanReceive()
	case *pdu.DataSM:
		return cur.CanTransmit() || cur.CanReceive()
	default:
		return true
	}
}

func (s *Session) handleUserRequest(ctx context.Context, p pdu.PDU) {
	if !s.capableOf(p) {
		resp := p.(pdu.Responsable).Resp()
		resp.Head().Status = pdu.StatusInvBindStatus
		s.writePDU(resp)
		return
	}

	var resp pdu.PDU
	var err error
	switch v := p.(type) {
	case *pdu.SubmitSM:
		resp, err = s.cfg.Handler.HandleSubmitSM(ctx, s, v)
	case *pdu.DeliverSM:
		resp, err = s.cfg.Handler.HandleDeliverSM(ctx, s, v)
	case *pdu.DataSM:
		resp, err = s.cfg.Handler.HandleDataSM(ctx, s, v)
	case *pdu.QuerySM:
		resp, err = s.cfg.Handler.HandleQuerySM(ctx, s, v)
	case *pdu.CancelSM:
		resp, err = s.cfg.Handler.HandleCancelSM(ctx, s, v)
	case *pdu.ReplaceSM:
		resp, err = s.cfg.Handler.HandleReplaceSM(ctx, s, v)
	case *pdu.SubmitMulti:
		resp, err = s.cfg.Handler.HandleSubmitMulti(ctx, s, v)
	}

	if err != nil {
		s.handlerErrors.Add(1)
		resp = p.(pdu.Responsable).Resp()
		resp.Head().Status = statusOf(err)
	}
	if resp != nil {
		s.writePDU(resp)
	}
}

// submitHandlerTask runs fn on the session's bounded handler pool,
// recovering from any panic so one bad handler never takes down the read
// loop.
func (s *Session) submitHandlerTask(ctx context.Context, fn func()) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	go func() {
		defer func() { <-s.sem }()
		defer func() {
			if r := recover(); r != nil {
				s.handlerErrors.Add(1)
				s.logger.WithField("panic", r).Error("session: handler panicked")
			}
		}()
		fn()
	}()
}

func (s *Session) writePDU(p pdu.PDU) {
	if _, err := s.writer.WritePDU(p); err != nil {
		s.logger.WithError(err).Warn("session: write failed")
		return
	}
	s.sent.Add(1)
}

// SendRequest offers req into the window, assigns it a sequence number,
// and writes it to the wire, returning a Future the caller can Wait on
// for the correlated response.
func (s *Session) SendRequest(ctx context.Context, req pdu.PDU) (*window.Future, error) {
	if !s.capableOf(req) {
		return nil, NewStatusError(pdu.StatusInvBindStatus, "not bound for this operation", ErrNotBound)
	}
	f, err := s.window.Offer(ctx, req, s.cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if _, err := s.writer.WritePDU(req); err != nil {
		s.window.Fail(f.Sequence, err)
		return nil, err
	}
	s.sent.Add(1)
	return f, nil
}

// Bind sends a bind request (ESME side) and blocks for the response,
// transitioning the session's state machine on success.
func (s *Session) Bind(ctx context.Context, bindType pdu.BindType, systemID, password, systemType string) error {
	var req pdu.PDU
	switch bindType {
	case pdu.BindTypeTransmitter:
		req = &pdu.BindTransmitter{}
	case pdu.BindTypeReceiver:
		req = &pdu.BindReceiver{}
	case pdu.BindTypeTransceiver:
		req = &pdu.BindTransceiver{}
	default:
		return fmt.Errorf("session: unknown bind type %v", bindType)
	}
	switch v := req.(type) {
	case *pdu.BindTransmitter:
		v.SystemID, v.Password, v.SystemType = systemID, password, systemType
	case *pdu.BindReceiver:
		v.SystemID, v.Password, v.SystemType = systemID, password, systemType
	case *pdu.BindTransceiver:
		v.SystemID, v.Password, v.SystemType = systemID, password, systemType
	}

	f, err := s.window.Offer(ctx, req, s.cfg.RequestTimeout)
	if err != nil {
		return err
	}
	if _, err := s.writer.WritePDU(req); err != nil {
		s.window.Fail(f.Sequence, err)
		return err
	}
	s.sent.Add(1)

	resp, err := f.Wait(ctx)
	if err != nil {
		if errors.Is(err, window.ErrRequestTimedOut) {
			s.timedOut.Add(1)
		}
		return err
	}
	if !resp.Head().Status.IsSuccess() {
		return NewStatusError(resp.Head().Status, "bind rejected", nil)
	}
	if err := s.state.OnBind(bindType); err != nil {
		return err
	}
	s.bindTypeVal.Store(int32(bindType))

	switch v := resp.(type) {
	case *pdu.BindTransmitterResp:
		s.setPeerSystemID(v.SystemID)
	case *pdu.BindReceiverResp:
		s.setPeerSystemID(v.SystemID)
	case *pdu.BindTransceiverResp:
		s.setPeerSystemID(v.SystemID)
	}
	return nil
}

// Unbind sends an unbind request, waits for the response, and closes the
// session regardless of outcome: once an unbind is on the wire there is
// nothing left to say on this connection. The inbound unbind_resp also
// closes via dispatch, so the session ends even if ctx expires first.
func (s *Session) Unbind(ctx context.Context) error {
	req := &pdu.Unbind{}
	f, err := s.window.Offer(ctx, req, s.cfg.RequestTimeout)
	if err != nil {
		return err
	}
	if _, err := s.writer.WritePDU(req); err != nil {
		s.window.Fail(f.Sequence, err)
		s.Close()
		return err
	}
	s.sent.Add(1)
	_, err = f.Wait(ctx)
	s.state.OnUnbind()
	s.Close()
	return err
}

// SendEnquireLink sends a keep-alive ping and waits for its response.
func (s *Session) SendEnquireLink(ctx context.Context) error {
	req := &pdu.EnquireLink{}
	f, err := s.window.Offer(ctx, req, s.cfg.RequestTimeout)
	if err != nil {
		return err
	}
	if _, err := s.writer.WritePDU(req); err != nil {
		s.window.Fail(f.Sequence, err)
		return err
	}
	s.sent.Add(1)
	_, err = f.Wait(ctx)
	return err
}

// Close tears the session down exactly once: cancels background
// goroutines, fails every pending request, transitions the state
// machine to CLOSED, and closes the underlying connection.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.cancel != nil {
			s.cancel()
		}
		s.window.Close(ErrClosed)
		s.state.OnClose()
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
