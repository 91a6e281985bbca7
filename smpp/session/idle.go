package session

import (
	"context"
	"time"
)

// keepAliveLoop pings the peer with enquire_link on a fixed tick, closing
// the session when a ping goes unanswered within EnquireLinkTimeout.
func (s *Session) keepAliveLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.EnquireLinkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, s.cfg.EnquireLinkTimeout)
			err := s.SendEnquireLink(pingCtx)
			cancel()
			if err != nil {
				s.logger.WithError(err).Warn("session: enquire_link keep-alive failed, closing")
				s.Close()
				return
			}
		}
	}
}

// idleMonitor closes the session once no frame has been read for
// IdleTimeout; outbound writes do not reset the idle clock.
func (s *Session) idleMonitor(ctx context.Context) {
	interval := s.cfg.IdleTimeout / 4
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case <-ticker.C:
			if s.idleSince() > s.cfg.IdleTimeout {
				s.logger.Warn("session: idle timeout, closing")
				s.Close()
				return
			}
		}
	}
}
