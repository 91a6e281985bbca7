package session

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry tracks every live Session and exposes their counters and
// window occupancy on demand: Describe/Collect read live state at scrape
// time instead of maintaining push-updated gauges.
type Registry struct {
	desc map[string]*prometheus.Desc

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry builds an empty Registry. Register it with a
// prometheus.Registerer to expose it over promhttp.
func NewRegistry() *Registry {
	return &Registry{
		desc: map[string]*prometheus.Desc{
			"pdus_sent":        prometheus.NewDesc("smpp_session_pdus_sent_total", "PDUs written to the wire", []string{"session_id", "system_id"}, nil),
			"pdus_received":    prometheus.NewDesc("smpp_session_pdus_received_total", "PDUs read from the wire", []string{"session_id", "system_id"}, nil),
			"handler_errors":   prometheus.NewDesc("smpp_session_handler_errors_total", "Handler invocations that returned an error", []string{"session_id", "system_id"}, nil),
			"requests_timed_out": prometheus.NewDesc("smpp_session_requests_timed_out_total", "Bind requests that hit their window timeout (timeouts of other requests are not counted)", []string{"session_id", "system_id"}, nil),
			"window_occupancy": prometheus.NewDesc("smpp_session_window_occupancy", "Outstanding requests awaiting a response", []string{"session_id", "system_id"}, nil),
			"window_capacity":  prometheus.NewDesc("smpp_session_window_capacity", "Configured window size", []string{"session_id", "system_id"}, nil),
			"state":            prometheus.NewDesc("smpp_session_state", "Current session lifecycle state (0=CLOSED..4=BOUND_TRX)", []string{"session_id", "system_id"}, nil),
			"sessions_total":   prometheus.NewDesc("smpp_sessions_tracked", "Number of sessions currently tracked", nil, nil),
		},
		sessions: make(map[string]*Session),
	}
}

// Track registers s so Collect reports on it until Untrack is called.
func (r *Registry) Track(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Untrack stops reporting on the session named id, typically called by
// the server once the session's Serve loop has returned.
func (r *Registry) Untrack(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range r.desc {
		ch <- d
	}
}

// Collect implements prometheus.Collector, reading live counters off
// every tracked session at scrape time.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	ch <- prometheus.MustNewConstMetric(r.desc["sessions_total"], prometheus.GaugeValue, float64(len(sessions)))

	for _, s := range sessions {
		id := s.ID()
		systemID := s.PeerSystemID()
		counters := s.Counters()

		ch <- prometheus.MustNewConstMetric(r.desc["pdus_sent"], prometheus.CounterValue, float64(counters.Sent), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["pdus_received"], prometheus.CounterValue, float64(counters.Received), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["handler_errors"], prometheus.CounterValue, float64(counters.HandlerErrors), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["requests_timed_out"], prometheus.CounterValue, float64(counters.TimedOut), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["window_occupancy"], prometheus.GaugeValue, float64(s.window.Size()), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["window_capacity"], prometheus.GaugeValue, float64(s.window.Size()+s.window.AvailableSlots()), id, systemID)
		ch <- prometheus.MustNewConstMetric(r.desc["state"], prometheus.GaugeValue, float64(s.State()), id, systemID)
	}
}
