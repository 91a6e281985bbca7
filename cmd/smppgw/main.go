// Command smppgw runs a minimal SMSC-side listener for manual testing of
// the session engine. It accepts binds, echoes submit_sm back with a
// generated message_id, and exposes Prometheus metrics.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sagostin/smpp-engine/smpp/server"
	"github.com/sagostin/smpp-engine/smpp/session"
	"github.com/sagostin/smpp-engine/smpp/window"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("smppgw: no .env file found, using existing environment variables")
	}

	logger := logrus.NewEntry(logrus.StandardLogger())

	addr := getenv("SMPPGW_LISTEN_ADDR", ":2775")
	metricsAddr := getenv("SMPPGW_METRICS_ADDR", ":9153")
	windowSize := getenvInt("SMPPGW_WINDOW_SIZE", window.DefaultSize)
	requestTimeout := getenvDuration("SMPPGW_REQUEST_TIMEOUT", 30*time.Second)
	enquireLinkInterval := getenvDuration("SMPPGW_ENQUIRE_LINK_INTERVAL", 60*time.Second)
	idleTimeout := getenvDuration("SMPPGW_IDLE_TIMEOUT", 5*time.Minute)

	registry := session.NewRegistry()
	prometheus.MustRegister(registry)

	srv, err := server.New(server.Config{
		Addr:    addr,
		Logger:  logger,
		Metrics: registry,
		SessionConfig: session.Config{
			Handler:             &echoHandler{logger: logger},
			WindowSize:          windowSize,
			RequestTimeout:      requestTimeout,
			EnquireLinkInterval: enquireLinkInterval,
			IdleTimeout:         idleTimeout,
			Logger:              logger,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("smppgw: failed to start listener")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.WithField("addr", metricsAddr).Info("smppgw: serving prometheus metrics")
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logger.WithError(err).Error("smppgw: metrics server stopped")
		}
	}()

	go func() {
		logger.WithField("addr", srv.Addr().String()).Info("smppgw: accepting SMPP connections")
		if err := srv.Serve(ctx); err != nil {
			logger.WithError(err).Error("smppgw: listener stopped")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("smppgw: shutting down")
	cancel()
	srv.Close()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
