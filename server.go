package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/log"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"damga/sha1"
)

// Server serves the digest receiver over HTTP.
type Server struct {
	config   *Config
	log      log.Logger
	server   http.Server
	shutdown chan struct{}
	Ready    chan struct{}
}

// NewServer returns a new Server instance.
func NewServer(c *Config) (*Server, error) {
	fi, err := os.Stat(c.Server.DataDir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("Path must be a directory: %s", c.Server.DataDir)
	}
	s := &Server{
		config:   c,
		log:      log.NewLogger("server"),
		shutdown: make(chan struct{}),
		Ready:    make(chan struct{}),
	}
	if c.Debug {
		s.log.SetLevel(log.DEBUG)
	}
	if c.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN})
		if err != nil {
			return nil, err
		}
	}
	m := http.NewServeMux()
	m.HandleFunc("/ping", s.ping)
	m.HandleFunc("/sha1", s.oneShotDigest)
	m.Handle("/digests/", http.StripPrefix("/digests", newDigestReceiver(c.Server.DataDir, s.log)))
	m.Handle("/metrics", promhttp.Handler())
	s.server.Handler = countRequests(m)
	return s, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	listener, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		return err
	}
	s.log.Notice("Server is started.")
	close(s.Ready)
	err = s.server.Serve(listener)
	if err == http.ErrServerClosed {
		s.log.Notice("Server is shutting down.")
		return nil
	}
	return err
}

// Shutdown the server gracefully.
func (s *Server) Shutdown() error {
	close(s.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Server.ShutdownTimeout))
	_ = cancel
	err := s.server.Shutdown(ctx)
	if err != nil {
		s.log.Error("Error while shutting down HTTP server")
		return err
	}
	return nil
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong")) // nolint: gas
}

// oneShotDigest hashes the request body and responds with the hex digest.
func (s *Server) oneShotDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	d := sha1.New()
	cr := newReadCounter(r.Body)
	_, err := io.Copy(d, cr)
	metricBytesHashed.Add(float64(cr.Count()))
	if err != nil {
		sentry.CaptureException(err)
		s.log.Error("Cannot read request body: " + err.Error())
		http.Error(w, "cannot read request body", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintln(w, hex.EncodeToString(d.Sum(nil))) // nolint: gas
}

func countRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metricRequests.WithLabelValues(r.Method).Inc()
		h.ServeHTTP(w, r)
	})
}
