package main

import (
	stdsha1 "crypto/sha1"
	"encoding/hex"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	dir, err := ioutil.TempDir("", "damga-server-test-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := NewConfig()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Server.DataDir = dir
	cfg.Server.ShutdownTimeout = Duration(time.Second)

	s, err := NewServer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestServerPing(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if rec.Body.String() != "pong" {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestServerOneShotDigest(t *testing.T) {
	s := setupServer(t)

	content := "hello world"
	req := httptest.NewRequest(http.MethodPost, "/sha1", strings.NewReader(content))
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	sum := stdsha1.Sum([]byte(content))
	want := hex.EncodeToString(sum[:])
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("digest: %s, expected: %s", got, want)
	}
}

func TestServerDigestSession(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/digests/session-1", strings.NewReader("hello world"))
	req.Header.Set("damga-offset", "0")
	req.Header.Set("damga-length", "11")
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	sum := stdsha1.Sum([]byte("hello world"))
	if got := rec.Header().Get("damga-sha1"); got != hex.EncodeToString(sum[:]) {
		t.Fatalf("digest: %s", got)
	}
}

func TestServerRunShutdown(t *testing.T) {
	s := setupServer(t)

	done := make(chan error, 1)
	go func() {
		done <- s.Run()
	}()
	select {
	case <-s.Ready:
	case err := <-done:
		t.Fatal(err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
