package main

import (
	stdsha1 "crypto/sha1"
	"encoding/hex"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/cenkalti/log"
)

const testPath = "/dir/file.txt"

var (
	tempdir string
	dr      *DigestReceiver
)

func setup(t *testing.T) {
	var err error
	tempdir, err = ioutil.TempDir("", "damga-receiver-test-")
	if err != nil {
		t.Fatal(err)
	}
	dr = newDigestReceiver(tempdir, log.DefaultLogger)
}

func tearDown() {
	os.RemoveAll(tempdir)
}

func TestDigestReceiver(t *testing.T) {
	setup(t)
	defer tearDown()

	testOffset(t, 0)
	testCreate(t)
	testOffset(t, 0)
	testSend(t, 0, -1, "foo", "")
	testOffset(t, 3)
	testSend(t, 3, -1, "bar", "")
	testOffset(t, 6)
	testFinalize(t, "foobar")
	testOffset(t, 0)
}

func TestDigestReceiverNoCreate(t *testing.T) {
	setup(t)
	defer tearDown()

	testSend(t, 0, -1, "baz", "")
	testOffset(t, 3)
	testFinalize(t, "baz")
	testOffset(t, 0)
}

// When the total length is announced, the last chunk finalizes the
// session without a separate DELETE.
func TestDigestReceiverKnownLength(t *testing.T) {
	setup(t)
	defer tearDown()

	testCreate(t)
	testSend(t, 0, 6, "foo", "")
	testOffset(t, 3)
	testSend(t, 3, 6, "bar", "foobar")
	testOffset(t, 0)
}

func TestDigestReceiverZeroByte(t *testing.T) {
	setup(t)
	defer tearDown()

	testCreate(t)
	testSend(t, 0, -1, "", "")
	testOffset(t, 0)
	testFinalize(t, "")
}

func TestDigestReceiverOffsetMismatch(t *testing.T) {
	setup(t)
	defer tearDown()

	testSend(t, 0, -1, "foo", "")

	req := httptest.NewRequest(http.MethodPatch, testPath, strings.NewReader("bar"))
	req.Header.Set("damga-offset", "7")
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: %d", rec.Code)
	}
	if got := rec.Header().Get("damga-offset"); got != "3" {
		t.Fatalf("required offset: %s", got)
	}

	// The session must be unaffected.
	testOffset(t, 3)
	testFinalize(t, "foo")
}

func TestDigestReceiverDeleteMissing(t *testing.T) {
	setup(t)
	defer tearDown()

	req := httptest.NewRequest(http.MethodDelete, testPath, nil)
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestDigestReceiverPathEscape(t *testing.T) {
	setup(t)
	defer tearDown()

	req := httptest.NewRequest(http.MethodPost, "http://example.com/", nil)
	req.URL.Path = "/../escape"
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

func testCreate(t *testing.T) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testPath, nil)
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cannot create session, status: %d", rec.Code)
	}
}

func testOffset(t *testing.T, expected int64) {
	t.Helper()
	req := httptest.NewRequest(http.MethodHead, testPath, nil)
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cannot get offset, status: %d", rec.Code)
	}
	offset, err := strconv.ParseInt(rec.Header().Get("damga-offset"), 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	if offset != expected {
		t.Fatalf("invalid offset: %d, expected: %d", offset, expected)
	}
}

func testSend(t *testing.T, offset, length int64, data, complete string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, testPath, strings.NewReader(data))
	req.Header.Set("damga-offset", strconv.FormatInt(offset, 10))
	if length >= 0 {
		req.Header.Set("damga-length", strconv.FormatInt(length, 10))
	}
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cannot send chunk, status: %d, body: %s", rec.Code, rec.Body.String())
	}
	newOffset := rec.Header().Get("damga-offset")
	if want := strconv.FormatInt(offset+int64(len(data)), 10); newOffset != want {
		t.Fatalf("invalid new offset: %s, expected: %s", newOffset, want)
	}
	if complete != "" || (length >= 0 && offset+int64(len(data)) == length) {
		checkDigestHeader(t, rec, complete)
	}
}

func testFinalize(t *testing.T, complete string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, testPath, nil)
	rec := httptest.NewRecorder()
	dr.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cannot finalize session, status: %d", rec.Code)
	}
	checkDigestHeader(t, rec, complete)
}

func checkDigestHeader(t *testing.T, rec *httptest.ResponseRecorder, complete string) {
	t.Helper()
	sum := stdsha1.Sum([]byte(complete))
	want := hex.EncodeToString(sum[:])
	if got := rec.Header().Get("damga-sha1"); got != want {
		t.Fatalf("invalid digest: %s, expected: %s", got, want)
	}
}
