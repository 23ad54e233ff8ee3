package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cenkalti/log"
	"github.com/getsentry/sentry-go"
)

// DigestReceiver implements http.Handler for computing SHA-1 digests of
// data streamed by clients in resumable chunks. Between chunks only the
// serialized engine state is kept on disk; the content itself is not
// stored.
type DigestReceiver struct {
	dir string
	log log.Logger
}

func newDigestReceiver(dir string, logger log.Logger) *DigestReceiver {
	return &DigestReceiver{
		dir: dir,
		log: logger,
	}
}

func (f *DigestReceiver) internalServerError(message string, err error, r *http.Request, w http.ResponseWriter) {
	sentry.CaptureException(err)
	message = message + ": " + err.Error()
	f.log.Error(message + "; " + r.URL.Path)
	http.Error(w, message, http.StatusInternalServerError)
}

func (f *DigestReceiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, err := f.sessionPath(r.URL.Path)
	if err != nil {
		http.Error(w, "invalid session path", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodPost:
		err := createState(path)
		if err != nil {
			f.internalServerError("cannot create digest session", err, r, w)
			return
		}
	case http.MethodHead:
		si, err := ReadStateInfo(path)
		if err != nil {
			f.internalServerError("cannot get offset", err, r, w)
			return
		}
		w.Header().Set("damga-offset", strconv.FormatInt(si.Offset, 10))
	case http.MethodPatch:
		offset, err := strconv.ParseInt(r.Header.Get("damga-offset"), 10, 64)
		if err != nil {
			http.Error(w, "invalid header: damga-offset", http.StatusBadRequest)
			return
		}
		var length int64 = -1
		lengthHeader := r.Header.Get("damga-length")
		if lengthHeader != "" {
			length, err = strconv.ParseInt(lengthHeader, 10, 64)
			if err != nil {
				http.Error(w, "invalid header: damga-length", http.StatusBadRequest)
				return
			}
		}
		newOffset, digest, err := f.feedChunk(path, offset, length, r.Body)
		if oerr, ok := err.(*OffsetMismatchError); ok {
			// Cannot use http.Error() because we want to set "damga-offset" header.
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("damga-offset", strconv.FormatInt(oerr.Required, 10))
			w.WriteHeader(http.StatusConflict)
			_, _ = fmt.Fprint(w, oerr.Error()) // nolint: gas
			return
		}
		if err != nil {
			f.internalServerError("cannot process chunk", err, r, w)
			return
		}
		if digest != nil {
			w.Header().Set("damga-sha1", hex.EncodeToString(digest))
		}
		w.Header().Set("damga-offset", strconv.FormatInt(newOffset, 10))
	case http.MethodDelete:
		_, err := os.Stat(path + stateFileExt)
		if os.IsNotExist(err) {
			http.Error(w, "digest session does not exist", http.StatusNotFound)
			return
		}
		if err != nil {
			f.internalServerError("cannot stat session state", err, r, w)
			return
		}
		si, err := ReadStateInfo(path)
		if err != nil {
			f.internalServerError("cannot read session state", err, r, w)
			return
		}
		w.Header().Set("damga-sha1", hex.EncodeToString(si.Sha1.Sum(nil)))
		w.Header().Set("damga-offset", strconv.FormatInt(si.Offset, 10))
		err = DeleteStateInfo(path)
		if err != nil {
			f.internalServerError("cannot delete session state", err, r, w)
			return
		}
		metricSessionsFinalized.Inc()
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
}

// sessionPath maps a request path to a location under the data
// directory, refusing paths that escape it.
func (f *DigestReceiver) sessionPath(urlPath string) (string, error) {
	path := filepath.Join(f.dir, filepath.FromSlash(urlPath))
	if path != f.dir && !strings.HasPrefix(path, f.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes data directory: %s", urlPath)
	}
	return path, nil
}

func createState(path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return err
	}
	return SaveStateInfo(path, newStateInfo())
}

func (f *DigestReceiver) feedChunk(path string, offset int64, length int64, r io.Reader) (int64, []byte, error) {
	var si *StateInfo
	var err error
	if offset == 0 {
		// A session can be started without a prior POST.
		err = createState(path)
		if err != nil {
			return 0, nil, err
		}
		si = newStateInfo()
	} else {
		si, err = ReadStateInfo(path)
		if err != nil {
			return 0, nil, err
		}
		if offset != si.Offset {
			return 0, nil, &OffsetMismatchError{offset, si.Offset}
		}
	}
	cr := newReadCounter(r)
	n, _ := io.Copy(si.Sha1, cr)
	metricBytesHashed.Add(float64(cr.Count()))
	si.Offset = offset + n
	if si.Offset == length {
		// If we know the length of the stream, we can finalize the
		// session without the need of a separate DELETE from the client.
		sum := si.Sha1.Sum(nil)
		err = DeleteStateInfo(path)
		if err == nil {
			metricSessionsFinalized.Inc()
		}
		return si.Offset, sum, err
	}
	return si.Offset, nil, SaveStateInfo(path, si)
}

// OffsetMismatchError is returned when the offset specified in request does not match the actual offset of the session.
type OffsetMismatchError struct {
	Given, Required int64
}

func (e *OffsetMismatchError) Error() string {
	return fmt.Sprintf("given offset (%d) does not match required offset (%d)", e.Given, e.Required)
}
