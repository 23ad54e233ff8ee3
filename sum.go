package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
)

// runSum prints the SHA-1 digest of each argument in "digest  name"
// form. Arguments are file paths, "-" for stdin, or http(s) URLs.
func runSum(cfg *Config, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		digest, err := sumOne(cfg, arg)
		if err != nil {
			return fmt.Errorf("%s: %s", arg, err)
		}
		fmt.Printf("%s  %s\n", hex.EncodeToString(digest), arg)
	}
	return nil
}

func sumOne(cfg *Config, arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return hashReader(cfg, NewReadNoSeeker(os.Stdin), -1)
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return sumURL(cfg, arg)
	default:
		return sumFile(cfg, arg)
	}
}

func sumFile(cfg *Config, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}
	return hashReader(cfg, f, fi.Size())
}

// sumURL fetches the URL and hashes the response body. Connection
// errors and 5xx responses are retried with exponential backoff; 4xx
// responses are permanent failures.
func sumURL(cfg *Config, url string) ([]byte, error) {
	client := http.Client{Timeout: time.Duration(cfg.Sum.FetchTimeout)}
	var digest []byte
	op := func() error {
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close() // nolint: errcheck
		err = checkResponseError(resp)
		if err != nil {
			if _, ok := err.(*ClientError); ok {
				return backoff.Permanent(err)
			}
			return err
		}
		digest, err = hashReader(cfg, NewReadNoSeeker(resp.Body), resp.ContentLength)
		return err
	}
	err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.Sum.FetchRetries))
	return digest, err
}

func hashReader(cfg *Config, rs io.ReadSeeker, size int64) ([]byte, error) {
	sf := NewSha1File(rs)
	var src io.Reader = sf
	if cfg.Sum.ShowProgress {
		p := newReadProgress(sf, size)
		defer p.Close()
		src = p
	}
	buf := make([]byte, int(cfg.Sum.ChunkSize))
	for {
		_, err := src.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return sf.Sum(nil), nil
}
