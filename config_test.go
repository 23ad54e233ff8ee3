package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	if c.Server.ListenAddress == "" {
		t.Fatal("no default listen address")
	}
	if c.Sum.ChunkSize != 1*M {
		t.Fatalf("invalid default chunk size: %s", c.Sum.ChunkSize.String())
	}
}

func TestConfigReadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "damga-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	content := `
debug = true

[server]
listen_address = "127.0.0.1:9999"
shutdown_timeout = "30s"

[sum]
chunk_size = "4M"
show_progress = false
`
	path := filepath.Join(dir, "damga.toml")
	err = ioutil.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	err = c.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Debug {
		t.Error("debug not set")
	}
	if c.Server.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("listen address: %s", c.Server.ListenAddress)
	}
	if time.Duration(c.Server.ShutdownTimeout) != 30*time.Second {
		t.Errorf("shutdown timeout: %s", c.Server.ShutdownTimeout)
	}
	if c.Sum.ChunkSize != 4*M {
		t.Errorf("chunk size: %s", c.Sum.ChunkSize.String())
	}
	if c.Sum.ShowProgress {
		t.Error("show progress not overridden")
	}
	// Values absent from the file keep their defaults.
	if c.Server.DataDir != defaultConfig.Server.DataDir {
		t.Errorf("datadir: %s", c.Server.DataDir)
	}
}
