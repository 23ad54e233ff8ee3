package main

import (
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds configuration values for the digest receiver server.
type ServerConfig struct {
	ListenAddress   string   `toml:"listen_address"`
	DataDir         string   `toml:"datadir"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// SumConfig holds configuration values for the sum command.
type SumConfig struct {
	ChunkSize    ChunkSize `toml:"chunk_size"`
	ShowProgress bool      `toml:"show_progress"`
	FetchTimeout Duration  `toml:"fetch_timeout"`
	FetchRetries uint64    `toml:"fetch_retries"`
}

// Config holds configuration values for all damga components.
type Config struct {
	Debug     bool   `toml:"debug"`
	SentryDSN string `toml:"sentry_dsn"`
	Server    ServerConfig
	Sum       SumConfig
}

var defaultConfig = Config{
	Server: ServerConfig{
		ListenAddress:   "0.0.0.0:8400",
		DataDir:         "/srv/damga",
		ShutdownTimeout: Duration(10 * time.Second),
	},
	Sum: SumConfig{
		ChunkSize:    1 * M,
		ShowProgress: true,
		FetchTimeout: Duration(30 * time.Second),
		FetchRetries: 4,
	},
}

func NewConfig() *Config {
	c := new(Config)
	*c = defaultConfig
	return c
}

// ReadFile parses a TOML file into c.
func (c *Config) ReadFile(name string) error {
	_, err := toml.DecodeFile(name, c)
	return err
}
