// Package config provides the application configuration from
// command-line flags with environment-variable overrides.
package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `env:"SERVER_ADDRESS"`

	// BaseURL is the base address short URLs are built from.
	BaseURL string `env:"BASE_URL"`

	// DatabaseDSN holds the PostgreSQL connection string. When empty
	// the service runs on the in-memory store.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// RedisAddr points at the Redis backend for the resolution cache.
	// When empty the cache is in-process.
	RedisAddr string `env:"REDIS_ADDR"`

	// KeyLength is the length of generated short keys.
	KeyLength int `env:"SHORT_KEY_LENGTH"`

	// CacheTTL bounds how long resolutions may be served from cache.
	CacheTTL time.Duration `env:"CACHE_TTL"`

	// LogLevel sets the zap logging level.
	LogLevel string `env:"LOG_LEVEL"`

	// EnablePprof indicates whether to start the pprof listener.
	EnablePprof bool `env:"ENABLE_PPROF"`

	// EnableHTTPS indicates whether to serve TLS via autocert.
	EnableHTTPS bool `env:"ENABLE_HTTPS"`
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "result base url")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address for the resolution cache")
	flag.IntVar(&options.KeyLength, "k", 8, "short key length")
	flag.DurationVar(&options.CacheTTL, "t", 60*time.Second, "resolution cache ttl")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
}

// Parse reads the command-line flags, then lets environment variables
// override them. It returns the resulting configuration.
func Parse() (*Options, error) {
	flag.Parse()

	if err := env.Parse(options); err != nil {
		return nil, err
	}

	return options, nil
}
