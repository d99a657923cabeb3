// Package config is a plain struct with JSON tags and a Default
// constructor, with environment variables layered on top.
package config

import (
	"os"
	"time"
)

// Config holds the ambient knobs for wiring a Manager and its remote
// transport. It is not consulted by the bollywood/wire/remote packages
// themselves - it exists purely for the demo cmd/ binaries.
type Config struct {
	// LocalEndpoint is the address this process's Receiver binds and
	// advertises as sender_endpoint.
	LocalEndpoint string `json:"localEndpoint"`
	// ShutdownTimeout is a bound on how long a demo waits for End. None of
	// the cmd/ binaries reads it, and the core Manager.End has no timeout:
	// it joins every worker unconditionally.
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
	// AskTimeout is a default bound for Reference.AskTimeout calls. None of
	// the cmd/ binaries reads it.
	AskTimeout time.Duration `json:"askTimeout"`
}

// Default returns the configuration demo binaries start from.
func Default() Config {
	return Config{
		LocalEndpoint:   "tcp://localhost:5000",
		ShutdownTimeout: 5 * time.Second,
		AskTimeout:      2 * time.Second,
	}
}

// FromEnv overlays environment variables on top of Default.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("ACTORMESH_LOCAL_ENDPOINT"); v != "" {
		cfg.LocalEndpoint = v
	}
	return cfg
}
