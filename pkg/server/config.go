package server

import (
	"log/slog"
	"time"

	"github.com/arkenidar/dhtml/pkg/demo"
)

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Address is the address to listen on (e.g. "localhost:3000").
	// Default: ":3000".
	Address string

	// Demos sizes the demo instance built for each session.
	// Default: demo.DefaultConfig().
	Demos demo.Config

	// AllowedOrigins restricts WebSocket origins. Empty allows only
	// same-host origins.
	AllowedOrigins []string

	// ReadTimeout is the maximum time to wait for a message from the
	// client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Default: 4KB; the ops are tiny.
	MaxMessageSize int64

	// SendBuffer is the outbound message channel size.
	// Default: 64.
	SendBuffer int

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Middleware wraps event handling, outermost first.
	Middleware []Middleware

	// OnSessionStart and OnSessionEnd are called when a session opens
	// and closes. Optional; used for session gauges.
	OnSessionStart func()
	OnSessionEnd   func()

	// OnSinkWrite is called for every sink write pushed to a client.
	// Optional; used for counters.
	OnSinkWrite func(demoName string)

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		Demos:             demo.DefaultConfig(),
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    4 * 1024,
		SendBuffer:        64,
		ShutdownTimeout:   10 * time.Second,
	}
}

// withDefaults fills in defaults for any unset fields.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	def := DefaultConfig()
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.Demos.CheckboxCount == 0 && c.Demos.SynchroWidth == 0 && c.Demos.MultiplierFields == nil {
		c.Demos = def.Demos
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = def.HeartbeatInterval
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.SendBuffer == 0 {
		c.SendBuffer = def.SendBuffer
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
