package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arkenidar/dhtml/pkg/demo"
)

// ServerMsg is one message pushed to the client: a sink write to
// render, or an error notice.
type ServerMsg struct {
	Type    string `json:"type"` // "sink" or "error"
	Target  string `json:"target,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// Session is one WebSocket connection and its server-side demo
// instance. Cell mutations arrive on the read loop, are applied
// through the middleware chain, and every sink write the bindings
// produce is queued for the write loop.
type Session struct {
	// ID is the unique session identifier.
	ID string

	demoName string
	conn     *websocket.Conn
	cfg      *Config
	logger   *slog.Logger
	demo     demo.Demo
	handler  Handler

	send chan ServerMsg
	done chan struct{}

	closeOnce sync.Once
}

// generateSessionID generates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// newSession builds the demo instance for the connection. The demo's
// initial sink writes are queued before newSession returns, so the
// client's first frames paint the starting state.
func newSession(conn *websocket.Conn, demoName string, cfg *Config) (*Session, error) {
	s := &Session{
		ID:       generateSessionID(),
		demoName: demoName,
		conn:     conn,
		cfg:      cfg,
		send:     make(chan ServerMsg, cfg.SendBuffer),
		done:     make(chan struct{}),
	}
	s.logger = cfg.Logger.With("session", s.ID, "demo", demoName)
	s.handler = chain(s.apply, cfg.Middleware)

	d, err := demo.New(demoName, cfg.Demos, s.emit)
	if err != nil {
		return nil, err
	}
	s.demo = d
	return s, nil
}

// emit forwards one sink write to the client. A full send buffer drops
// the write rather than blocking the binding that produced it; the
// next write to the same target repaints correctly anyway.
func (s *Session) emit(target, value string) {
	if s.cfg.OnSinkWrite != nil {
		s.cfg.OnSinkWrite(s.demoName)
	}
	select {
	case s.send <- ServerMsg{Type: "sink", Target: target, Value: value}:
	default:
		s.logger.Warn("send buffer full, dropping sink write", "target", target)
	}
}

// apply is the innermost event handler: hand the op to the demo. All
// sink writes happen synchronously inside Apply, so middleware timing
// brackets the full recompute.
func (s *Session) apply(_ context.Context, ev *EventInfo) error {
	return s.demo.Apply(ev.Op)
}

// readLoop reads ops from the connection until it closes.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var op demo.Op
		if err := json.Unmarshal(msg, &op); err != nil {
			s.logger.Warn("bad op", "error", err)
			s.sendError("invalid op")
			continue
		}

		ev := &EventInfo{SessionID: s.ID, Demo: s.demoName, Op: op}
		if err := s.handler(context.Background(), ev); err != nil {
			s.logger.Warn("op rejected", "kind", op.Kind, "index", op.Index, "error", err)
			s.sendError(err.Error())
		}
	}
}

// writeLoop drains the send queue and heartbeats until the session
// closes.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Error("write error", "error", err)
				s.Close()
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Error("ping error", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// sendError queues an error notice for the client.
func (s *Session) sendError(message string) {
	select {
	case s.send <- ServerMsg{Type: "error", Message: message}:
	default:
	}
}

// Close tears down the session: bindings first, then the connection.
// Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.demo.Close()
		s.conn.Close()
		if s.cfg.OnSessionEnd != nil {
			s.cfg.OnSessionEnd()
		}
		s.logger.Info("session closed")
	})
}

// Done reports session termination.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
