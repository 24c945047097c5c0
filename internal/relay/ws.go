package relay

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

// SessionState is the WebSocket session lifecycle.
type SessionState string

const (
	StateDisconnected SessionState = "DISCONNECTED"
	StateConnected    SessionState = "CONNECTED"
)

// wsConn is the subset of *websocket.Conn the session uses; tests swap in a
// fake.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type dialFunc func(ctx context.Context, url string, header http.Header) (wsConn, error)

// WSSession holds the single relay WebSocket slot. All transitions are
// mutex-guarded; connecting while a session is active closes and replaces the
// previous connection, and the replacement is logged.
type WSSession struct {
	mu    sync.Mutex
	conn  wsConn
	state SessionState
	dial  dialFunc
	logg  *logger.Logger
}

// NewWSSession wires the WebSocket session slot.
func NewWSSession(logg *logger.Logger) (*WSSession, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &WSSession{
		state: StateDisconnected,
		dial:  gorillaDial,
		logg:  logg,
	}, nil
}

func gorillaDial(ctx context.Context, url string, header http.Header) (wsConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Connect dials the target, optionally sends an initial message, and takes
// the session slot. An existing session is closed first.
func (s *WSSession) Connect(ctx context.Context, url string, headers map[string]string, initialMessage string) error {
	if url == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "websocket url is required")
	}

	header := http.Header{}
	for k, v := range headers {
		header.Set(k, v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.logg.Warn(s.logg.WithField(ctx, "ws_url", url), "replacing active websocket session")
		_ = s.conn.Close()
		s.conn = nil
		s.state = StateDisconnected
	}

	conn, err := s.dial(ctx, url, header)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "websocket dial failed")
	}

	if initialMessage != "" {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(initialMessage)); err != nil {
			_ = conn.Close()
			return pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "sending initial message")
		}
	}

	s.conn = conn
	s.state = StateConnected
	s.logg.Info(s.logg.WithField(ctx, "ws_url", url), "websocket session established")
	return nil
}

// Send writes a text message on the active session.
func (s *WSSession) Send(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return pkgErrors.New(pkgErrors.CodeNetwork, "websocket is not connected")
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		// A failed write leaves the peer state unknown; drop the session.
		_ = s.conn.Close()
		s.conn = nil
		s.state = StateDisconnected
		return pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "websocket write failed")
	}
	return nil
}

// Close tears down the active session.
func (s *WSSession) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return pkgErrors.New(pkgErrors.CodeNetwork, "websocket is not connected")
	}

	err := s.conn.Close()
	s.conn = nil
	s.state = StateDisconnected
	s.logg.Info(ctx, "websocket session closed")
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "closing websocket")
	}
	return nil
}

// State reports the current session state.
func (s *WSSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Shutdown closes any active session without treating "not connected" as an
// error. Used on process teardown.
func (s *WSSession) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.state = StateDisconnected
	return err
}
