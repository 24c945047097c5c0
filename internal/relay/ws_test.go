package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	messages []string
	closed   bool
	writeErr error
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages = append(f.messages, string(data))
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func newTestSession(t *testing.T) (*WSSession, *[]*fakeConn) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	session, err := NewWSSession(logg)
	require.NoError(t, err)

	conns := &[]*fakeConn{}
	session.dial = func(ctx context.Context, url string, header http.Header) (wsConn, error) {
		conn := &fakeConn{}
		*conns = append(*conns, conn)
		return conn, nil
	}
	return session, conns
}

func TestConnectSendClose(t *testing.T) {
	session, conns := newTestSession(t)
	ctx := context.Background()

	require.Equal(t, StateDisconnected, session.State())

	err := session.Connect(ctx, "ws://example.test/feed", map[string]string{"X-Token": "t"}, "hello")
	require.NoError(t, err)
	require.Equal(t, StateConnected, session.State())
	require.Equal(t, []string{"hello"}, (*conns)[0].messages)

	require.NoError(t, session.Send(ctx, "ping"))
	require.Equal(t, []string{"hello", "ping"}, (*conns)[0].messages)

	require.NoError(t, session.Close(ctx))
	require.Equal(t, StateDisconnected, session.State())
	require.True(t, (*conns)[0].closed)
}

func TestConnectReplacesActiveSession(t *testing.T) {
	session, conns := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, session.Connect(ctx, "ws://example.test/a", nil, ""))
	require.NoError(t, session.Connect(ctx, "ws://example.test/b", nil, ""))

	require.Len(t, *conns, 2)
	require.True(t, (*conns)[0].closed)
	require.False(t, (*conns)[1].closed)
	require.Equal(t, StateConnected, session.State())
}

func TestSendWithoutConnection(t *testing.T) {
	session, _ := newTestSession(t)

	err := session.Send(context.Background(), "ping")
	require.Equal(t, pkgErrors.CodeNetwork, pkgErrors.As(err).Code())
}

func TestCloseWithoutConnection(t *testing.T) {
	session, _ := newTestSession(t)

	err := session.Close(context.Background())
	require.Equal(t, pkgErrors.CodeNetwork, pkgErrors.As(err).Code())
}

func TestFailedWriteDropsSession(t *testing.T) {
	session, conns := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, session.Connect(ctx, "ws://example.test/feed", nil, ""))
	(*conns)[0].writeErr = fmt.Errorf("broken pipe")

	err := session.Send(ctx, "ping")
	require.Equal(t, pkgErrors.CodeNetwork, pkgErrors.As(err).Code())
	require.Equal(t, StateDisconnected, session.State())
	require.True(t, (*conns)[0].closed)
}

func TestConnectRequiresURL(t *testing.T) {
	session, _ := newTestSession(t)

	err := session.Connect(context.Background(), "", nil, "")
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestShutdownIsIdempotent(t *testing.T) {
	session, conns := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, session.Shutdown())

	require.NoError(t, session.Connect(ctx, "ws://example.test/feed", nil, ""))
	require.NoError(t, session.Shutdown())
	require.True(t, (*conns)[0].closed)
	require.Equal(t, StateDisconnected, session.State())
}
