package devserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/resources"
)

func startServer(t *testing.T, opts ...Option) (*Server, bus.EventBus, string) {
	t.Helper()
	b := bus.New()
	s := New(b, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, b, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestTokenIsRequired(t *testing.T) {
	_, _, url := startServer(t, WithToken("secret"))

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, _, err = websocket.DefaultDialer.Dial(url+"?token=wrong", nil)
	assert.Error(t, err)

	dial(t, url+"?token=secret")
}

func TestRequestsReachFrameLoop(t *testing.T) {
	s, _, url := startServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Request{Op: OpFileChanged, Path: "./images/brick.png"}))
	assert.Equal(t, "accepted", readMessage(t, conn).Type)

	select {
	case req := <-s.Requests():
		assert.Equal(t, OpFileChanged, req.Op)
		assert.Equal(t, "images/brick.png", req.Path)
		assert.NotEmpty(t, req.ClientID)
	case <-time.After(2 * time.Second):
		t.Fatal("request not delivered")
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{nope")))
	m := readMessage(t, conn)
	assert.Equal(t, "error", m.Type)
	assert.Equal(t, ErrInvalidMessage.Error(), m.Error)

	require.NoError(t, conn.WriteJSON(Request{Op: "explode"}))
	assert.Contains(t, readMessage(t, conn).Error, "unknown op")

	require.NoError(t, conn.WriteJSON(Request{Op: OpReload}))
	assert.Contains(t, readMessage(t, conn).Error, "needs a name")
}

func TestFullQueueIsReported(t *testing.T) {
	_, _, url := startServer(t, WithQueueSize(1))
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Request{Op: OpReload, Name: "texture:a"}))
	assert.Equal(t, "accepted", readMessage(t, conn).Type)
	require.NoError(t, conn.WriteJSON(Request{Op: OpReload, Name: "texture:b"}))
	assert.Equal(t, ErrBusy.Error(), readMessage(t, conn).Error)
}

func TestResourceEventsAreBroadcast(t *testing.T) {
	s, b, url := startServer(t)
	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return s.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, b.Publish(bus.NewEvent("world.tick", "world", nil)))
	require.NoError(t, b.Publish(bus.NewEvent(resources.EventReloaded, "resources",
		resources.ResourceEvent{Name: "texture:brick"})))

	for _, conn := range []*websocket.Conn{first, second} {
		m := readMessage(t, conn)
		assert.Equal(t, resources.EventReloaded, m.Type)
		data, ok := m.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "texture:brick", data["name"])
	}
}

func TestCloseDropsClients(t *testing.T) {
	s, b, url := startServer(t)
	dial(t, url)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.Close()
	assert.Zero(t, s.Clients())
	assert.Zero(t, b.Subscribers(bus.AllEvents))
}
