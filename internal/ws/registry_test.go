package ws

import (
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	mu       sync.Mutex
	received []string
	err      error
}

func (f *fakeChannel) Send(message string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, message)
	return nil
}

func (f *fakeChannel) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

func TestBroadcastDeliversToLiveChannelsOnly(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	alive1 := &fakeChannel{}
	alive2 := &fakeChannel{}
	dead := &fakeChannel{err: errors.New("connection closed")}

	registry.Connect(alive1)
	registry.Connect(dead)
	registry.Connect(alive2)

	registry.Broadcast(ReloadSignal)

	assert.Equal(t, []string{"RELOAD"}, alive1.messages())
	assert.Equal(t, []string{"RELOAD"}, alive2.messages())
	// a failed send does not remove the channel; its own read loop does
	assert.Equal(t, 3, registry.Count())
}

func TestDisconnectIsIdempotent(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	ch := &fakeChannel{}

	registry.Connect(ch)
	require.Equal(t, 1, registry.Count())

	registry.Disconnect(ch)
	registry.Disconnect(ch)
	registry.Disconnect(&fakeChannel{})
	assert.Equal(t, 0, registry.Count())
}

func TestNotifyChangedSendsReload(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	ch := &fakeChannel{}
	registry.Connect(ch)

	registry.NotifyChanged()

	assert.Equal(t, []string{"RELOAD"}, ch.messages())
}

func TestBroadcastToleratesConcurrentMembershipChanges(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := &fakeChannel{}
			registry.Connect(ch)
			registry.Broadcast("RELOAD")
			registry.Disconnect(ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, registry.Count())
}

// testServer runs the display websocket endpoint against a real gorilla
// connection, chatpulse-style.
func testServer(t *testing.T, registry *Registry) func(schoolID string) *gws.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/:school_id", DisplayHandler(registry, zap.NewNop()))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return func(schoolID string) *gws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + schoolID
		conn, resp, err := gws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		if resp != nil {
			resp.Body.Close()
		}
		t.Cleanup(func() { conn.Close() })
		return conn
	}
}

func waitForCount(registry *Registry, expected int) bool {
	for i := 0; i < 200; i++ {
		if registry.Count() == expected {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestDisplayHandlerRegistersAndBroadcasts(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	dial := testServer(t, registry)

	conn1 := dial("school-a")
	conn2 := dial("school-b")
	require.True(t, waitForCount(registry, 2))

	registry.NotifyChanged()

	for _, conn := range []*gws.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		kind, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, gws.TextMessage, kind)
		assert.Equal(t, "RELOAD", string(msg))
	}
}

func TestDisplayHandlerCleansUpOnDisconnect(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	dial := testServer(t, registry)

	conn1 := dial("school-a")
	conn2 := dial("school-b")
	require.True(t, waitForCount(registry, 2))

	conn2.Close()
	require.True(t, waitForCount(registry, 1))

	// broadcasting after a peer dropped still reaches the live display
	registry.NotifyChanged()
	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn1.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "RELOAD", string(msg))
}
