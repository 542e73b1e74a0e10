package websocket

import (
	"testing"
	"time"

	"shopchat-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestHub() *Hub {
	// No redis client: cluster fan-out is skipped, local delivery only
	h := NewHub(nil, noopLogger{})
	go h.Run()
	return h
}

func newTestClient(h *Hub) *Client {
	identity := &serverutils.Identity{Id: uuid.New()}
	return NewClient(h, nil, identity, nil, noopLogger{})
}

func waitSubscribed(t *testing.T, h *Hub, c *Client, room uuid.UUID) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.IsSubscribed(c, room)
	}, time.Second, 5*time.Millisecond)
}

func receiveFrame(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case frame := <-c.send:
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected frame: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastReachesRoomSubscribers(t *testing.T) {
	h := newTestHub()
	room := uuid.New()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Subscribe(a, room)
	h.Subscribe(b, room)
	waitSubscribed(t, h, a, room)
	waitSubscribed(t, h, b, room)

	h.Broadcast(room, []byte(`{"event":"message"}`))

	assert.Equal(t, `{"event":"message"}`, string(receiveFrame(t, a)))
	assert.Equal(t, `{"event":"message"}`, string(receiveFrame(t, b)))
}

func TestBroadcastDoesNotLeakAcrossRooms(t *testing.T) {
	h := newTestHub()
	roomA := uuid.New()
	roomB := uuid.New()

	inA := newTestClient(h)
	inB := newTestClient(h)
	h.Subscribe(inA, roomA)
	h.Subscribe(inB, roomB)
	waitSubscribed(t, h, inA, roomA)
	waitSubscribed(t, h, inB, roomB)

	h.Broadcast(roomA, []byte("private"))

	assert.Equal(t, "private", string(receiveFrame(t, inA)))
	assertNoFrame(t, inB)
}

func TestClientSubscribedToMultipleRooms(t *testing.T) {
	h := newTestHub()
	roomA := uuid.New()
	roomB := uuid.New()

	c := newTestClient(h)
	h.Subscribe(c, roomA)
	h.Subscribe(c, roomB)
	waitSubscribed(t, h, c, roomA)
	waitSubscribed(t, h, c, roomB)

	h.Broadcast(roomA, []byte("from A"))
	h.Broadcast(roomB, []byte("from B"))

	assert.Equal(t, "from A", string(receiveFrame(t, c)))
	assert.Equal(t, "from B", string(receiveFrame(t, c)))
}

func TestUnregisterRemovesFromAllRooms(t *testing.T) {
	h := newTestHub()
	roomA := uuid.New()
	roomB := uuid.New()

	c := newTestClient(h)
	stayer := newTestClient(h)
	h.Subscribe(c, roomA)
	h.Subscribe(c, roomB)
	h.Subscribe(stayer, roomA)
	waitSubscribed(t, h, c, roomA)
	waitSubscribed(t, h, c, roomB)
	waitSubscribed(t, h, stayer, roomA)

	h.Unregister(c)
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return c.closed
	}, time.Second, 5*time.Millisecond)

	// Send channel is closed exactly once
	_, open := <-c.send
	assert.False(t, open)

	// The remaining subscriber still gets broadcasts
	h.Broadcast(roomA, []byte("still here"))
	assert.Equal(t, "still here", string(receiveFrame(t, stayer)))
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	h := newTestHub()
	room := uuid.New()

	c := newTestClient(h)
	h.Subscribe(c, room)
	waitSubscribed(t, h, c, room)

	h.Unregister(c)
	h.Unregister(c)

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.rooms[room]
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastSkipsClosedClients(t *testing.T) {
	h := newTestHub()
	room := uuid.New()

	c := newTestClient(h)
	h.Subscribe(c, room)
	waitSubscribed(t, h, c, room)

	h.Unregister(c)
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return c.closed
	}, time.Second, 5*time.Millisecond)

	// Must not panic on the closed send channel
	h.Broadcast(room, []byte("after close"))
}
