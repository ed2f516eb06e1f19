package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, sendBuffer), userID: uuid.New()}
}

func TestHub_NotifyStudentsUpdated(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t))
	go h.Run()
	defer h.Stop()

	a, b := newTestClient(h), newTestClient(h)
	h.Register(a)
	h.Register(b)
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	id := uuid.New()
	h.NotifyStudentsUpdated(id)

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			var evt StudentsUpdatedEvent
			require.NoError(t, json.Unmarshal(msg, &evt))
			assert.Equal(t, "students_updated", evt.Type)
			assert.Equal(t, id.String(), evt.StudentID)
			_, err := time.Parse(time.RFC3339, evt.Timestamp)
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("no message delivered")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := newTestClient(h)
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_SlowClientDropped(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	slow := &Client{hub: h, send: make(chan []byte), userID: uuid.New()}
	h.Register(slow)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Broadcast([]byte("x"))
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_RegisterAfterStopReturns(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	h.Stop()
	h.Stop()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i < 3*cap(h.register); i++ {
			c := newTestClient(h)
			h.Register(c)
			h.Unregister(c)
		}
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Register or Unregister blocked on a stopped hub")
	}
	assert.Zero(t, h.ClientCount())
}

func TestHub_StopUnblocksPendingRegister(t *testing.T) {
	h := NewHub(nil)
	for i := 0; i < cap(h.register); i++ {
		h.Register(newTestClient(h))
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		h.Register(newTestClient(h))
	}()

	select {
	case <-finished:
		t.Fatal("Register returned while the buffer was full")
	case <-time.After(20 * time.Millisecond):
	}
	h.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Register still blocked after Stop")
	}
}

func TestNilHubIsSafe(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() {
		h.NotifyStudentsUpdated(uuid.New())
		h.Broadcast(nil)
		h.Stop()
		assert.Equal(t, 0, h.ClientCount())
	})
}
