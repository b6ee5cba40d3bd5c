package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_DropsStalledClientWithoutBlocking(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	// Nothing drains the send buffer, so it fills after cap(client.send)
	// messages and the next delivery must evict the client in the hub
	// loop itself rather than parking it on the unregister queue.
	for i := 0; i <= cap(client.send); i++ {
		hub.Send(userID, []byte("event"))
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// The loop must still make progress after the eviction.
	other := NewClient(hub, nil, uuid.New())
	hub.Register(other)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	// Eviction closes the stalled client's channel; draining terminates.
	for range client.send {
	}
}
