package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a hub message")
		return nil
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Topic: TopicStandings, Send: make(chan []byte, 16)}
	hub.Register(client)

	hub.Broadcast(TopicStandings, []byte(`[{"rank":1}]`))
	assert.Equal(t, `[{"rank":1}]`, string(recv(t, client.Send)))

	// A broadcast on another topic must not reach this client.
	hub.Broadcast(TopicHistory, []byte(`{"event":"history_changed"}`))
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected cross-topic delivery: %s", data)
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(client)
	// Unregister closes the send channel.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubReplaysLatestToLateJoiners(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.Broadcast(TopicStandings, []byte("stale"))
	hub.Broadcast(TopicStandings, []byte("current"))

	// Give the hub loop a moment to process both broadcasts.
	time.Sleep(20 * time.Millisecond)

	late := &Client{Topic: TopicStandings, Send: make(chan []byte, 16)}
	hub.Register(late)
	assert.Equal(t, "current", string(recv(t, late.Send)))

	hub.Unregister(late)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{Topic: TopicStandings, Send: make(chan []byte)} // no buffer, never read
	fast := &Client{Topic: TopicStandings, Send: make(chan []byte, 16)}
	hub.Register(slow)
	hub.Register(fast)

	hub.Broadcast(TopicStandings, []byte("update"))

	// The fast client still gets the payload; the slow one is cut loose.
	require.Equal(t, "update", string(recv(t, fast.Send)))
	select {
	case _, open := <-slow.Send:
		assert.False(t, open, "slow client's channel should be closed, not delivered to")
	case <-time.After(time.Second):
		t.Fatal("slow client was never dropped")
	}

	hub.Unregister(fast)
}
