package websocket

import (
	"encoding/json"
	"runtime"
	"testing"
	"time"

	"ai-writing-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func addClient(t *testing.T, hub *Hub, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: hub, Id: uuid.New(), Send: make(chan []byte, buffer)}
	want := hub.ClientCount() + 1
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ClientCount() == want }, time.Second, time.Millisecond)
	return c
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	a := addClient(t, hub, 4)
	b := addClient(t, hub, 4)

	hub.Broadcast("notice", map[string]string{"message": "hi"})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var env Envelope
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, "notice", env.Type)
			assert.JSONEq(t, `{"message":"hi"}`, string(env.Data))
		case <-time.After(time.Second):
			t.Fatal("no message delivered")
		}
	}
}

func TestBroadcastWithoutPayload(t *testing.T) {
	hub := startHub(t)
	c := addClient(t, hub, 1)

	hub.Broadcast("suggestion_cleared", nil)

	raw := <-c.Send
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "suggestion_cleared", env.Type)
	assert.Empty(t, env.Data)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	c := addClient(t, hub, 0)

	hub.Broadcast("content_updated", nil)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestDroppedClientsAfterStopDoNotLeak(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()
	hub.Stop()
	<-stopped

	before := runtime.NumGoroutine()
	hub.mu.Lock()
	for i := 0; i < 10; i++ {
		c := &Client{Hub: hub, Id: uuid.New(), Send: make(chan []byte)}
		hub.clients[c] = struct{}{}
	}
	hub.mu.Unlock()

	hub.Broadcast("content_updated", nil)

	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 5*time.Millisecond)
}

func TestBroadcastDoesNotWaitOnRedis(t *testing.T) {
	// Nothing listens on port 1.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: time.Second,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	hub := NewHub(rdb, logger.NewNopLogger())
	go hub.Run()
	t.Cleanup(hub.Stop)
	c := addClient(t, hub, 1)

	start := time.Now()
	for i := 0; i < 2*clusterBuffer; i++ {
		hub.Broadcast("content_updated", map[string]int{"n": i})
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	raw := <-c.Send
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "content_updated", env.Type)
}
