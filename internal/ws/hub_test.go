package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"
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
	t.Fatalf("condition not met in time")
}

func TestHub_NotifyCatalogReloaded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.NotifyCatalogReloaded(5, "abc", "csv")

	select {
	case msg := <-client.send:
		var evt CatalogReloadedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Type != EventCatalogReloaded || evt.Jobs != 5 || evt.Fingerprint != "abc" || evt.ID == "" {
			t.Fatalf("event = %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
	}

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-client.send; ok {
		t.Fatalf("send channel should be closed after unregister")
	}
}

func TestHub_NilSafe(t *testing.T) {
	var hub *Hub
	hub.NotifyCatalogReloaded(1, "x", "csv")
	hub.Broadcast([]byte("x"))
	if hub.ClientCount() != 0 {
		t.Fatalf("nil hub should report zero clients")
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	live := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(live)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	<-stopped
	if _, ok := <-live.send; ok {
		t.Fatalf("shutdown should close registered clients")
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.Unregister(&Client{hub: hub, send: make(chan []byte)})
		}
		late := &Client{hub: hub, send: make(chan []byte, 1)}
		hub.Register(late)
		if _, ok := <-late.send; ok {
			t.Errorf("late register should close the client")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("register/unregister blocked after the hub stopped")
	}
}
