package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/sharenote/internal/model"
)

// mockSubscriber creates a Subscriber with a send channel but no real connection.
func mockSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	s1 := mockSubscriber(hub)
	s2 := mockSubscriber(hub)

	hub.Register(s1)
	hub.Register(s2)

	if got := hub.Count(); got != 2 {
		t.Fatalf("expected 2 subscribers, got %d", got)
	}

	hub.Unregister(s1)
	if got := hub.Count(); got != 1 {
		t.Fatalf("expected 1 subscriber after unregister, got %d", got)
	}

	hub.Unregister(s2)
	if got := hub.Count(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	s := mockSubscriber(hub)
	hub.Register(s)
	hub.Unregister(s)
	// Should not panic
	hub.Unregister(s)

	if got := hub.Count(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())

	s1 := mockSubscriber(hub)
	s2 := mockSubscriber(hub)
	hub.Register(s1)
	hub.Register(s2)

	hub.Broadcast(model.NewEvent(model.ActionCreated, 42))

	for _, s := range []*Subscriber{s1, s2} {
		select {
		case data := <-s.send:
			var got model.Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "note_created" {
				t.Errorf("expected type note_created, got %s", got.Type)
			}
			if got.NoteID != 42 {
				t.Errorf("expected note id 42, got %d", got.NoteID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	hub.Unregister(s1)
	hub.Unregister(s2)
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	hub.Broadcast(model.NewEvent(model.ActionDeleted, 1))
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	s := mockSubscriber(hub)
	hub.Register(s)

	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(model.NewEvent(model.ActionUpdated, int64(i)))
	}

	// This should drop the event, not panic or block
	hub.Broadcast(model.NewEvent(model.ActionUpdated, 999))

	count := 0
	for {
		select {
		case <-s.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d events, got %d", sendBufferSize, count)
	}

	hub.Unregister(s)
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := mockSubscriber(hub)
			hub.Register(s)
			hub.Broadcast(model.NewEvent(model.ActionCreated, 0))
			for {
				select {
				case <-s.send:
				default:
					hub.Unregister(s)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.Count(); got != 0 {
		t.Errorf("expected 0 subscribers after concurrent test, got %d", got)
	}
}

func TestHandlerStreamsEvents(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := httptest.NewServer(Handler(hub, nil, slog.Default()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(ws.StatusNormalClosure, "")

	// Wait for the subscriber to register before broadcasting.
	deadline := time.Now().Add(time.Second)
	for hub.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(model.NewEvent(model.ActionUpdated, 7))

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got model.Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "note_updated" || got.NoteID != 7 {
		t.Errorf("got %+v, want note_updated for id 7", got)
	}
}
