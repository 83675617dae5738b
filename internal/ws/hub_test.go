package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func newTestClient(hub *Hub, username string, buffer int) *Client {
	return &Client{Username: username, Send: make(chan []byte, buffer), Hub: hub, Done: make(chan struct{})}
}

func TestHubPublishReachesOnlyUsername(t *testing.T) {
	hub := NewHub()
	alice := newTestClient(hub, "alice", 4)
	bob := newTestClient(hub, "bob", 4)
	hub.Register(alice)
	hub.Register(bob)

	task := &domain.Task{ID: uuid.New(), Title: "Buy milk"}
	hub.Publish("alice", Event{Type: MsgTaskCreated, Task: task})

	select {
	case msg := <-alice.Send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Type != MsgTaskCreated || ev.Task == nil || ev.Task.ID != task.ID {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("alice got no event")
	}
	if len(bob.Send) != 0 {
		t.Fatal("bob received alice's event")
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, "alice", 1)
	hub.Register(c)

	hub.Unregister(c)
	hub.Unregister(c)

	if _, ok := <-c.Send; ok {
		t.Fatal("send queue not closed")
	}
	if n := hub.Subscribers("alice"); n != 0 {
		t.Fatalf("subscribers = %d", n)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, "alice", 1)
	hub.Register(slow)

	hub.Publish("alice", Event{Type: MsgTaskUpdated})
	hub.Publish("alice", Event{Type: MsgTaskUpdated})

	if n := hub.Subscribers("alice"); n != 0 {
		t.Fatalf("slow client still subscribed")
	}
}

func TestHandleWSDeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", HandleWS(hub, "", ""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?username=alice"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev Event
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != MsgReady {
		t.Fatalf("first frame = %+v, %v; want ready", ev, err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers("alice") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish("alice", Event{Type: MsgTaskDeleted, Task: &domain.Task{Title: "gone"}})
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != MsgTaskDeleted || ev.Task.Title != "gone" {
		t.Fatalf("event = %+v, %v", ev, err)
	}

	if err := conn.WriteJSON(Request{Type: MsgPing}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != MsgPong {
		t.Fatalf("reply = %+v, %v; want pong", ev, err)
	}
}

func TestHandleWSRequiresUsername(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", HandleWS(NewHub(), "", ""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	if w.Code != 400 {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}
