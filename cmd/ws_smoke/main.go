package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ws_smoke subscribes to the event feed of a throwaway user, creates,
// updates and deletes one task over the API and prints the events received.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	username := "smoke-" + uuid.NewString()[:8]

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("127.0.0.1:%s", port)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+base+"/ws?username="+username, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	expect(conn, "ready")

	api := "http://" + base + "/api/v1"
	var created struct {
		Result struct {
			ID string `json:"id"`
		} `json:"result"`
	}
	call(http.MethodPost, api+"/tasks", username, `{"title":"smoke test task"}`, &created)
	expect(conn, "task_created")

	call(http.MethodPut, api+"/task/"+created.Result.ID, username, `{"done":true}`, nil)
	expect(conn, "task_updated")

	call(http.MethodDelete, api+"/task/"+created.Result.ID, username, "", nil)
	expect(conn, "task_deleted")

	log.Println("smoke test finished")
}

func call(method, url, username, body string, out any) {
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Username", username)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		log.Fatalf("%s %s: status %d", method, url, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", url, err)
		}
	}
}

func expect(conn *websocket.Conn, typ string) {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("waiting for %s: %v", typ, err)
	}
	var obj map[string]any
	_ = json.Unmarshal(msg, &obj)
	if t, _ := obj["type"].(string); t != typ {
		log.Fatalf("got %s; want %s", msg, typ)
	}
	log.Printf("got: %s", msg)
}
