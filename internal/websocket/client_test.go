// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// setupWebSocketServer creates a test server that upgrades connections and
// hands them to a client attached to the given hub
func setupWebSocketServer(t *testing.T, hub *Hub) (*httptest.Server, chan *Client) {
	t.Helper()

	clientCh := make(chan *Client, 1)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}

		client := NewClient(hub, conn)
		hub.Register <- client
		clientCh <- client
		client.Start()
	}))
	t.Cleanup(server.Close)

	return server, clientCh
}

// dialWebSocket connects to the test server's websocket endpoint
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// waitForChannel waits for a client to arrive on the channel
func waitForChannel(t *testing.T, ch chan *Client) *Client {
	t.Helper()

	select {
	case client := <-ch:
		return client
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for client")
		return nil
	}
}

func verifyConstant(t *testing.T, name string, got, want time.Duration) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewClient(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil)

	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.hub != hub {
		t.Error("Client hub not set correctly")
	}
	if client.send == nil {
		t.Error("Client send channel not initialized")
	}
	if cap(client.send) != 256 {
		t.Errorf("Send channel capacity = %d, want 256", cap(client.send))
	}
	if client.ID() == 0 {
		t.Error("Client ID should be non-zero")
	}
}

func TestNewClient_UniqueIDs(t *testing.T) {
	hub := NewHub()
	first := NewClient(hub, nil)
	second := NewClient(hub, nil)

	if first.ID() == second.ID() {
		t.Errorf("Expected unique client IDs, both got %d", first.ID())
	}
	if second.ID() <= first.ID() {
		t.Errorf("Expected monotonically increasing IDs, got %d then %d", first.ID(), second.ID())
	}
}

func TestClient_Constants(t *testing.T) {
	verifyConstant(t, "writeWait", writeWait, 10*time.Second)
	verifyConstant(t, "pongWait", pongWait, 60*time.Second)
	verifyConstant(t, "pingPeriod", pingPeriod, 54*time.Second)

	if maxMessageSize != 4096 {
		t.Errorf("maxMessageSize = %d, want 4096", maxMessageSize)
	}
	if pingPeriod >= pongWait {
		t.Error("pingPeriod should be less than pongWait")
	}
}

func TestClient_WritePump_SendMessage(t *testing.T) {
	hub := setupHub(t)
	server, clientCh := setupWebSocketServer(t, hub)
	conn := dialWebSocket(t, server)
	client := waitForChannel(t, clientCh)

	want := Message{Type: "test_message", Data: map[string]interface{}{"key": "value"}}
	client.send <- want

	if err := conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if got.Type != want.Type {
		t.Errorf("Message type = %q, want %q", got.Type, want.Type)
	}
}

func TestClient_ReadPump_PingPong(t *testing.T) {
	hub := setupHub(t)
	server, clientCh := setupWebSocketServer(t, hub)
	conn := dialWebSocket(t, server)
	waitForChannel(t, clientCh)

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("Failed to send ping: %v", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var pong Message
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("Failed to read pong: %v", err)
	}
	if pong.Type != MessageTypePong {
		t.Errorf("Response type = %q, want %q", pong.Type, MessageTypePong)
	}
}

func TestClient_ReadPump_IgnoresUnknownTypes(t *testing.T) {
	hub := setupHub(t)
	server, clientCh := setupWebSocketServer(t, hub)
	conn := dialWebSocket(t, server)
	client := waitForChannel(t, clientCh)

	if err := conn.WriteJSON(Message{Type: "mystery", Data: "ignored"}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	// An unknown type produces no reply and does not disconnect the client.
	time.Sleep(50 * time.Millisecond)
	select {
	case msg := <-client.send:
		t.Errorf("Unexpected reply to unknown message type: %+v", msg)
	default:
	}

	if hub.GetClientCount() != 1 {
		t.Errorf("Expected client to stay connected, count = %d", hub.GetClientCount())
	}
}

func TestClient_DisconnectUnregisters(t *testing.T) {
	hub := setupHub(t)
	server, clientCh := setupWebSocketServer(t, hub)
	conn := dialWebSocket(t, server)
	waitForChannel(t, clientCh)

	if hub.GetClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.GetClientCount())
	}

	_ = conn.Close()

	var count int
	for i := 0; i < 20; i++ {
		time.Sleep(20 * time.Millisecond)
		count = hub.GetClientCount()
		if count == 0 {
			break
		}
	}

	if count != 0 {
		t.Errorf("Expected 0 clients after disconnect, got %d", count)
	}
}

func TestClient_Start(t *testing.T) {
	hub := setupHub(t)
	server, clientCh := setupWebSocketServer(t, hub)
	conn := dialWebSocket(t, server)
	waitForChannel(t, clientCh)

	// A broadcast reaches the wire once both pumps are running.
	hub.BroadcastJSON("start_check", map[string]string{"ok": "yes"})

	if err := conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}
	if got.Type != "start_check" {
		t.Errorf("Message type = %q, want %q", got.Type, "start_check")
	}
}
