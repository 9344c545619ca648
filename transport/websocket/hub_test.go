package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"battleship-server/game/engine"
	"battleship-server/game/service"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()
	lobby := service.NewLobby(engine.DefaultRules())
	hub := NewHub(lobby)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, hub
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

// readEnvelope reads the next message and returns its decoded fields.
func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return fields
}

func TestHub_PairsTwoConnections(t *testing.T) {
	server, hub := newTestServer(t)

	connA := dial(t, server)
	connB := dial(t, server)

	send(t, connA, `{"type":"join_game","playerName":"alice"}`)
	// Give the first join time to land before the second, so the FIFO
	// pairing is deterministic.
	time.Sleep(50 * time.Millisecond)
	send(t, connB, `{"type":"join_game","playerName":"bob"}`)

	startA := readEnvelope(t, connA)
	startB := readEnvelope(t, connB)

	if startA["type"] != "game_start" || startB["type"] != "game_start" {
		t.Fatalf("Expected game_start for both, got %v and %v", startA["type"], startB["type"])
	}
	if startA["turnOrder"] != "first" || startB["turnOrder"] != "second" {
		t.Errorf("Unexpected turn orders %v / %v", startA["turnOrder"], startB["turnOrder"])
	}
	if startA["opponentName"] != "bob" || startB["opponentName"] != "alice" {
		t.Errorf("Unexpected opponents %v / %v", startA["opponentName"], startB["opponentName"])
	}

	if count := hub.ClientCount(); count != 2 {
		t.Errorf("Expected 2 clients, got %d", count)
	}
}

func TestHub_ErrorEnvelopeForUnknownType(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server)

	send(t, conn, `{"type":"warp_drive"}`)
	reply := readEnvelope(t, conn)
	if reply["type"] != "error" {
		t.Errorf("Expected error envelope, got %v", reply)
	}
}

func TestHub_DisconnectForfeitsMatch(t *testing.T) {
	server, hub := newTestServer(t)

	connA := dial(t, server)
	connB := dial(t, server)

	send(t, connA, `{"type":"join_game","playerName":"alice"}`)
	time.Sleep(50 * time.Millisecond)
	send(t, connB, `{"type":"join_game","playerName":"bob"}`)
	readEnvelope(t, connA)
	readEnvelope(t, connB)

	connA.Close()

	end := readEnvelope(t, connB)
	if end["type"] != "game_end" {
		t.Fatalf("Expected game_end, got %v", end)
	}
	if end["reason"] != "opponent_disconnected" {
		t.Errorf("Expected reason opponent_disconnected, got %v", end["reason"])
	}
	if end["winner"] != "bob" {
		t.Errorf("Expected winner bob, got %v", end["winner"])
	}

	// The hub eventually forgets the dead connection.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() > 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if count := hub.ClientCount(); count != 1 {
		t.Errorf("Expected 1 client after disconnect, got %d", count)
	}
}
