package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// receivedRequest is a request frame as seen by the fake gateway
type receivedRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Type   string          `json:"type"`
}

// fakeGateway speaks just enough of the gateway protocol for client tests
type fakeGateway struct {
	closeCode     int       // Close the socket with this code instead of answering connect
	connectError  *RPCError // Fail connect with this error
	mu            sync.Mutex
	requests      []receivedRequest
	sendChallenge bool
	silentConnect bool // Never answer connect
	token         string
	upgradeStatus int // Refuse the HTTP upgrade with this status
	usageDelay    time.Duration
	usageError    *RPCError
	usagePayload  string
}

func newFakeGateway(t *testing.T, g *fakeGateway) (*fakeGateway, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(srv.Close)
	return g, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func (g *fakeGateway) received() []receivedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]receivedRequest(nil), g.requests...)
}

func (g *fakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	if g.upgradeStatus != 0 {
		http.Error(w, http.StatusText(g.upgradeStatus), g.upgradeStatus)
		return
	}

	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if g.sendChallenge {
		conn.WriteJSON(map[string]any{
			"type":    "event",
			"event":   "connect.challenge",
			"payload": map[string]any{"nonce": "abc", "ts": time.Now().UnixMilli()},
		})
	}

	for {
		var req receivedRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		g.mu.Lock()
		g.requests = append(g.requests, req)
		g.mu.Unlock()

		switch req.Method {
		case methodConnect:
			if g.silentConnect {
				continue
			}
			if g.closeCode != 0 {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(g.closeCode, "unauthorized"))
				return
			}
			if g.connectError != nil {
				writeResponse(conn, req.ID, false, "", g.connectError)
				continue
			}
			var params connectParams
			json.Unmarshal(req.Params, &params)
			if g.token != "" && (params.Auth == nil || params.Auth.Token != g.token) {
				writeResponse(conn, req.ID, false, "", &RPCError{Code: "UNAUTHORIZED", Message: "invalid token"})
				continue
			}
			writeResponse(conn, req.ID, true, `{"type":"hello-ok","protocol":3}`, nil)
		case methodUsageCost:
			if g.usageDelay > 0 {
				time.Sleep(g.usageDelay)
			}
			if g.usageError != nil {
				writeResponse(conn, req.ID, false, "", g.usageError)
				continue
			}
			writeResponse(conn, req.ID, true, g.usagePayload, nil)
		default:
			writeResponse(conn, req.ID, false, "", &RPCError{Code: "INVALID_REQUEST", Message: "unknown method"})
		}
	}
}

func writeResponse(conn *websocket.Conn, id string, ok bool, payload string, rpcErr *RPCError) {
	frame := map[string]any{"type": "res", "id": id, "ok": ok}
	if payload != "" {
		frame["payload"] = json.RawMessage(payload)
	}
	if rpcErr != nil {
		frame["error"] = rpcErr
	}
	conn.WriteJSON(frame)
}
