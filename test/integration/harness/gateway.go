package harness

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

// DailyUsage is one entry of the fake gateway's usage.cost payload
type DailyUsage struct {
	Date        string `json:"date"`
	Input       int64  `json:"input"`
	Output      int64  `json:"output"`
	TotalTokens int64  `json:"totalTokens"`
}

// DaysAgo returns the local calendar date n days before today as YYYY-MM-DD,
// matching how the binary places its usage window
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

// FakeGateway is a minimal WebSocket gateway answering connect and usage.cost.
type FakeGateway struct {
	Token string
	URL   string

	daily      []DailyUsage
	mu         sync.Mutex
	rawPayload string
}

// NewFakeGateway starts a gateway that accepts token and serves daily.
// It is shut down when the test completes.
func NewFakeGateway(tb testing.TB, token string, daily ...DailyUsage) *FakeGateway {
	tb.Helper()

	gw := &FakeGateway{Token: token, daily: daily}
	srv := httptest.NewServer(http.HandlerFunc(gw.serve))
	tb.Cleanup(srv.Close)

	gw.URL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return gw
}

type frame struct {
	Error   map[string]string `json:"error,omitempty"`
	ID      string            `json:"id"`
	OK      bool              `json:"ok"`
	Payload json.RawMessage   `json:"payload,omitempty"`
	Type    string            `json:"type"`
}

func (gw *FakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req struct {
			ID     string `json:"id"`
			Method string `json:"method"`
			Params struct {
				Auth struct {
					Token string `json:"token"`
				} `json:"auth"`
			} `json:"params"`
		}
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		res := frame{ID: req.ID, OK: true, Type: "res"}
		switch req.Method {
		case "connect":
			if req.Params.Auth.Token != gw.Token {
				res.OK = false
				res.Error = map[string]string{"code": "UNAUTHORIZED", "message": "invalid token"}
			} else {
				res.Payload = json.RawMessage(`{"type":"hello-ok"}`)
			}
		case "usage.cost":
			res.Payload = gw.payload()
		default:
			res.OK = false
			res.Error = map[string]string{"code": "INVALID_REQUEST", "message": "unknown method"}
		}

		if err := conn.WriteJSON(res); err != nil {
			return
		}
	}
}

// SetDaily replaces the usage served from now on.
func (gw *FakeGateway) SetDaily(daily ...DailyUsage) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.daily = daily
}

// SetRawPayload makes usage.cost answer with payload verbatim.
func (gw *FakeGateway) SetRawPayload(payload string) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.rawPayload = payload
}

func (gw *FakeGateway) payload() json.RawMessage {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if gw.rawPayload != "" {
		return json.RawMessage(gw.rawPayload)
	}
	daily := gw.daily
	if daily == nil {
		daily = []DailyUsage{}
	}
	data, _ := json.Marshal(map[string]any{"daily": daily})
	return data
}
