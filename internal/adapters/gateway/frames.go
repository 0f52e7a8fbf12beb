package gateway

import (
	"encoding/json"
	"fmt"
)

// Frame types on the gateway socket
const (
	frameEvent    = "event"
	frameRequest  = "req"
	frameResponse = "res"
)

// requestFrame is sent by the client
type requestFrame struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
	Type   string `json:"type"`
}

// inboundFrame is any frame received from the gateway.
// Responses carry ID/OK/Payload/Error, events carry Event/Payload.
type inboundFrame struct {
	Error   *RPCError       `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	ID      string          `json:"id,omitempty"`
	OK      bool            `json:"ok"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Type    string          `json:"type"`
}

// RPCError is the error object of a failed response
type RPCError struct {
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details,omitempty"`
	Message string          `json:"message"`
}

func (e *RPCError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type clientInfo struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	Platform string `json:"platform"`
	Version  string `json:"version"`
}

type connectAuth struct {
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

type connectParams struct {
	Auth        *connectAuth `json:"auth,omitempty"`
	Client      clientInfo   `json:"client"`
	MaxProtocol int          `json:"maxProtocol"`
	MinProtocol int          `json:"minProtocol"`
	Role        string       `json:"role"`
	Scopes      []string     `json:"scopes"`
}

type usageParams struct {
	Days int `json:"days"`
}

// usagePayload is the usage.cost response. Pointers distinguish absent fields from zeros.
type usagePayload struct {
	Daily *[]dailyEntry `json:"daily"`
}

type dailyEntry struct {
	CacheRead   *int64   `json:"cacheRead"`
	CacheWrite  *int64   `json:"cacheWrite"`
	Date        *string  `json:"date"`
	Input       *int64   `json:"input"`
	Output      *int64   `json:"output"`
	TotalCost   *float64 `json:"totalCost"`
	TotalTokens *int64   `json:"totalTokens"`
}
