package websocket

import "encoding/json"

const (
	actionGameMove        = "game:move"
	actionGameReset       = "game:reset"
	actionWeatherRefresh  = "weather:refresh"
	actionNotificationAdd = "notification:add"

	typeDashboard = "dashboard"
	typeError     = "error"
)

// Message - inbound command from a client.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// envelope - every outbound frame.
type envelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type movePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type notificationPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
