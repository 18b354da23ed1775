package websocket

import "encoding/json"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is the only client message shape; every action is
// identified by its name alone.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError           Event = "error"
	EventPong            Event = "pong"
	EventSnapshot        Event = "snapshot"
	EventAnalysisUpdated Event = "analysis_updated"
)

// AnalysisMessage carries an analysis report, either the snapshot sent on
// connect or an update relayed from the refresh worker.
type AnalysisMessage struct {
	Event  Event           `json:"event"`
	Report json.RawMessage `json:"report"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
