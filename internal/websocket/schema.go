package websocket

import "time"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventCheckIn  Event = "check_in"
	EventCheckOut Event = "check_out"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// RosterEvent is broadcast on a class session's channel whenever a member
// checks in or out, so connected mat boards update without polling.
type RosterEvent struct {
	Event       Event     `json:"event"`
	ClassID     int       `json:"class_id"`
	ClassDate   string    `json:"class_date"`
	MemberID    int       `json:"member_id"`
	MemberName  string    `json:"member_name,omitempty"`
	RecordID    int64     `json:"record_id,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at,omitempty"`
	ActorID     int       `json:"actor_id"`
}

// ErrorResponse is sent to a client when its request cannot be served.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client message shape; the mat board stream
// is otherwise server-push.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// PongResponse answers a client ping.
type PongResponse struct {
	Event Event `json:"event"`
}
