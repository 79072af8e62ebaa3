package signaling

import "encoding/json"

// Message type constants for the C2S (Client to Server) protocol.
const (
	MessageTypeJoin      = "join"
	MessageTypeOffer     = "offer"
	MessageTypeAnswer    = "answer"
	MessageTypeCandidate = "candidate"
	MessageTypeLeave     = "leave"
)

// Message type constants for the S2C (Server to Client) protocol.
const (
	MessageTypeJoined        = "joined"
	MessageTypeStudentJoined = "student-joined"
	MessageTypeStudentLeft   = "student-left"
	MessageTypeTeacherLeft   = "teacher-left"
	MessageTypeError         = "error"
)

// Message is the envelope for every inbound websocket frame: one JSON
// object per frame, tagged with a type and scoped to a room.
//
// Payload is never inspected by the hub. For offer/answer/candidate it is
// the session description or ICE candidate produced by the WebRTC library
// on one side and consumed by it on the other; the hub forwards it as-is.
type Message struct {
	Type    string          `json:"type"`
	Room    string          `json:"room,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// To addresses a specific student by identity. Required on offers and
	// on teacher candidates; ignored otherwise.
	To string `json:"to,omitempty"`

	// client is the connection that sent the message. It's used internally
	// by the Hub and not sent over JSON.
	client *Client `json:"-"`
}

// joinRequest is the payload of a "join" message.
type joinRequest struct {
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
}

// RosterEntry is one student in the roster sent to a joining teacher.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Outbound message shapes. The hub marshals these into a client's send
// queue; they never appear on the inbound path.

type teacherJoinedMessage struct {
	Type     string        `json:"type"`
	Role     Role          `json:"role"`
	Students []RosterEntry `json:"students"`
}

type studentJoinedMessage struct {
	Type string `json:"type"`
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

type studentEventMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type teacherLeftMessage struct {
	Type string `json:"type"`
}

type relayMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	From    string          `json:"from"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
