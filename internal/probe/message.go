package probe

import "encoding/json"

// Message mirrors the relay's wire envelope from the client side. Only the
// fields relevant to a given type are populated; the rest stay zero.
type Message struct {
	Type     string          `json:"type"`
	Room     string          `json:"room,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	To       string          `json:"to,omitempty"`
	From     string          `json:"from,omitempty"`
	Role     string          `json:"role,omitempty"`
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name,omitempty"`
	Students []RosterEntry   `json:"students,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// RosterEntry is one student in the roster a joining teacher receives.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type joinPayload struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

func joinMessage(room, role, name string) *Message {
	payload, _ := json.Marshal(joinPayload{Role: role, Name: name})
	return &Message{Type: "join", Room: room, Payload: payload}
}
