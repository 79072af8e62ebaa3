package signaling

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/bjaspel63/splitClass/internal/metrics"
)

// Hub is the single source of truth for room and participant state.
//
// All state lives behind one goroutine: Run receives registrations,
// disconnects and inbound messages over channels and applies them one at a
// time, so join/leave/relay against a room's teacher slot and student map
// never race. The handlers themselves are plain synchronous methods, which
// is what the tests call directly.
type Hub struct {
	log        *slog.Logger
	metrics    *metrics.Metrics
	identities IdentityFactory

	// clients holds every registered connection. Messages from (or replies
	// to) a connection that already unregistered are discarded; its send
	// queue is closed.
	clients map[*Client]bool

	// Rooms maps room name -> room state. Entries exist only while the room
	// has at least one participant.
	Rooms map[string]*Room

	// Register announces a newly accepted connection.
	Register chan *Client

	// Unregister announces a closed connection; treated as an implicit leave.
	Unregister chan *Client

	// Inbound carries every parsed frame from every connection.
	Inbound chan *Message
}

// NewHub creates a hub. identities is invoked once per new room to mint
// student identities for that room instance.
func NewHub(logger *slog.Logger, m *metrics.Metrics, identities IdentityFactory) *Hub {
	return &Hub{
		log:        logger,
		metrics:    m,
		identities: identities,
		clients:    make(map[*Client]bool),
		Rooms:      make(map[string]*Room),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *Message),
	}
}

// Run starts the hub's main processing loop. It is the only goroutine that
// touches room state.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.register(client)

		case client := <-h.Unregister:
			h.disconnect(client)

		case message := <-h.Inbound:
			h.handle(message)
		}
	}
}

// handle routes one inbound message. Anything malformed or sent from a
// connection in the wrong state is dropped here; the connection itself is
// never terminated over a bad message.
func (h *Hub) handle(msg *Message) {
	h.metrics.Inc(metrics.EventMessages)

	c := msg.client
	if c == nil || !h.clients[c] {
		// Register and Inbound are separate channels, so a frame can still
		// be in flight when its connection unregisters. Discard it rather
		// than reply into a closed send queue.
		return
	}

	switch msg.Type {
	case MessageTypeJoin:
		h.handleJoin(c, msg)

	case MessageTypeOffer:
		h.relayToStudent(c, msg, MessageTypeOffer)

	case MessageTypeAnswer:
		h.relayToTeacher(c, msg, MessageTypeAnswer)

	case MessageTypeCandidate:
		// Candidates flow both ways: teacher -> named student,
		// student -> the room's teacher.
		switch c.Role {
		case RoleTeacher:
			h.relayToStudent(c, msg, MessageTypeCandidate)
		case RoleStudent:
			h.relayToTeacher(c, msg, MessageTypeCandidate)
		default:
			h.metrics.Inc(metrics.EventDropNoRegistration)
		}

	case MessageTypeLeave:
		// A leave is room-scoped like every other frame; one without a room
		// is malformed and must not run cleanup.
		if msg.Room == "" {
			h.metrics.Inc(metrics.EventDropMalformed)
			return
		}
		h.leave(c)

	default:
		h.metrics.Inc(metrics.EventDropUnknownType)
		h.log.Debug("unknown message type",
			slog.String("type", msg.Type), slog.String("client", c.label()))
	}
}

func (h *Hub) handleJoin(c *Client, msg *Message) {
	if msg.Room == "" {
		h.metrics.Inc(metrics.EventDropMalformed)
		return
	}

	var req joinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.metrics.Inc(metrics.EventDropMalformed)
		return
	}

	if c.RoomName != "" {
		// One registration per connection: a second join without an
		// intervening leave is rejected and the first registration stands.
		c.trySend(&errorMessage{Type: MessageTypeError, Message: "already joined a room"})
		return
	}

	switch req.Role {
	case RoleTeacher:
		h.joinTeacher(c, msg.Room)
	case RoleStudent:
		h.joinStudent(c, msg.Room, req.Name)
	default:
		h.metrics.Inc(metrics.EventDropMalformed)
	}
}

func (h *Hub) joinTeacher(c *Client, roomName string) {
	room := h.room(roomName)

	if room.Teacher != nil && room.Teacher != c {
		// A second teacher silently displaces the first: the displaced
		// connection gets no notification and keeps stale role state until
		// its own leave or disconnect, which then no-ops against the room.
		h.log.Warn("teacher displaced",
			slog.String("room", roomName),
			slog.String("displaced", room.Teacher.label()))
	}

	room.Teacher = c
	c.Role = RoleTeacher
	c.RoomName = roomName
	c.ID = "teacher"

	h.metrics.Inc(metrics.EventJoins)
	c.trySend(&teacherJoinedMessage{
		Type:     MessageTypeJoined,
		Role:     RoleTeacher,
		Students: room.roster(),
	})
	h.log.Info("teacher joined", slog.String("room", roomName))
}

func (h *Hub) joinStudent(c *Client, roomName, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		h.metrics.Inc(metrics.EventDropInvalidJoin)
		c.trySend(&errorMessage{Type: MessageTypeError, Message: "student name required"})
		return
	}

	room := h.room(roomName)
	id := room.addStudent(c, name)

	c.Role = RoleStudent
	c.RoomName = roomName
	c.ID = id
	c.Name = name

	h.metrics.Inc(metrics.EventJoins)
	c.trySend(&studentJoinedMessage{Type: MessageTypeJoined, Role: RoleStudent, ID: id})

	if room.Teacher != nil {
		room.Teacher.trySend(&studentEventMessage{
			Type: MessageTypeStudentJoined,
			ID:   id,
			Name: name,
		})
	}
	h.log.Info("student joined",
		slog.String("room", roomName), slog.String("id", id), slog.String("name", name))
}

// room returns the named room, creating it on first join.
func (h *Hub) room(name string) *Room {
	if room, ok := h.Rooms[name]; ok {
		return room
	}
	room := newRoom(name, h.identities())
	h.Rooms[name] = room
	h.log.Debug("room created", slog.String("room", name))
	return room
}

// relayToStudent forwards an offer or candidate from the teacher to the
// student addressed by msg.To. Unknown or departed targets are a silent
// drop; the sender is never told.
func (h *Hub) relayToStudent(c *Client, msg *Message, kind string) {
	if c.Role != RoleTeacher {
		h.metrics.Inc(metrics.EventDropNoRegistration)
		return
	}
	if msg.Room == "" || msg.Room != c.RoomName {
		h.metrics.Inc(metrics.EventDropMalformed)
		return
	}

	room, ok := h.Rooms[c.RoomName]
	if !ok {
		h.metrics.Inc(metrics.EventDropRoutingMiss)
		return
	}
	entry, ok := room.Students[msg.To]
	if msg.To == "" || !ok {
		h.metrics.Inc(metrics.EventDropRoutingMiss)
		return
	}

	entry.client.trySend(&relayMessage{Type: kind, Payload: msg.Payload, From: "teacher"})
	h.metrics.Inc(metrics.EventRelays)
}

// relayToTeacher forwards an answer or candidate from a student to the
// room's current teacher, tagged with the student's identity. No target is
// needed; the teacher is implicit.
func (h *Hub) relayToTeacher(c *Client, msg *Message, kind string) {
	if c.Role != RoleStudent {
		h.metrics.Inc(metrics.EventDropNoRegistration)
		return
	}
	if msg.Room == "" || msg.Room != c.RoomName {
		h.metrics.Inc(metrics.EventDropMalformed)
		return
	}

	room, ok := h.Rooms[c.RoomName]
	if !ok || room.Teacher == nil {
		h.metrics.Inc(metrics.EventDropRoutingMiss)
		return
	}

	room.Teacher.trySend(&relayMessage{Type: kind, Payload: msg.Payload, From: c.ID})
	h.metrics.Inc(metrics.EventRelays)
}

// leave removes c's registration and notifies the counterpart(s). It is
// safe to run twice for the same connection (an explicit leave followed by
// the transport close): the first pass clears the client's room state, so
// the second finds nothing to do.
func (h *Hub) leave(c *Client) {
	if c.RoomName == "" {
		return
	}

	room, ok := h.Rooms[c.RoomName]
	if !ok {
		c.reset()
		return
	}

	switch c.Role {
	case RoleStudent:
		if room.removeStudent(c.ID, c) {
			if room.Teacher != nil {
				room.Teacher.trySend(&studentEventMessage{
					Type: MessageTypeStudentLeft,
					ID:   c.ID,
				})
			}
			h.log.Info("student left",
				slog.String("room", room.Name), slog.String("id", c.ID))
		}
		// A teacherless room with no students left has no reason to exist.
		if room.empty() {
			delete(h.Rooms, room.Name)
			h.log.Debug("room deleted", slog.String("room", room.Name))
		}

	case RoleTeacher:
		// Only the current teacher tears the room down. A displaced
		// teacher still carries teacher state but owns nothing here.
		if room.Teacher == c {
			for _, entry := range room.Students {
				entry.client.trySend(&teacherLeftMessage{Type: MessageTypeTeacherLeft})
				entry.client.reset()
			}
			delete(h.Rooms, room.Name)
			h.log.Info("room closed",
				slog.String("room", room.Name), slog.Int("students", len(room.Students)))
		}
	}

	c.reset()
}

func (h *Hub) register(c *Client) {
	h.clients[c] = true
	h.log.Debug("client connected", slog.String("client", c.label()))
}

// disconnect is the transport-close path: an implicit leave, then the send
// queue is closed to stop the client's write pump.
func (h *Hub) disconnect(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	h.leave(c)
	close(c.send)
	h.log.Debug("client disconnected", slog.String("client", c.label()))
}
