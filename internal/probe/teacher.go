package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/bjaspel63/splitClass/internal/ui"
)

// TeacherSession drives the broadcasting side: it joins a room as the
// teacher and runs one WebRTC negotiation per student, with offers and
// candidates routed through the relay. The media itself is out of scope;
// each negotiation carries a "control" data channel so the full
// offer/answer/candidate path can be observed end to end.
type TeacherSession struct {
	client *Client
	room   string
	stun   string
	peers  map[string]*webrtc.PeerConnection
}

// RunTeacher connects to the relay, joins room as the teacher, and
// negotiates with every student that joins until ctx is cancelled.
func RunTeacher(ctx context.Context, serverURL, room, stun string) error {
	client := NewClient(serverURL)
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Close()

	s := &TeacherSession{
		client: client,
		room:   room,
		stun:   stun,
		peers:  make(map[string]*webrtc.PeerConnection),
	}
	defer s.closePeers()

	client.SendMessage(joinMessage(room, "teacher", ""))

	for {
		select {
		case <-ctx.Done():
			client.SendMessage(&Message{Type: "leave", Room: room})
			return nil

		case msg, ok := <-client.Incoming():
			if !ok {
				return errors.New("connection to signaling server lost")
			}
			if err := s.handle(msg); err != nil {
				return err
			}
		}
	}
}

func (s *TeacherSession) handle(msg *Message) error {
	switch msg.Type {
	case "joined":
		ui.PrintSuccess(fmt.Sprintf("joined room %q as teacher, %d student(s) present",
			s.room, len(msg.Students)))
		items := make([]ui.RosterItem, 0, len(msg.Students))
		for i, student := range msg.Students {
			items = append(items, ui.RosterItem{Index: i + 1, Name: student.Name, ID: student.ID})
		}
		ui.RenderRosterTable(items)

	case "student-joined":
		ui.PrintInfo(fmt.Sprintf("student joined: %s (%s)", msg.Name, msg.ID))
		return s.connectStudent(msg.ID)

	case "student-left":
		ui.PrintInfo(fmt.Sprintf("student left: %s", msg.ID))
		if pc, ok := s.peers[msg.ID]; ok {
			pc.Close()
			delete(s.peers, msg.ID)
		}

	case "answer":
		pc, ok := s.peers[msg.From]
		if !ok {
			return nil
		}
		var desc webrtc.SessionDescription
		if err := json.Unmarshal(msg.Payload, &desc); err != nil {
			return fmt.Errorf("bad answer from %s: %w", msg.From, err)
		}
		if err := pc.SetRemoteDescription(desc); err != nil {
			return fmt.Errorf("apply answer from %s: %w", msg.From, err)
		}

	case "candidate":
		pc, ok := s.peers[msg.From]
		if !ok {
			return nil
		}
		var candidate webrtc.ICECandidateInit
		if err := json.Unmarshal(msg.Payload, &candidate); err != nil {
			return fmt.Errorf("bad candidate from %s: %w", msg.From, err)
		}
		if err := pc.AddICECandidate(candidate); err != nil {
			ui.PrintWarning(fmt.Sprintf("candidate from %s rejected: %v", msg.From, err))
		}

	case "error":
		return fmt.Errorf("signaling error: %s", msg.Message)
	}
	return nil
}

// connectStudent starts a fresh negotiation addressed at one student.
func (s *TeacherSession) connectStudent(studentID string) error {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: []string{s.stun}}},
	})
	if err != nil {
		return fmt.Errorf("create peer connection: %w", err)
	}

	dc, err := pc.CreateDataChannel("control", nil)
	if err != nil {
		pc.Close()
		return fmt.Errorf("create data channel: %w", err)
	}
	dc.OnOpen(func() {
		ui.PrintSuccess(fmt.Sprintf("control channel open to %s", studentID))
	})

	pc.OnICECandidate(func(candidate *webrtc.ICECandidate) {
		if candidate == nil {
			return
		}
		payload, _ := json.Marshal(candidate.ToJSON())
		s.client.SendMessage(&Message{
			Type:    "candidate",
			Room:    s.room,
			To:      studentID,
			Payload: payload,
		})
	})

	pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		ui.PrintInfo(fmt.Sprintf("ICE %s: %s", studentID, state.String()))
	})

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		pc.Close()
		return fmt.Errorf("create offer: %w", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		pc.Close()
		return fmt.Errorf("set local description: %w", err)
	}

	payload, _ := json.Marshal(offer)
	s.client.SendMessage(&Message{
		Type:    "offer",
		Room:    s.room,
		To:      studentID,
		Payload: payload,
	})

	s.peers[studentID] = pc
	return nil
}

func (s *TeacherSession) closePeers() {
	for _, pc := range s.peers {
		pc.Close()
	}
}
