package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/bjaspel63/splitClass/internal/ui"
)

// StudentSession drives the receiving side: it joins a room under a
// display name, answers the teacher's offer, and trickles candidates back
// through the relay.
type StudentSession struct {
	client *Client
	room   string
	stun   string
	pc     *webrtc.PeerConnection
}

// RunStudent connects to the relay and joins room as a student named name.
// It returns once the teacher closes the session or ctx is cancelled.
func RunStudent(ctx context.Context, serverURL, room, name, stun string) error {
	client := NewClient(serverURL)
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Close()

	s := &StudentSession{client: client, room: room, stun: stun}
	defer s.closePeer()

	client.SendMessage(joinMessage(room, "student", name))

	for {
		select {
		case <-ctx.Done():
			client.SendMessage(&Message{Type: "leave", Room: room})
			return nil

		case msg, ok := <-client.Incoming():
			if !ok {
				return errors.New("connection to signaling server lost")
			}
			done, err := s.handle(msg)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func (s *StudentSession) handle(msg *Message) (bool, error) {
	switch msg.Type {
	case "joined":
		ui.PrintSuccess(fmt.Sprintf("joined room %q as %s", s.room, msg.ID))

	case "offer":
		if err := s.answer(msg.Payload); err != nil {
			return false, err
		}

	case "candidate":
		if s.pc == nil {
			return false, nil
		}
		var candidate webrtc.ICECandidateInit
		if err := json.Unmarshal(msg.Payload, &candidate); err != nil {
			return false, fmt.Errorf("bad candidate: %w", err)
		}
		if err := s.pc.AddICECandidate(candidate); err != nil {
			ui.PrintWarning(fmt.Sprintf("candidate rejected: %v", err))
		}

	case "teacher-left":
		ui.PrintInfo("teacher closed the session")
		return true, nil

	case "error":
		return false, fmt.Errorf("signaling error: %s", msg.Message)
	}
	return false, nil
}

// answer accepts the teacher's offer. The teacher may re-offer at any
// time; each offer starts a fresh peer connection.
func (s *StudentSession) answer(payload json.RawMessage) error {
	var offer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &offer); err != nil {
		return fmt.Errorf("bad offer: %w", err)
	}

	s.closePeer()

	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: []string{s.stun}}},
	})
	if err != nil {
		return fmt.Errorf("create peer connection: %w", err)
	}
	s.pc = pc

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		dc.OnOpen(func() {
			ui.PrintSuccess(fmt.Sprintf("control channel %q open", dc.Label()))
		})
	})

	pc.OnICECandidate(func(candidate *webrtc.ICECandidate) {
		if candidate == nil {
			return
		}
		data, _ := json.Marshal(candidate.ToJSON())
		s.client.SendMessage(&Message{Type: "candidate", Room: s.room, Payload: data})
	})

	pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		ui.PrintInfo("ICE: " + state.String())
	})

	if err := pc.SetRemoteDescription(offer); err != nil {
		return fmt.Errorf("apply offer: %w", err)
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	if err := pc.SetLocalDescription(answer); err != nil {
		return fmt.Errorf("set local description: %w", err)
	}

	data, _ := json.Marshal(answer)
	s.client.SendMessage(&Message{Type: "answer", Room: s.room, Payload: data})
	return nil
}

func (s *StudentSession) closePeer() {
	if s.pc != nil {
		s.pc.Close()
		s.pc = nil
	}
}
