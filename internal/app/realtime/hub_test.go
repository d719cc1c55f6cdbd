package realtime

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, sendBuffer), log: zap.NewNop()}
}

func TestHub_JoinAndLeave(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newTestClient()

	hub.Join("room-a", c)
	hub.Join("room-b", c)
	// Double-join is a no-op.
	hub.Join("room-a", c)

	if n := hub.RoomSize("room-a"); n != 1 {
		t.Errorf("room-a size: got %d, want 1", n)
	}
	if n := hub.RoomSize("room-b"); n != 1 {
		t.Errorf("room-b size: got %d, want 1", n)
	}

	hub.Leave(c)
	if n := hub.RoomSize("room-a"); n != 0 {
		t.Errorf("room-a size after leave: got %d, want 0", n)
	}
	if n := hub.RoomSize("room-b"); n != 0 {
		t.Errorf("room-b size after leave: got %d, want 0", n)
	}
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	hub := NewHub(zap.NewNop())
	inRoom := newTestClient()
	alsoIn := newTestClient()
	outside := newTestClient()

	hub.Join("room-a", inRoom)
	hub.Join("room-a", alsoIn)
	hub.Join("room-b", outside)

	hub.Broadcast("room-a", []byte("hello"))

	for _, c := range []*Client{inRoom, alsoIn} {
		select {
		case frame := <-c.send:
			if string(frame) != "hello" {
				t.Errorf("frame: got %q, want %q", frame, "hello")
			}
		default:
			t.Error("expected frame for room member")
		}
	}

	select {
	case frame := <-outside.send:
		t.Errorf("unexpected frame for non-member: %q", frame)
	default:
	}
}

func TestHub_BroadcastMessageEnvelope(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newTestClient()
	hub.Join("507f1f77bcf86cd799439011", c)

	hub.BroadcastMessage("507f1f77bcf86cd799439011", map[string]string{"text": "hi"})

	var frame struct {
		Event  string            `json:"event"`
		ChatID string            `json:"chatId"`
		Data   map[string]string `json:"data"`
	}
	select {
	case raw := <-c.send:
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("frame is not valid JSON: %v", err)
		}
	default:
		t.Fatal("expected frame")
	}

	if frame.Event != "message" {
		t.Errorf("event: got %q, want %q", frame.Event, "message")
	}
	if frame.ChatID != "507f1f77bcf86cd799439011" {
		t.Errorf("chatId: got %q", frame.ChatID)
	}
	if frame.Data["text"] != "hi" {
		t.Errorf("data: got %v", frame.Data)
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := &Client{send: make(chan []byte), log: zap.NewNop()} // unbuffered, never drained
	ok := newTestClient()

	hub.Join("room-a", slow)
	hub.Join("room-a", ok)

	hub.Broadcast("room-a", []byte("frame"))

	if n := hub.RoomSize("room-a"); n != 1 {
		t.Errorf("room size after dropping slow client: got %d, want 1", n)
	}
	select {
	case frame := <-ok.send:
		if string(frame) != "frame" {
			t.Errorf("frame: got %q", frame)
		}
	default:
		t.Error("expected healthy client to receive frame")
	}

	// The slow client's channel is closed so its write pump exits.
	if _, open := <-slow.send; open {
		t.Error("expected slow client send channel to be closed")
	}
}
