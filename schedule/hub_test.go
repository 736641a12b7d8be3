package schedule

import (
	"testing"
	"time"
)

func waitForRoomSize(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s: expected size %d, got %d", room, want, hub.RoomSize(room))
}

func TestHubRoomBookkeeping(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	room := CourtRoom(1)
	client := &Client{
		Hub:  hub,
		Send: make(chan []byte, 1),
		Room: room,
	}

	hub.Register <- client
	waitForRoomSize(t, hub, room, 1)

	hub.BroadcastToRoom(room, Message{
		Type: EventReservationCreated,
		Payload: SlotEvent{
			ReservationID: 1,
			CourtID:       1,
			Date:          "2025-05-22",
			Hour:          12,
		},
	})

	select {
	case raw := <-client.Send:
		if len(raw) == 0 {
			t.Fatal("expected a non-empty message")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	hub.Unregister <- client
	waitForRoomSize(t, hub, room, 0)
}

// Рассылка в пустую комнату не паникует и ничего не делает.
func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.BroadcastToRoom(CourtRoom(99), Message{Type: EventReservationCanceled})
}

func TestCourtRoom(t *testing.T) {
	if got := CourtRoom(7); got != "court_7" {
		t.Fatalf("CourtRoom(7) = %q, want %q", got, "court_7")
	}
}
