package voice

import (
	"testing"
	"time"
)

func recvEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestHubRelaysToPeersOnly(t *testing.T) {
	hub := NewHub()

	a := hub.Join("r1")
	b := hub.Join("r1")
	defer a.Leave()
	defer b.Leave()

	// a sees b join.
	if ev := recvEvent(t, a); ev.Type != EventPeerJoined {
		t.Fatalf("event = %+v, want peer_joined", ev)
	}

	a.Publish(Event{Type: EventTranscript, Role: "user", Content: "hello"})

	ev := recvEvent(t, b)
	if ev.Type != EventTranscript || ev.Content != "hello" || ev.ReportID != "r1" {
		t.Fatalf("event = %+v", ev)
	}

	// The sender never hears its own event.
	select {
	case ev := <-a.Events():
		t.Fatalf("sender received %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubIsolatesSessions(t *testing.T) {
	hub := NewHub()

	a := hub.Join("r1")
	b := hub.Join("r2")
	defer a.Leave()
	defer b.Leave()

	a.Publish(Event{Type: EventStatus, Content: "speaking"})

	select {
	case ev := <-b.Events():
		t.Fatalf("cross-session event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubLeaveNotifiesAndCloses(t *testing.T) {
	hub := NewHub()

	a := hub.Join("r1")
	b := hub.Join("r1")
	recvEvent(t, a) // b joined

	if got := hub.SessionSize("r1"); got != 2 {
		t.Fatalf("SessionSize() = %d, want 2", got)
	}

	b.Leave()

	if ev := recvEvent(t, a); ev.Type != EventPeerLeft {
		t.Fatalf("event = %+v, want peer_left", ev)
	}
	if got := hub.SessionSize("r1"); got != 1 {
		t.Fatalf("SessionSize() = %d, want 1", got)
	}

	// The left subscription's channel is closed.
	select {
	case _, ok := <-b.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed")
	}

	a.Leave()
	if got := hub.SessionSize("r1"); got != 0 {
		t.Fatalf("SessionSize() = %d, want 0", got)
	}
}

func TestHubLeaveTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	a := hub.Join("r1")
	a.Leave()
	a.Leave()
}
