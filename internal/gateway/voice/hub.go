// Package voice relays session lifecycle and transcript events between the
// participants of one report's voice session. The relay carries events only;
// audio transport and summarization live elsewhere.
package voice

import (
	"sync"
)

// Event is one relayed session event. Transcript events carry a role and
// content; lifecycle events only a type.
type Event struct {
	Type      string `json:"type"`
	ReportID  string `json:"report_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

const (
	EventTranscript   = "transcript"
	EventStatus       = "status"
	EventPeerJoined   = "peer_joined"
	EventPeerLeft     = "peer_left"
	EventSessionEnded = "session_ended"
)

type subscriber struct {
	ch chan Event
}

// Hub fans events out to every subscriber of a report's session except the
// sender.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*subscriber]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*subscriber]bool),
	}
}

// Subscription receives the events of one session.
type Subscription struct {
	hub      *Hub
	reportID string
	sub      *subscriber
}

// Events is the channel session events arrive on. It is closed on Leave.
func (s *Subscription) Events() <-chan Event {
	return s.sub.ch
}

// Join subscribes to a report's session and notifies existing peers.
func (h *Hub) Join(reportID string) *Subscription {
	sub := &subscriber{ch: make(chan Event, 32)}

	h.mu.Lock()
	room, ok := h.rooms[reportID]
	if !ok {
		room = make(map[*subscriber]bool)
		h.rooms[reportID] = room
	}
	room[sub] = true
	h.mu.Unlock()

	h.broadcast(reportID, sub, Event{Type: EventPeerJoined, ReportID: reportID})
	return &Subscription{hub: h, reportID: reportID, sub: sub}
}

// Leave unsubscribes, closes the event channel and notifies remaining peers.
func (s *Subscription) Leave() {
	h := s.hub

	h.mu.Lock()
	room, ok := h.rooms[s.reportID]
	if ok && room[s.sub] {
		delete(room, s.sub)
		close(s.sub.ch)
		if len(room) == 0 {
			delete(h.rooms, s.reportID)
		}
	}
	h.mu.Unlock()

	if ok {
		h.broadcast(s.reportID, s.sub, Event{Type: EventPeerLeft, ReportID: s.reportID})
	}
}

// Publish relays an event from this subscriber to every peer in the session.
func (s *Subscription) Publish(ev Event) {
	ev.ReportID = s.reportID
	s.hub.broadcast(s.reportID, s.sub, ev)
}

// SessionSize reports how many participants a session currently has.
func (h *Hub) SessionSize(reportID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[reportID])
}

func (h *Hub) broadcast(reportID string, from *subscriber, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.rooms[reportID] {
		if sub == from {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Slow subscriber: drop rather than stall the session.
		}
	}
}
