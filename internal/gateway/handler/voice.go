package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"labvoice/internal/gateway/voice"
)

const (
	voiceWSWriteWait = 10 * time.Second
	voiceWSPongWait  = 60 * time.Second
	voiceWSPingEvery = (voiceWSPongWait * 9) / 10
)

var voiceWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type voiceWSInbound struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type voiceWSOutbound struct {
	Type      string `json:"type"`
	ReportID  string `json:"report_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Peers     int    `json:"peers,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// VoiceSession joins the caller to a report's voice session relay. Transcript
// and status events sent by one participant fan out to the others.
// GET /api/voice/ws?report_id=...
func (h *Handler) VoiceSession(w http.ResponseWriter, r *http.Request) {
	reportID := strings.TrimSpace(r.URL.Query().Get("report_id"))
	if reportID == "" {
		http.Error(w, "report_id is required", http.StatusBadRequest)
		return
	}

	conn, err := voiceWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(voiceWSPongWait)); err != nil {
		log.Printf("voice ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(voiceWSPongWait))
	})

	writeCh := make(chan voiceWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(voiceWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(voiceWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(voiceWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	sub := h.hub.Join(reportID)
	defer sub.Leave()

	pushVoiceWS(writeCh, voiceWSOutbound{
		Type:     "joined",
		ReportID: reportID,
		Peers:    h.hub.SessionSize(reportID),
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				pushVoiceWS(writeCh, voiceWSOutbound{
					Type:      ev.Type,
					ReportID:  ev.ReportID,
					Role:      ev.Role,
					Content:   ev.Content,
					Timestamp: ev.Timestamp,
				})
			}
		}
	}()

	for {
		var in voiceWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))

		switch msgType {
		case "ping":
			pushVoiceWS(writeCh, voiceWSOutbound{Type: "pong"})
		case "transcript":
			content := strings.TrimSpace(in.Content)
			if content == "" {
				pushVoiceWS(writeCh, voiceWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "content is required",
				})
				continue
			}
			sub.Publish(voice.Event{
				Type:      voice.EventTranscript,
				Role:      strings.TrimSpace(in.Role),
				Content:   content,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		case "status":
			sub.Publish(voice.Event{
				Type:      voice.EventStatus,
				Content:   strings.TrimSpace(in.Content),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		case "end":
			sub.Publish(voice.Event{
				Type:      voice.EventSessionEnded,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			cancel()
			<-writerDone
			return
		default:
			pushVoiceWS(writeCh, voiceWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unknown message type",
			})
		}
	}
}

func pushVoiceWS(ch chan voiceWSOutbound, out voiceWSOutbound) {
	select {
	case ch <- out:
	default:
	}
}
