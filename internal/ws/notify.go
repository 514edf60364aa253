package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// recipient is implemented by payloads that belong to a single user.
type recipient interface {
	Recipient() uuid.UUID
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// Notifier publishes events to the hub installed with SetDefaultHub. It is
// safe to use before a hub exists; events are then discarded.
type Notifier struct{}

func (Notifier) Notify(event string, payload any) {
	h := defaultHub.Load()
	if h == nil || event == "" {
		return
	}

	b, err := encodeEvent(event, payload, time.Now())
	if err != nil {
		h.log.Warn("ws event encode failed")
		return
	}

	var target uuid.UUID
	if r, ok := payload.(recipient); ok {
		target = r.Recipient()
	}
	h.Broadcast(target, b)
}

func encodeEvent(event string, payload any, now time.Time) ([]byte, error) {
	return json.Marshal(Event{
		Type:      event,
		Payload:   payload,
		Timestamp: now.UTC().Format(time.RFC3339),
	})
}
