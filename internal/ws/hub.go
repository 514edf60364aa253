package ws

import (
	"context"
	"sync"

	"career-match/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// message is a frame queued for delivery. A nil target reaches every client.
type message struct {
	target uuid.UUID
	data   []byte
}

// Hub tracks connected clients. Registration never blocks, also after Run
// has returned.
type Hub struct {
	clients   map[*Client]bool
	stopped   bool
	broadcast chan message
	mutex     sync.RWMutex
	log       *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan message, 1024),
		log:       logger.OrNop(log),
	}
}

// Run delivers queued frames until ctx is cancelled, then closes every
// client and refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.stopped = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if msg.target == uuid.Nil || c.userID == msg.target {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.data:
				default:
					h.drop(client)
				}
			}
			h.log.Debug("ws broadcast", zap.Int("clients", len(targets)))
		}
	}
}

func (h *Hub) drop(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.log.Debug("ws disconnected", zap.Int("total_clients", total))
}

// Register adds a client. A stopped hub closes the client's send channel
// instead so its write pump ends.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()
	h.log.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
}

// Unregister is idempotent.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.drop(client)
}

// Broadcast queues data for every client, or only for target's connections
// when target is set. Frames are dropped when the queue is full.
func (h *Hub) Broadcast(target uuid.UUID, data []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message{target: target, data: data}:
	default:
		h.log.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
