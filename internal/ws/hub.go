package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/metrics"
)

// Hub tracks live connections indexed by user so events can be delivered
// to one user's open sessions.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	outbound   chan targeted
	mutex      sync.RWMutex
	logger     *log.Logger
}

type targeted struct {
	userID  uuid.UUID
	message []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		outbound:   make(chan targeted, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			metrics.WSConnections.Set(float64(total))
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case t := <-h.outbound:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.byUser[t.userID]))
			for c := range h.byUser[t.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- t.message:
				default:
					// A stalled client is removed here directly; queueing it
					// on unregister could block the loop against itself.
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		delete(h.byUser[client.userID], client)
		if len(h.byUser[client.userID]) == 0 {
			delete(h.byUser, client.userID)
		}
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	metrics.WSConnections.Set(float64(total))
	if h.logger != nil {
		h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues a message for all of one user's connections. Dropped when
// the buffer is full rather than blocking the caller.
func (h *Hub) Send(userID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.outbound <- targeted{userID: userID, message: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | user=%s reason=buffer_full", userID)
		}
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
