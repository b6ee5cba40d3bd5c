package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/metrics"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

// Envelope is the wire format for every pushed event.
type Envelope struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload,omitempty"`
}

// HubNotifier adapts the hub to the usecase notification contract.
type HubNotifier struct {
	hub    *Hub
	logger *log.Logger
}

func NewHubNotifier(hub *Hub, logger *log.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger}
}

func (n *HubNotifier) Notify(userID uuid.UUID, event string, payload any) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(Envelope{
		Type:      event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	})
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS marshal error | event=%s error=%v", event, err)
		}
		return
	}

	n.hub.Send(userID, b)
	metrics.EventsPushedTotal.WithLabelValues(event).Inc()
}

var _ usecase.Notifier = (*HubNotifier)(nil)
