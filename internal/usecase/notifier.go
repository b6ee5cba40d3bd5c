package usecase

import "github.com/google/uuid"

// Event names pushed to connected clients.
const (
	EventSessionRequested     = "session_requested"
	EventSessionStatusChanged = "session_status_changed"
	EventMessageReceived      = "message_received"
)

// Notifier delivers an event to one user's live connections. Delivery is
// best effort; usecases never fail on a notification.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any)
}

// NopNotifier drops everything. Used when the realtime hub is not wired,
// for example in the seeder or in tests.
type NopNotifier struct{}

func (NopNotifier) Notify(uuid.UUID, string, any) {}
