package event

import "context"

// Event types published to the audit stream
const (
	TypeOrderCompleted = "order_completed"
	TypeWalletCredited = "wallet_credited"
	TypeUserRegistered = "user_registered"
)

// Event is an audit record emitted after a state change has been committed
type Event struct {
	Type    string         // One of the Type* constants
	Key     string         // Partitioning key, usually the user ID
	Payload map[string]any // Event body, marshalled by the adapter
}

// Publisher delivers events to the audit stream. Publishing is best effort:
// flows never fail because an event could not be delivered.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error

	// Close flushes and releases the underlying producer
	Close() error
}
