package outbox

// Outbox row persisted inside the same transaction as state changes.
// Worker relays read pending rows and publish them to the event bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}
