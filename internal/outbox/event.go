package outbox

// Event is the domain event envelope written to the outbox table inside the
// mutation transaction. The Kafka topic equals EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Slot lifecycle event types. Versioned so consumers can migrate.
const (
	EventSlotCreated = "scheduling.slot.created.v1"
	EventSlotDeleted = "scheduling.slot.deleted.v1"
	EventSlotBooked  = "scheduling.slot.booked.v1"
)
