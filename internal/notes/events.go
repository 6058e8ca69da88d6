package notes

// EventKind names a successful store mutation.
type EventKind string

const (
	EventCreated  EventKind = "created"
	EventSelected EventKind = "selected"
	EventUpdated  EventKind = "updated"
	EventDeleted  EventKind = "deleted"
	EventReset    EventKind = "reset"
)

// Event describes one mutation. Name is empty for EventReset.
type Event struct {
	Kind EventKind
	Name string
}

// Listener receives store events. It runs synchronously inside the
// mutation, with the store lock held, so it must not call back into the store.
type Listener func(Event)
