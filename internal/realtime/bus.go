package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// EventType mirrors the row-level change feed: INSERT, UPDATE, DELETE.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one committed row change on a table. Record carries the full row
// for inserts and updates and is nil for deletes.
type Event struct {
	Table  string
	Type   EventType
	ID     uuid.UUID
	Record any
}

// Bus fans committed changes out to in-process subscribers: the entity
// stores (reconciliation) and the websocket hub (client push). Delivery is
// synchronous and in commit order per publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]func(Event)
	all  []func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]func(Event))}
}

// Subscribe registers a handler for one table's events.
func (b *Bus) Subscribe(table string, fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[table] = append(b.subs[table], fn)
}

// SubscribeAll registers a handler for every table.
func (b *Bus) SubscribeAll(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, fn)
}

// Publish delivers the event to table and wildcard subscribers.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	table := b.subs[ev.Table]
	all := b.all
	b.mu.RUnlock()

	for _, fn := range table {
		fn(ev)
	}
	for _, fn := range all {
		fn(ev)
	}
}
