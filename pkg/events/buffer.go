package events

// Buffer holds the events an aggregate raised since they were last drained.
// The zero value is ready to use.
type Buffer struct {
	pending []DomainEvent
}

// Add queues e. Nil events are dropped.
func (b *Buffer) Add(e DomainEvent) {
	if e != nil {
		b.pending = append(b.pending, e)
	}
}

// Len reports how many events are waiting.
func (b *Buffer) Len() int { return len(b.pending) }

// Drain hands over the queued events in the order they were raised and
// empties the buffer. It returns nil when nothing is queued.
func (b *Buffer) Drain() []DomainEvent {
	out := b.pending
	b.pending = nil
	return out
}
