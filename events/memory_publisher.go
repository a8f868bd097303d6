// Package events delivers committed limit order events to in-process and external sinks.
package events

import (
	"context"
	"sync"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
)

// DefaultBufferSize is the default number of events retained by a MemoryPublisher.
const DefaultBufferSize = 1024

// MemoryPublisher keeps the most recent events in a ring buffer.
type MemoryPublisher struct {
	mu     sync.RWMutex
	buffer []limitorderdomain.Event
	// next is the index the next event is written to
	next int
	full bool
}

var _ limitorderdomain.EventPublisher = &MemoryPublisher{}

// NewMemoryPublisher returns a publisher retaining up to size events.
func NewMemoryPublisher(size int) *MemoryPublisher {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &MemoryPublisher{
		buffer: make([]limitorderdomain.Event, size),
	}
}

// Publish implements limitorderdomain.EventPublisher.
func (p *MemoryPublisher) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, event := range events {
		p.buffer[p.next] = event
		p.next = (p.next + 1) % len(p.buffer)
		if p.next == 0 {
			p.full = true
		}
	}
	return nil
}

// Events returns the retained events, oldest first.
func (p *MemoryPublisher) Events() []limitorderdomain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.full {
		result := make([]limitorderdomain.Event, p.next)
		copy(result, p.buffer[:p.next])
		return result
	}

	result := make([]limitorderdomain.Event, 0, len(p.buffer))
	result = append(result, p.buffer[p.next:]...)
	result = append(result, p.buffer[:p.next]...)
	return result
}

// EventsByOrder returns the retained events of orderID, oldest first.
func (p *MemoryPublisher) EventsByOrder(ctx context.Context, orderID uint64) ([]limitorderdomain.Event, error) {
	var result []limitorderdomain.Event
	for _, event := range p.Events() {
		if event.OrderID == orderID {
			result = append(result, event)
		}
	}
	return result, nil
}

// Close implements limitorderdomain.EventPublisher.
func (p *MemoryPublisher) Close() error {
	return nil
}
