package mocks

import (
	"context"
	"sync"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
)

var _ limitorderdomain.EventPublisher = &EventPublisherMock{}

// EventPublisherMock records published events. PublishFunc, if set, decides the result.
type EventPublisherMock struct {
	mu        sync.Mutex
	Published []limitorderdomain.Event

	PublishFunc func(ctx context.Context, events []limitorderdomain.Event) error
	CloseFunc   func() error
}

func (m *EventPublisherMock) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, events); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, events...)
	return nil
}

func (m *EventPublisherMock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Events returns a copy of the recorded events.
func (m *EventPublisherMock) Events() []limitorderdomain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]limitorderdomain.Event(nil), m.Published...)
}
