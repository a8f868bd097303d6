package events

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/log"
)

// Sink is a named event publisher.
type Sink struct {
	Name      string
	Publisher limitorderdomain.EventPublisher
}

// MultiPublisher fans every batch out to all sinks in order.
// A failing sink does not prevent delivery to the others.
type MultiPublisher struct {
	sinks  []Sink
	logger log.Logger
}

var _ limitorderdomain.EventPublisher = &MultiPublisher{}

// NewMultiPublisher returns a publisher over sinks.
func NewMultiPublisher(logger log.Logger, sinks ...Sink) *MultiPublisher {
	return &MultiPublisher{
		sinks:  sinks,
		logger: logger,
	}
}

// Publish implements limitorderdomain.EventPublisher.
func (p *MultiPublisher) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publisher.Publish(ctx, events); err != nil {
			domain.EventsPublishErrorCounter.WithLabelValues(sink.Name).Inc()
			p.logger.Error("failed to publish events", zap.String("sink", sink.Name), zap.Int("num_events", len(events)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements limitorderdomain.EventPublisher. Sinks are closed in reverse order.
func (p *MultiPublisher) Close() error {
	var errs []error
	for i := len(p.sinks) - 1; i >= 0; i-- {
		if err := p.sinks[i].Publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
