package events

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/log"
)

const (
	subscriptionBuffer = 64
	writeTimeout       = 5 * time.Second
)

// Subscription is a live event stream.
type Subscription struct {
	ch chan limitorderdomain.Event
	// orderID filters the stream when non-zero
	orderID uint64
}

// Events returns the stream. It is closed on unsubscribe or when the hub closes.
func (s *Subscription) Events() <-chan limitorderdomain.Event {
	return s.ch
}

// Hub broadcasts events to websocket subscribers.
// A subscriber that falls behind misses events rather than blocking publishers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	upgrader websocket.Upgrader
	logger   log.Logger
}

var _ limitorderdomain.EventPublisher = &Hub{}

// NewHub returns a hub without subscribers.
func NewHub(logger log.Logger) *Hub {
	return &Hub{
		subs:     make(map[*Subscription]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger,
	}
}

// Subscribe registers a new subscriber. orderID zero receives every event.
func (h *Hub) Subscribe(orderID uint64) *Subscription {
	sub := &Subscription{ch: make(chan limitorderdomain.Event, subscriptionBuffer), orderID: orderID}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// NumSubscribers returns the number of live subscriptions.
func (h *Hub) NumSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Unsubscribe removes sub and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// Publish implements limitorderdomain.EventPublisher.
func (h *Hub) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, event := range events {
		for sub := range h.subs {
			if sub.orderID != 0 && sub.orderID != event.OrderID {
				continue
			}
			select {
			case sub.ch <- event:
			default:
			}
		}
	}
	return nil
}

// Close implements limitorderdomain.EventPublisher. It ends every stream.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.closed = true
	return nil
}

// NewWebsocketHandler will initialize the /ws/events endpoint.
// The optional order_id query parameter restricts the stream to one order.
func NewWebsocketHandler(e *echo.Echo, hub *Hub) {
	e.GET("/ws/events", hub.ServeEvents)
}

// ServeEvents upgrades the connection and streams events as JSON messages until the
// client goes away.
func (h *Hub) ServeEvents(c echo.Context) error {
	var orderID uint64
	if err := echo.QueryParamsBinder(c).Uint64("order_id", &orderID).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already replied
		return nil
	}
	defer conn.Close()

	sub := h.Subscribe(orderID)
	defer h.Unsubscribe(sub)

	// drain reads so that close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-sub.ch:
			if !ok {
				// nolint:errcheck // best effort close frame
				conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
				return nil
			}

			// nolint:errcheck // a failed deadline surfaces on the write
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("websocket write failed", zap.Error(err))
				return nil
			}
		}
	}
}
