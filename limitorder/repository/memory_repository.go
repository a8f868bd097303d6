package limitorderrepository

import (
	"context"
	"sort"
	"sync"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
)

type memoryRepositoryImpl struct {
	mu          sync.RWMutex
	orders      map[uint64]limitorderdomain.Order
	lastOrderID uint64
}

var _ limitorderdomain.OrderRepository = &memoryRepositoryImpl{}

// NewMemory returns an order repository held entirely in memory.
func NewMemory() *memoryRepositoryImpl {
	return &memoryRepositoryImpl{
		orders: map[uint64]limitorderdomain.Order{},
	}
}

// NextOrderID implements limitorderdomain.OrderRepository.
func (r *memoryRepositoryImpl) NextOrderID(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastOrderID++
	return r.lastOrderID, nil
}

// StoreOrder implements limitorderdomain.OrderRepository.
func (r *memoryRepositoryImpl) StoreOrder(ctx context.Context, order limitorderdomain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order.Clone()
	return nil
}

// GetOrder implements limitorderdomain.OrderRepository.
func (r *memoryRepositoryImpl) GetOrder(ctx context.Context, orderID uint64) (limitorderdomain.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return limitorderdomain.Order{}, false, nil
	}
	return order.Clone(), true, nil
}

// GetOrdersByMaker implements limitorderdomain.OrderRepository.
func (r *memoryRepositoryImpl) GetOrdersByMaker(ctx context.Context, maker string) ([]limitorderdomain.Order, error) {
	return r.filter(func(order limitorderdomain.Order) bool {
		return order.Maker == maker
	}), nil
}

// GetOpenOrders implements limitorderdomain.OrderRepository.
func (r *memoryRepositoryImpl) GetOpenOrders(ctx context.Context) ([]limitorderdomain.Order, error) {
	return r.filter(func(order limitorderdomain.Order) bool {
		return !order.IsClosed()
	}), nil
}

// Checkpoint snapshots the repository and returns a function restoring the snapshot.
func (r *memoryRepositoryImpl) Checkpoint() func() {
	r.mu.RLock()
	orders := make(map[uint64]limitorderdomain.Order, len(r.orders))
	for id, order := range r.orders {
		orders[id] = order.Clone()
	}
	lastOrderID := r.lastOrderID
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.orders = orders
		r.lastOrderID = lastOrderID
	}
}

func (r *memoryRepositoryImpl) filter(keep func(order limitorderdomain.Order) bool) []limitorderdomain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]limitorderdomain.Order, 0)
	for _, order := range r.orders {
		if keep(order) {
			result = append(result, order.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
