package limitorderrepository

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/json"
)

const (
	orderKeyPrefix = "order/"
	makerKeyPrefix = "maker/"
	lastOrderIDKey = "meta/last_order_id"

	// DefaultCacheSize is the number of decoded orders kept in memory.
	DefaultCacheSize = 1024
)

// undoEntry is the value a key held before the first write since the last checkpoint.
type undoEntry struct {
	key    []byte
	value  []byte
	exists bool
}

type pebbleRepositoryImpl struct {
	mu sync.RWMutex
	db *pebble.DB

	cache       *lru.Cache[uint64, limitorderdomain.Order]
	lastOrderID uint64

	undo    []undoEntry
	touched map[string]struct{}
}

var _ limitorderdomain.OrderRepository = &pebbleRepositoryImpl{}

// NewPebble opens, creating if needed, a pebble backed order repository in dir.
func NewPebble(dir string, cacheSize int) (*pebbleRepositoryImpl, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open order store %s: %w", dir, err)
	}

	cache, err := lru.New[uint64, limitorderdomain.Order](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	r := &pebbleRepositoryImpl{
		db:      db,
		cache:   cache,
		touched: map[string]struct{}{},
	}

	value, found, err := r.get([]byte(lastOrderIDKey))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if found {
		if len(value) != 8 {
			_ = db.Close()
			return nil, fmt.Errorf("corrupt %s of length %d", lastOrderIDKey, len(value))
		}
		r.lastOrderID = binary.BigEndian.Uint64(value)
	}

	return r, nil
}

// Close closes the underlying database.
func (r *pebbleRepositoryImpl) Close() error {
	return r.db.Close()
}

// NextOrderID implements limitorderdomain.OrderRepository.
func (r *pebbleRepositoryImpl) NextOrderID(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.lastOrderID + 1
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, next)
	if err := r.set([]byte(lastOrderIDKey), value); err != nil {
		return 0, err
	}

	r.lastOrderID = next
	return next, nil
}

// StoreOrder implements limitorderdomain.OrderRepository.
func (r *pebbleRepositoryImpl) StoreOrder(ctx context.Context, order limitorderdomain.Order) error {
	value, err := json.Marshal(order)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.set(orderKey(order.ID), value); err != nil {
		return err
	}
	if err := r.set(makerKey(order.Maker, order.ID), nil); err != nil {
		return err
	}

	r.cache.Add(order.ID, order.Clone())
	return nil
}

// GetOrder implements limitorderdomain.OrderRepository.
func (r *pebbleRepositoryImpl) GetOrder(ctx context.Context, orderID uint64) (limitorderdomain.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getOrder(orderID)
}

// GetOrdersByMaker implements limitorderdomain.OrderRepository.
func (r *pebbleRepositoryImpl) GetOrdersByMaker(ctx context.Context, maker string) ([]limitorderdomain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := []byte(makerKeyPrefix + maker + "/")
	orders := make([]limitorderdomain.Order, 0)

	err := r.scan(prefix, func(key, _ []byte) error {
		rest := bytes.TrimPrefix(key, prefix)
		// a longer maker sharing this prefix
		if bytes.IndexByte(rest, '/') >= 0 {
			return nil
		}

		var orderID uint64
		if _, err := fmt.Sscanf(string(rest), "%d", &orderID); err != nil {
			return err
		}

		order, found, err := r.getOrder(orderID)
		if err != nil {
			return err
		}
		if found {
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOpenOrders implements limitorderdomain.OrderRepository.
func (r *pebbleRepositoryImpl) GetOpenOrders(ctx context.Context) ([]limitorderdomain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]limitorderdomain.Order, 0)
	err := r.scan([]byte(orderKeyPrefix), func(_, value []byte) error {
		var order limitorderdomain.Order
		if err := json.Unmarshal(value, &order); err != nil {
			return err
		}
		if !order.IsClosed() {
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// Checkpoint starts recording prior values of written keys. The returned function writes them back.
func (r *pebbleRepositoryImpl) Checkpoint() func() {
	r.mu.Lock()
	r.undo = r.undo[:0]
	r.touched = map[string]struct{}{}
	lastOrderID := r.lastOrderID
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		batch := r.db.NewBatch()
		defer batch.Close()

		for i := len(r.undo) - 1; i >= 0; i-- {
			entry := r.undo[i]
			if entry.exists {
				_ = batch.Set(entry.key, entry.value, nil)
			} else {
				_ = batch.Delete(entry.key, nil)
			}
		}
		// nolint:errcheck // a failed restore leaves the store at the failed transaction state
		batch.Commit(pebble.Sync)

		r.undo = r.undo[:0]
		r.touched = map[string]struct{}{}
		r.lastOrderID = lastOrderID
		r.cache.Purge()
	}
}

// getOrder must be called with the lock held.
func (r *pebbleRepositoryImpl) getOrder(orderID uint64) (limitorderdomain.Order, bool, error) {
	if order, ok := r.cache.Get(orderID); ok {
		return order.Clone(), true, nil
	}

	value, found, err := r.get(orderKey(orderID))
	if err != nil || !found {
		return limitorderdomain.Order{}, false, err
	}

	var order limitorderdomain.Order
	if err := json.Unmarshal(value, &order); err != nil {
		return limitorderdomain.Order{}, false, err
	}

	r.cache.Add(orderID, order.Clone())
	return order, true, nil
}

func (r *pebbleRepositoryImpl) get(key []byte) ([]byte, bool, error) {
	value, closer, err := r.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	return bytes.Clone(value), true, nil
}

// set must be called with the write lock held.
func (r *pebbleRepositoryImpl) set(key, value []byte) error {
	if _, ok := r.touched[string(key)]; !ok {
		prior, found, err := r.get(key)
		if err != nil {
			return err
		}
		r.undo = append(r.undo, undoEntry{key: bytes.Clone(key), value: prior, exists: found})
		r.touched[string(key)] = struct{}{}
	}

	return r.db.Set(key, value, pebble.Sync)
}

func (r *pebbleRepositoryImpl) scan(prefix []byte, fn func(key, value []byte) error) error {
	iter, err := r.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

func orderKey(orderID uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", orderKeyPrefix, orderID))
}

func makerKey(maker string, orderID uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", makerKeyPrefix, maker, orderID))
}

// prefixUpperBound returns the smallest key greater than every key with the given prefix.
func prefixUpperBound(prefix []byte) []byte {
	upper := bytes.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}

// Name is the dependency name reported by the health check.
func (r *pebbleRepositoryImpl) Name() string {
	return "pebble"
}

// Check reads the order ID counter to verify the database is open and readable.
func (r *pebbleRepositoryImpl) Check() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, _, err := r.get([]byte(lastOrderIDKey))
	return err
}
