package limitorderdomain

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/osmosis-labs/limitswap/domain"
)

// OrderRepository persists orders keyed by ID.
type OrderRepository interface {
	// NextOrderID reserves and returns the next order ID. IDs are never reused.
	NextOrderID(ctx context.Context) (uint64, error)
	// StoreOrder inserts or replaces an order.
	StoreOrder(ctx context.Context, order Order) error
	// GetOrder returns the order with the given ID and whether it exists.
	GetOrder(ctx context.Context, orderID uint64) (Order, bool, error)
	// GetOrdersByMaker returns all orders of maker sorted by ID.
	GetOrdersByMaker(ctx context.Context, maker string) ([]Order, error)
	// GetOpenOrders returns all open orders sorted by ID.
	GetOpenOrders(ctx context.Context) ([]Order, error)
}

// PositionGateway is the AMM surface the engine manages positions through.
type PositionGateway interface {
	PoolState(ctx context.Context, key domain.PoolKey) (domain.PoolState, error)
	TickSpacing(fee uint32) (int32, error)
	Mint(ctx context.Context, params domain.MintParams, pay domain.PayFunc) (domain.MintResult, error)
	Position(ctx context.Context, positionID uint64) (domain.PositionInfo, error)
	DecreaseLiquidity(ctx context.Context, sender string, positionID uint64, liquidity *uint256.Int) (amount0 *uint256.Int, amount1 *uint256.Int, err error)
	Collect(ctx context.Context, sender string, positionID uint64, recipient string) (amount0 *uint256.Int, amount1 *uint256.Int, err error)
	Burn(ctx context.Context, sender string, positionID uint64) error
	AmountDeltas(sqrtA, sqrtB, liquidity *uint256.Int, roundUp bool) (amount0 *uint256.Int, amount1 *uint256.Int, err error)
}

// TickMath converts between ticks and square-root prices.
type TickMath interface {
	SqrtPriceAtTick(tick int32) (*uint256.Int, error)
	TickAtSqrtPrice(sqrtPriceX96 *uint256.Int) (int32, error)
}

// EventPublisher delivers committed order events.
type EventPublisher interface {
	Publish(ctx context.Context, events []Event) error
	Close() error
}

// EventJournal is an EventPublisher that can be queried.
type EventJournal interface {
	EventPublisher
	EventsByOrder(ctx context.Context, orderID uint64) ([]Event, error)
}
