package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
)

// LimitOrderUsecase represent the limit order engine usecases
type LimitOrderUsecase interface {
	// CreateOrder deposits the maker tokens into a single-sided position at the target price.
	CreateOrder(ctx context.Context, maker string, req limitorderdomain.CreateOrderRequest) (uint64, error)

	// GetOrderFillAmount returns the amount of token out that completes the order at the current price.
	GetOrderFillAmount(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error)

	// FillOrder pays up to amountOffered of token out to buy the remaining token in of the order.
	FillOrder(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (limitorderdomain.FillResult, error)

	// CloseOrder removes the position and pays everything to the maker.
	CloseOrder(ctx context.Context, caller string, orderID uint64) (limitorderdomain.CloseResult, error)

	GetOrder(ctx context.Context, orderID uint64) (limitorderdomain.Order, error)
	GetOrdersByMaker(ctx context.Context, maker string) ([]limitorderdomain.Order, error)
	GetOpenOrders(ctx context.Context) ([]limitorderdomain.Order, error)

	// GetOrderStatus derives the fill progress from the live position.
	GetOrderStatus(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error)

	// EngineAddress is the account makers and fillers must approve.
	EngineAddress() string
}
