package limitorderdomain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/osmosis-labs/limitswap/domain"
)

// OrderState is the stored lifecycle state of an order.
// Partial fill is never stored, it is derived from the backing position.
type OrderState string

const (
	OrderStateOpen   OrderState = "open"
	OrderStateClosed OrderState = "closed"
)

// FillStatus is the derived fill progress of an order.
type FillStatus string

const (
	FillStatusUnfilled        FillStatus = "unfilled"
	FillStatusPartiallyFilled FillStatus = "partially_filled"
	FillStatusFilled          FillStatus = "filled"
	FillStatusClosed          FillStatus = "closed"
)

// Order is a resting limit order backed by a single-sided liquidity position.
type Order struct {
	ID         uint64 `json:"id"`
	Maker      string `json:"maker"`
	TokenIn    string `json:"token_in"`
	TokenOut   string `json:"token_out"`
	Fee        uint32 `json:"fee"`
	ZeroForOne bool   `json:"zero_for_one"`

	// DepositAmount is the amount requested by the maker.
	DepositAmount osmomath.Int `json:"deposit_amount"`
	// Deposited is the amount actually pulled into the position. It is at most DepositAmount
	// because liquidity is rounded down.
	Deposited osmomath.Int `json:"deposited"`

	TargetSqrtPriceX96 *uint256.Int `json:"target_sqrt_price_x96"`
	TickLower          int32        `json:"tick_lower"`
	TickUpper          int32        `json:"tick_upper"`
	PositionID         uint64       `json:"position_id"`
	// Liquidity is the liquidity of the position at creation.
	Liquidity *uint256.Int `json:"liquidity"`

	// Credits are proceeds held by the engine on behalf of the maker, paid out on close.
	Credits sdk.Coins `json:"credits"`

	State         OrderState `json:"state"`
	CreatedHeight uint64     `json:"created_height"`
	ClosedHeight  uint64     `json:"closed_height,omitempty"`
}

// PoolKey returns the key of the pool the order rests in.
func (o Order) PoolKey() domain.PoolKey {
	return domain.NewPoolKey(o.TokenIn, o.TokenOut, o.Fee)
}

// IsClosed returns true if the order is closed.
func (o Order) IsClosed() bool {
	return o.State == OrderStateClosed
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	cloned := o
	if o.TargetSqrtPriceX96 != nil {
		cloned.TargetSqrtPriceX96 = o.TargetSqrtPriceX96.Clone()
	}
	if o.Liquidity != nil {
		cloned.Liquidity = o.Liquidity.Clone()
	}
	cloned.Credits = sdk.NewCoins(o.Credits...)
	return cloned
}

// FillQuote is the amount of the counter token that completes an order at the current price.
type FillQuote struct {
	OrderID      uint64       `json:"order_id"`
	TokenNeeded  string       `json:"token_needed"`
	AmountNeeded osmomath.Int `json:"amount_needed"`
	// TokenReleased and AmountReleased are the token in still held by the position, read at
	// the same state as AmountNeeded. A fill of AmountNeeded releases it to the filler.
	TokenReleased  string       `json:"token_released"`
	AmountReleased osmomath.Int `json:"amount_released"`
}

// OrderStatus is the derived view of an order fill progress.
type OrderStatus struct {
	OrderID uint64     `json:"order_id"`
	State   OrderState `json:"state"`
	Status  FillStatus `json:"status"`
	// PercentFilled is the share of the position already converted into TokenOut.
	PercentFilled osmomath.Dec `json:"percent_filled"`
	// Liquidity is the liquidity still in the position.
	Liquidity *uint256.Int `json:"liquidity"`
	// Amount0/Amount1 are the token amounts currently held by the position.
	Amount0 osmomath.Int `json:"amount0"`
	Amount1 osmomath.Int `json:"amount1"`
	Credits sdk.Coins    `json:"credits"`
}

// FillResult is returned to the filler of an order.
type FillResult struct {
	OrderID uint64 `json:"order_id"`
	// AmountUsed is the part of the offer that converted position liquidity.
	AmountUsed osmomath.Int `json:"amount_used"`
	// LiquidityFilled is the liquidity removed from the position.
	LiquidityFilled *uint256.Int `json:"liquidity_filled"`
	// Received is everything paid to the filler. The unused offer is never pulled from it.
	Received sdk.Coins `json:"received"`
}

// CloseResult is returned to the maker of an order.
type CloseResult struct {
	OrderID uint64 `json:"order_id"`
	// Paid is everything transferred to the maker on close.
	Paid sdk.Coins `json:"paid"`
}

// CreateOrderRequest are the parameters of a new order.
type CreateOrderRequest struct {
	TokenIn            string
	TokenOut           string
	Fee                uint32
	ZeroForOne         bool
	DepositAmount      osmomath.Int
	TargetSqrtPriceX96 *uint256.Int
}
