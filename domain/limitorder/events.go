package limitorderdomain

import (
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// EventType is the kind of an order event.
type EventType string

const (
	EventTypeOrderCreated EventType = "order_created"
	EventTypeOrderFilled  EventType = "order_filled"
	EventTypeOrderClosed  EventType = "order_closed"
)

// Event is emitted after the transaction producing it commits.
// Exactly one of Created, Filled and Closed is set, matching Type.
type Event struct {
	Type    EventType `json:"type"`
	OrderID uint64    `json:"order_id"`
	Height  uint64    `json:"height"`

	Created *OrderCreated `json:"created,omitempty"`
	Filled  *OrderFilled  `json:"filled,omitempty"`
	Closed  *OrderClosed  `json:"closed,omitempty"`
}

// OrderCreated describes a new order.
type OrderCreated struct {
	Maker              string       `json:"maker"`
	TokenIn            string       `json:"token_in"`
	TokenOut           string       `json:"token_out"`
	Fee                uint32       `json:"fee"`
	ZeroForOne         bool         `json:"zero_for_one"`
	Deposited          osmomath.Int `json:"deposited"`
	TargetSqrtPriceX96 *uint256.Int `json:"target_sqrt_price_x96"`
	TickLower          int32        `json:"tick_lower"`
	TickUpper          int32        `json:"tick_upper"`
	Liquidity          *uint256.Int `json:"liquidity"`
	PositionID         uint64       `json:"position_id"`
}

// OrderFilled describes a fill.
// Amount0/Amount1 are the amounts collected from the position for the filled slice, fees included.
// Rebate0/Rebate1 are what the filler received in each token plus the unused offer, which stays
// in the filler balance. The filler balance of the offered token changes by rebate - offered.
type OrderFilled struct {
	Filler          string       `json:"filler"`
	Amount0         osmomath.Int `json:"amount0"`
	Amount1         osmomath.Int `json:"amount1"`
	Rebate0         osmomath.Int `json:"rebate0"`
	Rebate1         osmomath.Int `json:"rebate1"`
	AmountUsed      osmomath.Int `json:"amount_used"`
	LiquidityFilled *uint256.Int `json:"liquidity_filled"`
}

// OrderClosed describes a close. Amount0/Amount1 are the totals paid to the maker.
type OrderClosed struct {
	Maker   string       `json:"maker"`
	Amount0 osmomath.Int `json:"amount0"`
	Amount1 osmomath.Int `json:"amount1"`
}
