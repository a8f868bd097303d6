package types

import (
	"fmt"
	"io"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/json"
	"github.com/osmosis-labs/limitswap/pricemath"
)

var (
	// ErrTargetPriceRequired is returned when neither target_sqrt_price_x96 nor target_price is set.
	ErrTargetPriceRequired = fmt.Errorf("one of target_sqrt_price_x96 or target_price is required")
	// ErrTargetPriceAmbiguous is returned when both target_sqrt_price_x96 and target_price are set.
	ErrTargetPriceAmbiguous = fmt.Errorf("only one of target_sqrt_price_x96 or target_price may be set")
	// ErrAddressRequired is returned when the acting account is missing.
	ErrAddressRequired = fmt.Errorf("address is required")
)

// CreateOrderRequest represents the body of POST /limit-orders.
type CreateOrderRequest struct {
	Maker    string `json:"maker"`
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
	Fee      uint32 `json:"fee"`
	// Amount is the deposit in raw units of token in.
	Amount string `json:"amount"`
	// TargetSqrtPriceX96 is the raw Q64.96 square-root price.
	TargetSqrtPriceX96 string `json:"target_sqrt_price_x96,omitempty"`
	// TargetPrice is the price of one whole token0 in whole token1 of the pool.
	TargetPrice string `json:"target_price,omitempty"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request body to CreateOrderRequest.
func (r *CreateOrderRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return unmarshalBody(c, r)
}

// Validate validates the CreateOrderRequest.
func (r *CreateOrderRequest) Validate() error {
	if r.Maker == "" {
		return ErrAddressRequired
	}
	if err := sdk.ValidateDenom(r.TokenIn); err != nil {
		return InvalidAmountError{Field: "token_in", Amount: r.TokenIn, Err: err}
	}
	if err := sdk.ValidateDenom(r.TokenOut); err != nil {
		return InvalidAmountError{Field: "token_out", Amount: r.TokenOut, Err: err}
	}
	if r.TokenIn == r.TokenOut {
		return SameTokenError{Token: r.TokenIn}
	}

	if _, err := parsePositiveInt("amount", r.Amount); err != nil {
		return err
	}

	switch {
	case r.TargetSqrtPriceX96 == "" && r.TargetPrice == "":
		return ErrTargetPriceRequired
	case r.TargetSqrtPriceX96 != "" && r.TargetPrice != "":
		return ErrTargetPriceAmbiguous
	case r.TargetSqrtPriceX96 != "":
		if _, err := uint256.FromDecimal(r.TargetSqrtPriceX96); err != nil {
			return InvalidAmountError{Field: "target_sqrt_price_x96", Amount: r.TargetSqrtPriceX96, Err: err}
		}
	default:
		price, err := decimal.NewFromString(r.TargetPrice)
		if err != nil {
			return InvalidAmountError{Field: "target_price", Amount: r.TargetPrice, Err: err}
		}
		if !price.IsPositive() {
			return InvalidAmountError{Field: "target_price", Amount: r.TargetPrice, Err: fmt.Errorf("must be positive")}
		}
	}

	return nil
}

// PoolKey returns the key of the pool the order targets.
func (r *CreateOrderRequest) PoolKey() domain.PoolKey {
	return domain.NewPoolKey(r.TokenIn, r.TokenOut, r.Fee)
}

// ToDomain converts a validated request. decimals0 and decimals1 are the precisions of the
// sorted pool tokens and are only used to convert TargetPrice.
func (r *CreateOrderRequest) ToDomain(decimals0, decimals1 uint8) (limitorderdomain.CreateOrderRequest, error) {
	amount, err := parsePositiveInt("amount", r.Amount)
	if err != nil {
		return limitorderdomain.CreateOrderRequest{}, err
	}

	var target *uint256.Int
	if r.TargetSqrtPriceX96 != "" {
		target, err = uint256.FromDecimal(r.TargetSqrtPriceX96)
	} else {
		var price decimal.Decimal
		price, err = decimal.NewFromString(r.TargetPrice)
		if err == nil {
			target, err = pricemath.SqrtPriceFromPrice(price, decimals0, decimals1)
		}
	}
	if err != nil {
		return limitorderdomain.CreateOrderRequest{}, InvalidAmountError{Field: "target price", Amount: r.TargetSqrtPriceX96 + r.TargetPrice, Err: err}
	}

	return limitorderdomain.CreateOrderRequest{
		TokenIn:            r.TokenIn,
		TokenOut:           r.TokenOut,
		Fee:                r.Fee,
		ZeroForOne:         r.PoolKey().IsToken0(r.TokenIn),
		DepositAmount:      amount,
		TargetSqrtPriceX96: target,
	}, nil
}

// FillOrderRequest represents POST /limit-orders/:id/fill.
type FillOrderRequest struct {
	OrderID uint64 `json:"-"`
	Filler  string `json:"filler"`
	// Amount is the maximum amount of token out offered, in raw units.
	Amount string `json:"amount"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to FillOrderRequest.
func (r *FillOrderRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.OrderID, err = parseOrderID(c); err != nil {
		return err
	}
	return unmarshalBody(c, r)
}

// Validate validates the FillOrderRequest.
func (r *FillOrderRequest) Validate() error {
	if r.Filler == "" {
		return ErrAddressRequired
	}
	_, err := parsePositiveInt("amount", r.Amount)
	return err
}

// AmountOffered returns the parsed offer of a validated request.
func (r *FillOrderRequest) AmountOffered() osmomath.Int {
	amount, _ := osmomath.NewIntFromString(r.Amount)
	return amount
}

// CloseOrderRequest represents POST /limit-orders/:id/close.
type CloseOrderRequest struct {
	OrderID uint64 `json:"-"`
	Caller  string `json:"caller"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to CloseOrderRequest.
func (r *CloseOrderRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.OrderID, err = parseOrderID(c); err != nil {
		return err
	}
	return unmarshalBody(c, r)
}

// Validate validates the CloseOrderRequest.
func (r *CloseOrderRequest) Validate() error {
	if r.Caller == "" {
		return ErrAddressRequired
	}
	return nil
}

// OrderIDRequest represents the read endpoints addressing a single order.
type OrderIDRequest struct {
	OrderID uint64
}

// UnmarshalHTTPRequest unmarshals the HTTP request to OrderIDRequest.
func (r *OrderIDRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	r.OrderID, err = parseOrderID(c)
	return err
}

// GetOrdersRequest represents GET /limit-orders.
// An empty maker lists every open order.
type GetOrdersRequest struct {
	Maker string
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetOrdersRequest.
func (r *GetOrdersRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.Maker = c.QueryParam("maker")
	return nil
}

// GetOrdersResponse represents the response for GET /limit-orders.
type GetOrdersResponse struct {
	Orders []limitorderdomain.Order `json:"orders"`
}

// NewGetOrdersResponse creates a new GetOrdersResponse.
func NewGetOrdersResponse(orders []limitorderdomain.Order) *GetOrdersResponse {
	// make a orders object in response empty array if there are no orders
	// instead of null
	if len(orders) == 0 {
		orders = []limitorderdomain.Order{}
	}

	return &GetOrdersResponse{Orders: orders}
}

// CreateOrderResponse represents the response for POST /limit-orders.
type CreateOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

func parseOrderID(c echo.Context) (uint64, error) {
	idStr := c.Param("id")
	orderID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, InvalidAmountError{Field: "id", Amount: idStr, Err: err}
	}
	return orderID, nil
}

func parsePositiveInt(field, value string) (osmomath.Int, error) {
	amount, ok := osmomath.NewIntFromString(value)
	if !ok {
		return osmomath.Int{}, InvalidAmountError{Field: field, Amount: value, Err: fmt.Errorf("not an integer")}
	}
	if !amount.IsPositive() {
		return osmomath.Int{}, ZeroAmountError{Field: field}
	}
	return amount, nil
}

func unmarshalBody(c echo.Context, v any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
