package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/osmosis-labs/limitswap/delivery/http"
	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/json"
	"github.com/osmosis-labs/limitswap/validator"
)

// PoolsHandler  represent the httphandler for pools
type PoolsHandler struct {
	PUsecase mvc.PoolsUsecase
}

const resourcePrefix = "/pools"

func formatPoolsResource(resource string) string {
	return resourcePrefix + resource
}

// NewPoolsHandler will initialize the pools/ resources endpoint
func NewPoolsHandler(e *echo.Echo, us mvc.PoolsUsecase) {
	handler := &PoolsHandler{
		PUsecase: us,
	}

	e.GET(formatPoolsResource(""), handler.GetPools)
	e.GET(formatPoolsResource("/:token0/:token1/:fee"), handler.GetPool)
	e.POST(formatPoolsResource("/swap"), handler.Swap)
	e.POST(formatPoolsResource("/liquidity"), handler.AddLiquidity)
}

// @Summary Get all pools
// @Description Returns the state of every pool with its spot price and reserves.
// @ID get-pools
// @Produce  json
// @Success 200  {array}  domain.PoolView  "List of pools"
// @Router /pools [get]
func (a *PoolsHandler) GetPools(c echo.Context) error {
	pools, err := a.PUsecase.GetAllPools(c.Request().Context())
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, pools)
}

// @Summary Get a pool
// @ID get-pool
// @Produce  json
// @Param  token0  path  string  true  "First token of the pair"
// @Param  token1  path  string  true  "Second token of the pair"
// @Param  fee  path  int  true  "Fee tier in hundredths of a bip"
// @Success 200  {object}  domain.PoolView  "Pool state"
// @Router /pools/{token0}/{token1}/{fee} [get]
func (a *PoolsHandler) GetPool(c echo.Context) error {
	feeStr := c.Param("fee")
	fee, err := strconv.ParseUint(feeStr, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: fmt.Sprintf("invalid fee (%s): %v", feeStr, err)})
	}

	key := domain.NewPoolKey(c.Param("token0"), c.Param("token1"), uint32(fee))

	pool, err := a.PUsecase.GetPool(c.Request().Context(), key)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, pool)
}

// SwapRequest represents the body of POST /pools/swap.
type SwapRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	Fee       uint32 `json:"fee"`

	AmountIn          *uint256.Int `json:"amount_in"`
	AmountOutMinimum  *uint256.Int `json:"amount_out_minimum,omitempty"`
	SqrtPriceLimitX96 *uint256.Int `json:"sqrt_price_limit_x96,omitempty"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request body to SwapRequest.
func (r *SwapRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return unmarshalBody(c, r)
}

// Validate validates the SwapRequest.
func (r *SwapRequest) Validate() error {
	if err := validator.Required("sender", r.Sender); err != nil {
		return err
	}
	if err := validator.Denom("token_in", r.TokenIn); err != nil {
		return err
	}
	if err := validator.Denom("token_out", r.TokenOut); err != nil {
		return err
	}
	if r.TokenIn == r.TokenOut {
		return domain.SameDenomError{Denom: r.TokenIn}
	}
	if r.AmountIn == nil || r.AmountIn.IsZero() {
		return fmt.Errorf("amount_in must be positive")
	}
	return nil
}

// @Summary Swap an exact input
// @Description Swaps amount_in of token_in from the sender balance. Used to move the market.
// @ID swap
// @Accept  json
// @Produce  json
// @Success 200  {object}  domain.SwapResult  "Swap outcome"
// @Router /pools/swap [post]
func (a *PoolsHandler) Swap(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req SwapRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	result, err := a.PUsecase.Swap(ctx, domain.SwapParams{
		Key:               domain.NewPoolKey(req.TokenIn, req.TokenOut, req.Fee),
		Sender:            req.Sender,
		Recipient:         req.Recipient,
		TokenIn:           req.TokenIn,
		AmountIn:          req.AmountIn,
		AmountOutMinimum:  req.AmountOutMinimum,
		SqrtPriceLimitX96: req.SqrtPriceLimitX96,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// AddLiquidityRequest represents the body of POST /pools/liquidity.
// Zero ticks select the full range.
type AddLiquidityRequest struct {
	Owner     string       `json:"owner"`
	TokenA    string       `json:"token_a"`
	TokenB    string       `json:"token_b"`
	Fee       uint32       `json:"fee"`
	TickLower int32        `json:"tick_lower"`
	TickUpper int32        `json:"tick_upper"`
	Amount0   *uint256.Int `json:"amount0"`
	Amount1   *uint256.Int `json:"amount1"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request body to AddLiquidityRequest.
func (r *AddLiquidityRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return unmarshalBody(c, r)
}

// Validate validates the AddLiquidityRequest.
func (r *AddLiquidityRequest) Validate() error {
	if err := validator.Required("owner", r.Owner); err != nil {
		return err
	}
	if r.TokenA == r.TokenB {
		return domain.SameDenomError{Denom: r.TokenA}
	}
	return nil
}

func (a *PoolsHandler) AddLiquidity(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req AddLiquidityRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	key := domain.NewPoolKey(req.TokenA, req.TokenB, req.Fee)
	result, err := a.PUsecase.AddLiquidity(ctx, req.Owner, key, req.TickLower, req.TickUpper, req.Amount0, req.Amount1)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func unmarshalBody(c echo.Context, v any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
