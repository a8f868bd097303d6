package clpool

import (
	"fmt"
	"net/http"

	"github.com/osmosis-labs/limitswap/domain"
)

// TickOutOfBoundsError is returned when a tick is outside of [MinTick, MaxTick].
type TickOutOfBoundsError struct {
	Tick int32
}

// Error implements the error interface.
func (e TickOutOfBoundsError) Error() string {
	return fmt.Sprintf("tick (%d) is outside of [%d, %d]", e.Tick, MinTick, MaxTick)
}

// InvalidTickRangeError is returned when a position range is malformed.
type InvalidTickRangeError struct {
	TickLower   int32
	TickUpper   int32
	TickSpacing int32
}

// Error implements the error interface.
func (e InvalidTickRangeError) Error() string {
	return fmt.Sprintf("invalid tick range [%d, %d) for tick spacing (%d)", e.TickLower, e.TickUpper, e.TickSpacing)
}

// PoolAlreadyExistsError is returned when creating a pool that already exists.
type PoolAlreadyExistsError struct {
	Key domain.PoolKey
}

// Error implements the error interface.
func (e PoolAlreadyExistsError) Error() string {
	return fmt.Sprintf("pool %s already exists", e.Key)
}

// UnsupportedFeeError is returned when a fee tier has no tick spacing.
type UnsupportedFeeError struct {
	Fee uint32
}

// Error implements the error interface.
func (e UnsupportedFeeError) Error() string {
	return fmt.Sprintf("fee tier (%d) is not enabled", e.Fee)
}

// InvalidTokenPairError is returned when a pool is created with identical or invalid tokens.
type InvalidTokenPairError struct {
	TokenA string
	TokenB string
}

// Error implements the error interface.
func (e InvalidTokenPairError) Error() string {
	return fmt.Sprintf("invalid token pair %s/%s", e.TokenA, e.TokenB)
}

// PositionNotFoundError is returned when a position ID is unknown.
type PositionNotFoundError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e PositionNotFoundError) Error() string {
	return fmt.Sprintf("position (%d) is not found", e.PositionID)
}

// NotPositionOwnerError is returned when a non-owner manages a position.
type NotPositionOwnerError struct {
	PositionID uint64
	Owner      string
	Sender     string
}

// Error implements the error interface.
func (e NotPositionOwnerError) Error() string {
	return fmt.Sprintf("sender (%s) is not the owner (%s) of position (%d)", e.Sender, e.Owner, e.PositionID)
}

// InsufficientPositionLiquidityError is returned when removing more liquidity than a position holds.
type InsufficientPositionLiquidityError struct {
	PositionID uint64
	Liquidity  string
	Requested  string
}

// Error implements the error interface.
func (e InsufficientPositionLiquidityError) Error() string {
	return fmt.Sprintf("position (%d) has liquidity (%s), requested (%s)", e.PositionID, e.Liquidity, e.Requested)
}

// PositionNotClearedError is returned when burning a position that still holds liquidity or tokens.
type PositionNotClearedError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e PositionNotClearedError) Error() string {
	return fmt.Sprintf("position (%d) is not cleared", e.PositionID)
}

// ZeroLiquidityError is returned when minting or removing zero liquidity.
type ZeroLiquidityError struct{}

// Error implements the error interface.
func (e ZeroLiquidityError) Error() string {
	return "liquidity must be positive"
}

// MaxLiquidityPerTickError is returned when a tick would exceed its liquidity cap.
type MaxLiquidityPerTickError struct {
	Tick int32
}

// Error implements the error interface.
func (e MaxLiquidityPerTickError) Error() string {
	return fmt.Sprintf("tick (%d) exceeds max liquidity per tick", e.Tick)
}

// InsufficientPaymentError is returned when a mint callback pays less than owed.
type InsufficientPaymentError struct {
	Denom    string
	Owed     string
	Received string
}

// Error implements the error interface.
func (e InsufficientPaymentError) Error() string {
	return fmt.Sprintf("mint callback paid (%s) of (%s) owed %s", e.Received, e.Owed, e.Denom)
}

// InvalidSqrtPriceLimitError is returned when a swap price limit is on the wrong side of the price.
type InvalidSqrtPriceLimitError struct {
	SqrtPriceLimitX96 string
}

// Error implements the error interface.
func (e InvalidSqrtPriceLimitError) Error() string {
	return fmt.Sprintf("invalid sqrt price limit (%s)", e.SqrtPriceLimitX96)
}

// SlippageExceededError is returned when a swap yields less than the requested minimum.
type SlippageExceededError struct {
	AmountOut        string
	AmountOutMinimum string
}

// Error implements the error interface.
func (e SlippageExceededError) Error() string {
	return fmt.Sprintf("amount out (%s) is less than minimum (%s)", e.AmountOut, e.AmountOutMinimum)
}

// StatusCode implementations map pool errors to HTTP statuses.

func (e TickOutOfBoundsError) StatusCode() int { return http.StatusBadRequest }

func (e InvalidTickRangeError) StatusCode() int { return http.StatusBadRequest }

func (e PoolAlreadyExistsError) StatusCode() int { return http.StatusConflict }

func (e UnsupportedFeeError) StatusCode() int { return http.StatusBadRequest }

func (e InvalidTokenPairError) StatusCode() int { return http.StatusBadRequest }

func (e PositionNotFoundError) StatusCode() int { return http.StatusNotFound }

func (e NotPositionOwnerError) StatusCode() int { return http.StatusForbidden }

func (e InsufficientPositionLiquidityError) StatusCode() int { return http.StatusBadRequest }

func (e PositionNotClearedError) StatusCode() int { return http.StatusConflict }

func (e ZeroLiquidityError) StatusCode() int { return http.StatusBadRequest }

func (e MaxLiquidityPerTickError) StatusCode() int { return http.StatusBadRequest }

func (e InsufficientPaymentError) StatusCode() int { return http.StatusPaymentRequired }

func (e InvalidSqrtPriceLimitError) StatusCode() int { return http.StatusBadRequest }

func (e SlippageExceededError) StatusCode() int { return http.StatusConflict }
