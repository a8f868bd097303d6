package types

import (
	"fmt"
	"net/http"
)

// InvalidOrderPriceError is returned when the target price of an order is on the wrong side
// of the pool price or cannot be represented.
type InvalidOrderPriceError struct {
	TargetSqrtPriceX96 string
	CurrentTick        int32
	ZeroForOne         bool
}

// Error implements the error interface.
func (e InvalidOrderPriceError) Error() string {
	return fmt.Sprintf("target sqrt price (%s) is not valid for current tick (%d), zero for one (%t)",
		e.TargetSqrtPriceX96, e.CurrentTick, e.ZeroForOne)
}

func (e InvalidOrderPriceError) StatusCode() int { return http.StatusBadRequest }

// InvalidTickRangeError is returned when the order range falls outside the usable ticks.
type InvalidTickRangeError struct {
	TickLower int32
	TickUpper int32
}

// Error implements the error interface.
func (e InvalidTickRangeError) Error() string {
	return fmt.Sprintf("order tick range [%d, %d) is outside the usable ticks", e.TickLower, e.TickUpper)
}

func (e InvalidTickRangeError) StatusCode() int { return http.StatusBadRequest }

// OrderNotFoundError is returned when an order ID is unknown.
type OrderNotFoundError struct {
	OrderID uint64
}

// Error implements the error interface.
func (e OrderNotFoundError) Error() string {
	return fmt.Sprintf("order (%d) is not found", e.OrderID)
}

func (e OrderNotFoundError) StatusCode() int { return http.StatusNotFound }

// OrderClosedError is returned when filling or closing an order that is already closed.
type OrderClosedError struct {
	OrderID uint64
}

// Error implements the error interface.
func (e OrderClosedError) Error() string {
	return fmt.Sprintf("order (%d) is closed", e.OrderID)
}

func (e OrderClosedError) StatusCode() int { return http.StatusConflict }

// OrderFullyFilledError is returned when filling an order that needs nothing more.
type OrderFullyFilledError struct {
	OrderID uint64
}

// Error implements the error interface.
func (e OrderFullyFilledError) Error() string {
	return fmt.Sprintf("order (%d) is fully filled", e.OrderID)
}

func (e OrderFullyFilledError) StatusCode() int { return http.StatusConflict }

// UnauthorizedError is returned when someone other than the maker closes an order.
type UnauthorizedError struct {
	OrderID uint64
	Sender  string
}

// Error implements the error interface.
func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("sender (%s) is not the maker of order (%d)", e.Sender, e.OrderID)
}

func (e UnauthorizedError) StatusCode() int { return http.StatusForbidden }

// ZeroAmountError is returned when an amount, or the liquidity it converts to, is zero.
type ZeroAmountError struct {
	Field string
}

// Error implements the error interface.
func (e ZeroAmountError) Error() string {
	return fmt.Sprintf("%s must be positive", e.Field)
}

func (e ZeroAmountError) StatusCode() int { return http.StatusBadRequest }

// SameTokenError is returned when an order sells a token for itself.
type SameTokenError struct {
	Token string
}

// Error implements the error interface.
func (e SameTokenError) Error() string {
	return fmt.Sprintf("token in and token out are both (%s)", e.Token)
}

func (e SameTokenError) StatusCode() int { return http.StatusBadRequest }

// InvalidDirectionError is returned when the requested direction does not match the sorted pair.
type InvalidDirectionError struct {
	TokenIn    string
	TokenOut   string
	ZeroForOne bool
}

// Error implements the error interface.
func (e InvalidDirectionError) Error() string {
	return fmt.Sprintf("zero for one (%t) does not match token in (%s) and token out (%s)", e.ZeroForOne, e.TokenIn, e.TokenOut)
}

func (e InvalidDirectionError) StatusCode() int { return http.StatusBadRequest }

// InvalidAmountError is returned when an amount in a request cannot be parsed.
type InvalidAmountError struct {
	Field  string
	Amount string
	Err    error
}

// Error implements the error interface.
func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid %s (%s): %v", e.Field, e.Amount, e.Err)
}

func (e InvalidAmountError) StatusCode() int { return http.StatusBadRequest }
