package pricemath

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrArithmeticOverflow is returned when a fixed-point computation does not fit its result type.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrDivisionByZero is returned when a denominator is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// InvalidSqrtPriceError is returned when a square-root price is outside of the supported domain.
type InvalidSqrtPriceError struct {
	SqrtPriceX96 string
}

// Error implements the error interface.
func (e InvalidSqrtPriceError) Error() string {
	return fmt.Sprintf("sqrt price (%s) is outside of [MinSqrtRatio, MaxSqrtRatio)", e.SqrtPriceX96)
}

func (e InvalidSqrtPriceError) StatusCode() int { return http.StatusBadRequest }

// InvalidUnitsError is returned when a human amount cannot be represented in raw units.
type InvalidUnitsError struct {
	Amount   string
	Decimals uint8
	Reason   string
}

// Error implements the error interface.
func (e InvalidUnitsError) Error() string {
	return fmt.Sprintf("amount (%s) cannot be converted with (%d) decimals: %s", e.Amount, e.Decimals, e.Reason)
}

func (e InvalidUnitsError) StatusCode() int { return http.StatusBadRequest }
