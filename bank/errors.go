package bank

import (
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
)

// InsufficientBalanceError is returned when an account cannot cover a debit.
type InsufficientBalanceError struct {
	Address  string
	Denom    string
	Balance  sdkmath.Int
	Required sdkmath.Int
}

// Error implements the error interface.
func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance of %s for %s: balance (%s), required (%s)", e.Denom, e.Address, e.Balance, e.Required)
}

// InsufficientAllowanceError is returned when a spender is not allowed to move enough tokens.
type InsufficientAllowanceError struct {
	Owner     string
	Spender   string
	Denom     string
	Allowance sdkmath.Int
	Required  sdkmath.Int
}

// Error implements the error interface.
func (e InsufficientAllowanceError) Error() string {
	return fmt.Sprintf("insufficient allowance of %s granted by %s to %s: allowance (%s), required (%s)", e.Denom, e.Owner, e.Spender, e.Allowance, e.Required)
}

// InvalidCoinError is returned for malformed or non-positive coins.
type InvalidCoinError struct {
	Coin string
	Err  error
}

// Error implements the error interface.
func (e InvalidCoinError) Error() string {
	return fmt.Sprintf("invalid coin (%s): %v", e.Coin, e.Err)
}

// InvalidAddressError is returned for empty addresses.
type InvalidAddressError struct {
	Address string
}

// Error implements the error interface.
func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address (%s)", e.Address)
}

func (e InsufficientBalanceError) StatusCode() int { return http.StatusPaymentRequired }

func (e InsufficientAllowanceError) StatusCode() int { return http.StatusPaymentRequired }

func (e InvalidCoinError) StatusCode() int { return http.StatusBadRequest }

func (e InvalidAddressError) StatusCode() int { return http.StatusBadRequest }
