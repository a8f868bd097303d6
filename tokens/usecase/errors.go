package usecase

import (
	"fmt"
	"net/http"
)

// ChainDenomForHumanDenomNotFoundError represents error type for when a chain denom
// for a human denom is not found.
type ChainDenomForHumanDenomNotFoundError struct {
	HumanDenom string
}

// Error implements the error interface.
func (e ChainDenomForHumanDenomNotFoundError) Error() string {
	return fmt.Sprintf("chain denom for human denom (%s) is not found", e.HumanDenom)
}

func (e ChainDenomForHumanDenomNotFoundError) StatusCode() int { return http.StatusNotFound }

// InvalidPrecisionError is returned when a token is registered with unusable decimals.
type InvalidPrecisionError struct {
	ChainDenom string
	Precision  int
}

// Error implements the error interface.
func (e InvalidPrecisionError) Error() string {
	return fmt.Sprintf("precision (%d) of (%s) must be within [0, 36]", e.Precision, e.ChainDenom)
}

func (e InvalidPrecisionError) StatusCode() int { return http.StatusBadRequest }

// InvalidDenomError is returned when a token is registered under a malformed denom.
type InvalidDenomError struct {
	ChainDenom string
	Err        error
}

// Error implements the error interface.
func (e InvalidDenomError) Error() string {
	return fmt.Sprintf("invalid denom (%s): %v", e.ChainDenom, e.Err)
}

func (e InvalidDenomError) StatusCode() int { return http.StatusBadRequest }
