package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// StatusCoder is implemented by errors that map to a specific HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var statusCoder StatusCoder
	if errors.As(err, &statusCoder) {
		return statusCoder.StatusCode()
	}

	switch {
	case errors.Is(err, ErrInternalServerError):
		return http.StatusInternalServerError
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadParamInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// PoolNotFoundError is returned when no pool exists for a key.
type PoolNotFoundError struct {
	Key PoolKey
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool %s is not found", e.Key)
}

// StatusCode implements StatusCoder.
func (e PoolNotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// SameDenomError is returned when both sides of a pair are the same denom.
type SameDenomError struct {
	Denom string
}

func (e SameDenomError) Error() string {
	return fmt.Sprintf("denom (%s) must differ from the counter denom", e.Denom)
}

// StatusCode implements StatusCoder.
func (e SameDenomError) StatusCode() int {
	return http.StatusBadRequest
}

// TokenNotFoundError is returned when a denom has no registered metadata.
type TokenNotFoundError struct {
	Denom string
}

func (e TokenNotFoundError) Error() string {
	return fmt.Sprintf("token (%s) is not registered", e.Denom)
}

// StatusCode implements StatusCoder.
func (e TokenNotFoundError) StatusCode() int {
	return http.StatusNotFound
}
